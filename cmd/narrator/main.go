package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	narratorcmd "github.com/kopertop/ai-dnd-expo-sub004/internal/cmd/narrator"
)

// main starts the narrator MCP server on stdio or HTTP.
func main() {
	cfg, err := narratorcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[NARRATOR] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := narratorcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve narrator: %v", err)
	}
}
