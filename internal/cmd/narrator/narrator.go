// Package narrator parses narrator command flags and runs the MCP server.
package narrator

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/kopertop/ai-dnd-expo-sub004/internal/platform/config"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/platform/otel"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/platform/random"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/services/narrator/domain"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/services/narrator/service"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/storage/sqlite"
)

// Config holds narrator command configuration.
type Config struct {
	Transport string `env:"NARRATOR_MCP_TRANSPORT" envDefault:"stdio"`
	HTTPAddr  string `env:"NARRATOR_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	StorePath string `env:"NARRATOR_STORE_PATH"    envDefault:"narrator.db"`
	// DiceSeed fixes the dice seed for reproducible sessions. Zero means a
	// fresh cryptographic seed per roll.
	DiceSeed int64 `env:"NARRATOR_DICE_SEED"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.StorePath, "store", cfg.StorePath, "path to the character database")
	fs.Int64Var(&cfg.DiceSeed, "dice-seed", cfg.DiceSeed, "fixed dice seed (0 for random)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the narrator MCP server.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "narrator")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	store, err := sqlite.Open(cfg.StorePath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	newRoller := domain.NewRollerFactory(random.NewSeed)
	if cfg.DiceSeed != 0 {
		newRoller = domain.FixedRollerFactory(cfg.DiceSeed)
	}

	return service.Run(ctx, service.Config{
		Transport: service.TransportKind(cfg.Transport),
		HTTPAddr:  cfg.HTTPAddr,
		Store:     store,
		NewRoller: newRoller,
	})
}
