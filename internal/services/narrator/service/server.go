// Package service hosts the narrator engine as an MCP server over stdio or
// streamable HTTP.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kopertop/ai-dnd-expo-sub004/internal/services/narrator/domain"
	"github.com/kopertop/ai-dnd-expo-sub004/internal/storage"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "Narrator Engine MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves MCP over streamable HTTP.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	HTTPAddr  string // HTTP server address. Defaults to localhost:8081 for HTTP transport.
	Store     storage.CharacterStore
	NewRoller domain.RollerFactory
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
}

// New creates a configured MCP server exposing the narrator engine tools.
func New(store storage.CharacterStore, newRoller domain.RollerFactory) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("character store is required")
	}
	if newRoller == nil {
		return nil, fmt.Errorf("roller factory is required")
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerTools(mcpServer, store, newRoller)

	return &Server{mcpServer: mcpServer}, nil
}

func registerTools(mcpServer *mcp.Server, store storage.CharacterStore, newRoller domain.RollerFactory) {
	mcp.AddTool(mcpServer, domain.ProcessNarrationTool(), domain.ProcessNarrationHandler(store, newRoller))
	mcp.AddTool(mcpServer, domain.ValidateNarrationTool(), domain.ValidateNarrationHandler())
	mcp.AddTool(mcpServer, domain.RollDiceTool(), domain.RollDiceHandler(newRoller))
	mcp.AddTool(mcpServer, domain.RollAbilityScoreTool(), domain.RollAbilityScoreHandler(newRoller))
	mcp.AddTool(mcpServer, domain.CharacterCreateTool(), domain.CharacterCreateHandler(store))
	mcp.AddTool(mcpServer, domain.CharacterGetTool(), domain.CharacterGetHandler(store))
}

// Run creates and serves the MCP server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	server, err := New(cfg.Store, cfg.NewRoller)
	if err != nil {
		return err
	}

	switch cfg.Transport {
	case TransportStdio:
		return server.Serve(ctx)
	case TransportHTTP:
		return server.serveHTTP(ctx, cfg.HTTPAddr)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// Serve starts the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport starts the MCP server using the provided transport.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// serveHTTP serves the MCP server over streamable HTTP until the context
// ends.
func (s *Server) serveHTTP(ctx context.Context, addr string) error {
	if addr == "" {
		addr = "localhost:8081"
	}

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp", handler)
	mux.HandleFunc("/mcp/health", handleHealth)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	log.Printf("starting MCP HTTP server on %s", addr)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Printf("shutting down MCP HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		return nil
	case err := <-errChan:
		return fmt.Errorf("HTTP server error: %w", err)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
