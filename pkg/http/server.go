package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/github/selective-mcp-server/pkg/builtin"
	"github.com/github/selective-mcp-server/pkg/toolfilter"
)

const shutdownTimeout = 10 * time.Second

type ServerConfig struct {
	// Version of the server
	Version string

	// Address to listen on, e.g. ":8082"
	Address string

	// BasePath is the MCP endpoint, "/mcp" when empty
	BasePath string

	// ErrorBehavior applied when a selection names unknown tools
	ErrorBehavior toolfilter.ErrorBehavior

	// EnabledToolsets lists the toolsets served; "all" enables every toolset
	EnabledToolsets []string

	// EnableMetrics exposes Prometheus metrics on /metrics
	EnableMetrics bool

	// SelectionCacheTTL is how long parsed selections are memoized. Zero disables the cache.
	SelectionCacheTTL time.Duration

	// SelectionCacheMaxEntries caps the number of memoized selections. Zero disables the cache.
	SelectionCacheMaxEntries int

	// Logger is used for all server diagnostics
	Logger *slog.Logger
}

// NewRouter builds the chi router serving the MCP endpoints for cfg.
func NewRouter(cfg ServerConfig) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	group, err := builtin.DefaultToolsetGroup(cfg.EnabledToolsets)
	if err != nil {
		return nil, fmt.Errorf("failed to enable toolsets: %w", err)
	}

	r := chi.NewRouter()
	handler := NewHTTPMcpHandler(&cfg, group, logger)
	handler.RegisterMiddleware(r)
	handler.RegisterRoutes(r)
	return r, nil
}

// RunHTTPServer serves MCP over streamable HTTP until ctx is cancelled or the
// process receives SIGINT or SIGTERM.
func RunHTTPServer(ctx context.Context, cfg ServerConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
		cfg.Logger = logger
	}

	router, err := NewRouter(cfg)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Address, err)
	}

	httpServer := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server",
			"address", ln.Addr().String(),
			"basePath", cfg.BasePath,
			"errorBehavior", cfg.ErrorBehavior.String(),
			"metrics", cfg.EnableMetrics,
		)
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down HTTP server")
	case err, ok := <-serverErr:
		if ok {
			logger.Error("HTTP server error", "error", err)
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	logger.Info("HTTP server shutdown complete")
	return nil
}
