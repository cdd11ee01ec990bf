// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/quillworks/quill/internal/aiclient"
	"github.com/quillworks/quill/internal/api"
	"github.com/quillworks/quill/internal/mcpserver"
	"github.com/quillworks/quill/internal/processor"
	"github.com/quillworks/quill/internal/sse"
	"github.com/quillworks/quill/internal/template"
	"github.com/quillworks/quill/internal/usagelog"
)

// Run starts the HTTP service with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	logger := app.logger
	if logger == nil {
		logger = newLogger(cfg)
	}

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("environment", cfg.Server.Environment),
		slog.String("seed_path", cfg.Templates.SeedPath),
		slog.Bool("ai_enabled", cfg.AI.Enabled()),
		slog.String("log_level", cfg.App.LogLevel.String()))

	registry, err := buildRegistry(cfg, logger)
	if err != nil {
		return err
	}
	usage := usagelog.NewLog(cfg.Logs.Capacity)

	var ai *aiclient.Client
	if cfg.AI.Enabled() {
		ai = aiclient.New(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Timeout())
	}

	broker := sse.NewBroker()
	defer broker.Close()

	svc := processor.New(registry, usage, ai, broker)

	info := api.Info{
		Environment:    cfg.Server.Environment,
		AllowedOrigins: cfg.Server.OriginList(),
		AIConfigured:   cfg.AI.Enabled(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Mount("/", api.NewRouter(svc, registry, usage, info, broker))

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Hot-reload the seed file when one is configured.
	if cfg.Templates.SeedPath != "" {
		g.Go(func() error {
			if err := template.WatchSeed(gCtx, registry, cfg.Templates.SeedPath, logger); err != nil {
				logger.Warn("seed watcher failed", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP serves the text tools over MCP stdio instead of HTTP.
func RunMCP(_ context.Context, opts ...Option) error {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	// Logs go to stderr: stdout is the MCP transport.
	logger := app.logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: cfg.App.LogLevel,
		}))
		slog.SetDefault(logger)
	}

	registry, err := buildRegistry(cfg, logger)
	if err != nil {
		return err
	}
	usage := usagelog.NewLog(cfg.Logs.Capacity)

	var ai *aiclient.Client
	if cfg.AI.Enabled() {
		ai = aiclient.New(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Timeout())
	}

	svc := processor.New(registry, usage, ai, nil)
	return mcpserver.New(svc, registry).ServeStdio()
}

func newLogger(cfg *Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// buildRegistry seeds a registry from the configured seed file, falling back
// to the built-in set when no file is configured. Individual invalid seed
// entries are logged and skipped; an unreadable seed file is fatal.
func buildRegistry(cfg *Config, logger *slog.Logger) (*template.Registry, error) {
	defaultID := cfg.Templates.DefaultID
	if defaultID == "" {
		defaultID = template.DefaultTemplateID
	}
	registry := template.NewRegistry(defaultID)

	records := template.BuiltinSeed()
	if cfg.Templates.SeedPath != "" {
		var err error
		records, err = template.LoadSeed(cfg.Templates.SeedPath)
		if err != nil {
			return nil, fmt.Errorf("load seed templates: %w", err)
		}
	}

	for _, verr := range registry.Upsert(records) {
		logger.Warn("seed template rejected", slog.String("error", verr.Error()))
	}
	logger.Info("templates seeded", slog.Int("count", len(registry.List())))
	return registry, nil
}
