package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/erazemk/shramba/internal/api"
	"github.com/erazemk/shramba/internal/uploads"
	"github.com/erazemk/shramba/internal/web"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP server (default)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Aliases: []string{"a"}, Usage: "listen address (SHRAMBA_ADDR)"},
			&cli.StringFlag{Name: "base-url", Usage: "public origin for share links (SHRAMBA_BASE_URL)"},
			&cli.BoolFlag{Name: "seed", Usage: "seed default data into an empty inventory (SHRAMBA_SEED)"},
		},
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	svc, cfg, cleanup, err := openService(ctx, cmd, cmd.Root().Writer)
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.Seed {
		seeded, err := svc.Seed(ctx)
		if err != nil {
			return fmt.Errorf("seeding default data: %w", err)
		}
		if seeded {
			slog.Info("default data seeded")
		}
	}

	files, err := uploads.New(cfg.UploadsDir)
	if err != nil {
		return fmt.Errorf("preparing uploads directory: %w", err)
	}

	// Set up routers.
	apiRouter := api.NewRouter(svc, api.Options{Uploads: files, BaseURL: cfg.BaseURL})
	webRouter, err := web.NewRouter(svc, cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("setting up web router: %w", err)
	}

	// Combine: API and upload routes take priority, web routes handle the rest.
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle(uploads.URLPrefix, apiRouter)
	mux.Handle("/", webRouter)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.LoggingMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.Addr, "store", cfg.Store)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
