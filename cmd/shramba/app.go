package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/erazemk/shramba/internal/config"
	"github.com/erazemk/shramba/internal/db"
	"github.com/erazemk/shramba/internal/service"
	"github.com/erazemk/shramba/internal/store"
	"github.com/erazemk/shramba/internal/store/memory"
	"github.com/erazemk/shramba/internal/store/sqlite"
)

// loadConfig reads the environment and applies command-line overrides.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.String("env"))
	if err != nil {
		return config.Config{}, err
	}

	override := func(flag string, dst *string) {
		if cmd.IsSet(flag) {
			*dst = cmd.String(flag)
		}
	}
	override("db", &cfg.DBPath)
	override("store", &cfg.Store)
	override("uploads", &cfg.UploadsDir)
	override("log", &cfg.LogPath)
	override("addr", &cfg.Addr)
	override("base-url", &cfg.BaseURL)
	if cmd.IsSet("seed") {
		cfg.Seed = cmd.Bool("seed")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openStore opens the configured backend. The returned close function is
// never nil.
func openStore(ctx context.Context, cfg config.Config) (store.Store, func(), error) {
	if cfg.Store == config.StoreMemory {
		slog.Info("using in-memory store, data will not persist")
		return memory.New(), func() {}, nil
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Migrate(ctx, database); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("migrating database: %w", err)
	}

	slog.Info("database ready", "path", cfg.DBPath)
	return sqlite.New(database), func() { database.Close() }, nil
}

// openService loads the config, installs the logger and opens the store.
// INFO and WARN records go to logOut.
func openService(ctx context.Context, cmd *cli.Command, logOut io.Writer) (*service.Service, config.Config, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, config.Config{}, nil, err
	}

	closeLog, err := setupLogger(cfg.LogPath, logOut, cmd.Root().ErrWriter)
	if err != nil {
		return nil, config.Config{}, nil, err
	}

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		closeLog()
		return nil, config.Config{}, nil, err
	}

	cleanup := func() {
		closeStore()
		closeLog()
	}
	return service.New(st), cfg, cleanup, nil
}
