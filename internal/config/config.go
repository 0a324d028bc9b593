// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config holds the settings shared by all commands.
type Config struct {
	DBPath     string
	Addr       string
	LogPath    string
	UploadsDir string
	BaseURL    string
	Store      string
	Seed       bool
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DBPath:     "shramba.sqlite3",
		Addr:       ":8080",
		UploadsDir: "uploads",
		Store:      StoreSQLite,
		Seed:       true,
	}
}

// Load reads envFile (if it exists) into the process environment without
// overriding variables that are already set, then builds a Config from
// SHRAMBA_* variables on top of the defaults.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from a variable lookup function.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	c := Default()

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("SHRAMBA_DB", &c.DBPath)
	str("SHRAMBA_ADDR", &c.Addr)
	str("SHRAMBA_LOG", &c.LogPath)
	str("SHRAMBA_UPLOADS", &c.UploadsDir)
	str("SHRAMBA_BASE_URL", &c.BaseURL)
	str("SHRAMBA_STORE", &c.Store)

	if v, ok := lookup("SHRAMBA_SEED"); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("parsing SHRAMBA_SEED: %w", err)
		}
		c.Seed = b
	}

	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	switch c.Store {
	case StoreSQLite:
		if c.DBPath == "" {
			return errors.New("database path is required for the sqlite store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store %q (want %s or %s)", c.Store, StoreSQLite, StoreMemory)
	}
	if c.UploadsDir == "" {
		return errors.New("uploads directory is required")
	}
	return nil
}
