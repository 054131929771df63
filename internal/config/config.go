// Package config loads the imgkitd service configuration from the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables.
const (
	EnvAddr         = "IMGKIT_ADDR"
	EnvMaxBodyBytes = "IMGKIT_MAX_BODY_BYTES"
	EnvLogLevel     = "IMGKIT_LOG_LEVEL"
	EnvBackend      = "IMGKIT_SURFACE_BACKEND"
	EnvMaxSource    = "IMGKIT_MAX_SOURCE_BYTES"
)

// Defaults.
const (
	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = 32 << 20
)

// Config is the imgkitd configuration.
type Config struct {
	// Addr is the listen address.
	Addr string

	// MaxBodyBytes caps the size of an uploaded image.
	MaxBodyBytes int64

	// MaxSourceBytes caps the size of images fetched from URLs.
	// Zero means no limit.
	MaxSourceBytes int64

	// LogLevel is the minimum level written to stderr.
	LogLevel slog.Level

	// Backend forces a surface backend. Empty selects the best available.
	Backend string
}

// Load reads the given .env files (".env" when none are given) and
// builds a Config. Process environment variables take precedence over
// file values. Missing files are not an error.
func Load(files ...string) (*Config, error) {
	fileVals, err := godotenv.Read(files...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read env file: %w", err)
	}

	return FromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVals[key]
		return v, ok
	})
}

// FromLookup builds a Config from a key lookup function.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{
		Addr:         DefaultAddr,
		MaxBodyBytes: DefaultMaxBodyBytes,
		LogLevel:     slog.LevelInfo,
	}

	if v, ok := lookup(EnvAddr); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup(EnvMaxBodyBytes); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("config: %s must be a positive integer, got %q", EnvMaxBodyBytes, v)
		}
		cfg.MaxBodyBytes = n
	}
	if v, ok := lookup(EnvMaxSource); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("config: %s must be a non-negative integer, got %q", EnvMaxSource, v)
		}
		cfg.MaxSourceBytes = n
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("config: %s: %w", EnvLogLevel, err)
		}
	}
	if v, ok := lookup(EnvBackend); ok {
		cfg.Backend = v
	}
	return cfg, nil
}
