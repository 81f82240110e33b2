// Package config loads runtime settings for the API server and the CLI.
// Settings come from defaults, an optional .env file and environment
// variable overrides, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings shared by the API server and the CLI.
type Config struct {
	// Port is the HTTP listen port for the API server.
	Port string
	// Debug lowers the log level from info to debug.
	Debug bool
	// MaxSessions caps the number of concurrently held coaching sessions.
	MaxSessions int
	// SampleSeed seeds sample-ledger generation. Zero means time-based.
	SampleSeed int64
}

// Load builds the configuration from defaults, then a .env file if one is
// present, then environment variables.
func Load() (*Config, error) {
	// Try to load .env from the current directory (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        "8080",
		Debug:       false,
		MaxSessions: 100,
		SampleSeed:  0,
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFromEnv() error {
	if val := os.Getenv("PORT"); val != "" {
		c.Port = val
	}

	if val := os.Getenv("DEBUG"); val != "" {
		debug, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid DEBUG value %q: %w", val, err)
		}
		c.Debug = debug
	}

	if val := os.Getenv("COACH_MAX_SESSIONS"); val != "" {
		max, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid COACH_MAX_SESSIONS value %q: %w", val, err)
		}
		c.MaxSessions = max
	}

	if val := os.Getenv("COACH_SEED"); val != "" {
		seed, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid COACH_SEED value %q: %w", val, err)
		}
		c.SampleSeed = seed
	}

	return nil
}
