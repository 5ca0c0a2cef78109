// Package common provides shared utilities for Sift
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Sift
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Clients     ClientsConfig   `toml:"clients"`
	Screener    ScreenerConfig  `toml:"screener"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds paths for the two storage areas: the snapshot cache
// (file-based JSON) and the screen-run history (BadgerHold).
type StorageConfig struct {
	SnapshotPath string `toml:"snapshot_path"`
	RunsPath     string `toml:"runs_path"`
	SnapshotTTL  string `toml:"snapshot_ttl"` // duration string, default "12h"
}

// GetSnapshotTTL parses and returns the snapshot cache expiry.
func (c *StorageConfig) GetSnapshotTTL() time.Duration {
	d, err := time.ParseDuration(c.SnapshotTTL)
	if err != nil {
		return FreshnessSnapshot
	}
	return d
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Fundata FundataConfig `toml:"fundata"`
}

// FundataConfig holds the upstream fundamentals provider configuration
type FundataConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *FundataConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// ScreenerConfig holds bulk screener defaults
type ScreenerConfig struct {
	UniversePath string `toml:"universe_path"`
	Concurrency  int    `toml:"concurrency"`
	Limit        int    `toml:"limit"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			SnapshotPath: "data/snapshots",
			RunsPath:     "data/runs",
			SnapshotTTL:  "12h",
		},
		Clients: ClientsConfig{
			Fundata: FundataConfig{
				BaseURL:   "https://api.fundata.dev/v1",
				RateLimit: 10,
				Timeout:   "30s",
			},
		},
		Screener: ScreenerConfig{
			UniversePath: "data/universe.csv",
			Concurrency:  4,
			Limit:        50,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SIFT_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("SIFT_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("SIFT_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("SIFT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("SIFT_DATA_PATH"); path != "" {
		config.Storage.SnapshotPath = filepath.Join(path, "snapshots")
		config.Storage.RunsPath = filepath.Join(path, "runs")
	}

	if ttl := os.Getenv("SIFT_SNAPSHOT_TTL"); ttl != "" {
		config.Storage.SnapshotTTL = ttl
	}

	if universe := os.Getenv("SIFT_UNIVERSE"); universe != "" {
		config.Screener.UniversePath = universe
	}

	for _, name := range []string{"FUNDATA_API_KEY", "SIFT_FUNDATA_API_KEY"} {
		if key := os.Getenv(name); key != "" {
			config.Clients.Fundata.APIKey = key
			break
		}
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}
