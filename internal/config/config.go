// Package config loads settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mmynk/costsplits/pkg/logging"
)

const (
	DefaultDBPath    = "./data/pools.db"
	DefaultShareBase = "http://localhost:8080/"
	DefaultPoolFile  = "cost-splits.json"
)

type Config struct {
	DBPath      string     // SQLite database holding saved pools
	ShareBase   string     // Base URL share links point at
	MetricsFile string     // Prometheus textfile; empty disables export
	PoolFile    string     // Pool file commands work on by default
	LogLevel    slog.Level
}

// Load reads the configuration from the environment, after loading ENV_FILE
// or ./.env when present.
func Load() (Config, error) {
	cfg := Config{}

	if err := loadEnv(); err != nil {
		return cfg, err
	}

	level, err := logging.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return cfg, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	cfg = Config{
		DBPath:      getEnv("COSTSPLITS_DB_PATH", DefaultDBPath),
		ShareBase:   getEnv("COSTSPLITS_SHARE_BASE", DefaultShareBase),
		MetricsFile: getEnv("COSTSPLITS_METRICS_FILE", ""),
		PoolFile:    getEnv("COSTSPLITS_POOL_FILE", DefaultPoolFile),
		LogLevel:    level,
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("COSTSPLITS_DB_PATH is required")
	}

	if strings.TrimSpace(c.PoolFile) == "" {
		return fmt.Errorf("COSTSPLITS_POOL_FILE is required")
	}

	u, err := url.Parse(c.ShareBase)
	if err != nil {
		return fmt.Errorf("COSTSPLITS_SHARE_BASE must be a URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("COSTSPLITS_SHARE_BASE must be an http or https URL")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func loadEnv() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}

	return nil
}
