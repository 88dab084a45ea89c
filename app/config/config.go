// Package config reads the storefront settings from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPAddr     string        `envconfig:"HTTP_ADDR"             default:":8080"`
	LogLevel     string        `envconfig:"LOG_LEVEL"             default:"info"`
	StoreDriver  string        `envconfig:"STORE_DRIVER"          default:"sqlite"`
	SQLitePath   string        `envconfig:"STORE_SQLITE_PATH"     default:"storefront.db"`
	DatabaseURL  string        `envconfig:"DATABASE_URL"`
	CatalogURL   string        `envconfig:"CATALOG_BASE_URL"`
	FetchTimeout time.Duration `envconfig:"CATALOG_FETCH_TIMEOUT" default:"5s"`
	StaticDir    string        `envconfig:"STATIC_DIR"`
}

// Load reads an optional .env file and then the process environment.
func Load(logger *logrus.Logger) (*Config, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		logger.Warnf("Error loading .env file (but continuing): %v", err)
	} else if err == nil {
		logger.Debug("Loaded configuration from .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration from environment variables: %w", err)
	}

	switch cfg.StoreDriver {
	case "sqlite", "memory":
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when STORE_DRIVER is postgres")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	logger.WithFields(logrus.Fields{
		"store":   cfg.StoreDriver,
		"catalog": cfg.CatalogURL,
	}).Debug("Configuration loaded")
	return &cfg, nil
}

// NewLogger returns a JSON logger at the given level, writing to stderr.
// An unknown level falls back to info.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
