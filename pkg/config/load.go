package config

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the environment, first loading a .env file
// when one is present. A missing .env file is not an error.
func Load(logger *slog.Logger) (*App, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, using system environment variables")
	} else {
		logger.Info("environment variables loaded from .env file")
	}

	var app App
	if err := envconfig.Process("", &app); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	return &app, nil
}
