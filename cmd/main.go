package main

import (
	"context"
	"net/http"
	"os"

	"github.com/platfix/platfix/internal/services"
	"github.com/platfix/platfix/internal/shared"
	"github.com/urfave/cli/v3"
)

const defaultConfigPath = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	configPath := os.Getenv("PLATFIX_CONFIG")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "path", configPath, "error", err)
		}
	}

	if err := config.ApplyEnv(os.Getenv); err != nil {
		logger.Fatal("invalid environment", "error", err)
	}

	logger = shared.NewConfiguredLogger(nil, shared.LogConfig{Level: config.Log.Level, Format: config.LogFormat()})

	httpClient := &http.Client{Timeout: config.API.Timeout.Duration}
	apiService := services.NewAPIService(config.API.URL, httpClient)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		API:        apiService,
		Service:    services.NewMovieService(apiService, config.API.APIKeyToken),
		HTTPClient: httpClient,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "platfix",
		Usage:    "Server-rendered web client for the Platfix movie API",
		Version:  "1.0.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
