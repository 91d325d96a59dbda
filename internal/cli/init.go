// Package cli provides common initialization shared by cmd/budgetbuddy and
// cmd/export-worker.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"budgetbuddy/internal/amqp"
	"budgetbuddy/internal/config"
	applog "budgetbuddy/internal/log"
	"budgetbuddy/internal/storage"
)

// SetupLogger initializes structured logging and sets the default logger.
func SetupLogger() *applog.Logger {
	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitSQLite opens the SQLite repository, running migrations.
// Returns the repository or exits the process on failure.
func InitSQLite(logger *applog.Logger, dbPath string) *storage.Repository {
	repo, err := storage.Open(dbPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return repo
}

// InitAMQP connects to the message broker. A connection failure is not
// fatal for the API server: entries still commit locally, only the export
// pipeline goes dark, so the caller gets nil and a logged warning.
func InitAMQP(logger *applog.Logger, cfg *config.Config) *amqp.Client {
	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Warn("AMQP unavailable, entry export disabled",
			"error", err, "url", cfg.AMQPURL)
		return nil
	}
	logger.Info("AMQP client initialized",
		"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	return client
}
