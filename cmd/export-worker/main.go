package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"budgetbuddy/internal/amqp"
	"budgetbuddy/internal/cli"
	"budgetbuddy/internal/export"
	"budgetbuddy/internal/export/google"
	"budgetbuddy/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting export-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	// The worker reads entries straight from the database, so it always
	// needs the SQLite backend regardless of what the API server uses.
	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	if cfg.GoogleSpreadsheetID == "" {
		logger.Info("Google Sheets disabled - no GOOGLE_SPREADSHEET_ID provided, nothing to export")
		return
	}

	sheetsClient, err := google.NewFromEnv(context.Background())
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}
	var (
		writer  export.EntryWriter  = sheetsClient
		remover export.EntryRemover = sheetsClient
	)
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	syncWorker := worker.NewSyncWorker(repo, writer, remover)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		for {
			err := amqpClient.ConsumeEntryEvents(ctx, syncWorker.HandleEntryEvent)
			if err == nil || errors.Is(err, context.Canceled) {
				cancel()
				return
			}
			logger.Error("Event consumption failed, retrying",
				"error", err, "retry_in", cfg.ConsumeRetryInterval.String())

			select {
			case <-ctx.Done():
				return
			case <-time.After(cfg.ConsumeRetryInterval):
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	cancel()
	logger.Info("Worker stopped")
}
