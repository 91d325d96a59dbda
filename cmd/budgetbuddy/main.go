package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"budgetbuddy/internal/backend"
	"budgetbuddy/internal/cli"
	apphttp "budgetbuddy/internal/http"
	"budgetbuddy/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	result, err := backend.NewFactory(logger.Logger).Create(cfg)
	if err != nil {
		logger.Error("Failed to initialize data backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.Error("Backend cleanup failed", "error", err)
		}
	}()

	amqpClient := cli.InitAMQP(logger, cfg)

	ledger := services.NewLedgerService(result.Store, amqpClient)
	defer func() {
		if err := ledger.Close(); err != nil {
			logger.Error("Failed to close ledger service", "error", err)
		}
	}()

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Ledger:    ledger,
		Rules:     services.NewRuleService(result.Store),
		Goals:     services.NewGoalService(result.Store),
		Processor: services.NewRecurrenceProcessor(result.Store, ledger),
		Reporter:  services.NewReporter(result.Store),
	})

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting budgetbuddy server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
