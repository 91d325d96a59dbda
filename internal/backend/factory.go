package backend

import (
	"fmt"
	"log/slog"

	"budgetbuddy/internal/config"
	"budgetbuddy/internal/store/memory"
	"budgetbuddy/internal/storage"
)

// Factory creates the configured persistence backend.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// Create builds the store named in cfg.DataBackend.
func (f *Factory) Create(cfg *config.Config) (*Result, error) {
	backendType := Type(cfg.DataBackend)
	if !backendType.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	switch backendType {
	case SQLiteBackend:
		repo, err := storage.Open(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: repo, Cleanup: repo.Close}, nil

	case MemoryBackend:
		f.logger.Info("Initialized memory backend")
		return &Result{Store: memory.New(), Cleanup: func() error { return nil }}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", backendType)
	}
}
