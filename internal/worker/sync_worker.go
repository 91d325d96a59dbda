// Package worker mirrors ledger entries from SQLite to the export target as
// AMQP events arrive.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"budgetbuddy/internal/amqp"
	"budgetbuddy/internal/core"
	"budgetbuddy/internal/export"
	"budgetbuddy/internal/storage"
)

// SyncWorker consumes entry events and applies them to the export target.
type SyncWorker struct {
	storage *storage.Repository
	writer  export.EntryWriter
	remover export.EntryRemover
}

func NewSyncWorker(st *storage.Repository, writer export.EntryWriter, remover export.EntryRemover) *SyncWorker {
	return &SyncWorker{
		storage: st,
		writer:  writer,
		remover: remover,
	}
}

// HandleEntryEvent processes one event from the queue. Errors are returned
// so the consumer nacks and requeues the delivery.
func (w *SyncWorker) HandleEntryEvent(ctx context.Context, event *amqp.EntryEvent) error {
	switch event.Kind {
	case amqp.EventSync:
		return w.handleSync(ctx, event)
	case amqp.EventDelete:
		return w.handleDelete(ctx, event)
	default:
		// Unknown kinds are dropped, not requeued: a newer producer may be
		// emitting events this worker version does not understand.
		slog.WarnContext(ctx, "Dropping event of unknown kind", "kind", event.Kind)
		return nil
	}
}

func (w *SyncWorker) handleSync(ctx context.Context, event *amqp.EntryEvent) error {
	entry, err := w.storage.GetEntry(ctx, event.Owner, event.EntryID)
	if errors.Is(err, core.ErrNotFound) {
		// Entry deleted before the sync ran; the delete event will follow.
		slog.WarnContext(ctx, "Entry vanished before sync", "entry_id", event.EntryID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get entry from storage: %w", err)
	}

	ref, err := w.writer.Append(ctx, entry)
	if err != nil {
		return fmt.Errorf("append to export target: %w", err)
	}

	slog.InfoContext(ctx, "Exported entry",
		"entry_id", entry.ID,
		"owner", entry.Owner,
		"amount_cents", entry.Amount.Cents,
		"sheets_ref", ref)
	return nil
}

func (w *SyncWorker) handleDelete(ctx context.Context, event *amqp.EntryEvent) error {
	if w.remover == nil {
		slog.WarnContext(ctx, "No entry remover configured, skipping export deletion",
			"entry_id", event.EntryID)
		return nil
	}

	// The entry is already gone from the database; Remove locates the
	// exported row by ID marker.
	if err := w.remover.Remove(ctx, core.LedgerEntry{ID: event.EntryID, Owner: event.Owner}); err != nil {
		return fmt.Errorf("remove from export target: %w", err)
	}

	slog.InfoContext(ctx, "Removed exported entry", "entry_id", event.EntryID)
	return nil
}
