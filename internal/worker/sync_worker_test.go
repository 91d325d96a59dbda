package worker

import (
	"context"
	"path/filepath"
	"testing"

	"budgetbuddy/internal/amqp"
	"budgetbuddy/internal/core"
	exportmem "budgetbuddy/internal/export/memory"
	"budgetbuddy/internal/storage"
)

// HandleEntryEvent is passed to Client.ConsumeEntryEvents; the signatures
// must stay in sync.
var _ func(context.Context, *amqp.EntryEvent) error = (&SyncWorker{}).HandleEntryEvent

func newTestRepo(t *testing.T) *storage.Repository {
	t.Helper()
	repo, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestHandleEntryEvent_Sync(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	writer := exportmem.New()
	w := NewSyncWorker(repo, writer, writer)

	entry, err := repo.AppendEntry(ctx, core.LedgerEntry{
		Owner: "alice", Kind: core.Expense, Category: "Food",
		Amount: core.Money{Cents: 2500}, Date: core.NewDate(2024, 1, 10),
	})
	if err != nil {
		t.Fatalf("AppendEntry() error = %v", err)
	}

	if err := w.HandleEntryEvent(ctx, amqp.NewEntrySyncEvent("alice", entry.ID, 1)); err != nil {
		t.Fatalf("HandleEntryEvent() error = %v", err)
	}

	rows := writer.Rows()
	if len(rows) != 1 {
		t.Fatalf("exported %d rows, want 1", len(rows))
	}
	if rows[0].ID != entry.ID || rows[0].Amount.Cents != 2500 {
		t.Errorf("exported row = %+v", rows[0])
	}
}

func TestHandleEntryEvent_SyncVanishedEntry(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	writer := exportmem.New()
	w := NewSyncWorker(repo, writer, writer)

	// Entry never existed: the event is dropped, not requeued forever.
	if err := w.HandleEntryEvent(ctx, amqp.NewEntrySyncEvent("alice", 999, 1)); err != nil {
		t.Fatalf("HandleEntryEvent() error = %v", err)
	}
	if len(writer.Rows()) != 0 {
		t.Error("vanished entry should not be exported")
	}
}

func TestHandleEntryEvent_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	writer := exportmem.New()
	w := NewSyncWorker(repo, writer, writer)

	entry, _ := repo.AppendEntry(ctx, core.LedgerEntry{
		Owner: "alice", Kind: core.Income, Category: "Salary",
		Amount: core.Money{Cents: 500000}, Date: core.NewDate(2024, 1, 1),
	})
	if err := w.HandleEntryEvent(ctx, amqp.NewEntrySyncEvent("alice", entry.ID, 1)); err != nil {
		t.Fatalf("sync event error = %v", err)
	}

	if err := w.HandleEntryEvent(ctx, amqp.NewEntryDeleteEvent("alice", entry.ID)); err != nil {
		t.Fatalf("delete event error = %v", err)
	}
	if len(writer.Rows()) != 0 {
		t.Errorf("exported rows after delete = %d, want 0", len(writer.Rows()))
	}
}

func TestHandleEntryEvent_UnknownKind(t *testing.T) {
	w := NewSyncWorker(newTestRepo(t), exportmem.New(), nil)
	event := &amqp.EntryEvent{Kind: "rename", EntryID: 1, Owner: "alice"}
	if err := w.HandleEntryEvent(context.Background(), event); err != nil {
		t.Errorf("unknown kind should be dropped, got error = %v", err)
	}
}
