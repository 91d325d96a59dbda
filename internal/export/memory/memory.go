// Package memory is an in-process EntryWriter for development and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"budgetbuddy/internal/core"
	ports "budgetbuddy/internal/export"
)

type Writer struct {
	mu   sync.Mutex
	rows []core.LedgerEntry
}

var (
	_ ports.EntryWriter  = (*Writer)(nil)
	_ ports.EntryRemover = (*Writer)(nil)
)

func New() *Writer {
	return &Writer{}
}

func (w *Writer) Append(ctx context.Context, e core.LedgerEntry) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rows = append(w.rows, e)
	return fmt.Sprintf("row-%d", len(w.rows)), nil
}

func (w *Writer) Remove(ctx context.Context, e core.LedgerEntry) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, row := range w.rows {
		if row.ID == e.ID {
			w.rows = append(w.rows[:i], w.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

// Rows returns a copy of the exported rows, in append order.
func (w *Writer) Rows() []core.LedgerEntry {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]core.LedgerEntry, len(w.rows))
	copy(out, w.rows)
	return out
}
