// Package export defines the outbound ports for mirroring the ledger to an
// external spreadsheet.
package export

import (
	"context"

	"budgetbuddy/internal/core"
)

// Ports for outbound adapters.
type (
	EntryWriter interface {
		Append(ctx context.Context, e core.LedgerEntry) (rowRef string, err error)
	}

	EntryRemover interface {
		// Remove erases the exported row for the entry, located by its ID
		// marker. Removing an entry that was never exported is a no-op.
		Remove(ctx context.Context, e core.LedgerEntry) error
	}
)
