// Package backend selects and wires the persistence backend at startup.
package backend

import (
	"budgetbuddy/internal/store"
)

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// Result holds the wired backend and its teardown.
type Result struct {
	Store   store.Store
	Cleanup CleanupFunc
}

// Type selects which persistence backend to use.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
