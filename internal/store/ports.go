// Package store defines the persistence ports used by the services layer.
// Implementations exist for an in-memory backend and SQLite; every method is
// scoped to an owner so one user can never read or mutate another's data.
package store

import (
	"context"
	"errors"

	"budgetbuddy/internal/core"
)

// ErrUnavailable indicates the backing store could not be reached. Callers
// treat it as retryable and must not interpret partial results.
var ErrUnavailable = errors.New("store unavailable")

// LedgerStore persists materialized transactions.
type LedgerStore interface {
	// AppendEntry stores a new entry and returns it with its assigned ID.
	AppendEntry(ctx context.Context, entry core.LedgerEntry) (core.LedgerEntry, error)
	// ListEntries returns all entries for the owner, newest date first.
	ListEntries(ctx context.Context, owner string) ([]core.LedgerEntry, error)
	// DeleteEntry removes one entry. Returns core.ErrNotFound if the owner
	// has no entry with that ID.
	DeleteEntry(ctx context.Context, owner string, id int64) error
}

// RuleStore persists recurring rules.
type RuleStore interface {
	// AppendRule stores a new rule and returns it with its assigned ID.
	// Returns core.ErrDuplicateRule when the owner already has a rule with
	// the same kind and category.
	AppendRule(ctx context.Context, rule core.RecurringRule) (core.RecurringRule, error)
	// ListRules returns all rules for the owner.
	ListRules(ctx context.Context, owner string) ([]core.RecurringRule, error)
	// ClaimNextOccurrence conditionally advances a rule's next occurrence
	// from the previously observed value to the new one. It reports whether
	// the claim succeeded; false means another processor got there first and
	// the caller must skip this occurrence, not retry it.
	ClaimNextOccurrence(ctx context.Context, owner string, id int64, from, to core.Date) (bool, error)
	// DeleteRule removes one rule. Entries already materialized from it are
	// untouched.
	DeleteRule(ctx context.Context, owner string, id int64) error
}

// GoalStore persists saving goals.
type GoalStore interface {
	// AppendGoal stores a new goal and returns it with its assigned ID.
	// Returns core.ErrDuplicateGoal when the owner already has a goal with
	// the same name.
	AppendGoal(ctx context.Context, goal core.Goal) (core.Goal, error)
	// ListGoals returns all goals for the owner.
	ListGoals(ctx context.Context, owner string) ([]core.Goal, error)
	// AdjustSaved applies a deposit (positive) or withdrawal (negative) to a
	// goal's saved balance and returns the updated goal. The balance never
	// goes below zero; an over-withdrawal fails with core.ErrInvalidAmount.
	AdjustSaved(ctx context.Context, owner string, id int64, deltaCents int64) (core.Goal, error)
	// DeleteGoal removes one goal. The money it held is released back into
	// the owner's net balance.
	DeleteGoal(ctx context.Context, owner string, id int64) error
	// CommittedTotal returns the sum in cents currently saved across all of
	// the owner's goals.
	CommittedTotal(ctx context.Context, owner string) (int64, error)
}

// Store aggregates all persistence ports behind one backend.
type Store interface {
	LedgerStore
	RuleStore
	GoalStore
}
