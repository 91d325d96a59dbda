// Package storage implements the persistence ports on SQLite. Schema is
// managed by embedded migrations; all queries are owner-scoped.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/store"
)

// Repository implements store.Store on a SQLite database.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at dbPath and runs pending
// migrations.
func Open(dbPath string) (*Repository, error) {
	if err := RunMigrations(dbPath); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// modernc.org/sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &Repository{db: db}, nil
}

// NewRepository wraps an existing database handle. The caller is responsible
// for having run migrations.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// storeErr maps driver failures to the retryable store error. Constraint
// violations and not-found conditions are handled before this is reached.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, store.ErrUnavailable, err)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (r *Repository) AppendEntry(ctx context.Context, entry core.LedgerEntry) (core.LedgerEntry, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO ledger_entries (owner, kind, category, amount_cents, entry_date, note, source_rule_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.Owner, string(entry.Kind), entry.Category, entry.Amount.Cents,
		entry.Date.String(), entry.Note, entry.SourceRuleID,
	)
	if err != nil {
		return core.LedgerEntry{}, storeErr("append entry", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.LedgerEntry{}, storeErr("append entry", err)
	}
	entry.ID = id
	return entry, nil
}

func (r *Repository) ListEntries(ctx context.Context, owner string) ([]core.LedgerEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner, kind, category, amount_cents, entry_date, note, source_rule_id
		FROM ledger_entries
		WHERE owner = ?
		ORDER BY entry_date DESC, id DESC`,
		owner,
	)
	if err != nil {
		return nil, storeErr("list entries", err)
	}
	defer rows.Close()

	var entries []core.LedgerEntry
	for rows.Next() {
		var (
			e       core.LedgerEntry
			kind    string
			rawDate string
		)
		if err := rows.Scan(&e.ID, &e.Owner, &kind, &e.Category, &e.Amount.Cents, &rawDate, &e.Note, &e.SourceRuleID); err != nil {
			return nil, storeErr("scan entry", err)
		}
		e.Kind = core.Kind(kind)
		if e.Date, err = core.ParseDate(rawDate); err != nil {
			return nil, fmt.Errorf("entry %d: malformed date %q", e.ID, rawDate)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list entries", err)
	}
	return entries, nil
}

// GetEntry fetches a single entry by ID, owner-scoped.
func (r *Repository) GetEntry(ctx context.Context, owner string, id int64) (core.LedgerEntry, error) {
	var (
		e       core.LedgerEntry
		kind    string
		rawDate string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, owner, kind, category, amount_cents, entry_date, note, source_rule_id
		FROM ledger_entries
		WHERE owner = ? AND id = ?`,
		owner, id,
	).Scan(&e.ID, &e.Owner, &kind, &e.Category, &e.Amount.Cents, &rawDate, &e.Note, &e.SourceRuleID)
	if errors.Is(err, sql.ErrNoRows) {
		return core.LedgerEntry{}, core.ErrNotFound
	}
	if err != nil {
		return core.LedgerEntry{}, storeErr("get entry", err)
	}
	e.Kind = core.Kind(kind)
	if e.Date, err = core.ParseDate(rawDate); err != nil {
		return core.LedgerEntry{}, fmt.Errorf("entry %d: malformed date %q", e.ID, rawDate)
	}
	return e, nil
}

func (r *Repository) DeleteEntry(ctx context.Context, owner string, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM ledger_entries WHERE owner = ? AND id = ?`, owner, id)
	if err != nil {
		return storeErr("delete entry", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("delete entry", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *Repository) AppendRule(ctx context.Context, rule core.RecurringRule) (core.RecurringRule, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO recurring_rules (owner, kind, category, amount_cents, frequency, start_date, next_occurrence, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rule.Owner, string(rule.Kind), rule.Category, rule.Amount.Cents,
		string(rule.Frequency), rule.StartDate.String(), rule.NextOccurrence.String(), rule.Description,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return core.RecurringRule{}, core.ErrDuplicateRule
		}
		return core.RecurringRule{}, storeErr("append rule", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.RecurringRule{}, storeErr("append rule", err)
	}
	rule.ID = id
	return rule, nil
}

func (r *Repository) ListRules(ctx context.Context, owner string) ([]core.RecurringRule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner, kind, category, amount_cents, frequency, start_date, next_occurrence, description
		FROM recurring_rules
		WHERE owner = ?
		ORDER BY id`,
		owner,
	)
	if err != nil {
		return nil, storeErr("list rules", err)
	}
	defer rows.Close()

	var rules []core.RecurringRule
	for rows.Next() {
		var (
			rr              core.RecurringRule
			kind, frequency string
			startRaw        string
			nextRaw         string
		)
		if err := rows.Scan(&rr.ID, &rr.Owner, &kind, &rr.Category, &rr.Amount.Cents, &frequency, &startRaw, &nextRaw, &rr.Description); err != nil {
			return nil, storeErr("scan rule", err)
		}
		rr.Kind = core.Kind(kind)
		rr.Frequency = core.Frequency(frequency)
		if rr.StartDate, err = core.ParseDate(startRaw); err != nil {
			return nil, fmt.Errorf("rule %d: malformed start date %q", rr.ID, startRaw)
		}
		if rr.NextOccurrence, err = core.ParseDate(nextRaw); err != nil {
			return nil, fmt.Errorf("rule %d: malformed next occurrence %q", rr.ID, nextRaw)
		}
		rules = append(rules, rr)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list rules", err)
	}
	return rules, nil
}

// ClaimNextOccurrence is the concurrency gate for the recurrence processor:
// the UPDATE only matches while next_occurrence still holds the value the
// caller observed, so of N concurrent processors exactly one claims each
// occurrence.
func (r *Repository) ClaimNextOccurrence(ctx context.Context, owner string, id int64, from, to core.Date) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE recurring_rules
		SET next_occurrence = ?
		WHERE owner = ? AND id = ? AND next_occurrence = ?`,
		to.String(), owner, id, from.String(),
	)
	if err != nil {
		return false, storeErr("claim next occurrence", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, storeErr("claim next occurrence", err)
	}
	if n > 0 {
		return true, nil
	}

	// Distinguish a lost race from a missing rule.
	var exists int
	err = r.db.QueryRowContext(ctx,
		`SELECT 1 FROM recurring_rules WHERE owner = ? AND id = ?`, owner, id,
	).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, core.ErrNotFound
	}
	if err != nil {
		return false, storeErr("claim next occurrence", err)
	}
	return false, nil
}

func (r *Repository) DeleteRule(ctx context.Context, owner string, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM recurring_rules WHERE owner = ? AND id = ?`, owner, id)
	if err != nil {
		return storeErr("delete rule", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("delete rule", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *Repository) AppendGoal(ctx context.Context, goal core.Goal) (core.Goal, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (owner, name, target_cents, saved_cents, description, created_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		goal.Owner, goal.Name, goal.Target.Cents, goal.Saved, goal.Description, goal.CreatedDate.String(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return core.Goal{}, core.ErrDuplicateGoal
		}
		return core.Goal{}, storeErr("append goal", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Goal{}, storeErr("append goal", err)
	}
	goal.ID = id
	return goal, nil
}

func (r *Repository) ListGoals(ctx context.Context, owner string) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner, name, target_cents, saved_cents, description, created_date
		FROM goals
		WHERE owner = ?
		ORDER BY id`,
		owner,
	)
	if err != nil {
		return nil, storeErr("list goals", err)
	}
	defer rows.Close()

	var goals []core.Goal
	for rows.Next() {
		var (
			g       core.Goal
			rawDate string
		)
		if err := rows.Scan(&g.ID, &g.Owner, &g.Name, &g.Target.Cents, &g.Saved, &g.Description, &rawDate); err != nil {
			return nil, storeErr("scan goal", err)
		}
		if g.CreatedDate, err = core.ParseDate(rawDate); err != nil {
			return nil, fmt.Errorf("goal %d: malformed created date %q", g.ID, rawDate)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list goals", err)
	}
	return goals, nil
}

func (r *Repository) AdjustSaved(ctx context.Context, owner string, id int64, deltaCents int64) (core.Goal, error) {
	// The saved_cents >= 0 check constraint rejects over-withdrawals at the
	// database, so the guard holds without a transaction.
	res, err := r.db.ExecContext(ctx, `
		UPDATE goals
		SET saved_cents = saved_cents + ?
		WHERE owner = ? AND id = ?`,
		deltaCents, owner, id,
	)
	if err != nil {
		if strings.Contains(err.Error(), "CHECK constraint failed") {
			return core.Goal{}, core.ErrInvalidAmount
		}
		return core.Goal{}, storeErr("adjust goal", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.Goal{}, storeErr("adjust goal", err)
	}
	if n == 0 {
		return core.Goal{}, core.ErrNotFound
	}

	var (
		g       core.Goal
		rawDate string
	)
	err = r.db.QueryRowContext(ctx, `
		SELECT id, owner, name, target_cents, saved_cents, description, created_date
		FROM goals
		WHERE owner = ? AND id = ?`,
		owner, id,
	).Scan(&g.ID, &g.Owner, &g.Name, &g.Target.Cents, &g.Saved, &g.Description, &rawDate)
	if err != nil {
		return core.Goal{}, storeErr("adjust goal", err)
	}
	if g.CreatedDate, err = core.ParseDate(rawDate); err != nil {
		return core.Goal{}, fmt.Errorf("goal %d: malformed created date %q", g.ID, rawDate)
	}
	return g, nil
}

func (r *Repository) DeleteGoal(ctx context.Context, owner string, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM goals WHERE owner = ? AND id = ?`, owner, id)
	if err != nil {
		return storeErr("delete goal", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("delete goal", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *Repository) CommittedTotal(ctx context.Context, owner string) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(saved_cents), 0) FROM goals WHERE owner = ?`, owner,
	).Scan(&total)
	if err != nil {
		return 0, storeErr("committed total", err)
	}
	return total, nil
}
