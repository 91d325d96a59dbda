package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/store"
)

// Reporter computes per-owner dashboard summaries.
type Reporter struct {
	store store.Store
}

func NewReporter(st store.Store) *Reporter {
	return &Reporter{store: st}
}

// Summarize aggregates the owner's ledger, rules, and goals into a Summary.
// The three reads are independent and run concurrently; any failure aborts
// the whole summary rather than returning partial figures.
func (r *Reporter) Summarize(ctx context.Context, owner string) (core.Summary, error) {
	var (
		entries   []core.LedgerEntry
		rules     []core.RecurringRule
		committed int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = r.store.ListEntries(gctx, owner)
		if err != nil {
			return fmt.Errorf("list entries: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rules, err = r.store.ListRules(gctx, owner)
		if err != nil {
			return fmt.Errorf("list rules: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		committed, err = r.store.CommittedTotal(gctx, owner)
		if err != nil {
			return fmt.Errorf("committed total: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return core.Summary{}, err
	}

	var summary core.Summary
	for _, e := range entries {
		switch e.Kind {
		case core.Income:
			summary.TotalIncome.Cents += e.Amount.Cents
		case core.Expense:
			summary.TotalExpense.Cents += e.Amount.Cents
		}
	}
	summary.NetBalance.Cents = summary.TotalIncome.Cents - summary.TotalExpense.Cents - committed

	for _, rule := range rules {
		eq, err := core.MonthlyEquivalent(rule.Amount, rule.Frequency)
		if err != nil {
			// A rule that fails validation here is corrupt stored data. It
			// is excluded from the projection, not fatal to the summary.
			slog.WarnContext(ctx, "Skipping rule in monthly projection",
				"rule_id", rule.ID, "error", err)
			continue
		}
		switch rule.Kind {
		case core.Income:
			summary.MonthlyRecurringIncome = summary.MonthlyRecurringIncome.Add(eq)
		case core.Expense:
			summary.MonthlyRecurringExpense = summary.MonthlyRecurringExpense.Add(eq)
		}
	}
	summary.NetMonthlyRecurring = summary.MonthlyRecurringIncome.Sub(summary.MonthlyRecurringExpense)

	return summary, nil
}
