package services

import (
	"context"
	"errors"
	"testing"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/store/memory"
)

func TestCreateRule(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	svc := NewRuleService(st)

	rule := core.RecurringRule{
		Owner: "alice", Kind: core.Expense, Category: "Rent",
		Amount: core.Money{Cents: 120000}, Frequency: core.Monthly,
		StartDate: core.NewDate(2024, 1, 1),
		// A caller-supplied next occurrence must be ignored.
		NextOccurrence: core.NewDate(2030, 1, 1),
	}
	saved, err := svc.CreateRule(ctx, rule)
	if err != nil {
		t.Fatalf("CreateRule() error = %v", err)
	}
	if !saved.NextOccurrence.Equal(saved.StartDate.Time) {
		t.Errorf("NextOccurrence = %s, want start date %s", saved.NextOccurrence, saved.StartDate)
	}

	if _, err := svc.CreateRule(ctx, rule); !errors.Is(err, core.ErrDuplicateRule) {
		t.Errorf("duplicate rule: error = %v, want ErrDuplicateRule", err)
	}

	rule.Category = ""
	if _, err := svc.CreateRule(ctx, rule); !errors.Is(err, core.ErrEmptyCategory) {
		t.Errorf("empty category: error = %v, want ErrEmptyCategory", err)
	}
}

func TestPreviewMonthlyEquivalent(t *testing.T) {
	svc := NewRuleService(memory.New())

	got, err := svc.PreviewMonthlyEquivalent(core.Money{Cents: 140000}, core.Weekly)
	if err != nil {
		t.Fatalf("PreviewMonthlyEquivalent() error = %v", err)
	}
	if got.Cents != 606200 {
		t.Errorf("weekly 1400.00 = %d cents/month, want 606200", got.Cents)
	}

	if _, err := svc.PreviewMonthlyEquivalent(core.Money{}, core.Weekly); err == nil {
		t.Error("zero amount: expected error")
	}
}

func TestLedgerServiceValidation(t *testing.T) {
	svc := NewLedgerService(memory.New(), nil)

	_, err := svc.CreateEntry(context.Background(), core.LedgerEntry{
		Owner: "alice", Kind: core.Expense, Category: "Food",
		Amount: core.Money{Cents: -5}, Date: core.NewDate(2024, 1, 1),
	})
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("negative amount: error = %v, want ErrInvalidAmount", err)
	}
}

func TestDeleteEntry_NotFound(t *testing.T) {
	svc := NewLedgerService(memory.New(), nil)
	if err := svc.DeleteEntry(context.Background(), "alice", 42); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("DeleteEntry() = %v, want ErrNotFound", err)
	}
}
