package services

import (
	"context"
	"fmt"
	"log/slog"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/store"
)

// RuleService manages recurring rule definitions.
type RuleService struct {
	store store.Store
}

func NewRuleService(st store.Store) *RuleService {
	return &RuleService{store: st}
}

// CreateRule validates and saves a new rule. NextOccurrence always starts at
// StartDate regardless of what the caller supplied: the first occurrence is
// materialized by the processor, never pre-booked at creation.
func (s *RuleService) CreateRule(ctx context.Context, rule core.RecurringRule) (core.RecurringRule, error) {
	rule.NextOccurrence = rule.StartDate
	if err := rule.Validate(); err != nil {
		return core.RecurringRule{}, err
	}

	saved, err := s.store.AppendRule(ctx, rule)
	if err != nil {
		return core.RecurringRule{}, err
	}

	slog.InfoContext(ctx, "Created recurring rule",
		"rule_id", saved.ID,
		"owner", saved.Owner,
		"kind", saved.Kind,
		"category", saved.Category,
		"frequency", saved.Frequency,
		"start_date", saved.StartDate.String())

	return saved, nil
}

// ListRules returns the owner's rules.
func (s *RuleService) ListRules(ctx context.Context, owner string) ([]core.RecurringRule, error) {
	return s.store.ListRules(ctx, owner)
}

// DeleteRule removes a rule. Entries already materialized from it stay in
// the ledger; only future occurrences stop.
func (s *RuleService) DeleteRule(ctx context.Context, owner string, id int64) error {
	if err := s.store.DeleteRule(ctx, owner, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Deleted recurring rule", "rule_id", id, "owner", owner)
	return nil
}

// PreviewMonthlyEquivalent converts an amount at the given frequency to its
// approximate monthly rate, for the rule creation form.
func (s *RuleService) PreviewMonthlyEquivalent(amount core.Money, frequency core.Frequency) (core.Money, error) {
	eq, err := core.MonthlyEquivalent(amount, frequency)
	if err != nil {
		return core.Money{}, fmt.Errorf("monthly equivalent: %w", err)
	}
	return core.MoneyFromDecimal(eq), nil
}
