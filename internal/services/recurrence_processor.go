package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/store"
)

// RecurrenceProcessor materializes ledger entries from recurring rules.
//
// Processing is lazy: it runs when an owner's dashboard loads, not on a
// schedule. Each call advances every due rule by exactly one occurrence, so
// a rule that has been dormant for months catches up gradually over
// successive calls instead of flooding the ledger in one burst.
type RecurrenceProcessor struct {
	store  store.Store
	ledger *LedgerService
}

// ProcessResult summarizes one processing pass.
type ProcessResult struct {
	Materialized int
	Failed       int
}

func NewRecurrenceProcessor(st store.Store, ledger *LedgerService) *RecurrenceProcessor {
	return &RecurrenceProcessor{
		store:  st,
		ledger: ledger,
	}
}

// Process materializes at most one due occurrence per rule for the owner.
//
// For each rule whose next occurrence is today or earlier, it first claims
// the occurrence by conditionally advancing next_occurrence one frequency
// step, then writes the ledger entry dated today. The claim is the
// concurrency gate: with several concurrent calls for the same owner,
// exactly one wins each occurrence and the losers skip it. A rule that
// fails is logged and skipped; the rest of the rules still run.
func (p *RecurrenceProcessor) Process(ctx context.Context, owner string, today core.Date) (ProcessResult, error) {
	if p.store == nil || p.ledger == nil {
		return ProcessResult{}, fmt.Errorf("processor not properly initialized")
	}

	rules, err := p.store.ListRules(ctx, owner)
	if err != nil {
		return ProcessResult{}, fmt.Errorf("list rules: %w", err)
	}

	slog.InfoContext(ctx, "Processing recurring rules",
		"owner", owner,
		"total_rules", len(rules),
		"processing_date", today.String())

	var result ProcessResult
	for _, rule := range rules {
		if rule.NextOccurrence.After(today.Time) {
			continue
		}

		next, err := core.Advance(rule.NextOccurrence, rule.Frequency)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to advance rule schedule",
				"rule_id", rule.ID,
				"frequency", rule.Frequency,
				"error", err)
			result.Failed++
			continue
		}

		claimed, err := p.store.ClaimNextOccurrence(ctx, owner, rule.ID, rule.NextOccurrence, next)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				// Rule deleted between list and claim.
				continue
			}
			slog.ErrorContext(ctx, "Failed to claim occurrence",
				"rule_id", rule.ID,
				"error", err)
			result.Failed++
			continue
		}
		if !claimed {
			// Another concurrent call got this occurrence.
			continue
		}

		entry := core.LedgerEntry{
			Owner:        owner,
			Kind:         rule.Kind,
			Category:     rule.Category,
			Amount:       rule.Amount,
			Date:         today,
			Note:         recurringNote(rule),
			SourceRuleID: rule.ID,
		}
		if _, err := p.ledger.CreateEntry(ctx, entry); err != nil {
			// The occurrence is already claimed: this one is lost rather
			// than double-booked on retry.
			slog.ErrorContext(ctx, "Claimed occurrence but failed to materialize entry",
				"rule_id", rule.ID,
				"due_date", rule.NextOccurrence.String(),
				"error", err)
			result.Failed++
			continue
		}

		result.Materialized++
		slog.InfoContext(ctx, "Materialized entry from recurring rule",
			"rule_id", rule.ID,
			"category", rule.Category,
			"amount_cents", rule.Amount.Cents,
			"frequency", rule.Frequency,
			"next_date", next.String())
	}

	slog.InfoContext(ctx, "Recurring rule processing complete",
		"owner", owner,
		"materialized", result.Materialized,
		"failed", result.Failed,
		"total_checked", len(rules))

	return result, nil
}

// recurringNote builds the display note for a materialized entry. The prefix
// is cosmetic; provenance lives in SourceRuleID.
func recurringNote(rule core.RecurringRule) string {
	label := rule.Description
	if label == "" {
		label = rule.Category
	}
	return "[Recurring] " + label
}
