// Package services holds the application logic between the HTTP layer and
// the persistence ports.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"budgetbuddy/internal/amqp"
	"budgetbuddy/internal/core"
	"budgetbuddy/internal/store"
)

// LedgerService orchestrates ledger entry operations across the store and
// the AMQP export pipeline.
type LedgerService struct {
	store      store.Store
	amqpClient *amqp.Client
}

func NewLedgerService(st store.Store, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		store:      st,
		amqpClient: amqpClient,
	}
}

// CreateEntry validates and saves an entry, then publishes a sync event.
// The entry is committed locally first; a publish failure never fails the
// request.
func (s *LedgerService) CreateEntry(ctx context.Context, entry core.LedgerEntry) (core.LedgerEntry, error) {
	if err := entry.Validate(); err != nil {
		return core.LedgerEntry{}, err
	}

	saved, err := s.store.AppendEntry(ctx, entry)
	if err != nil {
		return core.LedgerEntry{}, fmt.Errorf("save entry: %w", err)
	}

	if err := s.publishSync(ctx, saved.Owner, saved.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync event",
			"entry_id", saved.ID, "error", err)
		// Don't fail the request - entry is saved locally
	}

	return saved, nil
}

// ListEntries returns the owner's entries, newest first.
func (s *LedgerService) ListEntries(ctx context.Context, owner string) ([]core.LedgerEntry, error) {
	return s.store.ListEntries(ctx, owner)
}

// DeleteEntry removes an entry and publishes a delete event. Deleting an
// entry materialized from a recurring rule does not touch the rule: its
// schedule keeps advancing.
func (s *LedgerService) DeleteEntry(ctx context.Context, owner string, id int64) error {
	if err := s.store.DeleteEntry(ctx, owner, id); err != nil {
		return err
	}

	if err := s.publishDelete(ctx, owner, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish delete event",
			"entry_id", id, "error", err)
		// Don't fail the request - entry is deleted locally
	}

	return nil
}

func (s *LedgerService) publishSync(ctx context.Context, owner string, id int64) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync event")
		return nil
	}
	return s.amqpClient.PublishEntrySync(ctx, owner, id, 1)
}

func (s *LedgerService) publishDelete(ctx context.Context, owner string, id int64) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping delete event")
		return nil
	}
	return s.amqpClient.PublishEntryDelete(ctx, owner, id)
}

// Close releases the AMQP connection if one is held.
func (s *LedgerService) Close() error {
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			return fmt.Errorf("close amqp: %w", err)
		}
	}
	return nil
}
