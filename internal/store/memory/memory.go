// Package memory provides an in-memory Store implementation. It is the
// default backend for local development and the reference double in tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"budgetbuddy/internal/core"
)

// Store keeps all data in process memory, guarded by a single mutex. Safe
// for concurrent use; contents are lost on restart.
type Store struct {
	mu      sync.Mutex
	nextID  int64
	entries map[string][]core.LedgerEntry
	rules   map[string][]core.RecurringRule
	goals   map[string][]core.Goal
}

func New() *Store {
	return &Store{
		entries: make(map[string][]core.LedgerEntry),
		rules:   make(map[string][]core.RecurringRule),
		goals:   make(map[string][]core.Goal),
	}
}

func (s *Store) allocID() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) AppendEntry(ctx context.Context, entry core.LedgerEntry) (core.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.allocID()
	s.entries[entry.Owner] = append(s.entries[entry.Owner], entry)
	return entry, nil
}

func (s *Store) ListEntries(ctx context.Context, owner string) ([]core.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.LedgerEntry, len(s.entries[owner]))
	copy(out, s.entries[owner])
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.After(out[j].Date.Time)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) DeleteEntry(ctx context.Context, owner string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.entries[owner]
	for i, e := range list {
		if e.ID == id {
			s.entries[owner] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) AppendRule(ctx context.Context, rule core.RecurringRule) (core.RecurringRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.rules[rule.Owner] {
		if r.Kind == rule.Kind && strings.EqualFold(r.Category, rule.Category) {
			return core.RecurringRule{}, core.ErrDuplicateRule
		}
	}
	rule.ID = s.allocID()
	s.rules[rule.Owner] = append(s.rules[rule.Owner], rule)
	return rule, nil
}

func (s *Store) ListRules(ctx context.Context, owner string) ([]core.RecurringRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.RecurringRule, len(s.rules[owner]))
	copy(out, s.rules[owner])
	return out, nil
}

func (s *Store) ClaimNextOccurrence(ctx context.Context, owner string, id int64, from, to core.Date) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.rules[owner]
	for i, r := range list {
		if r.ID != id {
			continue
		}
		if !r.NextOccurrence.Equal(from.Time) {
			return false, nil
		}
		list[i].NextOccurrence = to
		return true, nil
	}
	return false, core.ErrNotFound
}

func (s *Store) DeleteRule(ctx context.Context, owner string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.rules[owner]
	for i, r := range list {
		if r.ID == id {
			s.rules[owner] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) AppendGoal(ctx context.Context, goal core.Goal) (core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.goals[goal.Owner] {
		if strings.EqualFold(g.Name, goal.Name) {
			return core.Goal{}, core.ErrDuplicateGoal
		}
	}
	goal.ID = s.allocID()
	s.goals[goal.Owner] = append(s.goals[goal.Owner], goal)
	return goal, nil
}

func (s *Store) ListGoals(ctx context.Context, owner string) ([]core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Goal, len(s.goals[owner]))
	copy(out, s.goals[owner])
	return out, nil
}

func (s *Store) AdjustSaved(ctx context.Context, owner string, id int64, deltaCents int64) (core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.goals[owner]
	for i, g := range list {
		if g.ID != id {
			continue
		}
		if g.Saved+deltaCents < 0 {
			return core.Goal{}, core.ErrInvalidAmount
		}
		list[i].Saved += deltaCents
		return list[i], nil
	}
	return core.Goal{}, core.ErrNotFound
}

func (s *Store) DeleteGoal(ctx context.Context, owner string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.goals[owner]
	for i, g := range list {
		if g.ID == id {
			s.goals[owner] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) CommittedTotal(ctx context.Context, owner string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, g := range s.goals[owner] {
		total += g.Saved
	}
	return total, nil
}
