package services

import (
	"context"
	"log/slog"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/store"
)

// GoalService manages saving goals. Money deposited into a goal is treated
// as committed and reduces the owner's net balance until withdrawn or the
// goal is deleted.
type GoalService struct {
	store store.Store
}

func NewGoalService(st store.Store) *GoalService {
	return &GoalService{store: st}
}

func (s *GoalService) CreateGoal(ctx context.Context, goal core.Goal) (core.Goal, error) {
	if err := goal.Validate(); err != nil {
		return core.Goal{}, err
	}

	saved, err := s.store.AppendGoal(ctx, goal)
	if err != nil {
		return core.Goal{}, err
	}

	slog.InfoContext(ctx, "Created saving goal",
		"goal_id", saved.ID,
		"owner", saved.Owner,
		"target_cents", saved.Target.Cents)

	return saved, nil
}

func (s *GoalService) ListGoals(ctx context.Context, owner string) ([]core.Goal, error) {
	return s.store.ListGoals(ctx, owner)
}

// Deposit moves amount into the goal's saved balance.
func (s *GoalService) Deposit(ctx context.Context, owner string, id int64, amount core.Money) (core.Goal, error) {
	if err := amount.Validate(); err != nil {
		return core.Goal{}, err
	}
	return s.store.AdjustSaved(ctx, owner, id, amount.Cents)
}

// Withdraw moves amount back out of the goal. Withdrawing more than the
// saved balance fails with core.ErrInvalidAmount.
func (s *GoalService) Withdraw(ctx context.Context, owner string, id int64, amount core.Money) (core.Goal, error) {
	if err := amount.Validate(); err != nil {
		return core.Goal{}, err
	}
	return s.store.AdjustSaved(ctx, owner, id, -amount.Cents)
}

// DeleteGoal removes a goal, releasing its saved balance back into the
// owner's net balance.
func (s *GoalService) DeleteGoal(ctx context.Context, owner string, id int64) error {
	if err := s.store.DeleteGoal(ctx, owner, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Deleted saving goal", "goal_id", id, "owner", owner)
	return nil
}
