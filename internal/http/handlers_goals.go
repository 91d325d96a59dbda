package http

import (
	"context"
	"net/http"
	"time"

	"budgetbuddy/internal/core"
)

type goalResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Target      string `json:"target"`
	Saved       string `json:"saved"`
	Remaining   string `json:"remaining"`
	Description string `json:"description,omitempty"`
	CreatedDate string `json:"created_date"`
}

func toGoalResponse(g core.Goal) goalResponse {
	remaining := g.Target.Cents - g.Saved
	if remaining < 0 {
		remaining = 0
	}
	return goalResponse{
		ID:          g.ID,
		Name:        g.Name,
		Target:      formatAmount(g.Target.Cents),
		Saved:       formatAmount(g.Saved),
		Remaining:   formatAmount(remaining),
		Description: g.Description,
		CreatedDate: g.CreatedDate.String(),
	}
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	owner := ownerFromRequest(r)
	if owner == "" {
		writeError(w, r, http.StatusBadRequest, "missing X-Owner header")
		return
	}

	goals, err := s.goals.ListGoals(r.Context(), owner)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalResponse(g))
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	owner := ownerFromRequest(r)
	if owner == "" {
		writeError(w, r, http.StatusBadRequest, "missing X-Owner header")
		return
	}

	var req goalRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	goal, err := req.toGoal(owner, core.Today(time.Now()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	saved, err := s.goals.CreateGoal(r.Context(), goal)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toGoalResponse(saved))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	owner := ownerFromRequest(r)
	if owner == "" {
		writeError(w, r, http.StatusBadRequest, "missing X-Owner header")
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid goal id")
		return
	}

	if err := s.goals.DeleteGoal(r.Context(), owner, id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.invalidateSummary(owner)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGoalDeposit(w http.ResponseWriter, r *http.Request) {
	s.handleGoalAdjust(w, r, s.goals.Deposit)
}

func (s *Server) handleGoalWithdraw(w http.ResponseWriter, r *http.Request) {
	s.handleGoalAdjust(w, r, s.goals.Withdraw)
}

type goalAdjustFunc func(ctx context.Context, owner string, id int64, amount core.Money) (core.Goal, error)

func (s *Server) handleGoalAdjust(w http.ResponseWriter, r *http.Request, adjust goalAdjustFunc) {
	owner := ownerFromRequest(r)
	if owner == "" {
		writeError(w, r, http.StatusBadRequest, "missing X-Owner header")
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid goal id")
		return
	}

	var req amountRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	goal, err := adjust(r.Context(), owner, id, core.Money{Cents: cents})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.invalidateSummary(owner)
	writeJSON(w, r, http.StatusOK, toGoalResponse(goal))
}
