package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"budgetbuddy/internal/core"
)

type ruleResponse struct {
	ID                int64  `json:"id"`
	Kind              string `json:"kind"`
	Category          string `json:"category"`
	Amount            string `json:"amount"`
	Frequency         string `json:"frequency"`
	StartDate         string `json:"start_date"`
	NextOccurrence    string `json:"next_occurrence"`
	DaysUntilDue      int    `json:"days_until_due"`
	Description       string `json:"description,omitempty"`
	MonthlyEquivalent string `json:"monthly_equivalent"`
}

func toRuleResponse(rule core.RecurringRule, today core.Date) ruleResponse {
	resp := ruleResponse{
		ID:             rule.ID,
		Kind:           string(rule.Kind),
		Category:       rule.Category,
		Amount:         formatAmount(rule.Amount.Cents),
		Frequency:      string(rule.Frequency),
		StartDate:      rule.StartDate.String(),
		NextOccurrence: rule.NextOccurrence.String(),
		DaysUntilDue:   int(rule.NextOccurrence.Sub(today.Time).Hours() / 24),
		Description:    rule.Description,
	}
	if eq, err := core.MonthlyEquivalent(rule.Amount, rule.Frequency); err == nil {
		resp.MonthlyEquivalent = eq.StringFixed(2)
	}
	return resp
}

func (s *Server) handleListRules(w http.ResponseWriter, r *http.Request) {
	owner := ownerFromRequest(r)
	if owner == "" {
		writeError(w, r, http.StatusBadRequest, "missing X-Owner header")
		return
	}

	rules, err := s.rules.ListRules(r.Context(), owner)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	today := core.Today(time.Now())
	out := make([]ruleResponse, 0, len(rules))
	for _, rule := range rules {
		out = append(out, toRuleResponse(rule, today))
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleCreateRule(w http.ResponseWriter, r *http.Request) {
	owner := ownerFromRequest(r)
	if owner == "" {
		writeError(w, r, http.StatusBadRequest, "missing X-Owner header")
		return
	}

	var req ruleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	rule, err := req.toRule(owner)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	saved, err := s.rules.CreateRule(r.Context(), rule)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.invalidateSummary(owner)
	writeJSON(w, r, http.StatusCreated, toRuleResponse(saved, core.Today(time.Now())))
}

func (s *Server) handleDeleteRule(w http.ResponseWriter, r *http.Request) {
	owner := ownerFromRequest(r)
	if owner == "" {
		writeError(w, r, http.StatusBadRequest, "missing X-Owner header")
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid rule id")
		return
	}

	if err := s.rules.DeleteRule(r.Context(), owner, id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.invalidateSummary(owner)
	w.WriteHeader(http.StatusNoContent)
}

// handlePreviewRule converts ?amount=&frequency= to its budget impact at
// several horizons without persisting anything, for the rule creation form.
func (s *Server) handlePreviewRule(w http.ResponseWriter, r *http.Request) {
	cents, err := core.ParseDecimalToCents(r.URL.Query().Get("amount"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	frequency := core.Frequency(sanitizeInput(r.URL.Query().Get("frequency")))

	monthlyMoney, err := s.rules.PreviewMonthlyEquivalent(core.Money{Cents: cents}, frequency)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	monthly := monthlyMoney.Decimal()
	writeJSON(w, r, http.StatusOK, map[string]string{
		"amount":             formatAmount(cents),
		"frequency":          string(frequency),
		"daily_equivalent":   monthly.Div(decimal.NewFromInt(30)).StringFixed(2),
		"weekly_equivalent":  monthly.Div(decimal.RequireFromString("4.33")).StringFixed(2),
		"monthly_equivalent": monthly.StringFixed(2),
		"yearly_equivalent":  monthly.Mul(decimal.NewFromInt(12)).StringFixed(2),
	})
}
