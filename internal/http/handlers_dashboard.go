package http

import (
	"log/slog"
	"net/http"
	"time"

	"budgetbuddy/internal/core"
)

type summaryResponse struct {
	TotalIncome  string `json:"total_income"`
	TotalExpense string `json:"total_expense"`
	NetBalance   string `json:"net_balance"`

	MonthlyRecurringIncome  string `json:"monthly_recurring_income"`
	MonthlyRecurringExpense string `json:"monthly_recurring_expense"`
	NetMonthlyRecurring     string `json:"net_monthly_recurring"`
}

type dashboardResponse struct {
	Summary         summaryResponse `json:"summary"`
	Materialized    int             `json:"materialized"`
	ProcessWarnings int             `json:"process_warnings"`
}

func toSummaryResponse(s core.Summary) summaryResponse {
	return summaryResponse{
		TotalIncome:             formatAmount(s.TotalIncome.Cents),
		TotalExpense:            formatAmount(s.TotalExpense.Cents),
		NetBalance:              formatAmount(s.NetBalance.Cents),
		MonthlyRecurringIncome:  s.MonthlyRecurringIncome.StringFixed(2),
		MonthlyRecurringExpense: s.MonthlyRecurringExpense.StringFixed(2),
		NetMonthlyRecurring:     s.NetMonthlyRecurring.StringFixed(2),
	}
}

// handleDashboard materializes due recurring entries for the owner, then
// returns the summary. Processing failures degrade to warnings: a dashboard
// with stale recurring entries beats no dashboard.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	owner := ownerFromRequest(r)
	if owner == "" {
		writeError(w, r, http.StatusBadRequest, "missing X-Owner header")
		return
	}

	result, err := s.processor.Process(r.Context(), owner, core.Today(time.Now()))
	if err != nil {
		slog.ErrorContext(r.Context(), "Recurring processing failed, serving summary anyway",
			"owner", owner, "error", err)
		result.Failed++
	}
	if result.Materialized > 0 {
		s.invalidateSummary(owner)
	}

	summary, ok := s.summaryCache.Get(owner)
	if !ok {
		summary, err = s.reporter.Summarize(r.Context(), owner)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		s.summaryCache.Set(owner, summary)
	}

	writeJSON(w, r, http.StatusOK, dashboardResponse{
		Summary:         toSummaryResponse(summary),
		Materialized:    result.Materialized,
		ProcessWarnings: result.Failed,
	})
}
