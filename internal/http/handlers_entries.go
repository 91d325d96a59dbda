package http

import (
	"net/http"
	"time"

	"budgetbuddy/internal/core"
)

type entryResponse struct {
	ID           int64  `json:"id"`
	Kind         string `json:"kind"`
	Category     string `json:"category"`
	Amount       string `json:"amount"`
	Date         string `json:"date"`
	Note         string `json:"note,omitempty"`
	SourceRuleID int64  `json:"source_rule_id,omitempty"`
}

func toEntryResponse(e core.LedgerEntry) entryResponse {
	return entryResponse{
		ID:           e.ID,
		Kind:         string(e.Kind),
		Category:     e.Category,
		Amount:       formatAmount(e.Amount.Cents),
		Date:         e.Date.String(),
		Note:         e.Note,
		SourceRuleID: e.SourceRuleID,
	}
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	owner := ownerFromRequest(r)
	if owner == "" {
		writeError(w, r, http.StatusBadRequest, "missing X-Owner header")
		return
	}

	entries, err := s.ledger.ListEntries(r.Context(), owner)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	owner := ownerFromRequest(r)
	if owner == "" {
		writeError(w, r, http.StatusBadRequest, "missing X-Owner header")
		return
	}

	var req entryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := req.toEntry(owner, core.Today(time.Now()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	saved, err := s.ledger.CreateEntry(r.Context(), entry)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.invalidateSummary(owner)
	writeJSON(w, r, http.StatusCreated, toEntryResponse(saved))
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	owner := ownerFromRequest(r)
	if owner == "" {
		writeError(w, r, http.StatusBadRequest, "missing X-Owner header")
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid entry id")
		return
	}

	if err := s.ledger.DeleteEntry(r.Context(), owner, id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.invalidateSummary(owner)
	w.WriteHeader(http.StatusNoContent)
}
