package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"budgetbuddy/internal/core"
)

const maxBodyBytes = 64 << 10

// Request payloads. Amounts travel as decimal strings ("12.34" or "12,34")
// and are parsed to cents server-side.
type (
	entryRequest struct {
		Kind     string `json:"kind"`
		Category string `json:"category"`
		Amount   string `json:"amount"`
		Date     string `json:"date"`
		Note     string `json:"note"`
	}

	ruleRequest struct {
		Kind        string `json:"kind"`
		Category    string `json:"category"`
		Amount      string `json:"amount"`
		Frequency   string `json:"frequency"`
		StartDate   string `json:"start_date"`
		Description string `json:"description"`
	}

	goalRequest struct {
		Name        string `json:"name"`
		Target      string `json:"target"`
		Description string `json:"description"`
	}

	amountRequest struct {
		Amount string `json:"amount"`
	}
)

func decodeBody(r *http.Request, v any) error {
	body := io.LimitReader(r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (req entryRequest) toEntry(owner string, today core.Date) (core.LedgerEntry, error) {
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		return core.LedgerEntry{}, err
	}

	date := today
	if req.Date != "" {
		if date, err = core.ParseDate(req.Date); err != nil {
			return core.LedgerEntry{}, err
		}
	}

	return core.LedgerEntry{
		Owner:    owner,
		Kind:     core.Kind(sanitizeInput(req.Kind)),
		Category: sanitizeInput(req.Category),
		Amount:   core.Money{Cents: cents},
		Date:     date,
		Note:     sanitizeInput(req.Note),
	}, nil
}

func (req ruleRequest) toRule(owner string) (core.RecurringRule, error) {
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		return core.RecurringRule{}, err
	}

	start, err := core.ParseDate(req.StartDate)
	if err != nil {
		return core.RecurringRule{}, err
	}

	return core.RecurringRule{
		Owner:       owner,
		Kind:        core.Kind(sanitizeInput(req.Kind)),
		Category:    sanitizeInput(req.Category),
		Amount:      core.Money{Cents: cents},
		Frequency:   core.Frequency(sanitizeInput(req.Frequency)),
		StartDate:   start,
		Description: sanitizeInput(req.Description),
	}, nil
}

func (req goalRequest) toGoal(owner string, today core.Date) (core.Goal, error) {
	cents, err := core.ParseDecimalToCents(req.Target)
	if err != nil {
		return core.Goal{}, err
	}

	return core.Goal{
		Owner:       owner,
		Name:        sanitizeInput(req.Name),
		Target:      core.Money{Cents: cents},
		Description: sanitizeInput(req.Description),
		CreatedDate: today,
	}, nil
}
