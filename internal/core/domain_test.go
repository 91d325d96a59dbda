package core

import (
	"errors"
	"strings"
	"testing"
)

func validRule() RecurringRule {
	return RecurringRule{
		Owner:          "alice",
		Kind:           Expense,
		Category:       "Rent",
		Amount:         Money{Cents: 120000},
		Frequency:      Monthly,
		StartDate:      NewDate(2024, 1, 1),
		NextOccurrence: NewDate(2024, 1, 1),
	}
}

func TestRecurringRuleValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RecurringRule)
		wantErr error
	}{
		{"valid", func(r *RecurringRule) {}, nil},
		{"empty owner", func(r *RecurringRule) { r.Owner = "  " }, ErrEmptyOwner},
		{"bad kind", func(r *RecurringRule) { r.Kind = "transfer" }, ErrInvalidKind},
		{"empty category", func(r *RecurringRule) { r.Category = "" }, ErrEmptyCategory},
		{"zero amount", func(r *RecurringRule) { r.Amount = Money{} }, ErrInvalidAmount},
		{"bad frequency", func(r *RecurringRule) { r.Frequency = "hourly" }, ErrInvalidFrequency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRule()
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("zero start date", func(t *testing.T) {
		r := validRule()
		r.StartDate = Date{}
		if err := r.Validate(); err == nil {
			t.Error("Validate() = nil, expected error")
		}
	})

	t.Run("description too long", func(t *testing.T) {
		r := validRule()
		r.Description = strings.Repeat("x", 201)
		if err := r.Validate(); err == nil {
			t.Error("Validate() = nil, expected error")
		}
	})
}

func TestLedgerEntryValidate(t *testing.T) {
	e := LedgerEntry{
		Owner:    "alice",
		Kind:     Income,
		Category: "Salary",
		Amount:   Money{Cents: 500000},
		Date:     NewDate(2024, 1, 1),
	}
	if err := e.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	e.Date = Date{}
	if !errors.Is(e.Validate(), ErrInvalidDate) {
		t.Error("zero date: want ErrInvalidDate")
	}
}

func TestGoalValidate(t *testing.T) {
	g := Goal{Owner: "alice", Name: "Vacation", Target: Money{Cents: 300000}}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	g.Saved = -1
	if !errors.Is(g.Validate(), ErrInvalidAmount) {
		t.Error("negative saved: want ErrInvalidAmount")
	}

	g.Saved = 0
	g.Name = ""
	if g.Validate() == nil {
		t.Error("empty name: expected error")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if d.String() != "2024-02-29" {
		t.Errorf("round trip = %s", d)
	}

	if _, err := ParseDate("29/02/2024"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("wrong layout: error = %v, want ErrInvalidDate", err)
	}
	if _, err := ParseDate("2023-02-29"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("impossible date: error = %v, want ErrInvalidDate", err)
	}
}
