package http

import (
	"errors"
	"testing"

	"budgetbuddy/internal/core"
)

func TestEntryRequestToEntry(t *testing.T) {
	today := core.NewDate(2024, 6, 15)

	tests := []struct {
		name    string
		req     entryRequest
		wantErr error
	}{
		{
			name: "valid with explicit date",
			req:  entryRequest{Kind: "expense", Category: "Groceries", Amount: "45.90", Date: "2024-06-01"},
		},
		{
			name: "comma decimal separator",
			req:  entryRequest{Kind: "expense", Category: "Groceries", Amount: "45,90"},
		},
		{
			name:    "negative amount",
			req:     entryRequest{Kind: "expense", Category: "Groceries", Amount: "-1.00"},
			wantErr: core.ErrInvalidAmount,
		},
		{
			name:    "empty amount",
			req:     entryRequest{Kind: "expense", Category: "Groceries"},
			wantErr: core.ErrInvalidAmount,
		},
		{
			name:    "malformed date",
			req:     entryRequest{Kind: "expense", Category: "Groceries", Amount: "5.00", Date: "15/06/2024"},
			wantErr: core.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := tt.req.toEntry("alice", today)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("toEntry() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("toEntry() error = %v", err)
			}
			if entry.Owner != "alice" {
				t.Errorf("Owner = %q, want alice", entry.Owner)
			}
			if entry.Amount.Cents != 4590 {
				t.Errorf("Amount = %d cents, want 4590", entry.Amount.Cents)
			}
		})
	}
}

func TestEntryRequestDefaultsDateToToday(t *testing.T) {
	today := core.NewDate(2024, 6, 15)
	entry, err := entryRequest{Kind: "income", Category: "Salary", Amount: "100"}.toEntry("alice", today)
	if err != nil {
		t.Fatalf("toEntry() error = %v", err)
	}
	if !entry.Date.Equal(today.Time) {
		t.Errorf("Date = %s, want %s", entry.Date, today)
	}
}

func TestRuleRequestToRule(t *testing.T) {
	rule, err := ruleRequest{
		Kind:      "income",
		Category:  "  Salary  ",
		Amount:    "5000.00",
		Frequency: "monthly",
		StartDate: "2024-01-01",
	}.toRule("alice")
	if err != nil {
		t.Fatalf("toRule() error = %v", err)
	}
	if rule.Category != "Salary" {
		t.Errorf("Category = %q, want trimmed Salary", rule.Category)
	}
	if rule.Amount.Cents != 500000 {
		t.Errorf("Amount = %d cents, want 500000", rule.Amount.Cents)
	}
	if rule.StartDate.String() != "2024-01-01" {
		t.Errorf("StartDate = %s, want 2024-01-01", rule.StartDate)
	}

	if _, err := (ruleRequest{Kind: "income", Category: "Salary", Amount: "5000", Frequency: "monthly"}).toRule("alice"); !errors.Is(err, core.ErrInvalidDate) {
		t.Errorf("missing start date error = %v, want %v", err, core.ErrInvalidDate)
	}
}

func TestGoalRequestToGoal(t *testing.T) {
	today := core.NewDate(2024, 6, 15)
	goal, err := goalRequest{Name: "Vacation\x00", Target: "1000"}.toGoal("alice", today)
	if err != nil {
		t.Fatalf("toGoal() error = %v", err)
	}
	if goal.Name != "Vacation" {
		t.Errorf("Name = %q, want control characters stripped", goal.Name)
	}
	if goal.Target.Cents != 100000 {
		t.Errorf("Target = %d cents, want 100000", goal.Target.Cents)
	}
	if goal.Saved != 0 {
		t.Errorf("Saved = %d, want 0", goal.Saved)
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  plain  ", "plain"},
		{"with\x00null", "withnull"},
		{"keeps accents: caffè", "keeps accents: caffè"},
		{"tab\tsurvives", "tab\tsurvives"},
	}

	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
