package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

const (
	Daily      Frequency = "daily"
	Weekly     Frequency = "weekly"
	Monthly    Frequency = "monthly"
	Quarterly  Frequency = "quarterly"
	SemiAnnual Frequency = "semiannual"
	Yearly     Frequency = "yearly"
)

type (
	// Kind distinguishes money coming in from money going out.
	Kind string

	// Frequency is the cadence of a recurring rule.
	Frequency string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// RecurringRule is a user-declared template for a repeating income or
	// expense. NextOccurrence is the next not-yet-materialized occurrence;
	// it is initialized to StartDate at creation and only ever advanced by
	// whole frequency steps by the recurrence processor. It is never
	// recomputed from the current date.
	RecurringRule struct {
		ID             int64
		Owner          string
		Kind           Kind
		Category       string
		Amount         Money
		Frequency      Frequency
		StartDate      Date
		NextOccurrence Date
		Description    string
	}

	// LedgerEntry is a materialized transaction: either a manual entry or
	// one auto-created from a recurring rule. SourceRuleID is zero for
	// manual entries; when set it is the structured provenance reference
	// back to the originating rule. The "[Recurring]" note prefix is
	// display-only and never parsed for decisions.
	LedgerEntry struct {
		ID           int64
		Owner        string
		Kind         Kind
		Category     string
		Amount       Money
		Date         Date
		Note         string
		SourceRuleID int64
	}

	// Goal is a named saving target. Saved is tracked in raw cents because
	// zero is a legitimate value for a freshly created goal.
	Goal struct {
		ID          int64
		Owner       string
		Name        string
		Target      Money
		Saved       int64
		Description string
		CreatedDate Date
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrInvalidKind      = errors.New("invalid kind")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyOwner       = errors.New("empty owner")
	ErrEmptyCategory    = errors.New("empty category")
	ErrDuplicateRule    = errors.New("duplicate recurring rule")
	ErrDuplicateGoal    = errors.New("duplicate goal")
	ErrNotFound         = errors.New("not found")
)

func (k Kind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidKind
	}
}

func (f Frequency) Validate() error {
	switch f {
	case Daily, Weekly, Monthly, Quarterly, SemiAnnual, Yearly:
		return nil
	default:
		return ErrInvalidFrequency
	}
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today truncates t to a calendar date.
func Today(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month (1-12).
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (r RecurringRule) Validate() error {
	if strings.TrimSpace(r.Owner) == "" {
		return ErrEmptyOwner
	}
	if err := r.Kind.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if err := r.Frequency.Validate(); err != nil {
		return err
	}
	if err := r.StartDate.Validate(); err != nil {
		return errors.New("invalid start date: " + err.Error())
	}
	if len(r.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

func (e LedgerEntry) Validate() error {
	if strings.TrimSpace(e.Owner) == "" {
		return ErrEmptyOwner
	}
	if err := e.Kind.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if len(e.Note) > 200 {
		return errors.New("note too long (max 200 characters)")
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Owner) == "" {
		return ErrEmptyOwner
	}
	if strings.TrimSpace(g.Name) == "" {
		return errors.New("empty goal name")
	}
	if err := g.Target.Validate(); err != nil {
		return err
	}
	if g.Saved < 0 {
		return ErrInvalidAmount
	}
	if len(g.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}
