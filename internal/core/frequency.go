// Package core: frequency calculator.
//
// This file holds the two pure operations behind the recurring-transaction
// scheduler: normalizing any cadence to a comparable monthly figure, and
// advancing a date by one frequency step with calendar-aware month
// arithmetic.
package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Normalization factors. 30-day months and 4.33-week months are deliberate
// approximations: the monthly equivalent is a comparable dashboard rate,
// not calendar-exact accounting.
var (
	daysPerMonth  = decimal.NewFromInt(30)
	weeksPerMonth = decimal.RequireFromString("4.33")
)

// monthSteps maps month-based frequencies to their step width.
var monthSteps = map[Frequency]int{
	Monthly:    1,
	Quarterly:  3,
	SemiAnnual: 6,
	Yearly:     12,
}

// MonthlyEquivalent converts an amount at the given frequency to an
// approximate per-month rate. Invalid input indicates a programming error
// upstream and fails immediately.
func MonthlyEquivalent(amount Money, frequency Frequency) (decimal.Decimal, error) {
	if err := amount.Validate(); err != nil {
		return decimal.Zero, err
	}
	v := amount.Decimal()
	switch frequency {
	case Daily:
		return v.Mul(daysPerMonth), nil
	case Weekly:
		return v.Mul(weeksPerMonth), nil
	case Monthly:
		return v, nil
	case Quarterly:
		return v.Div(decimal.NewFromInt(3)), nil
	case SemiAnnual:
		return v.Div(decimal.NewFromInt(6)), nil
	case Yearly:
		return v.Div(decimal.NewFromInt(12)), nil
	default:
		return decimal.Zero, ErrInvalidFrequency
	}
}

// Advance returns the next occurrence strictly after d.
//
// Month-based frequencies use calendar month arithmetic with year rollover.
// When the target month is shorter than the original day-of-month, the
// result clamps to the last valid day of the target month. The clamp is
// applied independently on every call: a rule starting Jan 31 lands on
// Feb 28, then Mar 28, because each step advances from the previous
// clamped result. That is defined behavior, not an error.
func Advance(d Date, frequency Frequency) (Date, error) {
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	switch frequency {
	case Daily:
		return Date{Time: d.AddDate(0, 0, 1)}, nil
	case Weekly:
		return Date{Time: d.AddDate(0, 0, 7)}, nil
	case Monthly, Quarterly, SemiAnnual, Yearly:
		return addMonthsClamped(d, monthSteps[frequency]), nil
	default:
		return Date{}, ErrInvalidFrequency
	}
}

// addMonthsClamped adds n calendar months, clamping the day-of-month to the
// last valid day of the target month. time.AddDate would roll Jan 31 + 1
// month over into March; this must not.
func addMonthsClamped(d Date, n int) Date {
	months := d.Year()*12 + (d.Month() - 1) + n
	year := months / 12
	month := months%12 + 1
	day := d.Day()
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return NewDate(year, month, day)
}

// lastDayOfMonth returns the number of days in the given month.
func lastDayOfMonth(year, month int) int {
	// Day zero of the following month.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
