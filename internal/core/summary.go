package core

import "github.com/shopspring/decimal"

// Summary is the per-owner dashboard aggregate. Totals come from the
// ledger; the monthly recurring figures are a forward-looking projection
// over active rules, independent of what has been materialized so far.
type Summary struct {
	TotalIncome  Money
	TotalExpense Money
	// NetBalance = income - expenses - money committed to saving goals.
	NetBalance Money

	MonthlyRecurringIncome  decimal.Decimal
	MonthlyRecurringExpense decimal.Decimal
	NetMonthlyRecurring     decimal.Decimal
}
