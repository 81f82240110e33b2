package domain

import (
	"github.com/shopspring/decimal"
)

// CategoryAmount is one expense category with its spending total. Metrics
// keeps these in first-encounter order, which doubles as the tie-break
// when two categories total the same amount.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// Metrics is the summary computed over one ledger. Monetary fields are
// exact decimals; the two rates are derived floats.
type Metrics struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	NetSavings    decimal.Decimal

	// SavingsRate is net savings as a percentage of income. Zero when the
	// ledger has no income rows; that is a policy, not an error.
	SavingsRate float64

	// AvgMonthlyIncome is the mean of per-calendar-month income sums. NaN
	// when no income rows exist. Display only; no planning rule reads it.
	AvgMonthlyIncome float64

	// ExpenseByCategory holds spending totals in the order categories were
	// first seen in the ledger. Categories without spending are absent.
	ExpenseByCategory []CategoryAmount
}

// CategoryTotal returns the spending total for one category.
func (m Metrics) CategoryTotal(category string) (decimal.Decimal, bool) {
	for _, ca := range m.ExpenseByCategory {
		if ca.Category == category {
			return ca.Amount, true
		}
	}
	return decimal.Zero, false
}

// TopExpenseCategory returns the category with the highest spending total.
// Ties keep the earlier category. ok is false when there are no expenses.
func (m Metrics) TopExpenseCategory() (CategoryAmount, bool) {
	if len(m.ExpenseByCategory) == 0 {
		return CategoryAmount{}, false
	}
	top := m.ExpenseByCategory[0]
	for _, ca := range m.ExpenseByCategory[1:] {
		if ca.Amount.GreaterThan(top.Amount) {
			top = ca
		}
	}
	return top, true
}
