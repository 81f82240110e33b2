// Package analysis computes summary metrics over a transaction ledger.
// It is the first stage of the coaching pipeline and is purely
// computational: no I/O, no mutation of the input. Identical ledgers
// produce identical metrics.
package analysis

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/arthguru/finance-coach/internal/domain"
)

const monthKey = "2006-01"

var hundred = decimal.NewFromInt(100)

// Analyze computes the ledger's summary metrics. Monetary totals are exact
// decimal sums; SavingsRate falls back to 0 when there is no income, and
// AvgMonthlyIncome is NaN when no income rows exist.
func Analyze(ledger domain.Ledger) domain.Metrics {
	m := domain.Metrics{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	position := make(map[string]int) // category -> index in ExpenseByCategory
	monthlyIncome := make(map[string]decimal.Decimal)

	for _, tx := range ledger {
		m.TotalIncome = m.TotalIncome.Add(tx.Income)
		m.TotalExpenses = m.TotalExpenses.Add(tx.Spending)

		if tx.Spending.IsPositive() {
			i, seen := position[tx.Category]
			if !seen {
				i = len(m.ExpenseByCategory)
				position[tx.Category] = i
				m.ExpenseByCategory = append(m.ExpenseByCategory, domain.CategoryAmount{Category: tx.Category})
			}
			m.ExpenseByCategory[i].Amount = m.ExpenseByCategory[i].Amount.Add(tx.Spending)
		}

		if tx.Income.IsPositive() {
			key := tx.Date.Format(monthKey)
			monthlyIncome[key] = monthlyIncome[key].Add(tx.Income)
		}
	}

	m.NetSavings = m.TotalIncome.Sub(m.TotalExpenses)

	if m.TotalIncome.IsPositive() {
		m.SavingsRate, _ = m.NetSavings.Div(m.TotalIncome).Mul(hundred).Float64()
	}

	m.AvgMonthlyIncome = avgMonthlyIncome(monthlyIncome)

	return m
}

func avgMonthlyIncome(monthly map[string]decimal.Decimal) float64 {
	if len(monthly) == 0 {
		return math.NaN()
	}
	total := decimal.Zero
	for _, sum := range monthly {
		total = total.Add(sum)
	}
	avg, _ := total.Div(decimal.NewFromInt(int64(len(monthly)))).Float64()
	return avg
}

// MonthlyFlow is one calendar month's income and spending totals, used for
// report rendering. It has no effect on the pipeline stages.
type MonthlyFlow struct {
	Month    string // "YYYY-MM"
	Income   decimal.Decimal
	Spending decimal.Decimal
}

// MonthlySeries aggregates the ledger per calendar month, ascending.
func MonthlySeries(ledger domain.Ledger) []MonthlyFlow {
	byMonth := make(map[string]*MonthlyFlow)
	for _, tx := range ledger {
		key := tx.Date.Format(monthKey)
		flow, ok := byMonth[key]
		if !ok {
			flow = &MonthlyFlow{Month: key}
			byMonth[key] = flow
		}
		flow.Income = flow.Income.Add(tx.Income)
		flow.Spending = flow.Spending.Add(tx.Spending)
	}

	series := make([]MonthlyFlow, 0, len(byMonth))
	for _, flow := range byMonth {
		series = append(series, *flow)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Month < series[j].Month })
	return series
}
