// Package planner derives recommendations and goals from computed metrics.
// It is the second stage of the coaching pipeline: a fixed rule list
// evaluated in order, producing output in that same order.
package planner

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/arthguru/finance-coach/internal/domain"
)

// ErrNoExpenseData is returned when the metrics carry no expense
// categories; there is nothing to plan against.
var ErrNoExpenseData = errors.New("no expense data to analyze")

// Rule thresholds, in percent of income.
const (
	lowSavingsRate    = 10.0
	highCategoryShare = 15.0
)

var hundred = decimal.NewFromInt(100)

// BuildPlan evaluates the planning rules against the metrics. The savings
// rule always produces one recommendation; the top-category rule adds a
// warning when the largest category takes more than 15% of income, and is
// skipped entirely when there is no income to take a share of.
func BuildPlan(m domain.Metrics) (domain.Plan, error) {
	if len(m.ExpenseByCategory) == 0 {
		return domain.Plan{}, ErrNoExpenseData
	}

	var plan domain.Plan

	if m.SavingsRate < lowSavingsRate {
		plan.Recommendations = append(plan.Recommendations, domain.Recommendation{
			Severity: domain.SeverityCritical,
			Title:    "Low Savings Rate Detected",
			Message:  fmt.Sprintf("Your savings rate is %.1f%%. Target at least 15-20%% for financial stability.", m.SavingsRate),
		})
		plan.Goals = append(plan.Goals, "Increase savings rate to 15% within 3 months")
	} else {
		plan.Recommendations = append(plan.Recommendations, domain.Recommendation{
			Severity: domain.SeveritySuccess,
			Title:    "Excellent Savings Rate",
			Message:  fmt.Sprintf("Great job! Your %.1f%% savings rate is above average.", m.SavingsRate),
		})
	}

	if top, ok := m.TopExpenseCategory(); ok && m.TotalIncome.IsPositive() {
		share := sharePercent(top.Amount, m.TotalIncome)
		if share > highCategoryShare {
			plan.Recommendations = append(plan.Recommendations, domain.Recommendation{
				Severity: domain.SeverityWarning,
				Title:    fmt.Sprintf("High %s Spending", top.Category),
				Message:  fmt.Sprintf("%s spending is %.1f%% of income. Consider reducing to 10%%.", top.Category, share),
			})
			plan.Goals = append(plan.Goals, fmt.Sprintf("Reduce %s spending by 30%%", top.Category))
		}
	}

	return plan, nil
}

func sharePercent(amount, total decimal.Decimal) float64 {
	pct, _ := amount.Div(total).Mul(hundred).Float64()
	return pct
}
