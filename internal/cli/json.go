package cli

import (
	"encoding/json"
	"io"
	"math"

	"github.com/shopspring/decimal"

	"github.com/arthguru/finance-coach/internal/analysis"
	"github.com/arthguru/finance-coach/internal/domain"
)

// jsonOutput is the machine-readable form of a full pipeline run.
type jsonOutput struct {
	Metrics jsonMetrics `json:"metrics"`
	Plan    jsonPlan    `json:"plan"`
	Months  []jsonMonth `json:"months"`
}

type jsonMetrics struct {
	TotalIncome       decimal.Decimal      `json:"total_income"`
	TotalExpenses     decimal.Decimal      `json:"total_expenses"`
	NetSavings        decimal.Decimal      `json:"net_savings"`
	SavingsRate       float64              `json:"savings_rate"`
	AvgMonthlyIncome  *float64             `json:"avg_monthly_income"`
	ExpenseByCategory []jsonCategoryAmount `json:"expense_by_category"`
}

type jsonCategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type jsonPlan struct {
	Recommendations []jsonRecommendation `json:"recommendations"`
	Goals           []string             `json:"goals"`
}

type jsonRecommendation struct {
	Severity string `json:"severity"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

type jsonMonth struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Spending decimal.Decimal `json:"spending"`
}

// EncodeJSON writes the pipeline results as indented JSON. A ledger with
// no income rows has no average monthly income, encoded as null.
func EncodeJSON(w io.Writer, m domain.Metrics, p domain.Plan, months []analysis.MonthlyFlow) error {
	out := jsonOutput{
		Metrics: jsonMetrics{
			TotalIncome:       m.TotalIncome,
			TotalExpenses:     m.TotalExpenses,
			NetSavings:        m.NetSavings,
			SavingsRate:       m.SavingsRate,
			ExpenseByCategory: make([]jsonCategoryAmount, 0, len(m.ExpenseByCategory)),
		},
		Plan: jsonPlan{
			Recommendations: make([]jsonRecommendation, 0, len(p.Recommendations)),
			Goals:           append([]string{}, p.Goals...),
		},
		Months: make([]jsonMonth, 0, len(months)),
	}
	if !math.IsNaN(m.AvgMonthlyIncome) {
		avg := m.AvgMonthlyIncome
		out.Metrics.AvgMonthlyIncome = &avg
	}
	for _, c := range m.ExpenseByCategory {
		out.Metrics.ExpenseByCategory = append(out.Metrics.ExpenseByCategory, jsonCategoryAmount{
			Category: c.Category,
			Amount:   c.Amount,
		})
	}
	for _, r := range p.Recommendations {
		out.Plan.Recommendations = append(out.Plan.Recommendations, jsonRecommendation{
			Severity: string(r.Severity),
			Title:    r.Title,
			Message:  r.Message,
		})
	}
	for _, flow := range months {
		out.Months = append(out.Months, jsonMonth{
			Month:    flow.Month,
			Income:   flow.Income,
			Spending: flow.Spending,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
