package cli

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/arthguru/finance-coach/internal/analysis"
	"github.com/arthguru/finance-coach/internal/domain"
)

func TestEncodeJSON(t *testing.T) {
	plan := domain.Plan{
		Recommendations: []domain.Recommendation{
			{Severity: domain.SeveritySuccess, Title: "Excellent Savings Rate", Message: "You are saving 48.9% of your income."},
		},
		Goals: []string{"Reduce Housing spending by 30%"},
	}
	months := []analysis.MonthlyFlow{
		{Month: "2025-01", Income: decimal.NewFromInt(45000), Spending: decimal.NewFromInt(23000)},
	}

	var buf bytes.Buffer
	if err := EncodeJSON(&buf, sampleMetrics(), plan, months); err != nil {
		t.Fatalf("EncodeJSON() error = %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if !out.Metrics.TotalIncome.Equal(decimal.NewFromInt(45000)) {
		t.Errorf("total_income = %s, want 45000", out.Metrics.TotalIncome)
	}
	if out.Metrics.AvgMonthlyIncome == nil || *out.Metrics.AvgMonthlyIncome != 45000 {
		t.Errorf("avg_monthly_income = %v, want 45000", out.Metrics.AvgMonthlyIncome)
	}
	if len(out.Metrics.ExpenseByCategory) != 2 || out.Metrics.ExpenseByCategory[0].Category != "Food" {
		t.Errorf("unexpected categories: %+v", out.Metrics.ExpenseByCategory)
	}
	if len(out.Plan.Recommendations) != 1 || out.Plan.Recommendations[0].Severity != "success" {
		t.Errorf("unexpected recommendations: %+v", out.Plan.Recommendations)
	}
	if len(out.Months) != 1 || out.Months[0].Month != "2025-01" {
		t.Errorf("unexpected months: %+v", out.Months)
	}
}

func TestEncodeJSON_NullAvgIncome(t *testing.T) {
	m := domain.Metrics{
		TotalExpenses:    decimal.NewFromInt(500),
		NetSavings:       decimal.NewFromInt(-500),
		AvgMonthlyIncome: math.NaN(),
	}

	var buf bytes.Buffer
	if err := EncodeJSON(&buf, m, domain.Plan{}, nil); err != nil {
		t.Fatalf("EncodeJSON() error = %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	var metrics map[string]json.RawMessage
	if err := json.Unmarshal(raw["metrics"], &metrics); err != nil {
		t.Fatalf("metrics is not an object: %v", err)
	}
	if string(metrics["avg_monthly_income"]) != "null" {
		t.Errorf("avg_monthly_income = %s, want null", metrics["avg_monthly_income"])
	}
}
