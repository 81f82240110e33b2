package planner

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/arthguru/finance-coach/internal/domain"
)

func amount(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func TestBuildPlan_HealthySaverWithHighHousing(t *testing.T) {
	// 45000 income, 3000 Food, 20000 Housing: a good savings rate but
	// Housing is 44.4% of income.
	m := domain.Metrics{
		TotalIncome:   amount(45000),
		TotalExpenses: amount(23000),
		NetSavings:    amount(22000),
		SavingsRate:   22000.0 / 45000.0 * 100,
		ExpenseByCategory: []domain.CategoryAmount{
			{Category: "Food", Amount: amount(3000)},
			{Category: "Housing", Amount: amount(20000)},
		},
	}

	plan, err := BuildPlan(m)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	if len(plan.Recommendations) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(plan.Recommendations))
	}

	first := plan.Recommendations[0]
	if first.Severity != domain.SeveritySuccess || first.Title != "Excellent Savings Rate" {
		t.Errorf("recommendation[0] = %s %q, want success Excellent Savings Rate", first.Severity, first.Title)
	}
	if !strings.Contains(first.Message, "48.9%") {
		t.Errorf("recommendation[0] message %q does not quote the 48.9%% rate", first.Message)
	}

	second := plan.Recommendations[1]
	if second.Severity != domain.SeverityWarning || second.Title != "High Housing Spending" {
		t.Errorf("recommendation[1] = %s %q, want warning High Housing Spending", second.Severity, second.Title)
	}
	if !strings.Contains(second.Message, "44.4%") {
		t.Errorf("recommendation[1] message %q does not quote the 44.4%% share", second.Message)
	}

	if len(plan.Goals) != 1 || plan.Goals[0] != "Reduce Housing spending by 30%" {
		t.Errorf("goals = %v, want [Reduce Housing spending by 30%%]", plan.Goals)
	}
}

func TestBuildPlan_LowSavingsRate(t *testing.T) {
	// 10000 income, 9500 spent: 5% savings rate.
	m := domain.Metrics{
		TotalIncome:   amount(10000),
		TotalExpenses: amount(9500),
		NetSavings:    amount(500),
		SavingsRate:   5.0,
		ExpenseByCategory: []domain.CategoryAmount{
			{Category: "Rent", Amount: amount(9500)},
		},
	}

	plan, err := BuildPlan(m)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	first := plan.Recommendations[0]
	if first.Severity != domain.SeverityCritical || first.Title != "Low Savings Rate Detected" {
		t.Errorf("recommendation[0] = %s %q, want critical Low Savings Rate Detected", first.Severity, first.Title)
	}
	if !strings.Contains(first.Message, "5.0%") {
		t.Errorf("recommendation[0] message %q does not quote the 5.0%% rate", first.Message)
	}

	if len(plan.Goals) == 0 || plan.Goals[0] != "Increase savings rate to 15% within 3 months" {
		t.Errorf("goals = %v, want the increase-savings goal first", plan.Goals)
	}
}

func TestBuildPlan_NoExpenseData(t *testing.T) {
	m := domain.Metrics{
		TotalIncome: amount(45000),
		NetSavings:  amount(45000),
		SavingsRate: 100,
	}

	_, err := BuildPlan(m)
	if !errors.Is(err, ErrNoExpenseData) {
		t.Errorf("BuildPlan() error = %v, want ErrNoExpenseData", err)
	}
}

func TestBuildPlan_ZeroIncomeSkipsCategoryRule(t *testing.T) {
	m := domain.Metrics{
		TotalIncome:   decimal.Zero,
		TotalExpenses: amount(500),
		NetSavings:    amount(-500),
		SavingsRate:   0,
		ExpenseByCategory: []domain.CategoryAmount{
			{Category: "Food", Amount: amount(500)},
		},
	}

	plan, err := BuildPlan(m)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	// Only the savings rule fires; no share of a zero income exists.
	if len(plan.Recommendations) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(plan.Recommendations))
	}
	if plan.Recommendations[0].Severity != domain.SeverityCritical {
		t.Errorf("recommendation severity = %s, want critical", plan.Recommendations[0].Severity)
	}
	for _, goal := range plan.Goals {
		if strings.Contains(goal, "Reduce") {
			t.Errorf("unexpected category goal %q with zero income", goal)
		}
	}
}

func TestBuildPlan_TieKeepsFirstCategory(t *testing.T) {
	m := domain.Metrics{
		TotalIncome:   amount(1000),
		TotalExpenses: amount(800),
		NetSavings:    amount(200),
		SavingsRate:   20,
		ExpenseByCategory: []domain.CategoryAmount{
			{Category: "Bills", Amount: amount(400)},
			{Category: "Food", Amount: amount(400)},
		},
	}

	plan, err := BuildPlan(m)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	found := false
	for _, rec := range plan.Recommendations {
		if rec.Severity == domain.SeverityWarning {
			found = true
			if rec.Title != "High Bills Spending" {
				t.Errorf("warning title = %q, want High Bills Spending (first-seen tie-break)", rec.Title)
			}
		}
	}
	if !found {
		t.Error("expected a high-spending warning, got none")
	}
}

func TestBuildPlan_Deterministic(t *testing.T) {
	m := domain.Metrics{
		TotalIncome:   amount(45000),
		TotalExpenses: amount(23000),
		NetSavings:    amount(22000),
		SavingsRate:   48.9,
		ExpenseByCategory: []domain.CategoryAmount{
			{Category: "Food", Amount: amount(3000)},
			{Category: "Housing", Amount: amount(20000)},
		},
	}

	first, err := BuildPlan(m)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}
	second, err := BuildPlan(m)
	if err != nil {
		t.Fatalf("BuildPlan() error = %v", err)
	}

	if len(first.Recommendations) != len(second.Recommendations) {
		t.Fatalf("recommendation counts differ: %d vs %d", len(first.Recommendations), len(second.Recommendations))
	}
	for i := range first.Recommendations {
		if first.Recommendations[i] != second.Recommendations[i] {
			t.Errorf("recommendation[%d] differs between runs", i)
		}
	}
}
