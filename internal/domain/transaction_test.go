package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestLedger_Validate(t *testing.T) {
	valid := Transaction{
		Date:     day("2025-04-01"),
		Income:   decimal.NewFromInt(45000),
		Category: "Salary",
	}

	tests := []struct {
		name    string
		ledger  Ledger
		wantErr bool
	}{
		{
			name:    "valid single row",
			ledger:  Ledger{valid},
			wantErr: false,
		},
		{
			name:    "empty ledger",
			ledger:  Ledger{},
			wantErr: true,
		},
		{
			name:    "nil ledger",
			ledger:  nil,
			wantErr: true,
		},
		{
			name: "missing date",
			ledger: Ledger{
				{Income: decimal.NewFromInt(100), Category: "Salary"},
			},
			wantErr: true,
		},
		{
			name: "missing category",
			ledger: Ledger{
				{Date: day("2025-04-01"), Spending: decimal.NewFromInt(100)},
			},
			wantErr: true,
		},
		{
			name: "negative income",
			ledger: Ledger{
				{Date: day("2025-04-01"), Income: decimal.NewFromInt(-1), Category: "Salary"},
			},
			wantErr: true,
		},
		{
			name: "negative spending",
			ledger: Ledger{
				valid,
				{Date: day("2025-04-02"), Spending: decimal.NewFromInt(-50), Category: "Food"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ledger.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidLedger) {
				t.Errorf("Validate() error = %v, want ErrInvalidLedger", err)
			}
		})
	}
}

func TestMetrics_TopExpenseCategory(t *testing.T) {
	tests := []struct {
		name       string
		categories []CategoryAmount
		want       string
		wantOK     bool
	}{
		{
			name: "highest wins",
			categories: []CategoryAmount{
				{Category: "Food", Amount: decimal.NewFromInt(3000)},
				{Category: "Housing", Amount: decimal.NewFromInt(20000)},
			},
			want:   "Housing",
			wantOK: true,
		},
		{
			name: "tie keeps the earlier category",
			categories: []CategoryAmount{
				{Category: "Bills", Amount: decimal.NewFromInt(500)},
				{Category: "Food", Amount: decimal.NewFromInt(500)},
			},
			want:   "Bills",
			wantOK: true,
		},
		{
			name:       "no expenses",
			categories: nil,
			want:       "",
			wantOK:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Metrics{ExpenseByCategory: tt.categories}
			got, ok := m.TopExpenseCategory()
			if ok != tt.wantOK {
				t.Fatalf("TopExpenseCategory() ok = %v, want %v", ok, tt.wantOK)
			}
			if got.Category != tt.want {
				t.Errorf("TopExpenseCategory() = %q, want %q", got.Category, tt.want)
			}
		})
	}
}

func TestMetrics_CategoryTotal(t *testing.T) {
	m := Metrics{ExpenseByCategory: []CategoryAmount{
		{Category: "Food", Amount: decimal.NewFromInt(3000)},
	}}

	if got, ok := m.CategoryTotal("Food"); !ok || !got.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("CategoryTotal(Food) = %s, %v, want 3000, true", got, ok)
	}
	if _, ok := m.CategoryTotal("Housing"); ok {
		t.Error("CategoryTotal(Housing) ok = true, want false")
	}
}
