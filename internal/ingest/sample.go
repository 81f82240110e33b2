package ingest

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/arthguru/finance-coach/internal/domain"
)

// Profile describes the shape of a generated sample ledger: a salary paid
// on the first of each month and day-by-day expense draws per category.
type Profile struct {
	Start    string           `yaml:"start"` // first income date, YYYY-MM-DD
	Months   int              `yaml:"months"`
	Income   IncomeProfile    `yaml:"income"`
	Expenses []ExpenseProfile `yaml:"expenses"`
}

// IncomeProfile is the monthly income draw.
type IncomeProfile struct {
	Category string  `yaml:"category"`
	Min      float64 `yaml:"min"`
	Max      float64 `yaml:"max"`
}

// ExpenseProfile is one expense category's daily draw.
type ExpenseProfile struct {
	Category string  `yaml:"category"`
	Min      float64 `yaml:"min"`
	Max      float64 `yaml:"max"`
	Chance   float64 `yaml:"chance"` // per-day probability of one purchase
}

// DefaultProfile mirrors the built-in demo dataset: six months of salary
// from April 2025 and eight expense categories.
func DefaultProfile() Profile {
	return Profile{
		Start:  "2025-04-01",
		Months: 6,
		Income: IncomeProfile{Category: "Salary", Min: 40000, Max: 50000},
		Expenses: []ExpenseProfile{
			{Category: "Food", Min: 150, Max: 600, Chance: 0.8},
			{Category: "Housing", Min: 800, Max: 1500, Chance: 0.3},
			{Category: "Transportation", Min: 50, Max: 300, Chance: 0.4},
			{Category: "Entertainment", Min: 200, Max: 1200, Chance: 0.3},
			{Category: "Bills", Min: 500, Max: 2500, Chance: 0.2},
			{Category: "Healthcare", Min: 300, Max: 1500, Chance: 0.1},
			{Category: "Clothing", Min: 800, Max: 3000, Chance: 0.05},
			{Category: "Misc", Min: 100, Max: 800, Chance: 0.2},
		},
	}
}

// LoadProfile reads a YAML profile from disk.
func LoadProfile(path string) (Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("load profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Profile{}, fmt.Errorf("load profile: %w", err)
	}
	if err := p.validate(); err != nil {
		return Profile{}, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

func (p Profile) validate() error {
	if _, err := time.Parse(DateLayout, p.Start); err != nil {
		return fmt.Errorf("start %q: want %s", p.Start, DateLayout)
	}
	if p.Months <= 0 {
		return fmt.Errorf("months must be positive, got %d", p.Months)
	}
	if p.Income.Category == "" {
		return fmt.Errorf("income category is empty")
	}
	if p.Income.Max < p.Income.Min {
		return fmt.Errorf("income range %v-%v is inverted", p.Income.Min, p.Income.Max)
	}
	for i, e := range p.Expenses {
		if e.Category == "" {
			return fmt.Errorf("expense %d: category is empty", i+1)
		}
		if e.Max < e.Min {
			return fmt.Errorf("expense %q: range %v-%v is inverted", e.Category, e.Min, e.Max)
		}
		if e.Chance < 0 || e.Chance > 1 {
			return fmt.Errorf("expense %q: chance %v outside [0, 1]", e.Category, e.Chance)
		}
	}
	return nil
}

// Generate builds a ledger from a profile: one income row on the first of
// each month, then zero or more expense rows per day drawn from rng. The
// same profile and seed always produce the same ledger.
func Generate(p Profile, rng *rand.Rand) (domain.Ledger, error) {
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	parsed, _ := time.Parse(DateLayout, p.Start)
	start := time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, p.Months, 0)

	var ledger domain.Ledger
	for m := 0; m < p.Months; m++ {
		ledger = append(ledger, domain.Transaction{
			Date:     start.AddDate(0, m, 0),
			Income:   randomAmount(rng, p.Income.Min, p.Income.Max),
			Category: p.Income.Category,
		})
	}

	for dayLoop := start; dayLoop.Before(end); dayLoop = dayLoop.AddDate(0, 0, 1) {
		for _, e := range p.Expenses {
			if rng.Float64() < e.Chance {
				ledger = append(ledger, domain.Transaction{
					Date:     dayLoop,
					Spending: randomAmount(rng, e.Min, e.Max),
					Category: e.Category,
				})
			}
		}
	}
	return ledger, nil
}

// randomAmount draws a uniform amount in [min, max), rounded to cents.
func randomAmount(rng *rand.Rand, min, max float64) decimal.Decimal {
	v := min + rng.Float64()*(max-min)
	return decimal.NewFromFloat(v).Round(2)
}
