// Package advisor answers free-text questions about one computed
// metrics/plan pair. Routing is literal substring matching against a
// fixed keyword list on the lower-cased query, first match wins. The
// advisor keeps no state between calls.
package advisor

import (
	"fmt"
	"strings"

	"github.com/arthguru/finance-coach/internal/domain"
)

const fallbackAnswer = "I can answer questions about savings, spending, and your financial plan. What would you like to know?"

// Advisor is bound to the results of one pipeline run.
type Advisor struct {
	metrics domain.Metrics
	plan    domain.Plan
}

// New binds an advisor to the results it will answer about.
func New(metrics domain.Metrics, plan domain.Plan) *Advisor {
	return &Advisor{metrics: metrics, plan: plan}
}

// Answer maps a question to one of the canned response branches. Every
// query gets a response; anything unmatched falls through to a hint about
// the supported topics. The summary branch outranks the savings branch,
// which outranks the spending branch.
func (a *Advisor) Answer(query string) string {
	q := strings.ToLower(query)

	switch {
	case strings.Contains(q, "summarize") || strings.Contains(q, "health"):
		return a.healthSummary()
	case strings.Contains(q, "savings") || strings.Contains(q, "save"):
		return a.savingsAdvice()
	case strings.Contains(q, "spending") || strings.Contains(q, "expenses"):
		return a.spendingAdvice()
	default:
		return fallbackAnswer
	}
}

func (a *Advisor) healthSummary() string {
	return fmt.Sprintf("Your overall financial health is fair. You have a savings rate of %.1f%% and a net savings of %s. "+
		"Your main challenge is a low savings rate, but you have a stable income. "+
		"Focusing on reducing non-essential spending will significantly improve your financial standing.",
		a.metrics.SavingsRate, domain.FormatAmount(a.metrics.NetSavings))
}

func (a *Advisor) savingsAdvice() string {
	return fmt.Sprintf("Based on your current financial data, you're saving %.1f%% of your income. "+
		"The recommended savings rate is 15-20%%. "+
		"I suggest setting up automatic transfers to a savings account right after you receive income.",
		a.metrics.SavingsRate)
}

func (a *Advisor) spendingAdvice() string {
	top, ok := a.metrics.TopExpenseCategory()
	if !ok {
		return fallbackAnswer
	}
	return fmt.Sprintf("Your highest expense category is %s at %s. "+
		"I recommend reviewing this category for potential savings.",
		top.Category, domain.FormatAmount(top.Amount))
}
