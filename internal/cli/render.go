// Package cli renders pipeline results for the terminal.
package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/arthguru/finance-coach/internal/analysis"
	"github.com/arthguru/finance-coach/internal/domain"
)

const barWidth = 24

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981")).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF")).
			Width(20)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6"))

	boldStyle = lipgloss.NewStyle().Bold(true)

	criticalBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#EF4444")).
			Padding(0, 1).
			Width(76)

	warningBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#F59E0B")).
			Padding(0, 1).
			Width(76)

	successBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#10B981")).
			Padding(0, 1).
			Width(76)

	answerBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 1).
			Width(76)

	goalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8B5CF6"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)

// RenderTitle returns the application banner.
func RenderTitle() string {
	return titleStyle.Render("🧘 ArthGuru: Financial Coach")
}

// RenderChatIntro returns the heading for the interactive session.
func RenderChatIntro() string {
	return sectionStyle.Render("💬 Chat with Your Financial Coach") +
		"\nAsk about savings, spending, or your plan. Pick a question or type your own."
}

// RenderMetrics lays out the headline numbers and the per-category
// spending bars.
func RenderMetrics(m domain.Metrics) string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("📊 Financial Metrics"))
	b.WriteString("\n\n")
	b.WriteString(metricLine("Total Income", domain.FormatAmount(m.TotalIncome)))
	b.WriteString(metricLine("Total Expenses", domain.FormatAmount(m.TotalExpenses)))
	b.WriteString(metricLine("Net Savings", domain.FormatAmount(m.NetSavings)))
	b.WriteString(metricLine("Savings Rate", fmt.Sprintf("%.1f%%", m.SavingsRate)))
	if !math.IsNaN(m.AvgMonthlyIncome) {
		avg := decimal.NewFromFloat(m.AvgMonthlyIncome)
		b.WriteString(metricLine("Avg Monthly Income", domain.FormatAmount(avg)))
	}

	if len(m.ExpenseByCategory) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Spending by Category"))
		b.WriteString("\n\n")

		max := m.ExpenseByCategory[0].Amount
		for _, c := range m.ExpenseByCategory[1:] {
			if c.Amount.GreaterThan(max) {
				max = c.Amount
			}
		}
		for _, c := range m.ExpenseByCategory {
			b.WriteString(fmt.Sprintf("  %s %10s  %s\n",
				labelStyle.Render(c.Category),
				domain.FormatAmount(c.Amount),
				barStyle.Render(categoryBar(c.Amount, max)),
			))
		}
	}

	return b.String()
}

// RenderPlan shows each recommendation in a severity-colored box,
// followed by the goal list.
func RenderPlan(p domain.Plan) string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("📋 Personalized Plan"))
	b.WriteString("\n\n")

	for _, rec := range p.Recommendations {
		box := successBox
		switch rec.Severity {
		case domain.SeverityCritical:
			box = criticalBox
		case domain.SeverityWarning:
			box = warningBox
		}
		b.WriteString(box.Render(boldStyle.Render(rec.Title) + "\n" + rec.Message))
		b.WriteString("\n")
	}

	if len(p.Goals) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("🎯 Your Financial Goals"))
		b.WriteString("\n")
		for _, goal := range p.Goals {
			b.WriteString(goalStyle.Render("  • "+goal) + "\n")
		}
	}

	return b.String()
}

// RenderReport lists income, spending and net per calendar month.
func RenderReport(months []analysis.MonthlyFlow) string {
	if len(months) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("📅 Monthly Cash Flow"))
	b.WriteString("\n\n")

	for _, flow := range months {
		net := flow.Income.Sub(flow.Spending)
		b.WriteString(fmt.Sprintf("  %s   income %10s   spending %10s   net %10s\n",
			flow.Month,
			domain.FormatAmount(flow.Income),
			domain.FormatAmount(flow.Spending),
			domain.FormatAmount(net),
		))
	}

	return b.String()
}

// RenderAnswer wraps one advisor reply in a box.
func RenderAnswer(answer string) string {
	return answerBox.Render(answer)
}

// RenderError formats an error for the terminal.
func RenderError(err error) string {
	return errorStyle.Render("✗ " + err.Error())
}

func metricLine(label, value string) string {
	return fmt.Sprintf("  %s %s\n", labelStyle.Render(label), value)
}

// categoryBar scales an amount against the largest category.
func categoryBar(amount, max decimal.Decimal) string {
	if !max.IsPositive() {
		return ""
	}
	ratio, _ := amount.Div(max).Float64()
	n := int(ratio*barWidth + 0.5)
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", n)
}
