package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"spending/internal/core"
	"spending/internal/report"
)

// Theme colors
var (
	ColorBorder    = lipgloss.Color("#575653")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorRed       = lipgloss.Color("#D14D41")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	labelStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	positiveStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	negativeStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)
)

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(44).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderReport renders the totals and the per-category list of rep.
// Categories are listed largest first.
func RenderReport(rep core.SpendingReport) string {
	var b strings.Builder

	b.WriteString(RenderTitle("Spending Report"))
	b.WriteString("\n\n")

	totals := [][2]string{
		{"Total Income", money(rep.TotalIncome)},
		{"Total Expenses", core.FormatEuros(rep.TotalExpenses)},
		{"Total Savings", money(rep.TotalSavings)},
		{"Remaining Budget", money(rep.RemainingBudget)},
		{"Total Expenses without bills", core.FormatEuros(rep.ExpensesWithoutBills)},
	}
	writeRows(&b, totals)

	b.WriteString("\n  ")
	b.WriteString(headerStyle.Render("Expenses per Category"))
	b.WriteString("\n")

	breakdown := report.CategoryBreakdown(rep)
	if len(breakdown) == 0 {
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("no expenses"))
		b.WriteString("\n")
	}
	rows := make([][2]string, 0, len(breakdown))
	for _, c := range breakdown {
		name := c.Name
		if core.IsBill(c.Name) {
			name += " (bill)"
		}
		rows = append(rows, [2]string{name, core.FormatEuros(c.Amount)})
	}
	writeRows(&b, rows)

	b.WriteString("  ")
	b.WriteString(dimStyle.Render(strings.Repeat("─", 44)))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%d transactions", len(rep.Transactions))))
	b.WriteString("\n")

	return b.String()
}

// writeRows writes label/value pairs with the values right-aligned.
// lipgloss.Width ignores ANSI sequences, so styled values line up.
func writeRows(b *strings.Builder, rows [][2]string) {
	labelWidth, valueWidth := 0, 0
	for _, r := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(r[0]))
		valueWidth = max(valueWidth, lipgloss.Width(r[1]))
	}
	for _, r := range rows {
		b.WriteString("  ")
		b.WriteString(labelStyle.Render(r[0] + strings.Repeat(" ", labelWidth-lipgloss.Width(r[0]))))
		b.WriteString("  ")
		b.WriteString(strings.Repeat(" ", valueWidth-lipgloss.Width(r[1])))
		b.WriteString(r[1])
		b.WriteString("\n")
	}
}

// money colors a signed amount green or red.
func money(d decimal.Decimal) string {
	s := core.FormatEuros(d)
	if d.IsNegative() {
		return negativeStyle.Render(s)
	}
	return positiveStyle.Render(s)
}
