package components

import (
	"fmt"

	"github.com/Veraticus/coinpurse/internal/aggregate"
	"github.com/Veraticus/coinpurse/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// SummaryCards renders the income, expense, and net totals side by side.
func SummaryCards(theme themes.Theme, s aggregate.Summary) string {
	net := theme.Income
	if s.Net.IsNegative() {
		net = theme.Expense
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		card(theme, "Income", theme.Income.Render(s.Income.StringFixed(2))),
		card(theme, "Expense", theme.Expense.Render(s.Expense.StringFixed(2))),
		card(theme, "Net", net.Render(s.Net.StringFixed(2))),
		card(theme, "Transactions", theme.Bold.Render(fmt.Sprint(s.Count))),
	)
}

// CategoryCountCards renders how many categories exist per type.
func CategoryCountCards(theme themes.Theme, c aggregate.CategoryCounts) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		card(theme, "Total", theme.Bold.Render(fmt.Sprint(c.Total()))),
		card(theme, "Income", theme.Income.Render(fmt.Sprint(c.Income))),
		card(theme, "Expense", theme.Expense.Render(fmt.Sprint(c.Expense))),
	)
}

func card(theme themes.Theme, title, value string) string {
	return theme.Card.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		theme.Subtitle.Render(title),
		value,
	))
}
