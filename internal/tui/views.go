package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/coinpurse/internal/aggregate"
	"github.com/Veraticus/coinpurse/internal/recovery"
	"github.com/Veraticus/coinpurse/internal/tui/components"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.screen {
	case ScreenLogin:
		body = m.renderFormScreen("Log in", "Sign in to your purse")
	case ScreenRecovery:
		body = m.renderFormScreen("Reset password", recoveryHint(m.wizard))
	case ScreenTransactions:
		body = m.renderTransactions()
	case ScreenCategories:
		body = m.renderCategories()
	case ScreenCategoryForm:
		title := "New category"
		if m.editing != "" {
			title = "Edit category"
		}
		body = m.renderFormScreen(title, "")
	}

	sections := []string{body}
	if notice := m.renderNotice(); notice != "" {
		sections = append([]string{notice}, sections...)
	}
	sections = append(sections, "", m.help.View(m.keymap.forScreen(m.screen)))

	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderNotice() string {
	if m.notice == "" {
		return ""
	}
	if m.noticeErr {
		return m.theme.StatusError.Render("✗ "+m.notice) + "\n"
	}
	return m.theme.StatusSuccess.Render("✓ "+m.notice) + "\n"
}

func (m Model) renderFormScreen(title, subtitle string) string {
	parts := []string{m.theme.Title.Render(title)}
	if subtitle != "" {
		parts = append(parts, m.theme.Subtitle.Render(subtitle), "")
	}
	parts = append(parts, m.formView.View())
	return m.theme.RoundedBox.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func recoveryHint(w *recovery.Wizard) string {
	if w == nil {
		return ""
	}
	switch w.State() {
	case recovery.AwaitingEmail:
		return "Step 1 of 3: we will email you a verification code"
	case recovery.AwaitingOTP:
		return fmt.Sprintf("Step 2 of 3: enter the code sent to %s", w.Email())
	case recovery.AwaitingNewPassword:
		return "Step 3 of 3: choose a new password"
	default:
		return ""
	}
}

func (m Model) renderTabs() string {
	tabs := []struct {
		label  string
		screen Screen
	}{
		{"Transactions", ScreenTransactions},
		{"Categories", ScreenCategories},
	}
	out := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.screen == m.screen {
			out = append(out, m.theme.ActiveTab.Render(t.label))
		} else {
			out = append(out, m.theme.Tab.Render(t.label))
		}
	}
	return strings.Join(out, " ")
}

func (m Model) renderTransactions() string {
	// Totals cover every loaded transaction, whatever the filters show.
	summary := aggregate.Summarize(m.store.Transactions.List())

	filters := m.theme.Subtitle.Render(fmt.Sprintf(
		"Type: %s   Window: %s   Showing %d of %d",
		m.txType, m.window, m.transactions.Len(), m.store.Transactions.Len(),
	))

	list := m.transactions.View()
	if m.loading {
		list = m.theme.StatusPending.Render("Loading...")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTabs(),
		"",
		components.SummaryCards(m.theme, summary),
		filters,
		"",
		list,
	)
}

func (m Model) renderCategories() string {
	counts := aggregate.CountCategories(m.store.Categories.List())

	filters := m.theme.Subtitle.Render(fmt.Sprintf(
		"Type: %s   Showing %d of %d",
		m.catType, m.categories.Len(), m.store.Categories.Len(),
	))

	list := m.categories.View()
	if m.loading {
		list = m.theme.StatusPending.Render("Loading...")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTabs(),
		"",
		components.CategoryCountCards(m.theme, counts),
		filters,
		"",
		list,
	)
}
