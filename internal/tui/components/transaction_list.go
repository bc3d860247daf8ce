package components

import (
	"github.com/Veraticus/coinpurse/internal/model"
	"github.com/Veraticus/coinpurse/internal/tui/themes"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Names resolves ids to display names.
type Names interface {
	WalletName(id string) string
	Category(id string) (model.Category, bool)
}

// TransactionListModel manages the transaction table.
type TransactionListModel struct {
	theme        themes.Theme
	names        Names
	transactions []model.Transaction
	table        table.Model
	width        int
	height       int
}

// NewTransactionList creates a new transaction list.
func NewTransactionList(names Names, theme themes.Theme) TransactionListModel {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	m := TransactionListModel{
		names:  names,
		table:  t,
		theme:  theme,
		width:  80,
		height: 16,
	}
	m.updateColumnWidths()
	return m
}

// SetTransactions replaces the rows shown.
func (m *TransactionListModel) SetTransactions(transactions []model.Transaction) {
	m.transactions = transactions
	m.table.SetRows(m.buildTableRows())
	if m.table.Cursor() >= len(transactions) {
		m.table.SetCursor(max(0, len(transactions)-1))
	}
}

// Selected returns the transaction under the cursor.
func (m TransactionListModel) Selected() (model.Transaction, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.transactions) {
		return model.Transaction{}, false
	}
	return m.transactions[i], true
}

// Len returns the number of rows shown.
func (m TransactionListModel) Len() int {
	return len(m.transactions)
}

// Update handles messages.
func (m TransactionListModel) Update(msg tea.Msg) (TransactionListModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the transaction list.
func (m TransactionListModel) View() string {
	if len(m.transactions) == 0 {
		return m.theme.StatusPending.Render("No transactions match the current filters.")
	}
	return m.table.View()
}

func (m TransactionListModel) buildTableRows() []table.Row {
	rows := make([]table.Row, 0, len(m.transactions))
	for _, txn := range m.transactions {
		rows = append(rows, table.Row{
			txn.Date.Format("2006-01-02"),
			string(txn.Type),
			m.amount(txn),
			m.detail(txn),
			m.wallet(txn),
			truncate(txn.Notes, 30),
		})
	}
	return rows
}

func (m TransactionListModel) amount(txn model.Transaction) string {
	// Styling inside table cells breaks the selected row highlight.
	switch txn.Type {
	case model.TransactionTypeIncome:
		return "+" + txn.Amount.StringFixed(2)
	case model.TransactionTypeExpense:
		return "-" + txn.Amount.StringFixed(2)
	default:
		return txn.Amount.StringFixed(2)
	}
}

func (m TransactionListModel) detail(txn model.Transaction) string {
	if txn.Type.IsTransfer() {
		return "Transfer"
	}
	if c, ok := m.names.Category(txn.CategoryID); ok {
		return c.Name
	}
	return "Uncategorized"
}

func (m TransactionListModel) wallet(txn model.Transaction) string {
	if txn.Type.IsTransfer() {
		return m.names.WalletName(txn.FromWalletID) + " → " + m.names.WalletName(txn.ToWalletID)
	}
	return m.names.WalletName(txn.WalletID)
}

// Resize updates the component size.
func (m *TransactionListModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(1, height))
	m.updateColumnWidths()
}

func (m *TransactionListModel) updateColumnWidths() {
	availableWidth := max(60, m.width-4)
	m.table.SetColumns([]table.Column{
		{Title: "Date", Width: 10},
		{Title: "Type", Width: 8},
		{Title: "Amount", Width: 12},
		{Title: "Category", Width: max(12, int(float64(availableWidth)*0.2))},
		{Title: "Wallet", Width: max(12, int(float64(availableWidth)*0.22))},
		{Title: "Notes", Width: max(10, availableWidth-42-int(float64(availableWidth)*0.42))},
	})
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
