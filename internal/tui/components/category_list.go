package components

import (
	"github.com/Veraticus/coinpurse/internal/icons"
	"github.com/Veraticus/coinpurse/internal/model"
	"github.com/Veraticus/coinpurse/internal/tui/themes"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CategoryListModel manages the category table.
type CategoryListModel struct {
	theme      themes.Theme
	categories []model.Category
	table      table.Model
}

// NewCategoryList creates a new category list.
func NewCategoryList(theme themes.Theme) CategoryListModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "", Width: 3},
			{Title: "Name", Width: 24},
			{Title: "Type", Width: 8},
			{Title: "Color", Width: 8},
			{Title: "", Width: 8},
		}),
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

	return CategoryListModel{theme: theme, table: t}
}

// SetCategories replaces the rows shown.
func (m *CategoryListModel) SetCategories(categories []model.Category) {
	m.categories = categories
	rows := make([]table.Row, 0, len(categories))
	for _, c := range categories {
		badge := ""
		if c.IsDefault {
			badge = "default"
		}
		rows = append(rows, table.Row{
			icons.Resolve(c.Icon).Glyph,
			c.Name,
			string(c.Type),
			c.Color,
			badge,
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(categories) {
		m.table.SetCursor(max(0, len(categories)-1))
	}
}

// Selected returns the category under the cursor.
func (m CategoryListModel) Selected() (model.Category, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.categories) {
		return model.Category{}, false
	}
	return m.categories[i], true
}

// Len returns the number of rows shown.
func (m CategoryListModel) Len() int {
	return len(m.categories)
}

// Update handles messages.
func (m CategoryListModel) Update(msg tea.Msg) (CategoryListModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Resize updates the component height.
func (m *CategoryListModel) Resize(height int) {
	m.table.SetHeight(max(1, height))
}

// View renders the category list.
func (m CategoryListModel) View() string {
	if len(m.categories) == 0 {
		return m.theme.StatusPending.Render("No categories match the current filter.")
	}
	return m.table.View()
}
