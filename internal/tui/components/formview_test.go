package components

import (
	"testing"

	"github.com/Veraticus/coinpurse/internal/form"
	"github.com/Veraticus/coinpurse/internal/model"
	"github.com/Veraticus/coinpurse/internal/tui/themes"
	"github.com/Veraticus/coinpurse/internal/validation"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(m FormViewModel, text string) FormViewModel {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestFormView_TypingUpdatesForm(t *testing.T) {
	f := form.NewLoginForm()
	m := NewFormView(f, nil, themes.Default)

	m = typeText(m, "a@b")

	assert.Equal(t, "a@b", f.Value(validation.Email))
	assert.Empty(t, f.Error(validation.Email), "no error before blur")
}

func TestFormView_BlurOnFocusChange(t *testing.T) {
	f := form.NewLoginForm()
	m := NewFormView(f, nil, themes.Default)

	m = typeText(m, "a@b")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, validation.Password, m.Focused())
	assert.True(t, f.Touched(validation.Email))
	assert.Equal(t, "Please enter a valid email address", f.Error(validation.Email))
	assert.Contains(t, m.View(), "Please enter a valid email address")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, validation.Email, m.Focused())
	m = typeText(m, ".com")
	assert.Empty(t, f.Error(validation.Email), "touched field revalidates on change")
}

func TestFormView_EnterSubmits(t *testing.T) {
	m := NewFormView(form.NewLoginForm(), nil, themes.Default)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, SubmitMsg{}, cmd())
}

func TestFormView_ChoiceFieldsCycle(t *testing.T) {
	f := form.NewCategoryForm()
	choices := map[validation.Field][]string{
		validation.CategoryType: {string(model.CategoryTypeIncome), string(model.CategoryTypeExpense)},
	}
	m := NewFormView(f, choices, themes.Default)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, validation.CategoryType, m.Focused())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, string(model.CategoryTypeIncome), f.Value(validation.CategoryType))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, string(model.CategoryTypeIncome), f.Value(validation.CategoryType), "free text is ignored")

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, string(model.CategoryTypeExpense), f.Value(validation.CategoryType))
}

func TestFormView_ReflectsFormRewrites(t *testing.T) {
	f := form.NewTransactionForm(nil)
	f.OnChange(validation.CategoryID, "c1")
	choices := map[validation.Field][]string{
		validation.TransactionType: {"income", "expense", "transfer"},
	}
	m := NewFormView(f, choices, themes.Default)
	require.Equal(t, validation.TransactionType, m.Focused())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})

	assert.Equal(t, "transfer", f.Value(validation.TransactionType))
	assert.Empty(t, f.Value(validation.CategoryID))
	assert.NotContains(t, m.View(), "Category")
}

func TestCycle(t *testing.T) {
	opts := []string{"a", "b", "c"}
	assert.Equal(t, "b", cycle(opts, "a", 1))
	assert.Equal(t, "a", cycle(opts, "c", 1))
	assert.Equal(t, "c", cycle(opts, "a", -1))
	assert.Equal(t, "a", cycle(opts, "zzz", 1))
	assert.Equal(t, "c", cycle(opts, "", -1))
}
