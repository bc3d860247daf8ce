package components

import (
	"strings"

	"github.com/Veraticus/coinpurse/internal/tui/themes"
	"github.com/Veraticus/coinpurse/internal/validation"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Form is the part of a form controller the view drives.
type Form interface {
	Fields() []validation.Field
	Value(field validation.Field) string
	OnChange(field validation.Field, value string)
	OnBlur(field validation.Field)
	Error(field validation.Field) string
	Busy() bool
}

// SubmitMsg is sent when the user submits the focused form.
type SubmitMsg struct{}

// FormViewModel renders a form as a column of text inputs. Choice fields
// cycle through fixed options instead of taking free text.
type FormViewModel struct {
	form    Form
	inputs  map[validation.Field]textinput.Model
	choices map[validation.Field][]string
	theme   themes.Theme
	focus   int
}

// NewFormView creates a view over form. choices lists the allowed values of
// fields that are picked rather than typed.
func NewFormView(form Form, choices map[validation.Field][]string, theme themes.Theme) FormViewModel {
	m := FormViewModel{
		form:    form,
		inputs:  make(map[validation.Field]textinput.Model),
		choices: choices,
		theme:   theme,
	}
	m.sync()
	m.focusCurrent()
	return m
}

// Form returns the underlying form.
func (m FormViewModel) Form() Form {
	return m.form
}

// Focused returns the field holding the cursor.
func (m FormViewModel) Focused() validation.Field {
	fields := m.form.Fields()
	if len(fields) == 0 {
		return 0
	}
	return fields[min(m.focus, len(fields)-1)]
}

// Update handles key presses.
func (m FormViewModel) Update(msg tea.Msg) (FormViewModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.form.Busy() {
		return m, nil
	}

	fields := m.form.Fields()
	if len(fields) == 0 {
		return m, nil
	}
	current := m.Focused()

	switch key.String() {
	case "tab", "down":
		m.moveFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, nil
	case "enter":
		m.form.OnBlur(current)
		m.sync()
		return m, func() tea.Msg { return SubmitMsg{} }
	}

	if options, ok := m.choices[current]; ok {
		switch key.String() {
		case "left":
			m.form.OnChange(current, cycle(options, m.form.Value(current), -1))
		case "right", " ", "space":
			m.form.OnChange(current, cycle(options, m.form.Value(current), 1))
		}
		m.sync()
		return m, nil
	}

	input := m.inputs[current]
	input, cmd := input.Update(msg)
	m.inputs[current] = input
	if input.Value() != m.form.Value(current) {
		m.form.OnChange(current, input.Value())
	}
	m.sync()
	return m, cmd
}

// moveFocus blurs the field being left, which is what marks it touched.
func (m *FormViewModel) moveFocus(delta int) {
	fields := m.form.Fields()
	m.form.OnBlur(m.Focused())
	m.focus = (min(m.focus, len(fields)-1) + delta + len(fields)) % len(fields)
	m.sync()
	m.focusCurrent()
}

// sync copies form values into the inputs. The form may rewrite values on
// its own, for example clearing the category when the type changes.
func (m *FormViewModel) sync() {
	for _, field := range m.form.Fields() {
		input, ok := m.inputs[field]
		if !ok {
			input = textinput.New()
			input.Prompt = ""
			input.CharLimit = 120
			if field.Secret() {
				input.EchoMode = textinput.EchoPassword
				input.EchoCharacter = '•'
			}
		}
		if value := m.form.Value(field); input.Value() != value {
			input.SetValue(value)
		}
		m.inputs[field] = input
	}
}

func (m *FormViewModel) focusCurrent() {
	current := m.Focused()
	for field, input := range m.inputs {
		if field == current {
			input.Focus()
		} else {
			input.Blur()
		}
		m.inputs[field] = input
	}
}

// View renders the form.
func (m FormViewModel) View() string {
	current := m.Focused()
	rows := make([]string, 0, len(m.inputs)*2)

	for _, field := range m.form.Fields() {
		label := m.theme.Label.Render(field.Label())
		var value string
		if options, ok := m.choices[field]; ok {
			value = m.renderChoice(options, m.form.Value(field), field == current)
		} else {
			value = m.inputs[field].View()
		}

		marker := "  "
		if field == current {
			marker = lipgloss.NewStyle().Foreground(m.theme.Primary).Render("▸ ")
		}
		rows = append(rows, marker+label+value)

		if msg := m.form.Error(field); msg != "" {
			rows = append(rows, "  "+m.theme.Label.Render("")+m.theme.StatusError.Render(msg))
		}
	}

	if m.form.Busy() {
		rows = append(rows, "", m.theme.StatusPending.Render("Working..."))
	}

	return strings.Join(rows, "\n")
}

func (m FormViewModel) renderChoice(options []string, value string, focused bool) string {
	parts := make([]string, 0, len(options))
	for _, opt := range options {
		if opt == value {
			parts = append(parts, m.theme.ActiveTab.Render(opt))
		} else {
			parts = append(parts, m.theme.Tab.Render(opt))
		}
	}
	out := strings.Join(parts, "")
	if focused {
		out += lipgloss.NewStyle().Foreground(m.theme.Muted).Render("  ←/→")
	}
	return out
}

func cycle(options []string, current string, delta int) string {
	if len(options) == 0 {
		return current
	}
	idx := -1
	for i, opt := range options {
		if opt == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		if delta < 0 {
			return options[len(options)-1]
		}
		return options[0]
	}
	return options[(idx+delta+len(options))%len(options)]
}
