package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	NextTab  key.Binding
	Back     key.Binding
	NextItem key.Binding

	// List actions
	CycleType   key.Binding
	CycleWindow key.Binding
	New         key.Binding
	Edit        key.Binding
	Delete      key.Binding
	Refresh     key.Binding

	// Forms
	Submit  key.Binding
	Forgot  key.Binding
	Options key.Binding

	// Application
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "switch screen"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back"),
		),
		NextItem: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("Tab", "next field"),
		),

		CycleType: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "type filter"),
		),
		CycleWindow: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "time filter"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),

		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "submit"),
		),
		Forgot: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("Ctrl+F", "forgot password"),
		),
		Options: key.NewBinding(
			key.WithKeys("left", "right"),
			key.WithHelp("←/→", "change option"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "quit"),
		),
	}
}

// screenHelp adapts a set of bindings to the help component.
type screenHelp []key.Binding

func (h screenHelp) ShortHelp() []key.Binding {
	return h
}

func (h screenHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h}
}

func (k KeyMap) forScreen(s Screen) screenHelp {
	switch s {
	case ScreenLogin:
		return screenHelp{k.NextItem, k.Submit, k.Forgot, k.ForceQuit}
	case ScreenRecovery:
		return screenHelp{k.NextItem, k.Submit, k.Back, k.ForceQuit}
	case ScreenTransactions:
		return screenHelp{k.Up, k.Down, k.CycleType, k.CycleWindow, k.Delete, k.Refresh, k.NextTab, k.Quit}
	case ScreenCategories:
		return screenHelp{k.Up, k.Down, k.CycleType, k.New, k.Edit, k.Delete, k.NextTab, k.Quit}
	case ScreenCategoryForm:
		return screenHelp{k.NextItem, k.Options, k.Submit, k.Back}
	default:
		return screenHelp{k.ForceQuit}
	}
}
