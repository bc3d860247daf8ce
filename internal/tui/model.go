// Package tui implements the interactive terminal client.
package tui

import (
	"context"
	"errors"

	"github.com/Veraticus/coinpurse/internal/common"
	"github.com/Veraticus/coinpurse/internal/filter"
	"github.com/Veraticus/coinpurse/internal/form"
	"github.com/Veraticus/coinpurse/internal/icons"
	"github.com/Veraticus/coinpurse/internal/model"
	"github.com/Veraticus/coinpurse/internal/recovery"
	"github.com/Veraticus/coinpurse/internal/store"
	"github.com/Veraticus/coinpurse/internal/tui/components"
	"github.com/Veraticus/coinpurse/internal/tui/themes"
	"github.com/Veraticus/coinpurse/internal/validation"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Screen is the view currently shown.
type Screen int

// Screens.
const (
	ScreenLogin Screen = iota
	ScreenRecovery
	ScreenTransactions
	ScreenCategories
	ScreenCategoryForm
)

// Model holds the main TUI state.
type Model struct {
	ctx          context.Context
	screenCtx    context.Context
	cancelScreen context.CancelFunc
	store        *store.Store
	loginForm    *form.Controller[validation.Field]
	wizard       *recovery.Wizard
	categoryForm *form.Controller[validation.Field]
	theme        themes.Theme
	config       Config
	notice       string
	editing      string
	txType       filter.TypeSelection
	window       filter.Window
	catType      filter.TypeSelection
	formView     components.FormViewModel
	transactions components.TransactionListModel
	categories   components.CategoryListModel
	help         help.Model
	keymap       KeyMap
	screen       Screen
	gen          int
	width        int
	height       int
	noticeErr    bool
	loading      bool
	quitting     bool
}

// New creates the root model. ctx bounds every request the TUI issues.
func New(ctx context.Context, cfg Config) Model {
	s := store.New()
	if cfg.Coordinator != nil {
		s = cfg.Coordinator.Store()
	}
	if cfg.Now == nil {
		cfg.Now = defaultConfig().Now
	}

	m := Model{
		ctx:          ctx,
		store:        s,
		theme:        cfg.Theme,
		config:       cfg,
		keymap:       DefaultKeyMap(),
		help:         help.New(),
		txType:       filter.TypeAll,
		window:       filter.WindowAll,
		catType:      filter.TypeAll,
		transactions: components.NewTransactionList(s, cfg.Theme),
		categories:   components.NewCategoryList(cfg.Theme),
		width:        cfg.Width,
		height:       cfg.Height,
	}
	m.resize()

	if cfg.LoggedIn {
		m.enter(ScreenTransactions)
		m.loading = true
	} else {
		m.enter(ScreenLogin)
	}
	return m
}

// Screen returns the screen being shown.
func (m Model) Screen() Screen {
	return m.screen
}

// Notice returns the message shown under the header.
func (m Model) Notice() string {
	return m.notice
}

// Init loads data when starting logged in.
func (m Model) Init() tea.Cmd {
	if m.screen == ScreenTransactions {
		return m.loadAll()
	}
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			return m.quit()
		}

	case loadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.setError(msg.err)
		}
		m.refresh()
		return m, nil

	case loginMsg:
		return m.handleLogin(msg)

	case recoveryMsg:
		return m.handleRecovery(msg)

	case mutationMsg:
		return m.handleMutation(msg)
	}

	switch m.screen {
	case ScreenLogin, ScreenRecovery, ScreenCategoryForm:
		return m.updateForm(msg)
	case ScreenTransactions:
		return m.updateTransactions(msg)
	case ScreenCategories:
		return m.updateCategories(msg)
	}
	return m, nil
}

// enter switches screens. Leaving a screen cancels whatever it still has in
// flight so late responses cannot change state behind the user's back.
func (m *Model) enter(s Screen) {
	if m.cancelScreen != nil {
		m.cancelScreen()
	}
	m.screenCtx, m.cancelScreen = context.WithCancel(m.ctx)
	m.gen++
	m.screen = s

	switch s {
	case ScreenLogin:
		m.loginForm = form.NewLoginForm()
		m.formView = components.NewFormView(m.loginForm, nil, m.theme)
	case ScreenRecovery:
		m.wizard = recovery.NewWizard(m.config.Recovery)
		m.formView = components.NewFormView(m.wizard.Form(), nil, m.theme)
	case ScreenCategoryForm:
		m.formView = components.NewFormView(m.categoryForm, categoryChoices(), m.theme)
	case ScreenTransactions, ScreenCategories:
		m.refresh()
	}
}

func categoryChoices() map[validation.Field][]string {
	keys := make([]string, 0, len(icons.All()))
	for _, icon := range icons.All() {
		keys = append(keys, string(icon.Key))
	}
	return map[validation.Field][]string{
		validation.CategoryType: {string(model.CategoryTypeIncome), string(model.CategoryTypeExpense)},
		validation.Icon:         keys,
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.cancelScreen != nil {
		m.cancelScreen()
	}
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) setNotice(notice string) {
	m.notice = notice
	m.noticeErr = false
}

// setError shows err as a notice. Field errors are already rendered inline
// and a busy form just ignores the extra submit.
func (m *Model) setError(err error) {
	var validationErr *common.ValidationError
	if errors.As(err, &validationErr) || errors.Is(err, form.ErrBusy) {
		return
	}
	m.notice = common.Notice(err)
	m.noticeErr = true
}

// refresh recomputes the filtered views from the store.
func (m *Model) refresh() {
	now := m.config.Now()
	m.transactions.SetTransactions(filter.Transactions(m.store.Transactions.List(), m.txType, m.window, now))
	m.categories.SetCategories(filter.Categories(m.store.Categories.List(), m.catType))
}

func (m *Model) resize() {
	// header, tabs, notice, cards, footer
	body := max(3, m.height-14)
	m.transactions.Resize(m.width, body)
	m.categories.Resize(body)
	m.help.Width = m.width
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keymap.Forgot) && m.screen == ScreenLogin:
			m.setNotice("")
			m.enter(ScreenRecovery)
			return m, nil
		case key.Matches(keyMsg, m.keymap.Back) && m.screen == ScreenRecovery:
			m.setNotice("")
			m.enter(ScreenLogin)
			return m, nil
		case key.Matches(keyMsg, m.keymap.Back) && m.screen == ScreenCategoryForm:
			m.enter(ScreenCategories)
			return m, nil
		}
	}

	if _, ok := msg.(components.SubmitMsg); ok {
		switch m.screen {
		case ScreenLogin:
			return m, m.submitLogin()
		case ScreenRecovery:
			return m, m.submitRecovery()
		case ScreenCategoryForm:
			return m, m.submitCategory()
		}
	}

	var cmd tea.Cmd
	m.formView, cmd = m.formView.Update(msg)
	return m, cmd
}

func (m Model) updateTransactions(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keymap.Quit):
			return m.quit()
		case key.Matches(keyMsg, m.keymap.NextTab):
			m.enter(ScreenCategories)
			return m, nil
		case key.Matches(keyMsg, m.keymap.CycleType):
			m.txType = m.txType.NextTransactionType()
			m.refresh()
			return m, nil
		case key.Matches(keyMsg, m.keymap.CycleWindow):
			m.window = m.window.Next()
			m.refresh()
			return m, nil
		case key.Matches(keyMsg, m.keymap.Refresh):
			cmd := m.loadAll()
			return m, cmd
		case key.Matches(keyMsg, m.keymap.Delete):
			if txn, ok := m.transactions.Selected(); ok {
				return m, m.deleteTransaction(txn.ID)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.transactions, cmd = m.transactions.Update(msg)
	return m, cmd
}

func (m Model) updateCategories(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keymap.Quit):
			return m.quit()
		case key.Matches(keyMsg, m.keymap.NextTab):
			m.enter(ScreenTransactions)
			return m, nil
		case key.Matches(keyMsg, m.keymap.CycleType):
			m.catType = m.catType.NextCategoryType()
			m.refresh()
			return m, nil
		case key.Matches(keyMsg, m.keymap.Refresh):
			cmd := m.loadAll()
			return m, cmd
		case key.Matches(keyMsg, m.keymap.New):
			m.editing = ""
			m.categoryForm = form.NewCategoryForm()
			m.enter(ScreenCategoryForm)
			return m, nil
		case key.Matches(keyMsg, m.keymap.Edit):
			if c, ok := m.categories.Selected(); ok {
				m.editing = c.ID
				m.categoryForm = form.NewCategoryForm()
				form.LoadCategory(m.categoryForm, c)
				m.enter(ScreenCategoryForm)
			}
			return m, nil
		case key.Matches(keyMsg, m.keymap.Delete):
			if c, ok := m.categories.Selected(); ok {
				return m, m.deleteCategory(c.ID)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.categories, cmd = m.categories.Update(msg)
	return m, cmd
}

func (m Model) handleLogin(msg loginMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	if msg.err != nil {
		m.setError(msg.err)
		return m, nil
	}
	m.setNotice("Welcome back, " + msg.result.User.Name)
	m.enter(ScreenTransactions)
	cmd := m.loadAll()
	return m, cmd
}

func (m Model) handleRecovery(msg recoveryMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	if msg.err != nil {
		m.setError(msg.err)
		return m, nil
	}

	notice := m.wizard.Notice()
	if m.wizard.Done() {
		m.enter(ScreenLogin)
		m.setNotice(notice)
		return m, nil
	}
	m.setNotice(notice)
	m.formView = components.NewFormView(m.wizard.Form(), nil, m.theme)
	return m, nil
}

func (m Model) handleMutation(msg mutationMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	if msg.err != nil {
		m.setError(msg.err)
		return m, nil
	}
	m.setNotice(msg.notice)
	if msg.next != m.screen {
		m.enter(msg.next)
	} else {
		m.refresh()
	}
	return m, nil
}
