package tui

import (
	"context"
	"strings"

	"github.com/Veraticus/coinpurse/internal/common"
	"github.com/Veraticus/coinpurse/internal/form"
	"github.com/Veraticus/coinpurse/internal/validation"
	tea "github.com/charmbracelet/bubbletea"
)

// Commands capture what they need from the model up front because they run
// on their own goroutine after Update has returned.

func (m *Model) loadAll() tea.Cmd {
	coord, ctx, gen := m.config.Coordinator, m.screenCtx, m.gen
	if coord == nil {
		return nil
	}
	m.loading = true
	return func() tea.Msg {
		return loadedMsg{gen: gen, err: coord.LoadAll(ctx, nil)}
	}
}

func (m Model) submitLogin() tea.Cmd {
	f, ctx, gen := m.loginForm, m.screenCtx, m.gen
	auth, onLogin := m.config.Auth, m.config.OnLogin
	if auth == nil {
		return nil
	}
	return func() tea.Msg {
		msg := loginMsg{gen: gen}
		msg.err = f.Submit(ctx, func(ctx context.Context, v form.Values[validation.Field]) error {
			result, err := auth.Login(ctx, strings.TrimSpace(v[validation.Email]), v[validation.Password])
			if err != nil {
				return err
			}
			msg.result = result
			if onLogin != nil {
				return onLogin(result)
			}
			return nil
		})
		return msg
	}
}

func (m Model) submitRecovery() tea.Cmd {
	w, ctx, gen := m.wizard, m.screenCtx, m.gen
	return func() tea.Msg {
		return recoveryMsg{gen: gen, err: w.Submit(ctx)}
	}
}

func (m Model) submitCategory() tea.Cmd {
	coord, f, ctx, gen, id := m.config.Coordinator, m.categoryForm, m.screenCtx, m.gen, m.editing
	if coord == nil {
		return nil
	}
	return func() tea.Msg {
		err := f.Submit(ctx, func(ctx context.Context, v form.Values[validation.Field]) error {
			in := form.CategoryInput(v)
			if id == "" {
				_, err := coord.CreateCategory(ctx, in)
				return err
			}
			_, err := coord.UpdateCategory(ctx, id, in)
			return err
		})
		return mutationMsg{gen: gen, err: err, notice: "Category saved", next: ScreenCategories}
	}
}

func (m Model) deleteCategory(id string) tea.Cmd {
	coord, ctx, gen := m.config.Coordinator, m.screenCtx, m.gen
	if coord == nil {
		return nil
	}
	return func() tea.Msg {
		err := coord.DeleteCategory(ctx, id)
		if err != nil {
			common.LogDebug("Category delete rejected", common.Fields{"id": id, "error": err.Error()})
		}
		return mutationMsg{gen: gen, err: err, notice: "Category deleted", next: ScreenCategories}
	}
}

func (m Model) deleteTransaction(id string) tea.Cmd {
	coord, ctx, gen := m.config.Coordinator, m.screenCtx, m.gen
	if coord == nil {
		return nil
	}
	return func() tea.Msg {
		return mutationMsg{gen: gen, err: coord.DeleteTransaction(ctx, id), notice: "Transaction deleted", next: ScreenTransactions}
	}
}
