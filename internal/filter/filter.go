// Package filter composes the list-view predicates over transactions and
// categories. Filters are evaluated fresh against the caller's "now".
package filter

import (
	"fmt"
	"time"

	"github.com/Veraticus/coinpurse/internal/model"
)

// Predicate reports whether an item belongs in a view.
type Predicate[T any] func(T) bool

// And combines predicates; all must pass.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	return func(item T) bool {
		for _, p := range preds {
			if p != nil && !p(item) {
				return false
			}
		}
		return true
	}
}

// Apply returns the items that satisfy pred, preserving order.
func Apply[T any](items []T, pred Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if pred == nil || pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// TypeSelection is the type filter of a list view.
type TypeSelection string

// Type selections. Categories only accept All, Income, and Expense.
const (
	TypeAll      TypeSelection = "all"
	TypeIncome   TypeSelection = "income"
	TypeExpense  TypeSelection = "expense"
	TypeTransfer TypeSelection = "transfer"
)

var (
	transactionTypes = []TypeSelection{TypeAll, TypeIncome, TypeExpense, TypeTransfer}
	categoryTypes    = []TypeSelection{TypeAll, TypeIncome, TypeExpense}
)

// ParseTypeSelection parses a transaction type filter.
func ParseTypeSelection(s string) (TypeSelection, error) {
	return parse(s, transactionTypes, "type")
}

// ParseCategorySelection parses a category type filter.
func ParseCategorySelection(s string) (TypeSelection, error) {
	return parse(s, categoryTypes, "category type")
}

// NextTransactionType cycles through the transaction type filters.
func (s TypeSelection) NextTransactionType() TypeSelection {
	return next(s, transactionTypes)
}

// NextCategoryType cycles through the category type filters.
func (s TypeSelection) NextCategoryType() TypeSelection {
	return next(s, categoryTypes)
}

// Window is the time filter of the transaction list.
type Window string

// Time windows.
const (
	WindowAll   Window = "all"
	WindowToday Window = "today"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

var windows = []Window{WindowAll, WindowToday, WindowWeek, WindowMonth}

// ParseWindow parses a time window filter.
func ParseWindow(s string) (Window, error) {
	return parse(s, windows, "time window")
}

// Next cycles through the time windows.
func (w Window) Next() Window {
	return next(w, windows)
}

// TransactionType matches transactions of the selected type.
func TransactionType(sel TypeSelection) Predicate[model.Transaction] {
	return func(t model.Transaction) bool {
		return sel == TypeAll || sel == "" || string(t.Type) == string(sel)
	}
}

// CategoryType matches categories of the selected type.
func CategoryType(sel TypeSelection) Predicate[model.Category] {
	return func(c model.Category) bool {
		return sel == TypeAll || sel == "" || string(c.Type) == string(sel)
	}
}

// InWindow matches transactions dated inside the window ending at now.
// Today is the calendar day of now in now's location; week and month are the
// trailing 7 and 30 days.
func InWindow(w Window, now time.Time) Predicate[model.Transaction] {
	return func(t model.Transaction) bool {
		switch w {
		case WindowToday:
			y1, m1, d1 := t.Date.In(now.Location()).Date()
			y2, m2, d2 := now.Date()
			return y1 == y2 && m1 == m2 && d1 == d2
		case WindowWeek:
			return !t.Date.Before(now.AddDate(0, 0, -7))
		case WindowMonth:
			return !t.Date.Before(now.AddDate(0, 0, -30))
		default:
			return true
		}
	}
}

// Transactions applies the type and time filters of the transaction list.
func Transactions(items []model.Transaction, sel TypeSelection, w Window, now time.Time) []model.Transaction {
	return Apply(items, And(TransactionType(sel), InWindow(w, now)))
}

// Categories applies the type filter of the category list.
func Categories(items []model.Category, sel TypeSelection) []model.Category {
	return Apply(items, CategoryType(sel))
}

func parse[T ~string](s string, allowed []T, what string) (T, error) {
	if s == "" {
		return allowed[0], nil
	}
	for _, a := range allowed {
		if string(a) == s {
			return a, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("invalid %s filter %q", what, s)
}

func next[T comparable](current T, all []T) T {
	for i, v := range all {
		if v == current {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}
