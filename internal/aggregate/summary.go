// Package aggregate computes the summary cards shown above the lists. Totals
// are always taken over the full collections, never the filtered views.
package aggregate

import (
	"github.com/Veraticus/coinpurse/internal/model"
	"github.com/shopspring/decimal"
)

// Summary holds income, expense, and net totals.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
	Count   int
}

// Summarize totals income and expense amounts. Transfers move money between
// wallets and do not count toward either side.
func Summarize(transactions []model.Transaction) Summary {
	s := Summary{Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range transactions {
		switch t.Type {
		case model.TransactionTypeIncome:
			s.Income = s.Income.Add(t.Amount)
		case model.TransactionTypeExpense:
			s.Expense = s.Expense.Add(t.Amount)
		}
		s.Count++
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}

// CategoryCounts holds the number of categories per type.
type CategoryCounts struct {
	Income  int
	Expense int
}

// Total returns the number of counted categories.
func (c CategoryCounts) Total() int {
	return c.Income + c.Expense
}

// CountCategories counts categories by type.
func CountCategories(categories []model.Category) CategoryCounts {
	var c CategoryCounts
	for _, cat := range categories {
		switch cat.Type {
		case model.CategoryTypeIncome:
			c.Income++
		case model.CategoryTypeExpense:
			c.Expense++
		}
	}
	return c
}
