package filter

import (
	"testing"
	"time"

	"github.com/Veraticus/coinpurse/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC)

func fixtures() []model.Transaction {
	return []model.Transaction{
		{ID: "today-income", Type: model.TransactionTypeIncome, Date: now.Add(-2 * time.Hour)},
		{ID: "yesterday-expense", Type: model.TransactionTypeExpense, Date: now.AddDate(0, 0, -1)},
		{ID: "week-transfer", Type: model.TransactionTypeTransfer, Date: now.AddDate(0, 0, -6)},
		{ID: "month-expense", Type: model.TransactionTypeExpense, Date: now.AddDate(0, 0, -20)},
		{ID: "old-income", Type: model.TransactionTypeIncome, Date: now.AddDate(0, 0, -45)},
	}
}

func ids(items []model.Transaction) []string {
	out := make([]string, 0, len(items))
	for _, t := range items {
		out = append(out, t.ID)
	}
	return out
}

func TestTransactions(t *testing.T) {
	tests := []struct {
		name   string
		sel    TypeSelection
		window Window
		want   []string
	}{
		{
			name:   "everything",
			sel:    TypeAll,
			window: WindowAll,
			want:   []string{"today-income", "yesterday-expense", "week-transfer", "month-expense", "old-income"},
		},
		{
			name:   "today only",
			sel:    TypeAll,
			window: WindowToday,
			want:   []string{"today-income"},
		},
		{
			name:   "last week",
			sel:    TypeAll,
			window: WindowWeek,
			want:   []string{"today-income", "yesterday-expense", "week-transfer"},
		},
		{
			name:   "expenses last month",
			sel:    TypeExpense,
			window: WindowMonth,
			want:   []string{"yesterday-expense", "month-expense"},
		},
		{
			name:   "transfers",
			sel:    TypeTransfer,
			window: WindowAll,
			want:   []string{"week-transfer"},
		},
		{
			name:   "income today",
			sel:    TypeIncome,
			window: WindowToday,
			want:   []string{"today-income"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Transactions(fixtures(), tt.sel, tt.window, now)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestTransactions_Idempotent(t *testing.T) {
	once := Transactions(fixtures(), TypeExpense, WindowMonth, now)
	twice := Transactions(once, TypeExpense, WindowMonth, now)
	assert.Equal(t, once, twice)
}

func TestInWindow_Boundaries(t *testing.T) {
	exactlyWeek := model.Transaction{Date: now.AddDate(0, 0, -7)}
	justOutside := model.Transaction{Date: now.AddDate(0, 0, -7).Add(-time.Second)}

	assert.True(t, InWindow(WindowWeek, now)(exactlyWeek))
	assert.False(t, InWindow(WindowWeek, now)(justOutside))
	assert.True(t, InWindow(WindowMonth, now)(model.Transaction{Date: now.AddDate(0, 0, -30)}))
}

func TestInWindow_TodayUsesNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	localNow := time.Date(2026, 10, 14, 8, 0, 0, 0, loc)
	// 23:00 UTC on the 13th is 09:00 on the 14th in UTC+10.
	tx := model.Transaction{Date: time.Date(2026, 10, 13, 23, 0, 0, 0, time.UTC)}

	assert.True(t, InWindow(WindowToday, localNow)(tx))
	assert.False(t, InWindow(WindowToday, now)(tx))
}

func TestCategories(t *testing.T) {
	cats := []model.Category{
		{ID: "c1", Type: model.CategoryTypeIncome},
		{ID: "c2", Type: model.CategoryTypeExpense},
		{ID: "c3", Type: model.CategoryTypeExpense},
	}

	assert.Len(t, Categories(cats, TypeAll), 3)
	assert.Len(t, Categories(cats, TypeExpense), 2)
	got := Categories(cats, TypeIncome)
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ID)
}

func TestParse(t *testing.T) {
	sel, err := ParseTypeSelection("transfer")
	require.NoError(t, err)
	assert.Equal(t, TypeTransfer, sel)

	_, err = ParseCategorySelection("transfer")
	assert.Error(t, err, "categories are restricted to income and expense")

	sel, err = ParseCategorySelection("")
	require.NoError(t, err)
	assert.Equal(t, TypeAll, sel)

	w, err := ParseWindow("week")
	require.NoError(t, err)
	assert.Equal(t, WindowWeek, w)

	_, err = ParseWindow("year")
	assert.Error(t, err)
}

func TestNext(t *testing.T) {
	assert.Equal(t, TypeIncome, TypeAll.NextTransactionType())
	assert.Equal(t, TypeAll, TypeTransfer.NextTransactionType())
	assert.Equal(t, TypeAll, TypeExpense.NextCategoryType())
	assert.Equal(t, WindowToday, WindowAll.Next())
	assert.Equal(t, WindowAll, WindowMonth.Next())
}
