package store

import (
	"testing"

	"github.com/Veraticus/coinpurse/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_UpsertTail(t *testing.T) {
	c := NewCollection[model.Category](PlaceTail)

	c.Upsert(model.Category{ID: "c1", Name: "Food"})
	c.Upsert(model.Category{ID: "c2", Name: "Rent"})
	c.Upsert(model.Category{ID: "c3", Name: "Salary"})

	names := make([]string, 0, 3)
	for _, cat := range c.List() {
		names = append(names, cat.Name)
	}
	assert.Equal(t, []string{"Food", "Rent", "Salary"}, names)
}

func TestCollection_UpsertHead(t *testing.T) {
	c := NewCollection[model.Transaction](PlaceHead)

	c.Upsert(model.Transaction{ID: "t1"})
	c.Upsert(model.Transaction{ID: "t2"})

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "t2", list[0].ID)
	assert.Equal(t, "t1", list[1].ID)
}

func TestCollection_UpsertReplacesInPlace(t *testing.T) {
	tests := []struct {
		name      string
		placement Placement
	}{
		{name: "tail collection", placement: PlaceTail},
		{name: "head collection", placement: PlaceHead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollection[model.Transaction](tt.placement)
			c.Upsert(model.Transaction{ID: "a"})
			c.Upsert(model.Transaction{ID: "b", Notes: "before"})
			c.Upsert(model.Transaction{ID: "c"})
			before := c.List()

			c.Upsert(model.Transaction{ID: "b", Notes: "after", Amount: decimal.NewFromInt(5)})

			after := c.List()
			require.Len(t, after, 3)
			for i := range before {
				assert.Equal(t, before[i].ID, after[i].ID, "position %d changed", i)
			}
			got, ok := c.Get("b")
			require.True(t, ok)
			assert.Equal(t, "after", got.Notes)
			assert.True(t, got.Amount.Equal(decimal.NewFromInt(5)))
		})
	}
}

func TestCollection_UpsertKeepsSingleEntry(t *testing.T) {
	c := NewCollection[model.Wallet](PlaceTail)
	for i := 0; i < 5; i++ {
		c.Upsert(model.Wallet{ID: "w1", Name: "Cash"})
	}

	count := 0
	for _, w := range c.List() {
		if w.ID == "w1" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestCollection_Remove(t *testing.T) {
	c := NewCollection[model.Wallet](PlaceTail)
	c.Upsert(model.Wallet{ID: "w1"})
	c.Upsert(model.Wallet{ID: "w2"})

	c.Remove("missing")
	assert.Equal(t, 2, c.Len())

	c.Remove("w1")
	list := c.List()
	require.Len(t, list, 1)
	assert.Equal(t, "w2", list[0].ID)

	_, ok := c.Get("w1")
	assert.False(t, ok)
}

func TestCollection_ListReturnsCopy(t *testing.T) {
	c := NewCollection[model.Wallet](PlaceTail)
	c.Upsert(model.Wallet{ID: "w1", Name: "Cash"})

	list := c.List()
	list[0].Name = "mutated"

	got, _ := c.Get("w1")
	assert.Equal(t, "Cash", got.Name)
}

func TestCollection_Replace(t *testing.T) {
	c := NewCollection[model.Category](PlaceTail)
	c.Upsert(model.Category{ID: "old"})

	c.Replace([]model.Category{
		{ID: "c1", Name: "first"},
		{ID: "c2", Name: "second"},
		{ID: "c1", Name: "first again"},
	})

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "c1", list[0].ID)
	assert.Equal(t, "first again", list[0].Name)
	assert.Equal(t, "c2", list[1].ID)
	_, ok := c.Get("old")
	assert.False(t, ok)
}

func TestStore_Lookups(t *testing.T) {
	s := New()
	s.Wallets.Upsert(model.Wallet{ID: "w1", Name: "Checking"})
	s.Categories.Upsert(model.Category{ID: "c1", Type: model.CategoryTypeIncome})

	assert.Equal(t, "Checking", s.WalletName("w1"))
	assert.Equal(t, "w9", s.WalletName("w9"))

	cat, ok := s.Category("c1")
	require.True(t, ok)
	assert.Equal(t, model.CategoryTypeIncome, cat.Type)
}
