package form

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/coinpurse/internal/common"
	"github.com/Veraticus/coinpurse/internal/model"
	"github.com/Veraticus/coinpurse/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCategories() CategoryLookup {
	cats := map[string]model.Category{
		"food":   {ID: "food", Type: model.CategoryTypeExpense},
		"salary": {ID: "salary", Type: model.CategoryTypeIncome},
	}
	return func(id string) (model.Category, bool) {
		c, ok := cats[id]
		return c, ok
	}
}

func submitNoop(f *TransactionForm) error {
	return f.Submit(context.Background(), func(context.Context, Values[validation.Field]) error { return nil })
}

func TestTransactionForm_SwitchingTypeClearsCategory(t *testing.T) {
	f := NewTransactionForm(testCategories())
	f.OnChange(validation.CategoryID, "food")
	f.OnBlur(validation.CategoryID)

	f.SetType(model.TransactionTypeIncome)

	assert.Empty(t, f.Value(validation.CategoryID))
	assert.False(t, f.Touched(validation.CategoryID))
	assert.Equal(t, model.TransactionTypeIncome, f.Type())
}

func TestTransactionForm_SameTypeKeepsCategory(t *testing.T) {
	f := NewTransactionForm(testCategories())
	f.OnChange(validation.CategoryID, "food")

	f.OnChange(validation.TransactionType, string(model.TransactionTypeExpense))

	assert.Equal(t, "food", f.Value(validation.CategoryID))
}

func TestTransactionForm_CategoryMustMatchType(t *testing.T) {
	f := NewTransactionForm(testCategories())
	f.OnChange(validation.Amount, "10")
	f.OnChange(validation.WalletID, "w1")
	f.OnChange(validation.CategoryID, "salary")

	err := submitNoop(f)

	var validationErr *common.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Category does not match transaction type", validationErr.Fields["categoryId"])
}

func TestTransactionForm_ActiveFieldsFollowType(t *testing.T) {
	tests := []struct {
		name    string
		txType  model.TransactionType
		values  map[validation.Field]string
		invalid map[string]string
	}{
		{
			name:   "expense requires wallet and category",
			txType: model.TransactionTypeExpense,
			values: map[validation.Field]string{validation.Amount: "5"},
			invalid: map[string]string{
				"walletId":   "Please select a wallet",
				"categoryId": "Please select a category",
			},
		},
		{
			name:   "transfer requires distinct wallets and no category",
			txType: model.TransactionTypeTransfer,
			values: map[validation.Field]string{
				validation.Amount:       "5",
				validation.FromWalletID: "w1",
				validation.ToWalletID:   "w1",
			},
			invalid: map[string]string{
				"toWalletId": "Source and destination wallets must differ",
			},
		},
		{
			name:   "amount zero rejected",
			txType: model.TransactionTypeIncome,
			values: map[validation.Field]string{
				validation.Amount:     "0",
				validation.WalletID:   "w1",
				validation.CategoryID: "salary",
			},
			invalid: map[string]string{
				"amount": "Please enter a valid amount",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewTransactionForm(testCategories())
			f.SetType(tt.txType)
			for field, v := range tt.values {
				f.OnChange(field, v)
			}

			err := submitNoop(f)

			var validationErr *common.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.invalid, validationErr.Fields)
		})
	}
}

func TestTransactionForm_ValidTransferSubmits(t *testing.T) {
	f := NewTransactionForm(testCategories())
	f.SetType(model.TransactionTypeTransfer)
	f.OnChange(validation.Amount, "42.50")
	f.OnChange(validation.FromWalletID, "w1")
	f.OnChange(validation.ToWalletID, "w2")

	assert.NoError(t, submitNoop(f))
}

func TestTransactionForm_FromWalletRechecksDestination(t *testing.T) {
	f := NewTransactionForm(testCategories())
	f.SetType(model.TransactionTypeTransfer)
	f.OnChange(validation.FromWalletID, "w1")
	f.OnChange(validation.ToWalletID, "w2")
	f.OnBlur(validation.ToWalletID)
	require.Empty(t, f.Error(validation.ToWalletID))

	f.OnChange(validation.FromWalletID, "w2")

	assert.Equal(t, "Source and destination wallets must differ", f.Error(validation.ToWalletID))
}

func TestTransactionForm_LoadTransaction(t *testing.T) {
	f := NewTransactionForm(testCategories())
	f.LoadTransaction(model.Transaction{
		ID:         "t1",
		Type:       model.TransactionTypeIncome,
		Amount:     decimal.RequireFromString("100.25"),
		WalletID:   "w1",
		CategoryID: "salary",
		Date:       time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Notes:      "October",
		Attachment: "receipts/oct.pdf",
	})

	assert.Equal(t, "100.25", f.Value(validation.Amount))
	assert.Equal(t, "2026-10-01", f.Value(validation.Date))
	assert.Equal(t, "salary", f.Value(validation.CategoryID))
	assert.NoError(t, submitNoop(f))

	f.OnChange(validation.Notes, "edited")
	in, err := TransactionInput(f.Values(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, "receipts/oct.pdf", in.Attachment, "edits keep the stored attachment")
	assert.Equal(t, "edited", in.Notes)
}

func TestTransactionInput(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

	t.Run("expense with explicit date", func(t *testing.T) {
		in, err := TransactionInput(Values[validation.Field]{
			validation.TransactionType: "expense",
			validation.Amount:          "42.50",
			validation.WalletID:        "w1",
			validation.CategoryID:      "food",
			validation.FromWalletID:    "ignored",
			validation.Date:            "2026-10-02",
			validation.Notes:           "  lunch ",
		}, now)
		require.NoError(t, err)
		assert.True(t, in.Amount.Equal(decimal.RequireFromString("42.5")))
		assert.Equal(t, "w1", in.WalletID)
		assert.Equal(t, "food", in.CategoryID)
		assert.Empty(t, in.FromWalletID)
		assert.Equal(t, "lunch", in.Notes)
		assert.Equal(t, time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC), in.Date)
	})

	t.Run("transfer defaults date to now", func(t *testing.T) {
		in, err := TransactionInput(Values[validation.Field]{
			validation.TransactionType: "transfer",
			validation.Amount:          "10",
			validation.FromWalletID:    "w1",
			validation.ToWalletID:      "w2",
			validation.CategoryID:      "food",
		}, now)
		require.NoError(t, err)
		assert.Equal(t, now, in.Date)
		assert.Empty(t, in.CategoryID)
		assert.Empty(t, in.WalletID)
		assert.Equal(t, "w2", in.ToWalletID)
	})

	t.Run("bad amount", func(t *testing.T) {
		_, err := TransactionInput(Values[validation.Field]{validation.Amount: "x"}, now)
		assert.Error(t, err)
	})
}

func TestCategoryForm(t *testing.T) {
	f := NewCategoryForm()
	f.OnChange(validation.CategoryName, "  Groceries ")
	f.OnChange(validation.Icon, "spaceship")

	var in model.CategoryInput
	err := f.Submit(context.Background(), func(_ context.Context, v Values[validation.Field]) error {
		in = CategoryInput(v)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "Groceries", in.Name)
	assert.Equal(t, model.CategoryTypeExpense, in.Type)
	assert.Equal(t, "other", in.Icon)
	assert.Equal(t, DefaultCategoryColor, in.Color)
}

func TestCategoryForm_RejectsBlankName(t *testing.T) {
	f := NewCategoryForm()
	f.OnChange(validation.CategoryName, "   ")

	err := f.Submit(context.Background(), func(context.Context, Values[validation.Field]) error { return nil })

	var validationErr *common.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Category name is required", validationErr.Fields["categoryName"])
}
