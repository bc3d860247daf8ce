package form

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/coinpurse/internal/model"
	"github.com/Veraticus/coinpurse/internal/validation"
)

// CategoryLookup resolves a category id against the local store.
type CategoryLookup func(id string) (model.Category, bool)

var (
	categorizedFields = []validation.Field{
		validation.TransactionType,
		validation.Amount,
		validation.WalletID,
		validation.CategoryID,
		validation.Date,
		validation.Notes,
		validation.Attachment,
	}
	transferFields = []validation.Field{
		validation.TransactionType,
		validation.Amount,
		validation.FromWalletID,
		validation.ToWalletID,
		validation.Date,
		validation.Notes,
		validation.Attachment,
	}
)

// TransactionForm is the create/edit form for a transaction. Its active
// fields follow the selected type.
type TransactionForm struct {
	*Controller[validation.Field]
}

// NewTransactionForm creates a form defaulting to an expense.
func NewTransactionForm(categories CategoryLookup) *TransactionForm {
	schema := FieldSchema(categorizedFields...)
	schema.Active = func(lookup func(validation.Field) string) []validation.Field {
		if model.TransactionType(lookup(validation.TransactionType)).IsTransfer() {
			return transferFields
		}
		return categorizedFields
	}
	base := schema.Validate
	schema.Validate = func(f validation.Field, value string, lookup func(validation.Field) string) string {
		if msg := base(f, value, lookup); msg != "" || f != validation.CategoryID || categories == nil {
			return msg
		}
		return checkCategory(categories, value, model.TransactionType(lookup(validation.TransactionType)))
	}

	tf := &TransactionForm{Controller: New(schema)}
	tf.Load(map[validation.Field]string{validation.TransactionType: string(model.TransactionTypeExpense)})
	return tf
}

func checkCategory(categories CategoryLookup, id string, txType model.TransactionType) string {
	cat, ok := categories(id)
	if !ok {
		return "Please select a category"
	}
	want, ok := txType.CategoryType()
	if ok && cat.Type != want {
		return "Category does not match transaction type"
	}
	return ""
}

// Type returns the currently selected transaction type.
func (f *TransactionForm) Type() model.TransactionType {
	return model.TransactionType(f.Value(validation.TransactionType))
}

// SetType switches the transaction type. A previously selected category is
// cleared whenever the type actually changes.
func (f *TransactionForm) SetType(t model.TransactionType) {
	if f.Busy() {
		return
	}
	previous := f.Type()
	f.Controller.OnChange(validation.TransactionType, string(t))
	if previous != t {
		f.Clear(validation.CategoryID)
	}
}

// OnChange routes type changes through SetType.
func (f *TransactionForm) OnChange(field validation.Field, value string) {
	if field == validation.TransactionType {
		f.SetType(model.TransactionType(value))
		return
	}
	f.Controller.OnChange(field, value)
}

// LoadTransaction fills the form from a stored transaction for editing.
func (f *TransactionForm) LoadTransaction(t model.Transaction) {
	values := map[validation.Field]string{
		validation.TransactionType: string(t.Type),
		validation.Amount:          t.Amount.String(),
		validation.Notes:           t.Notes,
		validation.Attachment:      t.Attachment,
	}
	if !t.Date.IsZero() {
		values[validation.Date] = t.Date.Format(validation.DateLayout)
	}
	if t.Type.IsTransfer() {
		values[validation.FromWalletID] = t.FromWalletID
		values[validation.ToWalletID] = t.ToWalletID
	} else {
		values[validation.WalletID] = t.WalletID
		values[validation.CategoryID] = t.CategoryID
	}
	f.Load(values)
}

// TransactionInput converts submitted values into the API payload. An empty
// date means now.
func TransactionInput(values Values[validation.Field], now time.Time) (model.TransactionInput, error) {
	amount, err := validation.ParseAmount(values[validation.Amount])
	if err != nil {
		return model.TransactionInput{}, fmt.Errorf("invalid amount: %w", err)
	}

	date := now
	if raw := strings.TrimSpace(values[validation.Date]); raw != "" {
		date, err = time.ParseInLocation(validation.DateLayout, raw, now.Location())
		if err != nil {
			return model.TransactionInput{}, fmt.Errorf("invalid date: %w", err)
		}
	}

	in := model.TransactionInput{
		Type:       model.TransactionType(values[validation.TransactionType]),
		Amount:     amount,
		Date:       date,
		Notes:      strings.TrimSpace(values[validation.Notes]),
		Attachment: strings.TrimSpace(values[validation.Attachment]),
	}
	if in.Type.IsTransfer() {
		in.FromWalletID = values[validation.FromWalletID]
		in.ToWalletID = values[validation.ToWalletID]
	} else {
		in.WalletID = values[validation.WalletID]
		in.CategoryID = values[validation.CategoryID]
	}
	return in, nil
}
