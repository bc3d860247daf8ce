package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a transaction.
type TransactionType string

const (
	// TransactionTypeIncome is money coming into a wallet.
	TransactionTypeIncome TransactionType = "income"
	// TransactionTypeExpense is money leaving a wallet.
	TransactionTypeExpense TransactionType = "expense"
	// TransactionTypeTransfer moves money between two wallets and carries no category.
	TransactionTypeTransfer TransactionType = "transfer"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return true
	default:
		return false
	}
}

// IsTransfer reports whether t is a transfer.
func (t TransactionType) IsTransfer() bool {
	return t == TransactionTypeTransfer
}

// CategoryType returns the category type a transaction of this type requires.
// Transfers have none.
func (t TransactionType) CategoryType() (CategoryType, bool) {
	switch t {
	case TransactionTypeIncome:
		return CategoryTypeIncome, true
	case TransactionTypeExpense:
		return CategoryTypeExpense, true
	default:
		return "", false
	}
}

// Transaction represents a single income, expense, or transfer.
type Transaction struct {
	Date         time.Time       `json:"date"`
	ID           string          `json:"id"`
	Type         TransactionType `json:"type"`
	WalletID     string          `json:"walletId,omitempty"`
	FromWalletID string          `json:"fromWalletId,omitempty"`
	ToWalletID   string          `json:"toWalletId,omitempty"`
	CategoryID   string          `json:"categoryId,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	Attachment   string          `json:"attachment,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
}

// EntityID returns the server-assigned id.
func (t Transaction) EntityID() string {
	return t.ID
}

// TransactionInput is the payload for creating or updating a transaction.
type TransactionInput struct {
	Date         time.Time       `json:"date"`
	Type         TransactionType `json:"type"`
	WalletID     string          `json:"walletId,omitempty"`
	FromWalletID string          `json:"fromWalletId,omitempty"`
	ToWalletID   string          `json:"toWalletId,omitempty"`
	CategoryID   string          `json:"categoryId,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	Attachment   string          `json:"attachment,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
}

// MarshalJSON sends the amount as a JSON number, which is what the API
// expects.
func (in TransactionInput) MarshalJSON() ([]byte, error) {
	type payload TransactionInput
	return json.Marshal(struct {
		payload
		Amount json.Number `json:"amount"`
	}{payload: payload(in), Amount: json.Number(in.Amount.String())})
}
