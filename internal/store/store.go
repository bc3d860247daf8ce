package store

import "github.com/Veraticus/coinpurse/internal/model"

// Store owns one collection per entity kind.
type Store struct {
	Wallets      *Collection[model.Wallet]
	Categories   *Collection[model.Category]
	Transactions *Collection[model.Transaction]
}

// New creates an empty store. Categories keep creation order and
// transactions are newest first.
func New() *Store {
	return &Store{
		Wallets:      NewCollection[model.Wallet](PlaceTail),
		Categories:   NewCollection[model.Category](PlaceTail),
		Transactions: NewCollection[model.Transaction](PlaceHead),
	}
}

// Category looks up a category by id.
func (s *Store) Category(id string) (model.Category, bool) {
	return s.Categories.Get(id)
}

// WalletName returns the display name of a wallet, or its id when unknown.
func (s *Store) WalletName(id string) string {
	if w, ok := s.Wallets.Get(id); ok {
		return w.Name
	}
	return id
}
