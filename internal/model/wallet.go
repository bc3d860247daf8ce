package model

// Wallet is a named money-holding account referenced by transactions.
type Wallet struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EntityID returns the server-assigned id.
func (w Wallet) EntityID() string {
	return w.ID
}
