package domain

import "time"

// ExchangeWallet is an account-level balance record, independent of
// individual trades. Exchange names are unique.
type ExchangeWallet struct {
	ID           int64     `json:"id"`
	ExchangeName string    `json:"exchangeName"`
	TotalBalance float64   `json:"totalBalance"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

// WalletSummary is the read-model view of a wallet. UsedBalance is the sum
// of position sizes over the exchange's open trades; the derived fields are
// recomputed on every read, never persisted.
type WalletSummary struct {
	ID               int64     `json:"id"`
	ExchangeName     string    `json:"exchangeName"`
	TotalBalance     float64   `json:"totalBalance"`
	UsedBalance      float64   `json:"usedBalance"`
	AvailableBalance float64   `json:"availableBalance"`
	OpenTradesCount  int       `json:"openTradesCount"`
	Notes            string    `json:"notes,omitempty"`
	UpdatedAt        time.Time `json:"updatedAt,omitempty"`
}
