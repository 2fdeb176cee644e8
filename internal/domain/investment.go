package domain

import "time"

// Investment is an incremental capital addition to a trade's position,
// used when a trade is scaled in over time.
type Investment struct {
	ID                int64     `json:"id"`
	TradeID           int64     `json:"tradeId"`
	Amount            float64   `json:"amount"` // quote currency
	PriceAtInvestment float64   `json:"priceAtInvestment"`
	Notes             string    `json:"notes,omitempty"`
	InvestmentDate    time.Time `json:"investmentDate"`
	CreatedAt         time.Time `json:"createdAt,omitempty"`
}
