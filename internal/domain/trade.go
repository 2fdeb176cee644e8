package domain

import "time"

// Trade represents a single leveraged position recorded in the journal.
// Optional numeric fields are pointers so "not set" is distinguishable from zero.
type Trade struct {
	ID               int64        `json:"id"`
	Coin             string       `json:"coin"`      // e.g. "BTC"
	TradeType        TradeType    `json:"tradeType"` // LONG or SHORT
	EntryPrice       float64      `json:"entryPrice"`
	ExitPrice        *float64     `json:"exitPrice,omitempty"`    // set only when closed
	CurrentPrice     *float64     `json:"currentPrice,omitempty"` // last stored price snapshot
	Quantity         float64      `json:"quantity,omitempty"`     // base-asset amount
	PositionSize     float64      `json:"positionSize"`           // capital allocated, quote currency
	Leverage         int          `json:"leverage"`
	Fees             *float64     `json:"fees,omitempty"`
	Exchange         string       `json:"exchange,omitempty"` // links the trade to an ExchangeWallet
	Status           TradeStatus  `json:"status"`
	Notes            string       `json:"notes,omitempty"`
	StopLoss         *float64     `json:"stopLoss,omitempty"`
	TakeProfit       *float64     `json:"takeProfit,omitempty"`
	LiquidationPrice *float64     `json:"liquidationPrice,omitempty"`
	TpHit            bool         `json:"tpHit"`
	Liquidated       bool         `json:"liquidated"`
	CloseReason      *CloseReason `json:"closeReason,omitempty"`
	TradeDate        time.Time    `json:"tradeDate"`
	CloseDate        *time.Time   `json:"closeDate,omitempty"`
	CreatedAt        time.Time    `json:"createdAt,omitempty"`
	UpdatedAt        time.Time    `json:"updatedAt,omitempty"`
}

// IsOpen checks if the trade status is open.
func (t *Trade) IsOpen() bool {
	return t.Status == StatusOpen
}
