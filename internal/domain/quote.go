package domain

// Quote is the most recent price for a coin as reported by the external
// price oracle. Change24h is the 24h percentage change when the oracle
// provides it, zero otherwise.
type Quote struct {
	Price     float64 `json:"price"`
	Change24h float64 `json:"change24h,omitempty"`
}
