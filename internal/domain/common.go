package domain

// TradeType represents the direction of a trade.
type TradeType string

const (
	Long  TradeType = "LONG"  // profits when price rises
	Short TradeType = "SHORT" // profits when price falls
)

// IsValid reports whether the trade type is a known direction.
func (t TradeType) IsValid() bool {
	return t == Long || t == Short
}

// TradeStatus represents the lifecycle state of a trade.
type TradeStatus string

const (
	StatusOpen   TradeStatus = "OPEN"
	StatusClosed TradeStatus = "CLOSED"
)

// IsValid reports whether the status is a known lifecycle state.
func (s TradeStatus) IsValid() bool {
	return s == StatusOpen || s == StatusClosed
}

// CloseReason indicates why a trade was closed.
type CloseReason string

const (
	CloseReasonTakeProfit CloseReason = "TP_HIT"
	CloseReasonLiquidated CloseReason = "LIQUIDATED"
	CloseReasonManual     CloseReason = "MANUAL"
)

// IsValid reports whether the close reason is a known value.
func (r CloseReason) IsValid() bool {
	return r == CloseReasonTakeProfit || r == CloseReasonLiquidated || r == CloseReasonManual
}
