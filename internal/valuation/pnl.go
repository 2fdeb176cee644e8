package valuation

import "cryptoJournal/internal/domain"

// PnL is the result of marking a position against a current price.
type PnL struct {
	// PriceChangePercent is the direction-adjusted fractional price move
	// (0.10 means the position gained 10% before leverage). For SHORT
	// positions a price decline yields a positive change.
	PriceChangePercent float64 `json:"priceChangePercent"`
	// CurrentValue is positionSize * (1 + PriceChangePercent*leverage).
	CurrentValue float64 `json:"currentValue"`
	// Profit is CurrentValue - positionSize.
	Profit float64 `json:"profitLoss"`
}

// ComputePnL marks a position of the given size and leverage against
// currentPrice. entryPrice must be positive; ResolveCurrentPrice guarantees
// that for resolved trades. No rounding is applied; presentation rounding
// is the caller's concern.
func ComputePnL(tradeType domain.TradeType, entryPrice, currentPrice, positionSize float64, leverage int) PnL {
	change := (currentPrice - entryPrice) / entryPrice
	if tradeType == domain.Short {
		change = (entryPrice - currentPrice) / entryPrice
	}
	leveraged := change * float64(leverage)
	currentValue := positionSize * (1 + leveraged)
	return PnL{
		PriceChangePercent: change,
		CurrentValue:       currentValue,
		Profit:             currentValue - positionSize,
	}
}
