package valuation

import (
	"fmt"

	"cryptoJournal/internal/domain"
)

// Valuation is the current economic state of a single trade.
type Valuation struct {
	TotalInvested float64     `json:"totalInvested"`
	CurrentValue  float64     `json:"currentValue"`
	Profit        float64     `json:"profitLoss"`
	ProfitPercent float64     `json:"profitLossPercent"`
	PriceSource   PriceSource `json:"priceSource"`
}

// ValuateTrade values a trade at the price resolved by ResolveCurrentPrice.
//
// When investments are present the trade is valued capital-weighted: each
// investment buys amount/priceAtInvestment units and is marked at the
// current price, unleveraged. Leverage is a position-level overlay already
// baked into how the position size was chosen, so it is deliberately not
// applied at investment granularity. Investments with a non-positive amount
// or price are excluded; they only fail the valuation when no valid
// investment remains.
//
// Without investments the trade's own entry price, position size, leverage
// and direction are marked via ComputePnL.
func ValuateTrade(trade *domain.Trade, investments []*domain.Investment, livePrice *float64) (Valuation, error) {
	price, source, err := ResolveCurrentPrice(trade, livePrice)
	if err != nil {
		return Valuation{}, err
	}

	var invested, currentValue float64
	if len(investments) > 0 {
		valid := 0
		for _, inv := range investments {
			if inv.Amount <= 0 || inv.PriceAtInvestment <= 0 {
				continue
			}
			quantity := inv.Amount / inv.PriceAtInvestment
			invested += inv.Amount
			currentValue += quantity * price
			valid++
		}
		if valid == 0 {
			return Valuation{}, fmt.Errorf("trade %d: %w", trade.ID, ErrInvalidInvestment)
		}
	} else {
		if trade.PositionSize <= 0 {
			return Valuation{}, fmt.Errorf("trade %d: %w", trade.ID, ErrInvalidTrade)
		}
		result := ComputePnL(trade.TradeType, trade.EntryPrice, price, trade.PositionSize, trade.Leverage)
		invested = trade.PositionSize
		currentValue = result.CurrentValue
	}

	profit := currentValue - invested
	percent := 0.0
	if invested > 0 {
		percent = profit / invested * 100
	}
	return Valuation{
		TotalInvested: invested,
		CurrentValue:  currentValue,
		Profit:        profit,
		ProfitPercent: percent,
		PriceSource:   source,
	}, nil
}
