package valuation

import (
	"fmt"

	"cryptoJournal/internal/domain"
)

// PriceSource identifies which fallback produced a resolved price, so
// callers can flag stale valuations instead of presenting them as live.
type PriceSource string

const (
	SourceExit     PriceSource = "exit"     // realized exit price of a closed trade
	SourceLive     PriceSource = "live"     // quote supplied by the price oracle
	SourceSnapshot PriceSource = "snapshot" // last stored current-price snapshot
	SourceEntry    PriceSource = "entry"    // entry price, no movement assumed
)

// Stale reports whether the source is a fallback rather than a final or
// live price.
func (s PriceSource) Stale() bool {
	return s == SourceSnapshot || s == SourceEntry
}

// ResolveCurrentPrice resolves the single current price to use when valuing
// a trade. The order is fixed: a closed trade always values at its realized
// exit price, never at a live quote that no longer applies to a settled
// position; an open trade prefers the live quote, then the stored snapshot,
// then the entry price.
func ResolveCurrentPrice(trade *domain.Trade, livePrice *float64) (float64, PriceSource, error) {
	if trade.EntryPrice <= 0 {
		return 0, "", fmt.Errorf("trade %d: %w", trade.ID, ErrInvalidTrade)
	}
	if trade.Status == domain.StatusClosed && trade.ExitPrice != nil && *trade.ExitPrice > 0 {
		return *trade.ExitPrice, SourceExit, nil
	}
	if livePrice != nil && *livePrice > 0 {
		return *livePrice, SourceLive, nil
	}
	if trade.CurrentPrice != nil && *trade.CurrentPrice > 0 {
		return *trade.CurrentPrice, SourceSnapshot, nil
	}
	return trade.EntryPrice, SourceEntry, nil
}
