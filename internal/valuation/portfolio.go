package valuation

import (
	"fmt"
	"strings"
	"time"

	"cryptoJournal/internal/domain"
)

// PortfolioSummary is a pure read-model aggregate over all trades at a
// point in time. It is always derivable from trade data and never persisted.
type PortfolioSummary struct {
	TotalInvested  float64 `json:"totalInvested"`
	OpenInvested   float64 `json:"openInvested"`
	ClosedInvested float64 `json:"closedInvested"`

	// CurrentValue is the open positions marked to market plus the closed
	// capital and its realized result.
	CurrentValue     float64 `json:"currentValue"`
	OpenCurrentValue float64 `json:"openCurrentValue"`
	UnrealizedPnL    float64 `json:"unrealizedPnL"`
	RealizedPnL      float64 `json:"realizedPnL"`

	TotalTrades   int     `json:"totalTrades"`
	OpenTrades    int     `json:"openTrades"`
	ClosedTrades  int     `json:"closedTrades"`
	WinningTrades int     `json:"winningTrades"`
	LosingTrades  int     `json:"losingTrades"`
	WinRate       float64 `json:"winRate"` // percent, 0 when no closed trades
	AverageWin    float64 `json:"averageWin"`
	AverageLoss   float64 `json:"averageLoss"`

	// Realized P&L of trades closed today, in the last 7 days, and since
	// the start of the current month, anchored at the aggregation time.
	TodayPnL float64 `json:"todayPnL"`
	WeekPnL  float64 `json:"weekPnL"`
	MonthPnL float64 `json:"monthPnL"`
}

// TradeIssue reports a trade excluded from aggregation as a data-quality
// problem rather than silently zeroed.
type TradeIssue struct {
	TradeID int64 `json:"tradeId"`
	Err     error `json:"-"`
}

// Reason returns the issue's error text for serialization.
func (i TradeIssue) Reason() string {
	if i.Err == nil {
		return ""
	}
	return i.Err.Error()
}

// Aggregate folds per-trade valuations into portfolio totals. Open trades
// are marked in position mode against the matching live price; closed
// trades are realized at their exit price, with no live price involved.
// A trade with a non-positive entry price or position size is skipped and
// reported. Win rate counts a closed trade as winning iff its realized
// profit is strictly positive.
func Aggregate(trades []*domain.Trade, livePrices map[string]domain.Quote, now time.Time) (*PortfolioSummary, []TradeIssue) {
	summary := &PortfolioSummary{}
	var issues []TradeIssue

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := dayStart.AddDate(0, 0, -7)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var winSum, lossSum float64
	for _, trade := range trades {
		if trade.EntryPrice <= 0 || trade.PositionSize <= 0 {
			issues = append(issues, TradeIssue{
				TradeID: trade.ID,
				Err:     fmt.Errorf("trade %d: %w", trade.ID, ErrInvalidTrade),
			})
			continue
		}
		summary.TotalTrades++

		if trade.Status == domain.StatusClosed {
			summary.ClosedTrades++
			summary.ClosedInvested += trade.PositionSize

			exitPrice, _, _ := ResolveCurrentPrice(trade, nil)
			realized := ComputePnL(trade.TradeType, trade.EntryPrice, exitPrice, trade.PositionSize, trade.Leverage).Profit
			summary.RealizedPnL += realized

			if realized > 0 {
				summary.WinningTrades++
				winSum += realized
			} else {
				summary.LosingTrades++
				lossSum += realized
			}

			if trade.CloseDate != nil {
				closedAt := *trade.CloseDate
				if !closedAt.Before(dayStart) {
					summary.TodayPnL += realized
				}
				if !closedAt.Before(weekStart) {
					summary.WeekPnL += realized
				}
				if !closedAt.Before(monthStart) {
					summary.MonthPnL += realized
				}
			}
			continue
		}

		summary.OpenTrades++
		summary.OpenInvested += trade.PositionSize

		var live *float64
		if quote, ok := livePrices[strings.ToUpper(trade.Coin)]; ok && quote.Price > 0 {
			price := quote.Price
			live = &price
		}
		value, err := ValuateTrade(trade, nil, live)
		if err != nil {
			// Unreachable after the validity check above, but report rather
			// than abort if it ever fires.
			issues = append(issues, TradeIssue{TradeID: trade.ID, Err: err})
			continue
		}
		summary.OpenCurrentValue += value.CurrentValue
		summary.UnrealizedPnL += value.Profit
	}

	summary.TotalInvested = summary.OpenInvested + summary.ClosedInvested
	summary.CurrentValue = summary.OpenCurrentValue + summary.ClosedInvested + summary.RealizedPnL
	if summary.ClosedTrades > 0 {
		summary.WinRate = float64(summary.WinningTrades) / float64(summary.ClosedTrades) * 100
	}
	if summary.WinningTrades > 0 {
		summary.AverageWin = winSum / float64(summary.WinningTrades)
	}
	if summary.LosingTrades > 0 {
		summary.AverageLoss = lossSum / float64(summary.LosingTrades)
	}
	return summary, issues
}
