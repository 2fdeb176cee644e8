package valuation

import (
	"testing"
	"time"

	"cryptoJournal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(v time.Time) *time.Time { return &v }

func closedTrade(id int64, tradeType domain.TradeType, entry, exit, size float64, leverage int, closedAt time.Time) *domain.Trade {
	return &domain.Trade{
		ID:           id,
		Coin:         "BTC",
		TradeType:    tradeType,
		Status:       domain.StatusClosed,
		EntryPrice:   entry,
		ExitPrice:    floatPtr(exit),
		PositionSize: size,
		Leverage:     leverage,
		CloseDate:    timePtr(closedAt),
	}
}

func openTrade(id int64, coin string, entry, size float64, leverage int) *domain.Trade {
	return &domain.Trade{
		ID:           id,
		Coin:         coin,
		TradeType:    domain.Long,
		Status:       domain.StatusOpen,
		EntryPrice:   entry,
		PositionSize: size,
		Leverage:     leverage,
	}
}

func TestAggregate(t *testing.T) {
	now := time.Date(2026, time.August, 20, 15, 0, 0, 0, time.UTC)
	prices := map[string]domain.Quote{
		"BTC": {Price: 110},
		"ETH": {Price: 90},
	}
	trades := []*domain.Trade{
		// +10% * 10x on 1000 = +1000 unrealized
		openTrade(1, "BTC", 100, 1000, 10),
		// -10% * 1x on 500 = -50 unrealized
		openTrade(2, "ETH", 100, 500, 1),
		// closed today: +20% * 2x on 1000 = +400 realized
		closedTrade(3, domain.Long, 100, 120, 1000, 2, now.Add(-2*time.Hour)),
		// closed 3 days ago: SHORT, price rose 10%, 1x on 500 = -50 realized
		closedTrade(4, domain.Short, 100, 110, 500, 1, now.AddDate(0, 0, -3)),
		// closed 40 days ago: +5% * 1x on 200 = +10 realized, outside all buckets
		closedTrade(5, domain.Long, 100, 105, 200, 1, now.AddDate(0, 0, -40)),
	}

	summary, issues := Aggregate(trades, prices, now)
	require.Empty(t, issues)

	assert.Equal(t, 5, summary.TotalTrades)
	assert.Equal(t, 2, summary.OpenTrades)
	assert.Equal(t, 3, summary.ClosedTrades)

	assert.InDelta(t, 1500, summary.OpenInvested, 1e-9)
	assert.InDelta(t, 1700, summary.ClosedInvested, 1e-9)
	assert.InDelta(t, 3200, summary.TotalInvested, 1e-9)

	assert.InDelta(t, 2000+450, summary.OpenCurrentValue, 1e-9)
	assert.InDelta(t, 950, summary.UnrealizedPnL, 1e-9)
	assert.InDelta(t, 360, summary.RealizedPnL, 1e-9)
	assert.InDelta(t, summary.OpenCurrentValue+1700+360, summary.CurrentValue, 1e-9)

	assert.Equal(t, 2, summary.WinningTrades)
	assert.Equal(t, 1, summary.LosingTrades)
	assert.InDelta(t, 2.0/3.0*100, summary.WinRate, 1e-9)
	assert.InDelta(t, 205, summary.AverageWin, 1e-9)
	assert.InDelta(t, -50, summary.AverageLoss, 1e-9)

	assert.InDelta(t, 400, summary.TodayPnL, 1e-9)
	assert.InDelta(t, 350, summary.WeekPnL, 1e-9)
	assert.InDelta(t, 350, summary.MonthPnL, 1e-9)
}

func TestAggregate_Empty(t *testing.T) {
	summary, issues := Aggregate(nil, nil, time.Now())
	require.Empty(t, issues)
	assert.Zero(t, summary.TotalInvested)
	assert.Zero(t, summary.WinRate)
	assert.Zero(t, summary.ClosedTrades)
}

func TestAggregate_SkipsBadTrades(t *testing.T) {
	now := time.Now()
	trades := []*domain.Trade{
		openTrade(1, "BTC", 100, 1000, 1),
		openTrade(2, "BTC", 0, 1000, 1),   // entry price missing
		openTrade(3, "BTC", 100, 0, 1),    // position size missing
		openTrade(4, "BTC", -5, -100, 1),  // both invalid
	}

	summary, issues := Aggregate(trades, nil, now)
	require.Len(t, issues, 3)
	for _, issue := range issues {
		assert.ErrorIs(t, issue.Err, ErrInvalidTrade)
		assert.NotEmpty(t, issue.Reason())
	}
	assert.Equal(t, 1, summary.TotalTrades)
	assert.InDelta(t, 1000, summary.TotalInvested, 1e-9)
}

func TestAggregate_MissingLivePriceFallsBackToEntry(t *testing.T) {
	now := time.Now()
	trades := []*domain.Trade{openTrade(1, "XYZ", 100, 1000, 10)}

	summary, issues := Aggregate(trades, map[string]domain.Quote{}, now)
	require.Empty(t, issues)
	// no movement assumed: current value equals the invested amount
	assert.InDelta(t, 1000, summary.OpenCurrentValue, 1e-9)
	assert.Zero(t, summary.UnrealizedPnL)
}

// Splitting a trade set into disjoint subsets and summing their totals
// equals aggregating the union. Win rate is recomputed from counts, not
// summed.
func TestAggregate_Additivity(t *testing.T) {
	now := time.Now()
	setA := []*domain.Trade{
		openTrade(1, "BTC", 100, 1000, 10),
		closedTrade(2, domain.Long, 100, 120, 500, 2, now.Add(-time.Hour)),
	}
	setB := []*domain.Trade{
		openTrade(3, "ETH", 200, 400, 5),
		closedTrade(4, domain.Short, 50, 40, 300, 1, now.Add(-48*time.Hour)),
	}
	prices := map[string]domain.Quote{"BTC": {Price: 105}, "ETH": {Price: 210}}

	union, _ := Aggregate(append(append([]*domain.Trade{}, setA...), setB...), prices, now)
	partA, _ := Aggregate(setA, prices, now)
	partB, _ := Aggregate(setB, prices, now)

	assert.InDelta(t, partA.TotalInvested+partB.TotalInvested, union.TotalInvested, 1e-9)
	assert.InDelta(t, partA.CurrentValue+partB.CurrentValue, union.CurrentValue, 1e-9)
	assert.InDelta(t, partA.RealizedPnL+partB.RealizedPnL, union.RealizedPnL, 1e-9)
	assert.InDelta(t, partA.UnrealizedPnL+partB.UnrealizedPnL, union.UnrealizedPnL, 1e-9)
	assert.Equal(t, partA.WinningTrades+partB.WinningTrades, union.WinningTrades)
	assert.Equal(t, partA.ClosedTrades+partB.ClosedTrades, union.ClosedTrades)
}
