package valuation

import (
	"testing"

	"cryptoJournal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuateTrade_InvestmentWeighted(t *testing.T) {
	trade := &domain.Trade{
		ID:           1,
		Coin:         "SOL",
		TradeType:    domain.Long,
		Status:       domain.StatusOpen,
		EntryPrice:   10,
		PositionSize: 300,
		Leverage:     5, // deliberately ignored at investment granularity
	}
	investments := []*domain.Investment{
		{ID: 1, TradeID: 1, Amount: 100, PriceAtInvestment: 10},
		{ID: 2, TradeID: 1, Amount: 200, PriceAtInvestment: 20},
	}

	// quantities 10 and 10, both marked at 30
	got, err := ValuateTrade(trade, investments, floatPtr(30))
	require.NoError(t, err)
	assert.InDelta(t, 300, got.TotalInvested, 1e-9)
	assert.InDelta(t, 600, got.CurrentValue, 1e-9)
	assert.InDelta(t, 300, got.Profit, 1e-9)
	assert.InDelta(t, 100, got.ProfitPercent, 1e-9)
	assert.Equal(t, SourceLive, got.PriceSource)
}

func TestValuateTrade_InvalidInvestmentsExcluded(t *testing.T) {
	trade := &domain.Trade{
		ID:           2,
		TradeType:    domain.Long,
		Status:       domain.StatusOpen,
		EntryPrice:   10,
		PositionSize: 100,
		Leverage:     1,
	}
	investments := []*domain.Investment{
		{ID: 1, TradeID: 2, Amount: 100, PriceAtInvestment: 10},
		{ID: 2, TradeID: 2, Amount: -50, PriceAtInvestment: 10}, // excluded
		{ID: 3, TradeID: 2, Amount: 50, PriceAtInvestment: 0},   // excluded
	}

	got, err := ValuateTrade(trade, investments, floatPtr(20))
	require.NoError(t, err)
	assert.InDelta(t, 100, got.TotalInvested, 1e-9)
	assert.InDelta(t, 200, got.CurrentValue, 1e-9)
}

func TestValuateTrade_AllInvestmentsInvalid(t *testing.T) {
	trade := &domain.Trade{
		ID:           3,
		TradeType:    domain.Long,
		Status:       domain.StatusOpen,
		EntryPrice:   10,
		PositionSize: 100,
		Leverage:     1,
	}
	investments := []*domain.Investment{
		{ID: 1, TradeID: 3, Amount: 0, PriceAtInvestment: 10},
	}

	_, err := ValuateTrade(trade, investments, floatPtr(20))
	require.ErrorIs(t, err, ErrInvalidInvestment)
}

func TestValuateTrade_PositionMode(t *testing.T) {
	trade := &domain.Trade{
		ID:           4,
		TradeType:    domain.Long,
		Status:       domain.StatusOpen,
		EntryPrice:   100,
		PositionSize: 1000,
		Leverage:     10,
	}

	got, err := ValuateTrade(trade, nil, floatPtr(110))
	require.NoError(t, err)
	assert.InDelta(t, 1000, got.TotalInvested, 1e-9)
	assert.InDelta(t, 2000, got.CurrentValue, 1e-9)
	assert.InDelta(t, 1000, got.Profit, 1e-9)
	assert.InDelta(t, 100, got.ProfitPercent, 1e-9)
}

func TestValuateTrade_PositionModeRequiresPositionSize(t *testing.T) {
	trade := &domain.Trade{
		ID:         5,
		TradeType:  domain.Long,
		Status:     domain.StatusOpen,
		EntryPrice: 100,
		Leverage:   1,
	}
	_, err := ValuateTrade(trade, nil, floatPtr(110))
	require.ErrorIs(t, err, ErrInvalidTrade)
}

func TestValuateTrade_ClosedTradeIgnoresLivePrice(t *testing.T) {
	trade := &domain.Trade{
		ID:           6,
		TradeType:    domain.Long,
		Status:       domain.StatusClosed,
		EntryPrice:   100,
		ExitPrice:    floatPtr(50),
		PositionSize: 1000,
		Leverage:     1,
	}

	got, err := ValuateTrade(trade, nil, floatPtr(999))
	require.NoError(t, err)
	assert.Equal(t, SourceExit, got.PriceSource)
	assert.InDelta(t, 500, got.CurrentValue, 1e-9)
	assert.InDelta(t, -500, got.Profit, 1e-9)
}

// The engine is pure: identical inputs produce identical outputs.
func TestValuateTrade_Idempotent(t *testing.T) {
	trade := &domain.Trade{
		ID:           7,
		TradeType:    domain.Short,
		Status:       domain.StatusOpen,
		EntryPrice:   250,
		PositionSize: 750,
		Leverage:     3,
	}
	first, err := ValuateTrade(trade, nil, floatPtr(240))
	require.NoError(t, err)
	second, err := ValuateTrade(trade, nil, floatPtr(240))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
