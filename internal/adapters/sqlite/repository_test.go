package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cryptoJournal/internal/domain"
	"cryptoJournal/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

// setupTestDB creates a temporary database for testing
func setupTestDB(t *testing.T) *Repository {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "journal-test-*")
	require.NoError(t, err)

	repo, err := NewRepository(Config{
		DBPath: filepath.Join(tmpDir, "test.db"),
		Logger: &mockLogger{},
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		repo.Close()
		os.RemoveAll(tmpDir)
	})
	return repo
}

func floatPtr(v float64) *float64 { return &v }

func newOpenTrade() *domain.Trade {
	return &domain.Trade{
		Coin:         "BTC",
		TradeType:    domain.Long,
		EntryPrice:   50000,
		Quantity:     0.02,
		PositionSize: 1000,
		Leverage:     10,
		Exchange:     "Binance",
		Status:       domain.StatusOpen,
		TakeProfit:   floatPtr(60000),
		TradeDate:    time.Now().UTC().Truncate(time.Second),
	}
}

func TestRepository_CreateAndFindTrade(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	trade := newOpenTrade()
	id, err := repo.Create(ctx, trade)
	require.NoError(t, err)
	require.NotZero(t, id)

	found, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "BTC", found.Coin)
	assert.Equal(t, domain.Long, found.TradeType)
	assert.Equal(t, domain.StatusOpen, found.Status)
	assert.InDelta(t, 1000, found.PositionSize, 1e-9)
	require.NotNil(t, found.TakeProfit)
	assert.InDelta(t, 60000, *found.TakeProfit, 1e-9)
	assert.Nil(t, found.ExitPrice)
	assert.Nil(t, found.CloseDate)
	assert.Nil(t, found.CloseReason)
}

func TestRepository_FindTradeByID_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	found, err := repo.FindByID(context.Background(), 12345)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRepository_UpdateTrade_Close(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	trade := newOpenTrade()
	_, err := repo.Create(ctx, trade)
	require.NoError(t, err)

	reason := domain.CloseReasonTakeProfit
	closeDate := time.Now().UTC().Truncate(time.Second)
	trade.Status = domain.StatusClosed
	trade.ExitPrice = floatPtr(60000)
	trade.CloseDate = &closeDate
	trade.CloseReason = &reason
	trade.TpHit = true
	require.NoError(t, repo.Update(ctx, trade))

	found, err := repo.FindByID(ctx, trade.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, domain.StatusClosed, found.Status)
	require.NotNil(t, found.ExitPrice)
	assert.InDelta(t, 60000, *found.ExitPrice, 1e-9)
	require.NotNil(t, found.CloseReason)
	assert.Equal(t, domain.CloseReasonTakeProfit, *found.CloseReason)
	assert.True(t, found.TpHit)
	require.NotNil(t, found.CloseDate)
	assert.True(t, found.CloseDate.Equal(closeDate))
}

func TestRepository_UpdateTrade_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	trade := newOpenTrade()
	trade.ID = 999
	err := repo.Update(context.Background(), trade)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_FindByStatusAndCoin(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	open := newOpenTrade()
	_, err := repo.Create(ctx, open)
	require.NoError(t, err)

	closed := newOpenTrade()
	closed.Coin = "ETH"
	closed.Status = domain.StatusClosed
	closed.ExitPrice = floatPtr(55000)
	now := time.Now().UTC()
	closed.CloseDate = &now
	_, err = repo.Create(ctx, closed)
	require.NoError(t, err)

	openTrades, err := repo.FindByStatus(ctx, domain.StatusOpen)
	require.NoError(t, err)
	require.Len(t, openTrades, 1)
	assert.Equal(t, "BTC", openTrades[0].Coin)

	ethTrades, err := repo.FindByCoin(ctx, "eth")
	require.NoError(t, err)
	require.Len(t, ethTrades, 1)
	assert.Equal(t, domain.StatusClosed, ethTrades[0].Status)

	coins, err := repo.DistinctCoins(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"BTC", "ETH"}, coins)

	exchanges, err := repo.DistinctExchanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Binance"}, exchanges)
}

func TestRepository_FindOpenByExchange(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	first := newOpenTrade()
	first.PositionSize = 200
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)

	second := newOpenTrade()
	second.PositionSize = 150
	_, err = repo.Create(ctx, second)
	require.NoError(t, err)

	other := newOpenTrade()
	other.Exchange = "Bybit"
	_, err = repo.Create(ctx, other)
	require.NoError(t, err)

	closed := newOpenTrade()
	closed.Status = domain.StatusClosed
	closed.ExitPrice = floatPtr(51000)
	_, err = repo.Create(ctx, closed)
	require.NoError(t, err)

	trades, err := repo.FindOpenByExchange(ctx, "binance")
	require.NoError(t, err)
	require.Len(t, trades, 2)
	var used float64
	for _, tr := range trades {
		used += tr.PositionSize
	}
	assert.InDelta(t, 350, used, 1e-9)
}

func TestRepository_DeleteTradeCascadesInvestments(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	trade := newOpenTrade()
	tradeID, err := repo.Create(ctx, trade)
	require.NoError(t, err)

	inv := &domain.Investment{
		TradeID:           tradeID,
		Amount:            100,
		PriceAtInvestment: 50000,
		InvestmentDate:    time.Now().UTC(),
	}
	_, err = repo.CreateInvestment(ctx, inv)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, tradeID))

	investments, err := repo.FindInvestmentsByTradeID(ctx, tradeID)
	require.NoError(t, err)
	assert.Empty(t, investments)
}

func TestRepository_InvestmentLifecycle(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	trade := newOpenTrade()
	tradeID, err := repo.Create(ctx, trade)
	require.NoError(t, err)

	older := &domain.Investment{
		TradeID:           tradeID,
		Amount:            100,
		PriceAtInvestment: 10,
		InvestmentDate:    time.Now().UTC().Add(-time.Hour),
	}
	newer := &domain.Investment{
		TradeID:           tradeID,
		Amount:            200,
		PriceAtInvestment: 20,
		InvestmentDate:    time.Now().UTC(),
	}
	_, err = repo.CreateInvestment(ctx, older)
	require.NoError(t, err)
	newerID, err := repo.CreateInvestment(ctx, newer)
	require.NoError(t, err)

	investments, err := repo.FindInvestmentsByTradeID(ctx, tradeID)
	require.NoError(t, err)
	require.Len(t, investments, 2)
	assert.Equal(t, newerID, investments[0].ID, "newest first")

	total, err := repo.TotalInvestedByTradeID(ctx, tradeID)
	require.NoError(t, err)
	assert.InDelta(t, 300, total, 1e-9)

	newer.Amount = 250
	require.NoError(t, repo.UpdateInvestment(ctx, newer))
	total, err = repo.TotalInvestedByTradeID(ctx, tradeID)
	require.NoError(t, err)
	assert.InDelta(t, 350, total, 1e-9)

	require.NoError(t, repo.DeleteInvestment(ctx, newerID))
	total, err = repo.TotalInvestedByTradeID(ctx, tradeID)
	require.NoError(t, err)
	assert.InDelta(t, 100, total, 1e-9)
}

func TestRepository_WalletLifecycle(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	wallet := &domain.ExchangeWallet{ExchangeName: "Binance", TotalBalance: 1000}
	id, err := repo.CreateWallet(ctx, wallet)
	require.NoError(t, err)

	found, err := repo.FindWalletByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Binance", found.ExchangeName)
	assert.InDelta(t, 1000, found.TotalBalance, 1e-9)

	byName, err := repo.FindWalletByExchange(ctx, "BINANCE")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, id, byName.ID)

	wallet.TotalBalance = 1500
	require.NoError(t, repo.UpdateWallet(ctx, wallet))

	_, err = repo.CreateWallet(ctx, &domain.ExchangeWallet{ExchangeName: "Kraken", TotalBalance: 500})
	require.NoError(t, err)

	total, err := repo.TotalWalletBalance(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 2000, total, 1e-9)

	wallets, err := repo.FindAllWallets(ctx)
	require.NoError(t, err)
	require.Len(t, wallets, 2)

	require.NoError(t, repo.DeleteWallet(ctx, id))
	gone, err := repo.FindWalletByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestRepository_WalletDuplicateExchange(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.CreateWallet(ctx, &domain.ExchangeWallet{ExchangeName: "Binance", TotalBalance: 1000})
	require.NoError(t, err)

	_, err = repo.CreateWallet(ctx, &domain.ExchangeWallet{ExchangeName: "binance", TotalBalance: 200})
	assert.ErrorIs(t, err, ports.ErrDuplicateEntry)
}
