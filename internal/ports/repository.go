package ports

import (
	"context"

	"cryptoJournal/internal/domain"
)

// TradeRepository defines the interface for storing and retrieving journal trades.
type TradeRepository interface {
	// Create saves a new trade and returns its assigned ID.
	Create(ctx context.Context, trade *domain.Trade) (int64, error)
	// Update modifies an existing trade.
	Update(ctx context.Context, trade *domain.Trade) error
	// Delete removes a trade. Its investments are removed with it.
	Delete(ctx context.Context, id int64) error
	// FindByID retrieves a trade by its unique ID.
	// Returns nil, nil if not found.
	FindByID(ctx context.Context, id int64) (*domain.Trade, error)
	// FindAll retrieves all trades, ordered by trade date descending.
	FindAll(ctx context.Context) ([]*domain.Trade, error)
	// FindByStatus retrieves all trades with the given status.
	FindByStatus(ctx context.Context, status domain.TradeStatus) ([]*domain.Trade, error)
	// FindByCoin retrieves all trades for a coin symbol (case-insensitive).
	FindByCoin(ctx context.Context, coin string) ([]*domain.Trade, error)
	// FindOpenByExchange retrieves the open trades recorded against an
	// exchange (case-insensitive). Used for wallet balance derivation.
	FindOpenByExchange(ctx context.Context, exchange string) ([]*domain.Trade, error)
	// DistinctCoins lists the unique coin symbols present in the journal.
	DistinctCoins(ctx context.Context) ([]string, error)
	// DistinctExchanges lists the unique exchange names present in the journal.
	DistinctExchanges(ctx context.Context) ([]string, error)
}

// InvestmentRepository defines the interface for storing and retrieving
// the incremental investments attached to trades.
type InvestmentRepository interface {
	// CreateInvestment saves a new investment and returns its assigned ID.
	CreateInvestment(ctx context.Context, inv *domain.Investment) (int64, error)
	// UpdateInvestment modifies an existing investment.
	UpdateInvestment(ctx context.Context, inv *domain.Investment) error
	// DeleteInvestment removes an investment.
	DeleteInvestment(ctx context.Context, id int64) error
	// FindInvestmentByID retrieves an investment by its unique ID.
	// Returns nil, nil if not found.
	FindInvestmentByID(ctx context.Context, id int64) (*domain.Investment, error)
	// FindInvestmentsByTradeID retrieves the investments for a trade, newest first.
	FindInvestmentsByTradeID(ctx context.Context, tradeID int64) ([]*domain.Investment, error)
	// TotalInvestedByTradeID sums the invested amounts for a trade.
	TotalInvestedByTradeID(ctx context.Context, tradeID int64) (float64, error)
}

// WalletRepository defines the interface for storing and retrieving
// exchange wallet balance records.
type WalletRepository interface {
	// CreateWallet saves a new wallet and returns its assigned ID.
	CreateWallet(ctx context.Context, wallet *domain.ExchangeWallet) (int64, error)
	// UpdateWallet modifies an existing wallet.
	UpdateWallet(ctx context.Context, wallet *domain.ExchangeWallet) error
	// DeleteWallet removes a wallet.
	DeleteWallet(ctx context.Context, id int64) error
	// FindWalletByID retrieves a wallet by its unique ID.
	// Returns nil, nil if not found.
	FindWalletByID(ctx context.Context, id int64) (*domain.ExchangeWallet, error)
	// FindWalletByExchange retrieves a wallet by exchange name (case-insensitive).
	// Returns nil, nil if not found.
	FindWalletByExchange(ctx context.Context, exchangeName string) (*domain.ExchangeWallet, error)
	// FindAllWallets retrieves all wallets, ordered by exchange name.
	FindAllWallets(ctx context.Context) ([]*domain.ExchangeWallet, error)
	// TotalWalletBalance sums the stored balances across all wallets.
	TotalWalletBalance(ctx context.Context) (float64, error)
}
