package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cryptoJournal/internal/domain"
	"cryptoJournal/internal/ports"

	"github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements the ports.TradeRepository, ports.InvestmentRepository
// and ports.WalletRepository interfaces using SQLite.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/journal.db" // Default path
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// WAL mode for better concurrency; foreign keys for investment cascade
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("failed to ping database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db.SetMaxOpenConns(1) // SQLite handles concurrency internally, but Go driver benefits from limiting connections
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	repo := &Repository{db: db, logger: cfg.Logger}

	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "SQLite database ready", map[string]interface{}{"path": dbPath})

	return repo, nil
}

// initializeSchema creates tables if they don't exist.
func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS trades (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		coin TEXT NOT NULL,
		trade_type TEXT NOT NULL,
		entry_price REAL NOT NULL,
		exit_price REAL DEFAULT NULL,
		current_price REAL DEFAULT NULL,
		quantity REAL NOT NULL DEFAULT 0,
		position_size REAL NOT NULL,
		leverage INTEGER NOT NULL,
		fees REAL DEFAULT NULL,
		exchange TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		stop_loss REAL DEFAULT NULL,
		take_profit REAL DEFAULT NULL,
		liquidation_price REAL DEFAULT NULL,
		tp_hit INTEGER NOT NULL DEFAULT 0,
		liquidated INTEGER NOT NULL DEFAULT 0,
		close_reason TEXT DEFAULT NULL,
		trade_date TIMESTAMP NOT NULL,
		close_date TIMESTAMP DEFAULT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS investments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		trade_id INTEGER NOT NULL REFERENCES trades(id) ON DELETE CASCADE,
		amount REAL NOT NULL,
		price_at_investment REAL NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		investment_date TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS wallets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		exchange_name TEXT NOT NULL UNIQUE COLLATE NOCASE,
		total_balance REAL NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	-- Add indexes for common lookups
	CREATE INDEX IF NOT EXISTS idx_trades_status ON trades (status);
	CREATE INDEX IF NOT EXISTS idx_trades_coin ON trades (coin);
	CREATE INDEX IF NOT EXISTS idx_trades_exchange_status ON trades (exchange, status);
	CREATE INDEX IF NOT EXISTS idx_investments_trade_id ON investments (trade_id);
	`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

const tradeColumns = `id, coin, trade_type, entry_price, exit_price, current_price, quantity,
	position_size, leverage, fees, exchange, status, notes, stop_loss, take_profit,
	liquidation_price, tp_hit, liquidated, close_reason, trade_date, close_date,
	created_at, updated_at`

// --- TradeRepository Implementation ---

// Create saves a new trade and returns its assigned ID.
func (r *Repository) Create(ctx context.Context, trade *domain.Trade) (int64, error) {
	const query = `
	INSERT INTO trades (coin, trade_type, entry_price, exit_price, current_price, quantity,
		position_size, leverage, fees, exchange, status, notes, stop_loss, take_profit,
		liquidation_price, tp_hit, liquidated, close_reason, trade_date, close_date,
		created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	trade.CreatedAt = now
	trade.UpdatedAt = now

	result, err := r.db.ExecContext(ctx, query,
		trade.Coin, trade.TradeType, trade.EntryPrice, nullFloat(trade.ExitPrice),
		nullFloat(trade.CurrentPrice), trade.Quantity, trade.PositionSize, trade.Leverage,
		nullFloat(trade.Fees), trade.Exchange, trade.Status, trade.Notes,
		nullFloat(trade.StopLoss), nullFloat(trade.TakeProfit), nullFloat(trade.LiquidationPrice),
		trade.TpHit, trade.Liquidated, nullReason(trade.CloseReason),
		trade.TradeDate, nullTime(trade.CloseDate), trade.CreatedAt, trade.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert trade for coin %s: %w", trade.Coin, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for trade %s: %w", trade.Coin, err)
	}
	trade.ID = id
	r.logger.Debug(ctx, "Trade created", map[string]interface{}{"tradeID": id, "coin": trade.Coin})
	return id, nil
}

// Update modifies an existing trade based on its ID.
func (r *Repository) Update(ctx context.Context, trade *domain.Trade) error {
	const query = `
	UPDATE trades
	SET coin = ?, trade_type = ?, entry_price = ?, exit_price = ?, current_price = ?,
		quantity = ?, position_size = ?, leverage = ?, fees = ?, exchange = ?, status = ?,
		notes = ?, stop_loss = ?, take_profit = ?, liquidation_price = ?, tp_hit = ?,
		liquidated = ?, close_reason = ?, trade_date = ?, close_date = ?, updated_at = ?
	WHERE id = ?`

	trade.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		trade.Coin, trade.TradeType, trade.EntryPrice, nullFloat(trade.ExitPrice),
		nullFloat(trade.CurrentPrice), trade.Quantity, trade.PositionSize, trade.Leverage,
		nullFloat(trade.Fees), trade.Exchange, trade.Status, trade.Notes,
		nullFloat(trade.StopLoss), nullFloat(trade.TakeProfit), nullFloat(trade.LiquidationPrice),
		trade.TpHit, trade.Liquidated, nullReason(trade.CloseReason),
		trade.TradeDate, nullTime(trade.CloseDate), trade.UpdatedAt,
		trade.ID)
	if err != nil {
		return fmt.Errorf("failed to update trade ID %d: %w", trade.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for update trade ID %d: %w", trade.ID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("trade ID %d not found for update: %w", trade.ID, ports.ErrNotFound)
	}
	r.logger.Debug(ctx, "Trade updated", map[string]interface{}{"tradeID": trade.ID, "status": trade.Status})
	return nil
}

// Delete removes a trade; its investments go with it via the FK cascade.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trades WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trade ID %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for delete trade ID %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("trade ID %d not found for delete: %w", id, ports.ErrNotFound)
	}
	r.logger.Debug(ctx, "Trade deleted", map[string]interface{}{"tradeID": id})
	return nil
}

// FindByID retrieves a trade by its unique ID.
func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	trade, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not an error, just not found
		}
		return nil, fmt.Errorf("failed to query trade by ID %d: %w", id, err)
	}
	return trade, nil
}

// FindAll retrieves all trades, ordered by trade date descending.
func (r *Repository) FindAll(ctx context.Context) ([]*domain.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades ORDER BY trade_date DESC`
	return r.queryTrades(ctx, query)
}

// FindByStatus retrieves all trades with the given status.
func (r *Repository) FindByStatus(ctx context.Context, status domain.TradeStatus) ([]*domain.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE status = ? ORDER BY trade_date DESC`
	return r.queryTrades(ctx, query, status)
}

// FindByCoin retrieves all trades for a coin symbol, case-insensitive.
func (r *Repository) FindByCoin(ctx context.Context, coin string) ([]*domain.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE UPPER(coin) = ? ORDER BY trade_date DESC`
	return r.queryTrades(ctx, query, strings.ToUpper(coin))
}

// FindOpenByExchange retrieves the open trades recorded against an exchange.
func (r *Repository) FindOpenByExchange(ctx context.Context, exchange string) ([]*domain.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades
	WHERE exchange = ? COLLATE NOCASE AND status = ? ORDER BY trade_date DESC`
	return r.queryTrades(ctx, query, exchange, domain.StatusOpen)
}

// DistinctCoins lists the unique coin symbols present in the journal.
func (r *Repository) DistinctCoins(ctx context.Context) ([]string, error) {
	return r.queryStrings(ctx, `SELECT DISTINCT UPPER(coin) FROM trades ORDER BY UPPER(coin)`)
}

// DistinctExchanges lists the unique non-empty exchange names present in the journal.
func (r *Repository) DistinctExchanges(ctx context.Context) ([]string, error) {
	return r.queryStrings(ctx, `SELECT DISTINCT exchange FROM trades WHERE exchange != '' ORDER BY exchange`)
}

func (r *Repository) queryTrades(ctx context.Context, query string, args ...interface{}) ([]*domain.Trade, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	trades := make([]*domain.Trade, 0)
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade row: %w", err)
		}
		trades = append(trades, trade)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade rows: %w", err)
	}
	return trades, nil
}

func (r *Repository) queryStrings(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query strings: %w", err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan string row: %w", err)
		}
		values = append(values, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating string rows: %w", err)
	}
	return values, nil
}

// --- InvestmentRepository Implementation ---

// CreateInvestment saves a new investment and returns its assigned ID.
func (r *Repository) CreateInvestment(ctx context.Context, inv *domain.Investment) (int64, error) {
	const query = `
	INSERT INTO investments (trade_id, amount, price_at_investment, notes, investment_date, created_at)
	VALUES (?, ?, ?, ?, ?, ?)`

	inv.CreatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		inv.TradeID, inv.Amount, inv.PriceAtInvestment, inv.Notes, inv.InvestmentDate, inv.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert investment for trade %d: %w", inv.TradeID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for investment: %w", err)
	}
	inv.ID = id
	r.logger.Debug(ctx, "Investment created", map[string]interface{}{"investmentID": id, "tradeID": inv.TradeID})
	return id, nil
}

// UpdateInvestment modifies an existing investment based on its ID.
func (r *Repository) UpdateInvestment(ctx context.Context, inv *domain.Investment) error {
	const query = `
	UPDATE investments
	SET amount = ?, price_at_investment = ?, notes = ?, investment_date = ?
	WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		inv.Amount, inv.PriceAtInvestment, inv.Notes, inv.InvestmentDate, inv.ID)
	if err != nil {
		return fmt.Errorf("failed to update investment ID %d: %w", inv.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for update investment ID %d: %w", inv.ID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("investment ID %d not found for update: %w", inv.ID, ports.ErrNotFound)
	}
	return nil
}

// DeleteInvestment removes an investment.
func (r *Repository) DeleteInvestment(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM investments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete investment ID %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for delete investment ID %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("investment ID %d not found for delete: %w", id, ports.ErrNotFound)
	}
	return nil
}

// FindInvestmentByID retrieves an investment by its unique ID.
func (r *Repository) FindInvestmentByID(ctx context.Context, id int64) (*domain.Investment, error) {
	const query = `
	SELECT id, trade_id, amount, price_at_investment, notes, investment_date, created_at
	FROM investments WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	inv, err := scanInvestment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query investment by ID %d: %w", id, err)
	}
	return inv, nil
}

// FindInvestmentsByTradeID retrieves the investments for a trade, newest first.
func (r *Repository) FindInvestmentsByTradeID(ctx context.Context, tradeID int64) ([]*domain.Investment, error) {
	const query = `
	SELECT id, trade_id, amount, price_at_investment, notes, investment_date, created_at
	FROM investments WHERE trade_id = ? ORDER BY investment_date DESC`

	rows, err := r.db.QueryContext(ctx, query, tradeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query investments for trade %d: %w", tradeID, err)
	}
	defer rows.Close()

	investments := make([]*domain.Investment, 0)
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment row: %w", err)
		}
		investments = append(investments, inv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment rows: %w", err)
	}
	return investments, nil
}

// TotalInvestedByTradeID sums the invested amounts for a trade.
func (r *Repository) TotalInvestedByTradeID(ctx context.Context, tradeID int64) (float64, error) {
	const query = `SELECT COALESCE(SUM(amount), 0) FROM investments WHERE trade_id = ?`
	var total float64
	if err := r.db.QueryRowContext(ctx, query, tradeID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to total investments for trade %d: %w", tradeID, err)
	}
	return total, nil
}

// --- WalletRepository Implementation ---

// CreateWallet saves a new wallet and returns its assigned ID.
func (r *Repository) CreateWallet(ctx context.Context, wallet *domain.ExchangeWallet) (int64, error) {
	const query = `
	INSERT INTO wallets (exchange_name, total_balance, notes, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	wallet.CreatedAt = now
	wallet.UpdatedAt = now

	result, err := r.db.ExecContext(ctx, query,
		wallet.ExchangeName, wallet.TotalBalance, wallet.Notes, wallet.CreatedAt, wallet.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("wallet for exchange %q: %w", wallet.ExchangeName, ports.ErrDuplicateEntry)
		}
		return 0, fmt.Errorf("failed to insert wallet for exchange %s: %w", wallet.ExchangeName, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for wallet %s: %w", wallet.ExchangeName, err)
	}
	wallet.ID = id
	r.logger.Debug(ctx, "Wallet created", map[string]interface{}{"walletID": id, "exchange": wallet.ExchangeName})
	return id, nil
}

// UpdateWallet modifies an existing wallet based on its ID.
func (r *Repository) UpdateWallet(ctx context.Context, wallet *domain.ExchangeWallet) error {
	const query = `
	UPDATE wallets SET exchange_name = ?, total_balance = ?, notes = ?, updated_at = ?
	WHERE id = ?`

	wallet.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		wallet.ExchangeName, wallet.TotalBalance, wallet.Notes, wallet.UpdatedAt, wallet.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("wallet for exchange %q: %w", wallet.ExchangeName, ports.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to update wallet ID %d: %w", wallet.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for update wallet ID %d: %w", wallet.ID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("wallet ID %d not found for update: %w", wallet.ID, ports.ErrNotFound)
	}
	return nil
}

// DeleteWallet removes a wallet.
func (r *Repository) DeleteWallet(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM wallets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete wallet ID %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for delete wallet ID %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("wallet ID %d not found for delete: %w", id, ports.ErrNotFound)
	}
	return nil
}

// FindWalletByID retrieves a wallet by its unique ID.
func (r *Repository) FindWalletByID(ctx context.Context, id int64) (*domain.ExchangeWallet, error) {
	const query = `
	SELECT id, exchange_name, total_balance, notes, created_at, updated_at
	FROM wallets WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	wallet, err := scanWallet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query wallet by ID %d: %w", id, err)
	}
	return wallet, nil
}

// FindWalletByExchange retrieves a wallet by exchange name, case-insensitive.
func (r *Repository) FindWalletByExchange(ctx context.Context, exchangeName string) (*domain.ExchangeWallet, error) {
	const query = `
	SELECT id, exchange_name, total_balance, notes, created_at, updated_at
	FROM wallets WHERE exchange_name = ? COLLATE NOCASE`

	row := r.db.QueryRowContext(ctx, query, exchangeName)
	wallet, err := scanWallet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query wallet by exchange %s: %w", exchangeName, err)
	}
	return wallet, nil
}

// FindAllWallets retrieves all wallets, ordered by exchange name.
func (r *Repository) FindAllWallets(ctx context.Context) ([]*domain.ExchangeWallet, error) {
	const query = `
	SELECT id, exchange_name, total_balance, notes, created_at, updated_at
	FROM wallets ORDER BY exchange_name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets: %w", err)
	}
	defer rows.Close()

	wallets := make([]*domain.ExchangeWallet, 0)
	for rows.Next() {
		wallet, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet row: %w", err)
		}
		wallets = append(wallets, wallet)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallet rows: %w", err)
	}
	return wallets, nil
}

// TotalWalletBalance sums the stored balances across all wallets.
func (r *Repository) TotalWalletBalance(ctx context.Context) (float64, error) {
	const query = `SELECT COALESCE(SUM(total_balance), 0) FROM wallets`
	var total float64
	if err := r.db.QueryRowContext(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to total wallet balances: %w", err)
	}
	return total, nil
}

// --- Helper Scan Functions ---

// scanner defines an interface compatible with *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanTrade scans a row into a domain.Trade struct.
func scanTrade(s scanner) (*domain.Trade, error) {
	t := &domain.Trade{}
	var (
		exitPrice, currentPrice, fees        sql.NullFloat64
		stopLoss, takeProfit, liqPrice       sql.NullFloat64
		closeReason                          sql.NullString
		closeDate                            sql.NullTime
		tradeType, status                    string
	)
	err := s.Scan(
		&t.ID, &t.Coin, &tradeType, &t.EntryPrice, &exitPrice, &currentPrice, &t.Quantity,
		&t.PositionSize, &t.Leverage, &fees, &t.Exchange, &status, &t.Notes, &stopLoss,
		&takeProfit, &liqPrice, &t.TpHit, &t.Liquidated, &closeReason, &t.TradeDate,
		&closeDate, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err // Handle sql.ErrNoRows in the caller
	}
	t.TradeType = domain.TradeType(tradeType)
	t.Status = domain.TradeStatus(status)
	t.ExitPrice = floatFromNull(exitPrice)
	t.CurrentPrice = floatFromNull(currentPrice)
	t.Fees = floatFromNull(fees)
	t.StopLoss = floatFromNull(stopLoss)
	t.TakeProfit = floatFromNull(takeProfit)
	t.LiquidationPrice = floatFromNull(liqPrice)
	if closeReason.Valid {
		reason := domain.CloseReason(closeReason.String)
		t.CloseReason = &reason
	}
	if closeDate.Valid {
		t.CloseDate = &closeDate.Time
	}
	return t, nil
}

// scanInvestment scans a row into a domain.Investment struct.
func scanInvestment(s scanner) (*domain.Investment, error) {
	inv := &domain.Investment{}
	err := s.Scan(&inv.ID, &inv.TradeID, &inv.Amount, &inv.PriceAtInvestment,
		&inv.Notes, &inv.InvestmentDate, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// scanWallet scans a row into a domain.ExchangeWallet struct.
func scanWallet(s scanner) (*domain.ExchangeWallet, error) {
	w := &domain.ExchangeWallet{}
	err := s.Scan(&w.ID, &w.ExchangeName, &w.TotalBalance, &w.Notes, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatFromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

func nullReason(v *domain.CloseReason) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*v), Valid: true}
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
