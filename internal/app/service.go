package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cryptoJournal/internal/domain"
	"cryptoJournal/internal/ports"
	"cryptoJournal/internal/valuation"
)

// TradeWithValuation pairs a trade with its computed valuation for list and
// detail reads. Valuation is nil when the trade cannot be valued; Issue then
// carries the reason.
type TradeWithValuation struct {
	Trade     *domain.Trade        `json:"trade"`
	Valuation *valuation.Valuation `json:"valuation,omitempty"`
	Issue     string               `json:"issue,omitempty"`
}

// SummaryResult bundles the portfolio aggregate with any trades that were
// excluded from it.
type SummaryResult struct {
	Summary *valuation.PortfolioSummary `json:"summary"`
	Issues  []valuation.TradeIssue      `json:"issues,omitempty"`
}

// JournalService orchestrates the trade journal: persistence, live pricing
// and valuation.
type JournalService struct {
	logger      ports.Logger
	trades      ports.TradeRepository
	investments ports.InvestmentRepository
	wallets     ports.WalletRepository
	feed        ports.PriceFeed

	now func() time.Time
}

// NewJournalService creates a new application service instance.
func NewJournalService(
	logger ports.Logger,
	trades ports.TradeRepository,
	investments ports.InvestmentRepository,
	wallets ports.WalletRepository,
	feed ports.PriceFeed,
) (*JournalService, error) {
	if logger == nil || trades == nil || investments == nil || wallets == nil || feed == nil {
		return nil, fmt.Errorf("missing required dependencies for JournalService")
	}
	return &JournalService{
		logger:      logger,
		trades:      trades,
		investments: investments,
		wallets:     wallets,
		feed:        feed,
		now:         time.Now,
	}, nil
}

// --- Trades ---

// CreateTrade validates and records a new trade. Position size defaults to
// quantity * entry price when not given; leverage defaults to 1; status
// defaults to OPEN; trade date defaults to now.
func (s *JournalService) CreateTrade(ctx context.Context, trade *domain.Trade) (*domain.Trade, error) {
	if trade == nil {
		return nil, fmt.Errorf("trade is required: %w", ports.ErrInvalidRequest)
	}
	trade.Coin = strings.ToUpper(strings.TrimSpace(trade.Coin))
	if trade.Leverage == 0 {
		trade.Leverage = 1
	}
	if trade.Status == "" {
		trade.Status = domain.StatusOpen
	}
	if trade.PositionSize == 0 && trade.Quantity > 0 {
		trade.PositionSize = trade.Quantity * trade.EntryPrice
	}
	if trade.TradeDate.IsZero() {
		trade.TradeDate = s.now().UTC()
	}
	if err := validateTrade(trade); err != nil {
		return nil, err
	}
	if trade.Status == domain.StatusClosed && trade.CloseDate == nil {
		closeDate := s.now().UTC()
		trade.CloseDate = &closeDate
	}

	id, err := s.trades.Create(ctx, trade)
	if err != nil {
		s.logger.Error(ctx, err, "Failed to create trade", map[string]interface{}{"coin": trade.Coin})
		return nil, err
	}
	trade.ID = id
	s.logger.Info(ctx, "Trade created", map[string]interface{}{"tradeID": id, "coin": trade.Coin, "type": trade.TradeType})
	return trade, nil
}

// GetTrade retrieves a single trade.
func (s *JournalService) GetTrade(ctx context.Context, id int64) (*domain.Trade, error) {
	trade, err := s.trades.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trade == nil {
		return nil, fmt.Errorf("trade %d: %w", id, ports.ErrNotFound)
	}
	return trade, nil
}

// ListTrades returns all trades with their valuations, newest first. Live
// price failures degrade to stored prices rather than failing the read.
func (s *JournalService) ListTrades(ctx context.Context) ([]TradeWithValuation, error) {
	trades, err := s.trades.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.attachValuations(ctx, trades), nil
}

// ListTradesByStatus returns trades in the given status with valuations.
func (s *JournalService) ListTradesByStatus(ctx context.Context, status domain.TradeStatus) ([]TradeWithValuation, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("unknown status %q: %w", status, ports.ErrInvalidRequest)
	}
	trades, err := s.trades.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return s.attachValuations(ctx, trades), nil
}

// ListTradesByCoin returns the trades for a coin symbol with valuations.
func (s *JournalService) ListTradesByCoin(ctx context.Context, coin string) ([]TradeWithValuation, error) {
	coin = strings.TrimSpace(coin)
	if coin == "" {
		return nil, fmt.Errorf("coin is required: %w", ports.ErrInvalidRequest)
	}
	trades, err := s.trades.FindByCoin(ctx, coin)
	if err != nil {
		return nil, err
	}
	return s.attachValuations(ctx, trades), nil
}

// UpdateTrade modifies an open trade. Closed trades are immutable; use
// DeleteTrade to remove them.
func (s *JournalService) UpdateTrade(ctx context.Context, trade *domain.Trade) (*domain.Trade, error) {
	if trade == nil {
		return nil, fmt.Errorf("trade is required: %w", ports.ErrInvalidRequest)
	}
	existing, err := s.GetTrade(ctx, trade.ID)
	if err != nil {
		return nil, err
	}
	if existing.Status == domain.StatusClosed {
		return nil, fmt.Errorf("trade %d: %w", trade.ID, ports.ErrTradeClosed)
	}

	trade.Coin = strings.ToUpper(strings.TrimSpace(trade.Coin))
	if trade.Leverage == 0 {
		trade.Leverage = 1
	}
	if trade.Status == "" {
		trade.Status = existing.Status
	}
	if trade.PositionSize == 0 && trade.Quantity > 0 {
		trade.PositionSize = trade.Quantity * trade.EntryPrice
	}
	if trade.TradeDate.IsZero() {
		trade.TradeDate = existing.TradeDate
	}
	trade.CreatedAt = existing.CreatedAt
	if err := validateTrade(trade); err != nil {
		return nil, err
	}

	if err := s.trades.Update(ctx, trade); err != nil {
		s.logger.Error(ctx, err, "Failed to update trade", map[string]interface{}{"tradeID": trade.ID})
		return nil, err
	}
	s.logger.Info(ctx, "Trade updated", map[string]interface{}{"tradeID": trade.ID})
	return trade, nil
}

// DeleteTrade removes a trade and, through the repository, its investments.
func (s *JournalService) DeleteTrade(ctx context.Context, id int64) error {
	if err := s.trades.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "Trade deleted", map[string]interface{}{"tradeID": id})
	return nil
}

// CloseTrade marks an open trade closed at the given exit price, stamping the
// close date and the outcome flags implied by the reason.
func (s *JournalService) CloseTrade(ctx context.Context, id int64, exitPrice float64, reason domain.CloseReason) (*domain.Trade, error) {
	if exitPrice <= 0 {
		return nil, fmt.Errorf("exit price must be positive: %w", ports.ErrInvalidRequest)
	}
	if !reason.IsValid() {
		return nil, fmt.Errorf("unknown close reason %q: %w", reason, ports.ErrInvalidRequest)
	}

	trade, err := s.GetTrade(ctx, id)
	if err != nil {
		return nil, err
	}
	if trade.Status == domain.StatusClosed {
		return nil, fmt.Errorf("trade %d: %w", id, ports.ErrTradeClosed)
	}

	closeDate := s.now().UTC()
	trade.Status = domain.StatusClosed
	trade.ExitPrice = &exitPrice
	trade.CloseDate = &closeDate
	trade.CloseReason = &reason
	trade.TpHit = reason == domain.CloseReasonTakeProfit
	trade.Liquidated = reason == domain.CloseReasonLiquidated

	if err := s.trades.Update(ctx, trade); err != nil {
		s.logger.Error(ctx, err, "Failed to close trade", map[string]interface{}{"tradeID": id})
		return nil, err
	}
	s.logger.Info(ctx, "Trade closed", map[string]interface{}{"tradeID": id, "exitPrice": exitPrice, "reason": reason})
	return trade, nil
}

// TradeValuation values a single trade: investment-weighted when the trade
// has investments, otherwise in position mode against the live price.
func (s *JournalService) TradeValuation(ctx context.Context, id int64) (valuation.Valuation, error) {
	trade, err := s.GetTrade(ctx, id)
	if err != nil {
		return valuation.Valuation{}, err
	}
	investments, err := s.investments.FindInvestmentsByTradeID(ctx, id)
	if err != nil {
		return valuation.Valuation{}, err
	}
	live := s.livePriceFor(ctx, trade)
	return valuation.ValuateTrade(trade, investments, live)
}

// Summary aggregates the whole journal into a portfolio summary. A price feed
// failure downgrades open trades to their stored prices instead of failing.
func (s *JournalService) Summary(ctx context.Context) (*SummaryResult, error) {
	trades, err := s.trades.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	summary, issues := valuation.Aggregate(trades, s.openCoinPrices(ctx, trades), s.now())
	for _, issue := range issues {
		s.logger.Warn(ctx, "Trade excluded from summary", map[string]interface{}{"tradeID": issue.TradeID, "reason": issue.Reason()})
	}
	return &SummaryResult{Summary: summary, Issues: issues}, nil
}

// AllTrades returns every trade without valuations, for exports.
func (s *JournalService) AllTrades(ctx context.Context) ([]*domain.Trade, error) {
	return s.trades.FindAll(ctx)
}

// UniqueCoins lists the distinct coin symbols in the journal.
func (s *JournalService) UniqueCoins(ctx context.Context) ([]string, error) {
	return s.trades.DistinctCoins(ctx)
}

// UniqueExchanges lists the distinct exchange names in the journal.
func (s *JournalService) UniqueExchanges(ctx context.Context) ([]string, error) {
	return s.trades.DistinctExchanges(ctx)
}

// --- Investments ---

// AddInvestment records an additional capital entry on an open trade and
// re-syncs the trade's position size to the investment total.
func (s *JournalService) AddInvestment(ctx context.Context, inv *domain.Investment) (*domain.Investment, error) {
	if err := validateInvestment(inv); err != nil {
		return nil, err
	}
	trade, err := s.GetTrade(ctx, inv.TradeID)
	if err != nil {
		return nil, err
	}
	if trade.Status == domain.StatusClosed {
		return nil, fmt.Errorf("trade %d: %w", trade.ID, ports.ErrTradeClosed)
	}
	if inv.InvestmentDate.IsZero() {
		inv.InvestmentDate = s.now().UTC()
	}

	id, err := s.investments.CreateInvestment(ctx, inv)
	if err != nil {
		s.logger.Error(ctx, err, "Failed to create investment", map[string]interface{}{"tradeID": inv.TradeID})
		return nil, err
	}
	inv.ID = id
	if err := s.syncPositionSize(ctx, trade); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "Investment added", map[string]interface{}{"investmentID": id, "tradeID": inv.TradeID, "amount": inv.Amount})
	return inv, nil
}

// ListInvestments returns a trade's investments, newest first.
func (s *JournalService) ListInvestments(ctx context.Context, tradeID int64) ([]*domain.Investment, error) {
	if _, err := s.GetTrade(ctx, tradeID); err != nil {
		return nil, err
	}
	return s.investments.FindInvestmentsByTradeID(ctx, tradeID)
}

// UpdateInvestment modifies an investment and re-syncs its trade's position size.
func (s *JournalService) UpdateInvestment(ctx context.Context, inv *domain.Investment) (*domain.Investment, error) {
	if inv == nil {
		return nil, fmt.Errorf("investment is required: %w", ports.ErrInvalidRequest)
	}
	existing, err := s.investments.FindInvestmentByID(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("investment %d: %w", inv.ID, ports.ErrNotFound)
	}
	inv.TradeID = existing.TradeID
	if err := validateInvestment(inv); err != nil {
		return nil, err
	}
	if inv.InvestmentDate.IsZero() {
		inv.InvestmentDate = existing.InvestmentDate
	}

	trade, err := s.GetTrade(ctx, inv.TradeID)
	if err != nil {
		return nil, err
	}
	if trade.Status == domain.StatusClosed {
		return nil, fmt.Errorf("trade %d: %w", trade.ID, ports.ErrTradeClosed)
	}

	if err := s.investments.UpdateInvestment(ctx, inv); err != nil {
		s.logger.Error(ctx, err, "Failed to update investment", map[string]interface{}{"investmentID": inv.ID})
		return nil, err
	}
	if err := s.syncPositionSize(ctx, trade); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "Investment updated", map[string]interface{}{"investmentID": inv.ID})
	return inv, nil
}

// DeleteInvestment removes an investment and re-syncs its trade's position size.
func (s *JournalService) DeleteInvestment(ctx context.Context, id int64) error {
	existing, err := s.investments.FindInvestmentByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("investment %d: %w", id, ports.ErrNotFound)
	}
	if err := s.investments.DeleteInvestment(ctx, id); err != nil {
		return err
	}

	trade, err := s.trades.FindByID(ctx, existing.TradeID)
	if err != nil {
		return err
	}
	if trade != nil && trade.Status == domain.StatusOpen {
		if err := s.syncPositionSize(ctx, trade); err != nil {
			return err
		}
	}
	s.logger.Info(ctx, "Investment deleted", map[string]interface{}{"investmentID": id, "tradeID": existing.TradeID})
	return nil
}

// --- Wallets ---

// CreateWallet records a new exchange wallet.
func (s *JournalService) CreateWallet(ctx context.Context, wallet *domain.ExchangeWallet) (*domain.ExchangeWallet, error) {
	if err := validateWallet(wallet); err != nil {
		return nil, err
	}
	id, err := s.wallets.CreateWallet(ctx, wallet)
	if err != nil {
		s.logger.Error(ctx, err, "Failed to create wallet", map[string]interface{}{"exchange": wallet.ExchangeName})
		return nil, err
	}
	wallet.ID = id
	s.logger.Info(ctx, "Wallet created", map[string]interface{}{"walletID": id, "exchange": wallet.ExchangeName})
	return wallet, nil
}

// GetWallet retrieves a single wallet.
func (s *JournalService) GetWallet(ctx context.Context, id int64) (*domain.ExchangeWallet, error) {
	wallet, err := s.wallets.FindWalletByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, fmt.Errorf("wallet %d: %w", id, ports.ErrNotFound)
	}
	return wallet, nil
}

// ListWallets returns all wallets ordered by exchange name.
func (s *JournalService) ListWallets(ctx context.Context) ([]*domain.ExchangeWallet, error) {
	return s.wallets.FindAllWallets(ctx)
}

// UpdateWallet modifies an existing wallet.
func (s *JournalService) UpdateWallet(ctx context.Context, wallet *domain.ExchangeWallet) (*domain.ExchangeWallet, error) {
	if err := validateWallet(wallet); err != nil {
		return nil, err
	}
	if _, err := s.GetWallet(ctx, wallet.ID); err != nil {
		return nil, err
	}
	if err := s.wallets.UpdateWallet(ctx, wallet); err != nil {
		s.logger.Error(ctx, err, "Failed to update wallet", map[string]interface{}{"walletID": wallet.ID})
		return nil, err
	}
	s.logger.Info(ctx, "Wallet updated", map[string]interface{}{"walletID": wallet.ID})
	return wallet, nil
}

// DeleteWallet removes a wallet. Trades referencing the exchange keep their
// exchange name; only the balance record goes away.
func (s *JournalService) DeleteWallet(ctx context.Context, id int64) error {
	if _, err := s.GetWallet(ctx, id); err != nil {
		return err
	}
	if err := s.wallets.DeleteWallet(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "Wallet deleted", map[string]interface{}{"walletID": id})
	return nil
}

// WalletSummaries derives used and available balance for every wallet from
// the open trades recorded against its exchange.
func (s *JournalService) WalletSummaries(ctx context.Context) ([]*domain.WalletSummary, error) {
	wallets, err := s.wallets.FindAllWallets(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]*domain.WalletSummary, 0, len(wallets))
	for _, wallet := range wallets {
		summary, err := s.walletSummary(ctx, wallet)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// WalletSummary derives the read-model view of a single wallet.
func (s *JournalService) WalletSummary(ctx context.Context, id int64) (*domain.WalletSummary, error) {
	wallet, err := s.GetWallet(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.walletSummary(ctx, wallet)
}

// TotalWalletBalance sums the stored balances across all wallets.
func (s *JournalService) TotalWalletBalance(ctx context.Context) (float64, error) {
	return s.wallets.TotalWalletBalance(ctx)
}

// --- Prices ---

// LivePrices quotes the given symbols through the configured price feed.
func (s *JournalService) LivePrices(ctx context.Context, symbols []string) (map[string]domain.Quote, error) {
	return s.feed.GetPrices(ctx, symbols)
}

// RefreshPrices drops any cached quotes so the next read hits the oracle.
// It is a no-op when the configured feed does not cache.
func (s *JournalService) RefreshPrices(ctx context.Context) {
	if invalidating, ok := s.feed.(ports.InvalidatingPriceFeed); ok {
		invalidating.Invalidate()
		s.logger.Info(ctx, "Price cache invalidated")
		return
	}
	s.logger.Debug(ctx, "Price feed does not cache, refresh is a no-op")
}

// --- helpers ---

func validateTrade(trade *domain.Trade) error {
	if trade.Coin == "" {
		return fmt.Errorf("coin is required: %w", ports.ErrInvalidRequest)
	}
	if !trade.TradeType.IsValid() {
		return fmt.Errorf("unknown trade type %q: %w", trade.TradeType, ports.ErrInvalidRequest)
	}
	if !trade.Status.IsValid() {
		return fmt.Errorf("unknown status %q: %w", trade.Status, ports.ErrInvalidRequest)
	}
	if trade.EntryPrice <= 0 {
		return fmt.Errorf("entry price must be positive: %w", ports.ErrInvalidRequest)
	}
	if trade.PositionSize <= 0 {
		return fmt.Errorf("position size must be positive: %w", ports.ErrInvalidRequest)
	}
	if trade.Leverage < 1 {
		return fmt.Errorf("leverage must be at least 1: %w", ports.ErrInvalidRequest)
	}
	if trade.ExitPrice != nil && *trade.ExitPrice <= 0 {
		return fmt.Errorf("exit price must be positive: %w", ports.ErrInvalidRequest)
	}
	if trade.CloseReason != nil && !trade.CloseReason.IsValid() {
		return fmt.Errorf("unknown close reason %q: %w", *trade.CloseReason, ports.ErrInvalidRequest)
	}
	return nil
}

func validateInvestment(inv *domain.Investment) error {
	if inv == nil {
		return fmt.Errorf("investment is required: %w", ports.ErrInvalidRequest)
	}
	if inv.TradeID == 0 {
		return fmt.Errorf("trade id is required: %w", ports.ErrInvalidRequest)
	}
	if inv.Amount <= 0 {
		return fmt.Errorf("investment amount must be positive: %w", ports.ErrInvalidRequest)
	}
	if inv.PriceAtInvestment <= 0 {
		return fmt.Errorf("price at investment must be positive: %w", ports.ErrInvalidRequest)
	}
	return nil
}

func validateWallet(wallet *domain.ExchangeWallet) error {
	if wallet == nil {
		return fmt.Errorf("wallet is required: %w", ports.ErrInvalidRequest)
	}
	if strings.TrimSpace(wallet.ExchangeName) == "" {
		return fmt.Errorf("exchange name is required: %w", ports.ErrInvalidRequest)
	}
	if wallet.TotalBalance < 0 {
		return fmt.Errorf("total balance must not be negative: %w", ports.ErrInvalidRequest)
	}
	return nil
}

// syncPositionSize re-derives a trade's position size from its investment
// total, so the position always reflects the capital actually committed.
func (s *JournalService) syncPositionSize(ctx context.Context, trade *domain.Trade) error {
	total, err := s.investments.TotalInvestedByTradeID(ctx, trade.ID)
	if err != nil {
		return err
	}
	if total <= 0 {
		// Last investment removed; keep the trade's own size.
		return nil
	}
	trade.PositionSize = total
	if err := s.trades.Update(ctx, trade); err != nil {
		s.logger.Error(ctx, err, "Failed to sync position size", map[string]interface{}{"tradeID": trade.ID})
		return err
	}
	return nil
}

func (s *JournalService) walletSummary(ctx context.Context, wallet *domain.ExchangeWallet) (*domain.WalletSummary, error) {
	openTrades, err := s.trades.FindOpenByExchange(ctx, wallet.ExchangeName)
	if err != nil {
		return nil, err
	}
	var used float64
	for _, trade := range openTrades {
		used += trade.PositionSize
	}
	return &domain.WalletSummary{
		ID:               wallet.ID,
		ExchangeName:     wallet.ExchangeName,
		TotalBalance:     wallet.TotalBalance,
		UsedBalance:      used,
		AvailableBalance: wallet.TotalBalance - used,
		OpenTradesCount:  len(openTrades),
		Notes:            wallet.Notes,
		UpdatedAt:        wallet.UpdatedAt,
	}, nil
}

// livePriceFor quotes a single trade's coin. Closed trades never need a
// live price; feed failures degrade to nil so stored prices take over.
func (s *JournalService) livePriceFor(ctx context.Context, trade *domain.Trade) *float64 {
	if !trade.IsOpen() {
		return nil
	}
	coin := strings.ToUpper(trade.Coin)
	quotes, err := s.feed.GetPrices(ctx, []string{coin})
	if err != nil {
		s.logger.Warn(ctx, "Price feed unavailable, falling back to stored prices", map[string]interface{}{"coin": coin, "error": err.Error()})
		return nil
	}
	if quote, ok := quotes[coin]; ok && quote.Price > 0 {
		price := quote.Price
		return &price
	}
	return nil
}

// openCoinPrices fetches live quotes for the coins of open trades. A feed
// failure is logged and returns nil so the caller degrades to stored prices.
func (s *JournalService) openCoinPrices(ctx context.Context, trades []*domain.Trade) map[string]domain.Quote {
	seen := make(map[string]struct{})
	var symbols []string
	for _, trade := range trades {
		if !trade.IsOpen() {
			continue
		}
		coin := strings.ToUpper(trade.Coin)
		if _, ok := seen[coin]; ok {
			continue
		}
		seen[coin] = struct{}{}
		symbols = append(symbols, coin)
	}
	if len(symbols) == 0 {
		return nil
	}

	quotes, err := s.feed.GetPrices(ctx, symbols)
	if err != nil {
		s.logger.Warn(ctx, "Price feed unavailable, falling back to stored prices", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return quotes
}

// attachValuations values each trade, degrading per-trade instead of failing
// the whole list.
func (s *JournalService) attachValuations(ctx context.Context, trades []*domain.Trade) []TradeWithValuation {
	quotes := s.openCoinPrices(ctx, trades)

	result := make([]TradeWithValuation, 0, len(trades))
	for _, trade := range trades {
		item := TradeWithValuation{Trade: trade}
		var live *float64
		if quote, ok := quotes[strings.ToUpper(trade.Coin)]; ok && quote.Price > 0 {
			price := quote.Price
			live = &price
		}
		value, err := valuation.ValuateTrade(trade, nil, live)
		if err != nil {
			item.Issue = err.Error()
		} else {
			item.Valuation = &value
		}
		result = append(result, item)
	}
	return result
}
