package binanceclient

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"cryptoJournal/internal/domain"
	"cryptoJournal/internal/ports"

	"github.com/adshao/go-binance/v2"
)

// Config holds configuration for the Binance price feed.
type Config struct {
	// API credentials are optional: the ticker price endpoint is public.
	APIKey     string
	SecretKey  string
	UseTestnet bool
	Logger     ports.Logger
}

// PriceFeed quotes coins against USDT spot tickers. It is an alternative
// oracle to the CoinGecko client; ticker prices carry no 24h change, so
// Change24h is always zero here.
type PriceFeed struct {
	client *binance.Client
	logger ports.Logger
}

// New creates a new Binance-backed price feed.
func New(cfg Config) (*PriceFeed, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for Binance price feed")
	}
	binance.UseTestnet = cfg.UseTestnet
	return &PriceFeed{
		client: binance.NewClient(cfg.APIKey, cfg.SecretKey),
		logger: cfg.Logger,
	}, nil
}

// GetPrices fetches the latest USDT ticker price for each symbol.
// Symbols without a USDT pair are absent from the result.
func (f *PriceFeed) GetPrices(ctx context.Context, symbols []string) (map[string]domain.Quote, error) {
	quotes := make(map[string]domain.Quote)
	if len(symbols) == 0 {
		return quotes, nil
	}

	pairs := make([]string, 0, len(symbols))
	coinByPair := make(map[string]string, len(symbols))
	for _, symbol := range symbols {
		coin := strings.ToUpper(symbol)
		pair := coin + "USDT"
		if _, seen := coinByPair[pair]; seen {
			continue
		}
		pairs = append(pairs, pair)
		coinByPair[pair] = coin
	}

	prices, err := f.client.NewListPricesService().Symbols(pairs).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("binance ticker request failed: %w (%v)", ports.ErrFeedUnavailable, err)
	}

	for _, p := range prices {
		coin, ok := coinByPair[p.Symbol]
		if !ok {
			continue
		}
		price, err := strconv.ParseFloat(p.Price, 64)
		if err != nil {
			f.logger.Warn(ctx, "Skipping unparsable ticker price", map[string]interface{}{"symbol": p.Symbol, "price": p.Price})
			continue
		}
		quotes[coin] = domain.Quote{Price: price}
	}
	f.logger.Debug(ctx, "Fetched live prices", map[string]interface{}{"requested": len(symbols), "received": len(quotes)})
	return quotes, nil
}
