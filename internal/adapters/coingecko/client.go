package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cryptoJournal/internal/domain"
	"cryptoJournal/internal/ports"
)

const defaultBaseURL = "https://api.coingecko.com/api/v3"

// coinIDs maps common trading symbols to CoinGecko coin ids. Symbols not
// listed here fall back to their lowercased form, which works for many
// smaller coins whose id matches the ticker.
var coinIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"SOL":   "solana",
	"XRP":   "ripple",
	"DOGE":  "dogecoin",
	"ADA":   "cardano",
	"AVAX":  "avalanche-2",
	"LINK":  "chainlink",
	"DOT":   "polkadot",
	"MATIC": "matic-network",
	"SHIB":  "shiba-inu",
	"LTC":   "litecoin",
	"UNI":   "uniswap",
	"ATOM":  "cosmos",
	"XLM":   "stellar",
	"NEAR":  "near",
	"APT":   "aptos",
	"ARB":   "arbitrum",
	"OP":    "optimism",
	"SUI":   "sui",
	"TIA":   "celestia",
	"INJ":   "injective-protocol",
	"PEPE":  "pepe",
	"BNB":   "binancecoin",
	"TRX":   "tron",
	"TON":   "the-open-network",
	"BCH":   "bitcoin-cash",
	"AAVE":  "aave",
	"LDO":   "lido-dao",
	"RUNE":  "thorchain",
	"FET":   "fetch-ai",
	"GRT":   "the-graph",
	"XMR":   "monero",
}

// Config holds configuration for the CoinGecko client.
type Config struct {
	// BaseURL overrides the public API endpoint, mainly for tests.
	BaseURL    string
	HTTPClient *http.Client
	Logger     ports.Logger
}

// Client queries the public CoinGecko simple-price API. It performs no
// caching of its own; wrap it in pricecache.Feed to respect the upstream
// rate limits.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     ports.Logger
}

// New creates a new CoinGecko client.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for CoinGecko client")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     cfg.Logger,
	}, nil
}

// CoinID returns the CoinGecko id for a trading symbol.
func CoinID(symbol string) string {
	if id, ok := coinIDs[strings.ToUpper(symbol)]; ok {
		return id
	}
	return strings.ToLower(symbol)
}

// GetPrices fetches USD quotes for the given symbols in a single request.
// Symbols CoinGecko does not know are absent from the result.
func (c *Client) GetPrices(ctx context.Context, symbols []string) (map[string]domain.Quote, error) {
	quotes := make(map[string]domain.Quote)
	if len(symbols) == 0 {
		return quotes, nil
	}

	// Deduplicate ids while remembering which symbols map to each.
	symbolsByID := make(map[string][]string)
	ids := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		id := CoinID(symbol)
		if _, seen := symbolsByID[id]; !seen {
			ids = append(ids, id)
		}
		symbolsByID[id] = append(symbolsByID[id], strings.ToUpper(symbol))
	}

	endpoint := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd&include_24hr_change=true",
		c.baseURL, url.QueryEscape(strings.Join(ids, ",")))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build price request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("price request failed: %w", ports.ErrFeedUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("coingecko responded %d: %w", resp.StatusCode, ports.ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("coingecko responded %d: %w", resp.StatusCode, ports.ErrFeedUnavailable)
	}

	var body map[string]struct {
		USD          float64 `json:"usd"`
		USD24hChange float64 `json:"usd_24h_change"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode coingecko response: %w", err)
	}

	for id, entry := range body {
		for _, symbol := range symbolsByID[id] {
			quotes[symbol] = domain.Quote{Price: entry.USD, Change24h: entry.USD24hChange}
		}
	}
	c.logger.Debug(ctx, "Fetched live prices", map[string]interface{}{"requested": len(symbols), "received": len(quotes)})
	return quotes, nil
}
