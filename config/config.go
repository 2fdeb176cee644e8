package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"cryptoJournal/internal/adapters/logger"
)

// Feed names accepted for PRICE_FEED.
const (
	FeedCoinGecko = "coingecko"
	FeedBinance   = "binance"
)

// Config holds all application configuration.
type Config struct {
	// HTTP server
	Port            int
	ShutdownTimeout time.Duration

	// Database
	DBPath string

	// Logging
	LogLevel      logger.LogLevel
	LogFile       string // empty disables file logging
	LogMaxSizeMB  int
	LogMaxBackups int

	// Price oracle
	PriceFeed        string // coingecko or binance
	PriceCacheTTL    time.Duration
	CoinGeckoBaseURL string

	// Binance API (optional, ticker endpoint is public)
	BinanceAPIKey    string
	BinanceAPISecret string
	BinanceTestnet   bool
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var errs []string // Collect validation errors

	cfg.Port = getEnvAsInt("PORT", 8080)
	if cfg.Port <= 0 || cfg.Port > 65535 {
		errs = append(errs, "PORT must be between 1 and 65535")
	}

	shutdownSeconds := getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 10)
	if shutdownSeconds <= 0 {
		errs = append(errs, "SHUTDOWN_TIMEOUT_SECONDS must be positive")
	}
	cfg.ShutdownTimeout = time.Duration(shutdownSeconds) * time.Second

	cfg.DBPath = getEnv("DB_PATH", "./data/journal.db")
	if cfg.DBPath == "" {
		errs = append(errs, "DB_PATH must be set")
	}

	cfg.LogLevel = logger.ParseLevel(getEnv("LOG_LEVEL", "INFO"))
	cfg.LogFile = getEnv("LOG_FILE", "")
	cfg.LogMaxSizeMB = getEnvAsInt("LOG_MAX_SIZE_MB", 50)
	cfg.LogMaxBackups = getEnvAsInt("LOG_MAX_BACKUPS", 3)
	if cfg.LogMaxSizeMB <= 0 {
		errs = append(errs, "LOG_MAX_SIZE_MB must be positive")
	}

	cfg.PriceFeed = strings.ToLower(getEnv("PRICE_FEED", FeedCoinGecko))
	if cfg.PriceFeed != FeedCoinGecko && cfg.PriceFeed != FeedBinance {
		errs = append(errs, fmt.Sprintf("PRICE_FEED must be %q or %q", FeedCoinGecko, FeedBinance))
	}

	cacheTTLSeconds := getEnvAsInt("PRICE_CACHE_TTL_SECONDS", 30)
	if cacheTTLSeconds <= 0 {
		errs = append(errs, "PRICE_CACHE_TTL_SECONDS must be positive")
	}
	cfg.PriceCacheTTL = time.Duration(cacheTTLSeconds) * time.Second

	cfg.CoinGeckoBaseURL = getEnv("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3")

	cfg.BinanceAPIKey = getEnv("BINANCE_API_KEY", "")
	cfg.BinanceAPISecret = getEnv("BINANCE_API_SECRET", "")
	cfg.BinanceTestnet = getEnvAsBool("BINANCE_TESTNET", false)

	// Combine validation errors
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
