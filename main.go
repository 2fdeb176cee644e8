package main

import (
	"context"
	"errors"
	"fmt"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cryptoJournal/config"
	"cryptoJournal/internal/adapters/binanceclient"
	"cryptoJournal/internal/adapters/coingecko"
	"cryptoJournal/internal/adapters/logger"
	"cryptoJournal/internal/adapters/pricecache"
	"cryptoJournal/internal/adapters/sqlite"
	"cryptoJournal/internal/app"
	delivery "cryptoJournal/internal/delivery/http"
	"cryptoJournal/internal/ports"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(logger.Config{
		Level:      cfg.LogLevel,
		FilePath:   cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	// 3. Initialize Repository (Database Adapter)
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize database repository")
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(context.Background(), err, "Error closing database repository")
		}
	}()
	appLogger.Info(context.Background(), "Database repository initialized", map[string]interface{}{"path": cfg.DBPath})

	// 4. Initialize Price Feed (oracle + TTL cache)
	var oracle ports.PriceFeed
	switch cfg.PriceFeed {
	case config.FeedBinance:
		oracle, err = binanceclient.New(binanceclient.Config{
			APIKey:     cfg.BinanceAPIKey,
			SecretKey:  cfg.BinanceAPISecret,
			UseTestnet: cfg.BinanceTestnet,
			Logger:     appLogger,
		})
	default:
		oracle, err = coingecko.New(coingecko.Config{
			BaseURL: cfg.CoinGeckoBaseURL,
			Logger:  appLogger,
		})
	}
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize price feed")
		log.Fatalf("FATAL: Failed to initialize price feed: %v", err)
	}
	feed := pricecache.New(oracle, cfg.PriceCacheTTL)
	appLogger.Info(context.Background(), "Price feed initialized", map[string]interface{}{"feed": cfg.PriceFeed, "cacheTTL": cfg.PriceCacheTTL.String()})

	// 5. Initialize Application Service
	journalService, err := app.NewJournalService(appLogger, repo, repo, repo, feed)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize journal service")
		log.Fatalf("FATAL: Failed to initialize journal service: %v", err)
	}

	// 6. Start HTTP Server with graceful shutdown
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: delivery.NewRouter(journalService, appLogger),
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info(context.Background(), "HTTP server listening", map[string]interface{}{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		appLogger.Info(context.Background(), "Received shutdown signal", map[string]interface{}{"signal": sig.String()})
	case err := <-errCh:
		appLogger.Error(context.Background(), err, "HTTP server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(context.Background(), err, "HTTP server shutdown failed")
	}
	appLogger.Info(context.Background(), "Journal service stopped.")
}
