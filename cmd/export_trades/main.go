package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"cryptoJournal/config"
	"cryptoJournal/internal/adapters/logger"
	"cryptoJournal/internal/adapters/sqlite"
	"cryptoJournal/internal/utils"
)

// Standalone export tool: dumps the whole journal to a CSV file without
// going through the HTTP server.
func main() {
	outPath := flag.String("out", "trades.csv", "Output CSV file path")
	flag.Parse()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(logger.Config{Level: cfg.LogLevel})

	// 3. Initialize Repository (Database Adapter)
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err)
	}
	defer repo.Close()

	ctx := context.Background()
	trades, err := repo.FindAll(ctx)
	if err != nil {
		appLogger.Error(ctx, err, "Failed to load trades")
		os.Exit(1)
	}

	file, err := os.Create(*outPath)
	if err != nil {
		appLogger.Error(ctx, err, "Failed to create output file", map[string]interface{}{"path": *outPath})
		os.Exit(1)
	}
	defer file.Close()

	if err := utils.WriteTradesCSV(file, trades); err != nil {
		appLogger.Error(ctx, err, "Failed to write CSV")
		os.Exit(1)
	}

	fmt.Printf("Exported %d trades to %s\n", len(trades), *outPath)
}
