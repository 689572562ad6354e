package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tradeScout/config"
	"tradeScout/internal/adapters/binanceclient"
	"tradeScout/internal/adapters/logger"
	"tradeScout/internal/adapters/yahooclient"
	"tradeScout/internal/ports"
	"tradeScout/internal/utils"
)

// fetch_prices downloads daily bars for one symbol and stores them as a CSV
// the csv provider can replay offline.
func main() {
	symbol := flag.String("symbol", "AAPL", "symbol to fetch")
	days := flag.Int("days", 0, "calendar days of history (defaults to LOOKBACK_DAYS)")
	out := flag.String("out", "", "output CSV path (defaults to <PRICES_DIR>/<SYMBOL>.csv)")
	flag.Parse()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(cfg.LogLevel)

	// 3. Initialize Market Data Provider. Fetching into the csv store from
	// the csv store would be circular, so a remote provider is required.
	var provider ports.MarketDataProvider
	switch cfg.Provider {
	case config.ProviderBinance:
		provider, err = binanceclient.New(binanceclient.Config{
			APIKey:    cfg.BinanceAPIKey,
			SecretKey: cfg.BinanceSecretKey,
			Logger:    appLogger,
		})
	case config.ProviderCSV:
		log.Fatalf("FATAL: fetch_prices needs a remote provider; set PROVIDER to yahoo or binance")
	default:
		provider, err = yahooclient.New(yahooclient.Config{
			BaseURL: cfg.YahooBaseURL,
			Timeout: cfg.HTTPTimeout,
			Logger:  appLogger,
		})
	}
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize market data provider")
		log.Fatalf("FATAL: Failed to initialize market data provider: %v", err)
	}

	sym := strings.ToUpper(strings.TrimSpace(*symbol))
	lookback := *days
	if lookback <= 0 {
		lookback = cfg.LookbackDays
	}
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -lookback)

	fmt.Printf("Fetching daily bars for %s from %s to %s...\n",
		sym, start.Format("2006-01-02"), end.Format("2006-01-02"))
	series, err := provider.FetchDailyBars(context.Background(), sym, start, end)
	if err != nil {
		appLogger.Error(context.Background(), err, "Error fetching daily bars")
		log.Fatalf("Error fetching daily bars: %v", err)
	}
	appLogger.Info(context.Background(), "Fetched daily bars", map[string]interface{}{
		"symbol": sym,
		"count":  series.Len(),
	})

	filename := *out
	if filename == "" {
		filename = filepath.Join(cfg.PricesDir, sym+".csv")
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			appLogger.Error(context.Background(), err, "Error creating output directory")
			log.Fatalf("Error creating output directory: %v", err)
		}
	}
	if err := utils.WriteBarsToCSV(series, filename); err != nil {
		appLogger.Error(context.Background(), err, "Error writing CSV")
		log.Fatalf("Error writing CSV: %v", err)
	}
	appLogger.Info(context.Background(), "Saved to", map[string]interface{}{"filename": filename})
}
