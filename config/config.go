package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"tradeScout/internal/adapters/logger" // Import the logger package for LogLevel
)

// Provider names accepted in PROVIDER.
const (
	ProviderYahoo   = "yahoo"
	ProviderBinance = "binance"
	ProviderCSV     = "csv"
)

// Symbol source names accepted in SYMBOL_SOURCE.
const (
	SourceSP500     = "sp500"
	SourceWatchlist = "watchlist"
	SourceStatic    = "static"
)

// Config holds all application configuration.
type Config struct {
	// Market data provider
	Provider         string // yahoo | binance | csv
	YahooBaseURL     string // empty uses the adapter default
	BinanceAPIKey    string
	BinanceSecretKey string
	PricesDir        string // csv provider input directory

	// Symbol basket
	SymbolSource  string   // sp500 | watchlist | static
	Symbols       []string // static source basket
	WatchlistPath string
	SP500URL      string // empty uses the adapter default
	SymbolLimit   int    // 0 disables the cap

	// Screening parameters
	LookbackDays int // calendar days of history to fetch
	TrendWindow  int // trailing average window in trading days
	Concurrency  int // worker pool bound

	// Outputs
	ChartsDir  string
	ReportPath string

	// Database
	DBPath string

	// Scheduling
	RunSchedule string // cron spec; empty means run once and exit

	// HTTP
	HTTPTimeout time.Duration

	// Logging
	LogLevel logger.LogLevel // Use the LogLevel type from the logger adapter
	NoColor  bool
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	// Market data provider
	cfg.Provider = strings.ToLower(getEnv("PROVIDER", ProviderYahoo))
	switch cfg.Provider {
	case ProviderYahoo, ProviderBinance, ProviderCSV:
	default:
		errs = append(errs, fmt.Sprintf("unknown PROVIDER '%s' (want yahoo, binance or csv)", cfg.Provider))
	}

	cfg.YahooBaseURL = getEnv("YAHOO_BASE_URL", "")
	cfg.BinanceAPIKey = getEnv("BINANCE_API_KEY", "")
	cfg.BinanceSecretKey = getEnv("BINANCE_SECRET_KEY", "")
	cfg.PricesDir = getEnv("PRICES_DIR", "data/prices")
	if cfg.Provider == ProviderCSV && cfg.PricesDir == "" {
		errs = append(errs, "PRICES_DIR must be set for the csv provider")
	}

	// Symbol basket
	if raw := getEnv("SYMBOLS", ""); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if sym := strings.TrimSpace(s); sym != "" {
				cfg.Symbols = append(cfg.Symbols, sym)
			}
		}
	}
	cfg.WatchlistPath = getEnv("WATCHLIST_PATH", "")
	cfg.SP500URL = getEnv("SP500_URL", "")

	// When SYMBOL_SOURCE is not set explicitly, derive it from what IS set.
	cfg.SymbolSource = strings.ToLower(getEnv("SYMBOL_SOURCE", ""))
	if cfg.SymbolSource == "" {
		switch {
		case len(cfg.Symbols) > 0:
			cfg.SymbolSource = SourceStatic
		case cfg.WatchlistPath != "":
			cfg.SymbolSource = SourceWatchlist
		default:
			cfg.SymbolSource = SourceSP500
		}
	}
	switch cfg.SymbolSource {
	case SourceSP500, SourceWatchlist, SourceStatic:
	default:
		errs = append(errs, fmt.Sprintf("unknown SYMBOL_SOURCE '%s' (want sp500, watchlist or static)", cfg.SymbolSource))
	}
	if cfg.SymbolSource == SourceStatic && len(cfg.Symbols) == 0 {
		errs = append(errs, "SYMBOLS must be set for the static symbol source")
	}
	if cfg.SymbolSource == SourceWatchlist && cfg.WatchlistPath == "" {
		errs = append(errs, "WATCHLIST_PATH must be set for the watchlist symbol source")
	}

	cfg.SymbolLimit, err = getEnvAsIntRequired("SYMBOL_LIMIT", 20)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid SYMBOL_LIMIT: %v", err))
	} else if cfg.SymbolLimit < 0 {
		errs = append(errs, "SYMBOL_LIMIT cannot be negative")
	}

	// Screening parameters
	cfg.LookbackDays, err = getEnvAsIntRequired("LOOKBACK_DAYS", 15)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid LOOKBACK_DAYS: %v", err))
	} else if cfg.LookbackDays <= 0 {
		errs = append(errs, "LOOKBACK_DAYS must be positive")
	}

	cfg.TrendWindow, err = getEnvAsIntRequired("TREND_WINDOW", 5)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid TREND_WINDOW: %v", err))
	} else if cfg.TrendWindow <= 0 {
		errs = append(errs, "TREND_WINDOW must be positive")
	}

	// Classification needs TREND_WINDOW+1 bars; markets close on weekends, so
	// demand a little headroom in calendar days.
	if cfg.LookbackDays > 0 && cfg.TrendWindow > 0 && cfg.LookbackDays < cfg.TrendWindow+2 {
		errs = append(errs, fmt.Sprintf("LOOKBACK_DAYS (%d) is too small to cover TREND_WINDOW+1 trading days", cfg.LookbackDays))
	}

	cfg.Concurrency, err = getEnvAsIntRequired("CONCURRENCY", 8)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid CONCURRENCY: %v", err))
	} else if cfg.Concurrency <= 0 {
		errs = append(errs, "CONCURRENCY must be positive")
	}

	// Outputs
	cfg.ChartsDir = getEnv("CHARTS_DIR", "charts")
	if cfg.ChartsDir == "" {
		errs = append(errs, "CHARTS_DIR must be set")
	}
	cfg.ReportPath = getEnv("REPORT_PATH", "analysis.csv")
	if cfg.ReportPath == "" {
		errs = append(errs, "REPORT_PATH must be set")
	}

	// Database
	cfg.DBPath = getEnv("DB_PATH", "data/tradescout.db")
	if cfg.DBPath == "" {
		errs = append(errs, "DB_PATH must be set")
	}

	// Scheduling
	cfg.RunSchedule = getEnv("RUN_SCHEDULE", "")

	// HTTP
	httpTimeoutSeconds := getEnvAsInt("HTTP_TIMEOUT_SECONDS", 30)
	if httpTimeoutSeconds <= 0 {
		errs = append(errs, "HTTP_TIMEOUT_SECONDS must be positive")
	}
	cfg.HTTPTimeout = time.Duration(httpTimeoutSeconds) * time.Second

	// Logging
	logLevelStr := getEnv("LOG_LEVEL", "INFO")
	cfg.LogLevel = logger.ParseLevel(logLevelStr) // Use the parser from the logger package
	cfg.NoColor = getEnvAsBool("NO_COLOR", false)

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
		// For non-required fields the default is acceptable.
		return defaultValue
	}
	return value
}

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		// Use default if env var is not set at all
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		// Return error if env var is set but invalid
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
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
