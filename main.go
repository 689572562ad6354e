package main

import (
	"context"
	"fmt"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"os"
	"os/signal"
	"syscall"

	"tradeScout/config"
	"tradeScout/internal/adapters/binanceclient"
	"tradeScout/internal/adapters/charts"
	"tradeScout/internal/adapters/csvprovider"
	"tradeScout/internal/adapters/logger"
	"tradeScout/internal/adapters/report"
	"tradeScout/internal/adapters/sqlite"
	"tradeScout/internal/adapters/symbolsource"
	"tradeScout/internal/adapters/yahooclient"
	"tradeScout/internal/app"
	"tradeScout/internal/ports"
	"tradeScout/internal/scheduler"
	"tradeScout/internal/screener"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(cfg.LogLevel)
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	// 3. Initialize Run History Repository. History is auxiliary, so a broken
	// database degrades to a no-op repository instead of killing the run.
	var history ports.RunRepository
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		appLogger.Warn(context.Background(), "Run history disabled, database unavailable", map[string]interface{}{
			"dbPath": cfg.DBPath,
			"error":  err.Error(),
		})
		history = sqlite.NewNoopRepository()
	} else {
		history = repo
		defer func() {
			if err := repo.Close(); err != nil {
				appLogger.Error(context.Background(), err, "Error closing database repository")
			}
		}()
		appLogger.Info(context.Background(), "Database repository initialized")
	}

	// 4. Initialize Market Data Provider
	provider, err := buildProvider(cfg, appLogger)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize market data provider")
		log.Fatalf("FATAL: Failed to initialize market data provider: %v", err)
	}
	appLogger.Info(context.Background(), "Market data provider initialized", map[string]interface{}{"provider": provider.Name()})

	// 5. Initialize Symbol Source
	source, err := buildSymbolSource(cfg, appLogger)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize symbol source")
		log.Fatalf("FATAL: Failed to initialize symbol source: %v", err)
	}
	appLogger.Info(context.Background(), "Symbol source initialized", map[string]interface{}{"source": cfg.SymbolSource})

	// 6. Initialize Classifier
	classifier, err := screener.NewClassifier(screener.Config{Window: cfg.TrendWindow}, appLogger)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize classifier")
		log.Fatalf("FATAL: Failed to initialize classifier: %v", err)
	}

	// 7. Initialize Report Writer and Chart Renderer
	reportWriter, err := report.NewCSVWriter(cfg.ReportPath, appLogger)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize report writer")
		log.Fatalf("FATAL: Failed to initialize report writer: %v", err)
	}
	chartRenderer, err := charts.New(charts.Config{
		Dir:    cfg.ChartsDir,
		Window: cfg.TrendWindow,
		Logger: appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize chart renderer")
		log.Fatalf("FATAL: Failed to initialize chart renderer: %v", err)
	}

	// 8. Initialize Application Service
	screenerService, err := app.NewScreenerService(
		cfg,
		appLogger,
		source,
		provider,
		classifier,
		chartRenderer,
		reportWriter,
		history,
	)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize screener service")
		log.Fatalf("FATAL: Failed to initialize screener service: %v", err)
	}
	appLogger.Info(context.Background(), "Screener service initialized")

	console := report.NewConsoleRenderer(report.ConsoleOptions{
		Color:  !cfg.NoColor,
		Window: cfg.TrendWindow,
	})

	// 9. Run once, or keep running on the configured schedule.
	if cfg.RunSchedule == "" {
		summary, err := screenerService.Run(context.Background())
		if err != nil {
			appLogger.Error(context.Background(), err, "Screening run failed")
			log.Fatalf("FATAL: Screening run failed: %v", err)
		}
		if err := console.Render(os.Stdout, summary); err != nil {
			appLogger.Error(context.Background(), err, "Failed to render console report")
		}
		appLogger.Info(context.Background(), "Application finished gracefully.")
		return
	}

	sched, err := scheduler.New(appLogger)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize scheduler")
		log.Fatalf("FATAL: Failed to initialize scheduler: %v", err)
	}

	job := func() {
		summary, err := screenerService.Run(context.Background())
		if err != nil {
			appLogger.Error(context.Background(), err, "Scheduled screening run failed")
			return
		}
		if err := console.Render(os.Stdout, summary); err != nil {
			appLogger.Error(context.Background(), err, "Failed to render console report")
		}
	}
	if err := sched.Schedule(cfg.RunSchedule, job); err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Invalid run schedule")
		log.Fatalf("FATAL: Invalid run schedule: %v", err)
	}
	sched.Start()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	appLogger.Info(context.Background(), "Received shutdown signal", map[string]interface{}{"signal": sig.String()})
	sched.Stop()

	appLogger.Info(context.Background(), "Application finished gracefully.")
}

// buildProvider selects the market data provider named in the configuration.
func buildProvider(cfg *config.Config, appLogger ports.Logger) (ports.MarketDataProvider, error) {
	switch cfg.Provider {
	case config.ProviderYahoo:
		return yahooclient.New(yahooclient.Config{
			BaseURL: cfg.YahooBaseURL,
			Timeout: cfg.HTTPTimeout,
			Logger:  appLogger,
		})
	case config.ProviderBinance:
		return binanceclient.New(binanceclient.Config{
			APIKey:    cfg.BinanceAPIKey,
			SecretKey: cfg.BinanceSecretKey,
			Logger:    appLogger,
		})
	case config.ProviderCSV:
		return csvprovider.New(csvprovider.Config{
			Dir:    cfg.PricesDir,
			Logger: appLogger,
		})
	default:
		return nil, fmt.Errorf("unknown provider '%s'", cfg.Provider)
	}
}

// buildSymbolSource selects the basket source named in the configuration.
func buildSymbolSource(cfg *config.Config, appLogger ports.Logger) (ports.SymbolSource, error) {
	switch cfg.SymbolSource {
	case config.SourceStatic:
		return symbolsource.NewStatic(cfg.Symbols)
	case config.SourceWatchlist:
		return symbolsource.NewYAML(cfg.WatchlistPath)
	case config.SourceSP500:
		return symbolsource.NewSP500(symbolsource.SP500Config{
			URL:     cfg.SP500URL,
			Timeout: cfg.HTTPTimeout,
			Logger:  appLogger,
		})
	default:
		return nil, fmt.Errorf("unknown symbol source '%s'", cfg.SymbolSource)
	}
}
