package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tradeScout/config"
	"tradeScout/internal/domain"
	"tradeScout/internal/ports"
	"tradeScout/internal/screener"
	"tradeScout/internal/screener/indicators"
)

// ScreenerService orchestrates one screening run: resolve the basket, fetch
// daily bars concurrently, compute indicators, classify, rank and report.
type ScreenerService struct {
	cfg        *config.Config
	logger     ports.Logger
	symbols    ports.SymbolSource
	provider   ports.MarketDataProvider
	classifier *screener.Classifier
	charts     ports.ChartRenderer
	report     ports.ReportWriter
	history    ports.RunRepository
}

// NewScreenerService creates a new application service instance.
func NewScreenerService(
	cfg *config.Config,
	logger ports.Logger,
	symbols ports.SymbolSource,
	provider ports.MarketDataProvider,
	classifier *screener.Classifier,
	charts ports.ChartRenderer,
	report ports.ReportWriter,
	history ports.RunRepository,
) (*ScreenerService, error) {

	// Validate dependencies
	if cfg == nil || logger == nil || symbols == nil || provider == nil ||
		classifier == nil || charts == nil || report == nil || history == nil {
		return nil, fmt.Errorf("missing required dependencies for ScreenerService")
	}

	// Validate config values needed by the service
	if cfg.LookbackDays <= 0 {
		return nil, fmt.Errorf("configuration LookbackDays must be positive")
	}
	if cfg.TrendWindow <= 0 {
		return nil, fmt.Errorf("configuration TrendWindow must be positive")
	}
	if cfg.Concurrency <= 0 {
		return nil, fmt.Errorf("configuration Concurrency must be positive")
	}

	return &ScreenerService{
		cfg:        cfg,
		logger:     logger,
		symbols:    symbols,
		provider:   provider,
		classifier: classifier,
		charts:     charts,
		report:     report,
		history:    history,
	}, nil
}

// symbolOutcome carries one worker's result back to the aggregation step.
type symbolOutcome struct {
	symbol   string
	analysis *domain.Analysis
	skipErr  error
}

// Run executes one full screening pass and returns its summary. Per-symbol
// failures are collected as skips; only basket resolution and report writing
// abort the run.
func (s *ScreenerService) Run(ctx context.Context) (*domain.RunSummary, error) {
	op := "screenerRun"
	startedAt := time.Now().UTC()

	s.logger.Info(ctx, op+": Starting screening run", map[string]interface{}{
		"provider":     s.provider.Name(),
		"lookbackDays": s.cfg.LookbackDays,
		"trendWindow":  s.cfg.TrendWindow,
	})

	// 1. Resolve the basket. Failure here is fatal for the run.
	symbols, err := s.symbols.Symbols(ctx)
	if err != nil {
		s.logger.Error(ctx, err, op+": Failed to resolve symbol basket")
		return nil, fmt.Errorf("failed to resolve symbol basket: %w", err)
	}
	if s.cfg.SymbolLimit > 0 && len(symbols) > s.cfg.SymbolLimit {
		s.logger.Info(ctx, op+": Limiting basket", map[string]interface{}{
			"resolved": len(symbols),
			"limit":    s.cfg.SymbolLimit,
		})
		symbols = symbols[:s.cfg.SymbolLimit]
	}
	if len(symbols) == 0 {
		err := fmt.Errorf("symbol basket is empty")
		s.logger.Error(ctx, err, op+": Nothing to screen")
		return nil, err
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -s.cfg.LookbackDays)

	// 2. Fan out one task per symbol. Each index is written by exactly one
	// worker, so outcomes needs no locking.
	outcomes := make([]symbolOutcome, len(symbols))
	tasks := make(chan int)

	workers := s.cfg.Concurrency
	if workers > len(symbols) {
		workers = len(symbols)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range tasks {
				outcomes[idx] = s.analyzeSymbol(ctx, symbols[idx], start, end)
			}
		}()
	}
	for idx := range symbols {
		tasks <- idx
	}
	close(tasks)
	wg.Wait()

	// 3. Aggregate in input order so runs are reproducible.
	summary := &domain.RunSummary{
		StartedAt:        startedAt,
		SymbolsRequested: len(symbols),
	}
	for _, out := range outcomes {
		if out.skipErr != nil {
			summary.Skipped = append(summary.Skipped, domain.SkippedSymbol{
				Symbol: out.symbol,
				Reason: skipReason(out.skipErr),
			})
			continue
		}
		summary.Analyses = append(summary.Analyses, out.analysis)
	}

	// 4. Pick the best candidate.
	if best, ok := screener.BestCandidate(summary.Analyses); ok {
		summary.Best = best
		s.logger.Info(ctx, op+": Best trade candidate selected", map[string]interface{}{
			"symbol":     best.Symbol,
			"lastClose":  best.LastClose,
			"lastReturn": best.LastReturnPct,
			"trendScore": best.TrendScore,
		})
	} else {
		s.logger.Info(ctx, op+": No strong trade candidates")
	}

	summary.FinishedAt = time.Now().UTC()

	// 5. Write the CSV report. The report is the run's deliverable, so a
	// write failure fails the run.
	if err := s.report.WriteAnalyses(ctx, summary.Analyses); err != nil {
		s.logger.Error(ctx, err, op+": Failed to write analysis report")
		return nil, fmt.Errorf("failed to write analysis report: %w", err)
	}

	// 6. Persist run history. History is auxiliary; failure only warns.
	if _, err := s.history.SaveRun(ctx, summary); err != nil {
		s.logger.Warn(ctx, op+": Failed to persist run history", map[string]interface{}{
			"error": err.Error(),
		})
	}

	s.logger.Info(ctx, op+": Screening run finished", map[string]interface{}{
		"requested": summary.SymbolsRequested,
		"analyzed":  len(summary.Analyses),
		"skipped":   len(summary.Skipped),
		"duration":  summary.FinishedAt.Sub(summary.StartedAt).String(),
	})
	return summary, nil
}

// analyzeSymbol runs the per-symbol pipeline. Failures are captured in the
// outcome so one bad symbol never aborts the whole run.
func (s *ScreenerService) analyzeSymbol(ctx context.Context, symbol string, start, end time.Time) symbolOutcome {
	series, err := s.provider.FetchDailyBars(ctx, symbol, start, end)
	if err != nil {
		s.logger.Warn(ctx, "Skipping symbol, fetch failed", map[string]interface{}{
			"symbol": symbol,
			"error":  err.Error(),
		})
		return symbolOutcome{symbol: symbol, skipErr: err}
	}

	rows, err := indicators.BuildRows(series, s.cfg.TrendWindow)
	if err != nil {
		s.logger.Warn(ctx, "Skipping symbol, indicator computation failed", map[string]interface{}{
			"symbol": symbol,
			"error":  err.Error(),
		})
		return symbolOutcome{symbol: symbol, skipErr: err}
	}

	analysis, err := s.classifier.Classify(ctx, symbol, rows)
	if err != nil {
		s.logger.Warn(ctx, "Skipping symbol, classification failed", map[string]interface{}{
			"symbol": symbol,
			"bars":   len(rows),
			"error":  err.Error(),
		})
		return symbolOutcome{symbol: symbol, skipErr: err}
	}

	// Charts are a best-effort sink.
	if err := s.charts.RenderSeries(ctx, symbol, rows); err != nil {
		s.logger.Warn(ctx, "Chart rendering failed", map[string]interface{}{
			"symbol": symbol,
			"error":  err.Error(),
		})
	}

	return symbolOutcome{symbol: symbol, analysis: analysis}
}

// skipReason reduces a pipeline error to the short label shown in reports.
func skipReason(err error) string {
	switch {
	case errors.Is(err, ports.ErrSymbolNotFound):
		return "symbol not found"
	case errors.Is(err, ports.ErrEmptyRange):
		return "no data in range"
	case errors.Is(err, ports.ErrRateLimited):
		return "rate limited"
	case errors.Is(err, ports.ErrInsufficientHistory):
		return "insufficient history"
	case errors.Is(err, ports.ErrDivisionByZero):
		return "zero close in series"
	case errors.Is(err, ports.ErrTimeout):
		return "timeout"
	case errors.Is(err, ports.ErrProviderUnavailable):
		return "provider unavailable"
	default:
		return err.Error()
	}
}
