package csvprovider

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tradeScout/internal/domain"
	"tradeScout/internal/ports"
	"tradeScout/internal/utils"
)

// Provider implements the ports.MarketDataProvider interface over CSV files
// captured by fetch_prices, so a screening day can be replayed without
// network access.
type Provider struct {
	dir    string
	logger ports.Logger
}

// Config holds configuration specific to the CSV provider.
type Config struct {
	Dir    string // Directory holding one <SYMBOL>.csv per symbol
	Logger ports.Logger
}

// New creates a new CSV directory provider.
func New(cfg Config) (*Provider, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for CSV provider")
	}
	if cfg.Dir == "" {
		return nil, fmt.Errorf("prices directory is required for CSV provider")
	}
	return &Provider{dir: cfg.Dir, logger: cfg.Logger}, nil
}

// Name identifies the provider in logs and stored runs.
func (p *Provider) Name() string { return "csv" }

// FetchDailyBars loads <dir>/<SYMBOL>.csv and filters it to [start, end].
func (p *Provider) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) (*domain.PriceSeries, error) {
	op := "FetchDailyBars"
	normalized := strings.ToUpper(strings.TrimSpace(symbol))
	path := filepath.Join(p.dir, normalized+".csv")

	series, err := utils.ReadBarsFromCSV(normalized, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s failed for %s: %w: no capture at %s",
				op, symbol, ports.ErrSymbolNotFound, path)
		}
		return nil, fmt.Errorf("%s failed for %s: %w: %w", op, symbol, ports.ErrFetchFailed, err)
	}

	bars := make([]domain.PriceBar, 0, len(series.Bars))
	for _, bar := range series.Bars {
		if bar.Date.Before(start) || bar.Date.After(end) {
			continue
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s for %s: %w", op, symbol, ports.ErrEmptyRange)
	}

	p.logger.Debug(ctx, "Loaded daily bars from capture", map[string]interface{}{
		"symbol": symbol, "bars": len(bars), "path": path,
	})
	return &domain.PriceSeries{Symbol: normalized, Bars: bars}, nil
}
