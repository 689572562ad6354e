package screener

import (
	"context"
	"fmt"

	"tradeScout/internal/domain"
	"tradeScout/internal/ports"
	"tradeScout/internal/screener/indicators"
)

// Reason strings attached to every Analysis. Report rows and stored runs
// carry these verbatim, so downstream consumers can match on them.
const (
	reasonBullishFormat = "Price above %d-day SMA with positive momentum"
	reasonNoSignal      = "No strong bullish signal"
)

// Config holds parameters for the signal classifier.
type Config struct {
	Window int // Trailing window length in trading days, e.g. 5
}

// Classifier turns a symbol's indicator rows into a screening verdict.
type Classifier struct {
	cfg    Config
	logger ports.Logger
}

// NewClassifier creates a new Classifier instance.
func NewClassifier(cfg Config, logger ports.Logger) (*Classifier, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required for classifier")
	}
	if cfg.Window <= 0 {
		return nil, fmt.Errorf("classifier window must be positive")
	}
	return &Classifier{cfg: cfg, logger: logger}, nil
}

// RequiredBars returns the minimum series length for a full classification:
// the trailing window plus one prior bar so the newest row carries a defined
// daily return.
func (c *Classifier) RequiredBars() int {
	return c.cfg.Window + 1
}

// Classify derives the verdict for one symbol from its indicator rows.
// The signal fires only when the newest close sits strictly above its
// trailing average AND the newest daily return is strictly positive; equality
// on either side fails the condition.
func (c *Classifier) Classify(ctx context.Context, symbol string, rows []domain.IndicatorRow) (*domain.Analysis, error) {
	if len(rows) < c.RequiredBars() {
		return nil, fmt.Errorf("%w: %s has %d rows, need at least %d",
			ports.ErrInsufficientHistory, symbol, len(rows), c.RequiredBars())
	}

	last := rows[len(rows)-1]
	if !last.HasReturn || !last.HasTrailingAvg {
		return nil, fmt.Errorf("%w: newest row for %s is not fully populated",
			ports.ErrInsufficientHistory, symbol)
	}

	score := indicators.TrendScore(rows, c.cfg.Window)

	// Entry conditions
	isAboveAvg := last.AdjClose > last.TrailingAvg
	hasMomentum := last.ReturnPct > 0
	signal := isAboveAvg && hasMomentum

	reason := reasonNoSignal
	if signal {
		reason = fmt.Sprintf(reasonBullishFormat, c.cfg.Window)
	}

	analysis := &domain.Analysis{
		Symbol:        symbol,
		LastClose:     last.AdjClose,
		LastReturnPct: last.ReturnPct,
		TrailingAvg:   last.TrailingAvg,
		TrendScore:    score,
		TradeSignal:   signal,
		Reason:        reason,
	}

	if signal {
		c.logger.Info(ctx, "Bullish entry conditions met", map[string]interface{}{
			"symbol":      symbol,
			"lastClose":   last.AdjClose,
			"lastReturn":  last.ReturnPct,
			"trailingAvg": last.TrailingAvg,
			"trendScore":  score,
		})
	} else {
		c.logger.Debug(ctx, "Bullish entry conditions not met", map[string]interface{}{
			"symbol":      symbol,
			"lastClose":   last.AdjClose,
			"lastReturn":  last.ReturnPct,
			"trailingAvg": last.TrailingAvg,
			"trendScore":  score,
			"isAboveAvg":  isAboveAvg,
			"hasMomentum": hasMomentum,
		})
	}

	return analysis, nil
}
