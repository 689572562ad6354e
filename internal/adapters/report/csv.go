package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"tradeScout/internal/domain"
	"tradeScout/internal/ports"
)

// reportHeader is the compatibility contract for the analysis CSV. Order and
// spelling must not change.
var reportHeader = []string{
	"symbol",
	"last_close",
	"last_return_pct",
	"trailing_avg_5",
	"trend_score",
	"trade_signal",
	"reason",
}

// CSVWriter persists the per-symbol analyses to a single CSV report.
type CSVWriter struct {
	path   string
	logger ports.Logger
}

// NewCSVWriter creates a report writer targeting path.
func NewCSVWriter(path string, logger ports.Logger) (*CSVWriter, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required for report writer")
	}
	if path == "" {
		return nil, fmt.Errorf("report path is required")
	}
	return &CSVWriter{path: path, logger: logger}, nil
}

// WriteAnalyses writes one row per analysis in input order, replacing any
// previous report at the same path.
func (w *CSVWriter) WriteAnalyses(ctx context.Context, analyses []*domain.Analysis) error {
	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", w.path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	if err := cw.Write(reportHeader); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, a := range analyses {
		row := []string{
			a.Symbol,
			strconv.FormatFloat(a.LastClose, 'f', -1, 64),
			strconv.FormatFloat(a.LastReturnPct, 'f', -1, 64),
			strconv.FormatFloat(a.TrailingAvg, 'f', -1, 64),
			strconv.Itoa(a.TrendScore),
			strconv.FormatBool(a.TradeSignal),
			a.Reason,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write report row for %s: %w", a.Symbol, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush report %s: %w", w.path, err)
	}

	w.logger.Info(ctx, "Wrote analysis report", map[string]interface{}{
		"path": w.path,
		"rows": len(analyses),
	})
	return nil
}
