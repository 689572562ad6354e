package ports

import (
	"context"

	"tradeScout/internal/domain"
)

// ChartRenderer writes a price chart for one analyzed symbol.
// Rendering is a pure sink: callers may treat failures as per-symbol warnings
// without invalidating the analysis itself.
type ChartRenderer interface {
	// RenderSeries renders the adjusted close and trailing average overlay for
	// symbol from its indicator rows.
	RenderSeries(ctx context.Context, symbol string, rows []domain.IndicatorRow) error
}

// ReportWriter emits the tabular screening report.
type ReportWriter interface {
	// WriteAnalyses writes one row per analysis, preserving the given order.
	WriteAnalyses(ctx context.Context, analyses []*domain.Analysis) error
}
