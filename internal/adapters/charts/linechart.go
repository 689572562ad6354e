package charts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"tradeScout/internal/domain"
	"tradeScout/internal/ports"
)

// LineChartRenderer writes one PNG per symbol showing the adjusted close
// next to its dashed trailing average.
type LineChartRenderer struct {
	dir    string
	window int
	logger ports.Logger
}

// Config holds configuration for the chart renderer.
type Config struct {
	Dir    string // Output directory, created on first render
	Window int    // Trailing average window, used for the legend label
	Logger ports.Logger
}

// New creates a chart renderer writing PNGs under cfg.Dir.
func New(cfg Config) (*LineChartRenderer, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for chart renderer")
	}
	if cfg.Dir == "" {
		return nil, fmt.Errorf("chart directory is required")
	}
	window := cfg.Window
	if window <= 0 {
		window = 5
	}
	return &LineChartRenderer{dir: cfg.Dir, window: window, logger: cfg.Logger}, nil
}

// RenderSeries renders the price and trailing-average lines for one symbol
// to <dir>/<SYMBOL>.png.
func (r *LineChartRenderer) RenderSeries(ctx context.Context, symbol string, rows []domain.IndicatorRow) error {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	closeX := make([]time.Time, 0, len(rows))
	closeY := make([]float64, 0, len(rows))
	avgX := make([]time.Time, 0, len(rows))
	avgY := make([]float64, 0, len(rows))
	for _, row := range rows {
		closeX = append(closeX, row.Date)
		closeY = append(closeY, row.AdjClose)
		if row.HasTrailingAvg {
			avgX = append(avgX, row.Date)
			avgY = append(avgY, row.TrailingAvg)
		}
	}

	// go-chart cannot draw a line through fewer than two points.
	if len(closeX) < 2 || len(avgX) < 2 {
		return fmt.Errorf("chart for %s failed: %w: need at least two plotted points per line", symbol, ports.ErrInvalidSeries)
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s Price Chart", symbol),
		Width:  1000,
		Height: 500,
		XAxis: chart.XAxis{
			Name: "Date",
		},
		YAxis: chart.YAxis{
			Name: "Price (USD)",
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Adj Close",
				XValues: closeX,
				YValues: closeY,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2.0,
				},
			},
			chart.TimeSeries{
				Name:    fmt.Sprintf("%d-Day SMA", r.window),
				XValues: avgX,
				YValues: avgY,
				Style: chart.Style{
					StrokeColor:     chart.ColorOrange,
					StrokeWidth:     2.0,
					StrokeDashArray: []float64{5.0, 5.0},
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("chart for %s failed: could not create %s: %w", symbol, r.dir, err)
	}

	path := filepath.Join(r.dir, symbol+".png")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("chart for %s failed: could not create %s: %w", symbol, path, err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("chart for %s failed: render: %w", symbol, err)
	}

	r.logger.Debug(ctx, "Rendered chart", map[string]interface{}{
		"symbol": symbol,
		"path":   path,
		"points": len(closeX),
	})
	return nil
}
