package indicators

import (
	"fmt"

	"tradeScout/internal/domain"
	"tradeScout/internal/ports"
)

// BuildRows derives exactly one IndicatorRow per bar of the series, in bar
// order.
//
// ReturnPct is the percentage change against the prior bar's close and is
// undefined for the first row. TrailingAvg is the mean adjusted close over the
// trailing window ending at the row and is undefined until the window fills.
// A zero close used as a return denominator is degenerate input data: the
// whole series fails with ErrDivisionByZero rather than producing ±Inf.
func BuildRows(series *domain.PriceSeries, window int) ([]domain.IndicatorRow, error) {
	if series == nil || len(series.Bars) == 0 {
		return nil, fmt.Errorf("%w: empty series", ports.ErrInvalidSeries)
	}
	if window < 1 {
		return nil, fmt.Errorf("%w: window must be positive, got %d", ports.ErrInvalidSeries, window)
	}

	rows := make([]domain.IndicatorRow, len(series.Bars))
	for i, bar := range series.Bars {
		row := domain.IndicatorRow{Date: bar.Date, AdjClose: bar.AdjClose}

		if i > 0 {
			prev := series.Bars[i-1].AdjClose
			if prev == 0 {
				return nil, fmt.Errorf("%w: %s close is zero at %s",
					ports.ErrDivisionByZero, series.Symbol, series.Bars[i-1].Date.Format("2006-01-02"))
			}
			row.ReturnPct = (bar.AdjClose - prev) / prev * 100
			row.HasReturn = true
		}

		if i+1 >= window {
			total := 0.0
			for j := i + 1 - window; j <= i; j++ {
				total += series.Bars[j].AdjClose
			}
			row.TrailingAvg = total / float64(window)
			row.HasTrailingAvg = true
		}

		rows[i] = row
	}
	return rows, nil
}

// TrendScore counts strictly positive daily returns among the most recent n
// rows. Rows without a defined return count as not positive; with fewer than n
// rows available, only what exists is counted. The result is in [0, n].
func TrendScore(rows []domain.IndicatorRow, n int) int {
	if n < 1 {
		return 0
	}
	start := len(rows) - n
	if start < 0 {
		start = 0
	}
	score := 0
	for _, row := range rows[start:] {
		if row.HasReturn && row.ReturnPct > 0 {
			score++
		}
	}
	return score
}
