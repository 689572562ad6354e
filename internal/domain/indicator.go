package domain

import "time"

// IndicatorRow holds the derived values for one bar of a price series.
// The Has flags distinguish "undefined" from a genuine zero: the first bar of a
// series has no daily return, and no bar before the trailing window fills has
// an average. Undefined values are never substituted with zero downstream.
type IndicatorRow struct {
	Date           time.Time
	AdjClose       float64
	ReturnPct      float64 // Percentage change vs the prior bar; valid only when HasReturn
	HasReturn      bool
	TrailingAvg    float64 // Mean adjusted close over the trailing window; valid only when HasTrailingAvg
	HasTrailingAvg bool
}
