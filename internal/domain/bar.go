package domain

import "time"

// PriceBar represents one trading day for a single instrument.
type PriceBar struct {
	Date     time.Time // Trading day
	AdjClose float64   // Adjusted closing price (split/dividend adjusted where the provider supports it)
}

// PriceSeries is an ordered run of daily bars for one symbol.
// Bars are strictly ascending by date; exchange holidays are simply absent.
type PriceSeries struct {
	Symbol string
	Bars   []PriceBar
}

// Len returns the number of bars in the series. Safe on a nil series.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}
