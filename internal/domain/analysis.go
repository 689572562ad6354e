package domain

// Analysis is the screening verdict for one symbol on one run.
type Analysis struct {
	Symbol        string
	LastClose     float64 // Most recent adjusted close
	LastReturnPct float64 // Most recent daily return, in percent
	TrailingAvg   float64 // Trailing-window mean close at the most recent bar
	TrendScore    int     // Count of positive daily returns across the trailing window
	TradeSignal   bool    // True when the bullish entry conditions hold
	Reason        string  // Explanation attached to the signal decision
}
