package domain

import "time"

// SkippedSymbol records a symbol that could not be analyzed and why.
type SkippedSymbol struct {
	Symbol string
	Reason string
}

// RunSummary is the outcome of one whole screening run.
type RunSummary struct {
	StartedAt        time.Time
	FinishedAt       time.Time
	SymbolsRequested int             // Basket size after the symbol cap was applied
	Analyses         []*Analysis     // Successful analyses in basket order
	Skipped          []SkippedSymbol // Symbols dropped by per-symbol failures
	Best             *Analysis       // Top ranked candidate; nil when nothing signaled
}

// RunRecord is a persisted summary row for one past screening run.
type RunRecord struct {
	ID               int64
	StartedAt        time.Time
	FinishedAt       time.Time
	SymbolsRequested int
	SymbolsAnalyzed  int
	BestSymbol       string // Empty when the run produced no candidate
}
