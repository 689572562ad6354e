package ports

import (
	"context"
	"time"

	"tradeScout/internal/domain"
)

// MarketDataProvider fetches daily price history for a symbol.
// Implementations must return bars sorted ascending by date and translate
// provider-specific failures into the standard errors of this package.
type MarketDataProvider interface {
	// FetchDailyBars retrieves the daily bars for symbol within [start, end].
	FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) (*domain.PriceSeries, error)
	// Name identifies the provider in logs and stored runs.
	Name() string
}
