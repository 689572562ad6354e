package binanceclient

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"tradeScout/internal/domain"
	"tradeScout/internal/ports"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
)

// Client implements the ports.MarketDataProvider interface for crypto baskets
// using the go-binance spot API.
type Client struct {
	spotClient *binance.Client
	logger     ports.Logger
}

// Config holds configuration specific to the Binance client adapter.
type Config struct {
	APIKey    string // Optional: public market data endpoints need no credentials
	SecretKey string
	Logger    ports.Logger
}

// New creates a new Binance client adapter.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for Binance client")
	}
	return &Client{
		spotClient: binance.NewClient(cfg.APIKey, cfg.SecretKey),
		logger:     cfg.Logger,
	}, nil
}

// Name identifies the provider in logs and stored runs.
func (c *Client) Name() string { return "binance" }

// handleError translates common Binance API errors into standardized ports errors.
func (c *Client) handleError(ctx context.Context, err error, operation, symbol string) error {
	if err == nil {
		return nil
	}

	fields := map[string]interface{}{"operation": operation, "symbol": symbol, "originalError": err.Error()}

	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		fields["apiErrorCode"] = apiErr.Code
		fields["apiErrorMessage"] = apiErr.Message

		var mappedErr error
		switch apiErr.Code {
		case -1003: // Too many requests
			mappedErr = ports.ErrRateLimited
		case -1121: // Invalid symbol
			mappedErr = ports.ErrSymbolNotFound
		case -1000, -1001, -1016: // Internal error / disconnected / service shutting down
			mappedErr = ports.ErrProviderUnavailable
		default:
			mappedErr = ports.ErrFetchFailed
		}
		finalErr := fmt.Errorf("%s failed: %w: %w", operation, mappedErr, err)
		c.logger.Error(ctx, err, fmt.Sprintf("%s failed with API error", operation), fields)
		return finalErr
	}

	// Handle non-API errors (network, context cancellation, etc.)
	var finalErr error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		finalErr = fmt.Errorf("%s failed: %w: %w", operation, ports.ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		finalErr = fmt.Errorf("%s canceled: %w: %w", operation, ports.ErrContextCanceled, err)
	case strings.Contains(err.Error(), "connection refused"),
		strings.Contains(err.Error(), "connection reset by peer"),
		strings.Contains(err.Error(), "no such host"):
		finalErr = fmt.Errorf("%s failed: %w: %w", operation, ports.ErrProviderUnavailable, err)
	default:
		finalErr = fmt.Errorf("%s failed: %w: %w", operation, ports.ErrFetchFailed, err)
	}

	c.logger.Error(ctx, err, fmt.Sprintf("%s failed", operation), fields)
	return finalErr
}

// FetchDailyBars retrieves daily spot klines for symbol within [start, end].
// The kline close maps straight to AdjClose: crypto carries no corporate
// actions to adjust for.
func (c *Client) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) (*domain.PriceSeries, error) {
	op := "FetchDailyBars"
	normalized := strings.ToUpper(strings.TrimSpace(symbol))

	klines, err := c.spotClient.NewKlinesService().
		Symbol(normalized).
		Interval("1d").
		StartTime(start.UnixMilli()).
		EndTime(end.UnixMilli()).
		Do(ctx)
	if err != nil {
		return nil, c.handleError(ctx, err, op, symbol)
	}
	if len(klines) == 0 {
		return nil, fmt.Errorf("%s for %s: %w", op, symbol, ports.ErrEmptyRange)
	}

	bars := make([]domain.PriceBar, 0, len(klines))
	for _, k := range klines {
		bar, err := translateKline(k)
		if err != nil {
			return nil, c.handleError(ctx, fmt.Errorf("failed to translate kline: %w", err), op, symbol)
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	c.logger.Debug(ctx, "Fetched daily bars", map[string]interface{}{
		"symbol": symbol, "bars": len(bars), "provider": c.Name(),
	})
	return &domain.PriceSeries{Symbol: normalized, Bars: bars}, nil
}

// translateKline converts one spot kline into a daily price bar.
func translateKline(k *binance.Kline) (domain.PriceBar, error) {
	if k == nil {
		return domain.PriceBar{}, errors.New("received nil kline")
	}
	closePrice, err := strconv.ParseFloat(k.Close, 64)
	if err != nil {
		return domain.PriceBar{}, fmt.Errorf("parsing close price '%s': %w", k.Close, err)
	}
	return domain.PriceBar{
		Date:     time.UnixMilli(k.OpenTime).UTC(),
		AdjClose: closePrice,
	}, nil
}
