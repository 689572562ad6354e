package yahooclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"tradeScout/internal/domain"
	"tradeScout/internal/ports"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Client implements the ports.MarketDataProvider interface using the public
// Yahoo Finance chart API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     ports.Logger
}

// Config holds configuration specific to the Yahoo client adapter.
type Config struct {
	BaseURL    string        // Defaults to the public query1 endpoint
	Timeout    time.Duration // HTTP timeout, defaults to 30s; ignored when HTTPClient is set
	HTTPClient *http.Client  // Optional; tests inject an httptest client here
	Logger     ports.Logger
}

// New creates a new Yahoo Finance client adapter.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for Yahoo client")
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{httpClient: httpClient, baseURL: baseURL, logger: cfg.Logger}, nil
}

// Name identifies the provider in logs and stored runs.
func (c *Client) Name() string { return "yahoo" }

// yahooSymbol normalizes a ticker to Yahoo's notation: class shares use a
// dash where most listings print a dot (BRK.B -> BRK-B).
func yahooSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	return strings.ReplaceAll(s, ".", "-")
}

// yahooChart is the response structure of the Yahoo Finance chart API.
// Close arrays use pointers because Yahoo emits JSON nulls for holidays and
// half-days.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDailyBars retrieves the daily bars for symbol within [start, end].
func (c *Client) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) (*domain.PriceSeries, error) {
	op := "FetchDailyBars"

	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d&events=div%%7Csplit&includeAdjustedClose=true",
		c.baseURL, url.PathEscape(yahooSymbol(symbol)), start.Unix(), end.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%s failed for %s: %w: %w", op, symbol, ports.ErrFetchFailed, err)
	}
	// Yahoo rejects requests without a browser user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.handleTransportError(ctx, err, op, symbol)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s failed for %s: %w: %w", op, symbol, ports.ErrFetchFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.handleStatusError(ctx, resp.StatusCode, op, symbol)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("%s failed for %s: %w: decode: %w", op, symbol, ports.ErrFetchFailed, err)
	}
	if chart.Chart.Error != nil {
		apiErr := chart.Chart.Error
		mappedErr := ports.ErrFetchFailed
		if strings.EqualFold(apiErr.Code, "Not Found") {
			mappedErr = ports.ErrSymbolNotFound
		}
		finalErr := fmt.Errorf("%s failed for %s: %w: %s", op, symbol, mappedErr, apiErr.Description)
		c.logger.Error(ctx, finalErr, op+" failed with API error",
			map[string]interface{}{"symbol": symbol, "code": apiErr.Code})
		return nil, finalErr
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("%s for %s: %w", op, symbol, ports.ErrEmptyRange)
	}

	result := chart.Chart.Result[0]

	// Prefer the adjusted close stream; fall back to raw quote closes when
	// the response carries none.
	var closes []*float64
	if len(result.Indicators.AdjClose) > 0 && len(result.Indicators.AdjClose[0].AdjClose) > 0 {
		closes = result.Indicators.AdjClose[0].AdjClose
	} else if len(result.Indicators.Quote) > 0 {
		closes = result.Indicators.Quote[0].Close
	}
	if len(closes) == 0 {
		return nil, fmt.Errorf("%s for %s: %w", op, symbol, ports.ErrEmptyRange)
	}

	bars := make([]domain.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil || *closes[i] <= 0 {
			continue // null bars (holidays etc.)
		}
		bars = append(bars, domain.PriceBar{
			Date:     time.Unix(ts, 0).UTC(),
			AdjClose: *closes[i],
		})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s for %s: %w", op, symbol, ports.ErrEmptyRange)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	c.logger.Debug(ctx, "Fetched daily bars", map[string]interface{}{
		"symbol": symbol, "bars": len(bars), "provider": c.Name(),
	})
	return &domain.PriceSeries{Symbol: strings.ToUpper(strings.TrimSpace(symbol)), Bars: bars}, nil
}

// handleStatusError translates HTTP status codes into standard provider errors.
func (c *Client) handleStatusError(ctx context.Context, status int, op, symbol string) error {
	var mappedErr error
	switch {
	case status == http.StatusNotFound:
		mappedErr = ports.ErrSymbolNotFound
	case status == http.StatusTooManyRequests:
		mappedErr = ports.ErrRateLimited
	case status >= 500:
		mappedErr = ports.ErrProviderUnavailable
	default:
		mappedErr = ports.ErrFetchFailed
	}
	finalErr := fmt.Errorf("%s failed for %s: %w: status %d", op, symbol, mappedErr, status)
	c.logger.Error(ctx, finalErr, op+" failed with HTTP error",
		map[string]interface{}{"symbol": symbol, "status": status})
	return finalErr
}

// handleTransportError translates network-level failures into standard
// provider errors.
func (c *Client) handleTransportError(ctx context.Context, err error, op, symbol string) error {
	var mappedErr error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		mappedErr = ports.ErrTimeout
	case errors.Is(err, context.Canceled):
		mappedErr = ports.ErrContextCanceled
	default:
		mappedErr = ports.ErrFetchFailed
	}
	finalErr := fmt.Errorf("%s failed for %s: %w: %w", op, symbol, mappedErr, err)
	c.logger.Error(ctx, err, op+" failed", map[string]interface{}{"symbol": symbol})
	return finalErr
}
