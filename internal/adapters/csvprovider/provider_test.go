package csvprovider

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tradeScout/internal/domain"
	"tradeScout/internal/ports"
	"tradeScout/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

func setupCapture(t *testing.T) (string, []domain.PriceBar) {
	t.Helper()
	dir, err := os.MkdirTemp("", "csvprovider-test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	base := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]domain.PriceBar, 10)
	for i := range bars {
		bars[i] = domain.PriceBar{Date: base.AddDate(0, 0, i), AdjClose: 100 + float64(i)}
	}
	series := &domain.PriceSeries{Symbol: "AAPL", Bars: bars}
	require.NoError(t, utils.WriteBarsToCSV(series, filepath.Join(dir, "AAPL.csv")))
	return dir, bars
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "valid config", cfg: Config{Dir: "data/prices", Logger: &mockLogger{}}, wantErr: false},
		{name: "nil logger", cfg: Config{Dir: "data/prices"}, wantErr: true},
		{name: "missing dir", cfg: Config{Logger: &mockLogger{}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "csv", p.Name())
		})
	}
}

func TestFetchDailyBars_FiltersRange(t *testing.T) {
	dir, bars := setupCapture(t)
	p, err := New(Config{Dir: dir, Logger: &mockLogger{}})
	require.NoError(t, err)

	start := bars[2].Date
	end := bars[6].Date
	series, err := p.FetchDailyBars(context.Background(), "aapl", start, end)
	require.NoError(t, err)

	require.Equal(t, 5, series.Len())
	assert.Equal(t, "AAPL", series.Symbol)
	assert.True(t, series.Bars[0].Date.Equal(start))
	assert.True(t, series.Bars[4].Date.Equal(end))
}

func TestFetchDailyBars_MissingSymbol(t *testing.T) {
	dir, _ := setupCapture(t)
	p, err := New(Config{Dir: dir, Logger: &mockLogger{}})
	require.NoError(t, err)

	_, err = p.FetchDailyBars(context.Background(), "MSFT", time.Now().AddDate(0, 0, -15), time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ports.ErrSymbolNotFound), "got %v", err)
}

func TestFetchDailyBars_EmptyRange(t *testing.T) {
	dir, bars := setupCapture(t)
	p, err := New(Config{Dir: dir, Logger: &mockLogger{}})
	require.NoError(t, err)

	start := bars[len(bars)-1].Date.AddDate(0, 1, 0)
	_, err = p.FetchDailyBars(context.Background(), "AAPL", start, start.AddDate(0, 0, 15))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ports.ErrEmptyRange), "got %v", err)
}
