package charts

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeScout/internal/domain"
	"tradeScout/internal/ports"
	"tradeScout/internal/screener/indicators"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

func rowsFromCloses(t *testing.T, closes []float64) []domain.IndicatorRow {
	t.Helper()
	series := &domain.PriceSeries{Symbol: "TEST"}
	base := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		series.Bars = append(series.Bars, domain.PriceBar{
			Date:     base.AddDate(0, 0, i),
			AdjClose: c,
		})
	}
	rows, err := indicators.BuildRows(series, 5)
	require.NoError(t, err)
	return rows
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid config",
			cfg:  Config{Dir: "charts", Window: 5, Logger: &mockLogger{}},
		},
		{
			name:    "missing logger",
			cfg:     Config{Dir: "charts"},
			wantErr: true,
		},
		{
			name:    "missing directory",
			cfg:     Config{Logger: &mockLogger{}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, r)
		})
	}
}

func TestLineChartRenderer_RenderSeries(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	r, err := New(Config{Dir: dir, Window: 5, Logger: &mockLogger{}})
	require.NoError(t, err)

	rows := rowsFromCloses(t, []float64{10, 11, 9, 12, 13, 14})
	require.NoError(t, r.RenderSeries(context.Background(), " aapl ", rows))

	data, err := os.ReadFile(filepath.Join(dir, "AAPL.png"))
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), data[:8])
}

func TestLineChartRenderer_RenderSeries_TooFewPoints(t *testing.T) {
	r, err := New(Config{Dir: t.TempDir(), Window: 5, Logger: &mockLogger{}})
	require.NoError(t, err)

	tests := []struct {
		name   string
		closes []float64
	}{
		{name: "single bar", closes: []float64{10}},
		{name: "one trailing average point", closes: []float64{10, 11, 9, 12, 13}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.RenderSeries(context.Background(), "AAPL", rowsFromCloses(t, tt.closes))
			require.Error(t, err)
			assert.ErrorIs(t, err, ports.ErrInvalidSeries)
		})
	}
}
