package screener

import (
	"context"
	"errors"
	"testing"
	"time"

	"tradeScout/internal/domain"
	"tradeScout/internal/ports"
	"tradeScout/internal/screener/indicators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct {
	debugMsgs []string
	infoMsgs  []string
	warnMsgs  []string
	errorMsgs []string
}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.debugMsgs = append(m.debugMsgs, msg)
}

func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.infoMsgs = append(m.infoMsgs, msg)
}

func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.warnMsgs = append(m.warnMsgs, msg)
}

func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
	m.errorMsgs = append(m.errorMsgs, msg)
}

func rowsFromCloses(t *testing.T, closes ...float64) []domain.IndicatorRow {
	t.Helper()
	base := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]domain.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = domain.PriceBar{Date: base.AddDate(0, 0, i), AdjClose: c}
	}
	rows, err := indicators.BuildRows(&domain.PriceSeries{Symbol: "TEST", Bars: bars}, 5)
	require.NoError(t, err)
	return rows
}

func TestNewClassifier(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		logger  ports.Logger
		wantErr bool
	}{
		{
			name:    "valid config",
			cfg:     Config{Window: 5},
			logger:  &mockLogger{},
			wantErr: false,
		},
		{
			name:    "nil logger",
			cfg:     Config{Window: 5},
			logger:  nil,
			wantErr: true,
		},
		{
			name:    "non-positive window",
			cfg:     Config{Window: 0},
			logger:  &mockLogger{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClassifier(tt.cfg, tt.logger)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, c)
			assert.Equal(t, 6, c.RequiredBars())
		})
	}
}

func TestClassifier_Classify(t *testing.T) {
	tests := []struct {
		name       string
		closes     []float64
		wantSignal bool
		wantReason string
		wantScore  int
	}{
		{
			name:       "bullish close above average with positive return",
			closes:     []float64{10, 11, 9, 12, 13, 14},
			wantSignal: true,
			wantReason: "Price above 5-day SMA with positive momentum",
			wantScore:  4,
		},
		{
			name:       "declining series",
			closes:     []float64{20, 19, 18, 17, 16, 15},
			wantSignal: false,
			wantReason: "No strong bullish signal",
			wantScore:  0,
		},
		{
			name:       "positive day but close below average",
			closes:     []float64{20, 15, 10, 10, 10, 11},
			wantSignal: false,
			wantReason: "No strong bullish signal",
			wantScore:  1,
		},
		{
			name:       "close above average but negative day",
			closes:     []float64{10, 10, 10, 10, 20, 18},
			wantSignal: false,
			wantReason: "No strong bullish signal",
			wantScore:  1,
		},
		{
			name: "close exactly at average fails the strict comparison",
			// Trailing average of the last five closes is exactly 10.
			closes:     []float64{13, 14, 8, 12, 6, 10},
			wantSignal: false,
			wantReason: "No strong bullish signal",
			wantScore:  3,
		},
		{
			name:       "flat day fails the momentum condition",
			closes:     []float64{10, 10, 10, 10, 14, 14},
			wantSignal: false,
			wantReason: "No strong bullish signal",
			wantScore:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &mockLogger{}
			c, err := NewClassifier(Config{Window: 5}, logger)
			require.NoError(t, err)

			rows := rowsFromCloses(t, tt.closes...)
			analysis, err := c.Classify(context.Background(), "TEST", rows)
			require.NoError(t, err)
			require.NotNil(t, analysis)

			assert.Equal(t, "TEST", analysis.Symbol)
			assert.Equal(t, tt.wantSignal, analysis.TradeSignal)
			assert.Equal(t, tt.wantReason, analysis.Reason)
			assert.Equal(t, tt.wantScore, analysis.TrendScore)
			assert.Equal(t, tt.closes[len(tt.closes)-1], analysis.LastClose)
		})
	}
}

func TestClassifier_Classify_Fields(t *testing.T) {
	c, err := NewClassifier(Config{Window: 5}, &mockLogger{})
	require.NoError(t, err)

	rows := rowsFromCloses(t, 10, 11, 9, 12, 13, 14)
	analysis, err := c.Classify(context.Background(), "AAPL", rows)
	require.NoError(t, err)

	assert.Equal(t, 14.0, analysis.LastClose)
	assert.InDelta(t, 7.6923, analysis.LastReturnPct, 0.0001)
	assert.InDelta(t, 11.8, analysis.TrailingAvg, 0.0001)
	assert.Equal(t, 4, analysis.TrendScore)
	assert.True(t, analysis.TradeSignal)
}

func TestClassifier_Classify_InsufficientHistory(t *testing.T) {
	c, err := NewClassifier(Config{Window: 5}, &mockLogger{})
	require.NoError(t, err)

	tests := []struct {
		name   string
		closes []float64
	}{
		{name: "empty rows", closes: nil},
		{name: "single bar", closes: []float64{10}},
		{name: "window-length series", closes: []float64{10, 11, 12, 13, 14}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rows []domain.IndicatorRow
			if len(tt.closes) > 0 {
				rows = rowsFromCloses(t, tt.closes...)
			}
			analysis, err := c.Classify(context.Background(), "TEST", rows)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ports.ErrInsufficientHistory))
			assert.Nil(t, analysis)
		})
	}
}
