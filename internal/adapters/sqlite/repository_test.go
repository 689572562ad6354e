package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tradeScout/internal/domain"

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

// setupTestDB creates a temporary database for testing
func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "tradescout-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	repo, err := NewRepository(Config{
		DBPath: dbPath,
		Logger: &mockLogger{},
	})
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		os.RemoveAll(tmpDir)
	}

	return repo, cleanup
}

func sampleSummary(started time.Time) *domain.RunSummary {
	best := &domain.Analysis{
		Symbol:        "AAPL",
		LastClose:     189.43,
		LastReturnPct: 1.25,
		TrailingAvg:   185.1,
		TrendScore:    4,
		TradeSignal:   true,
		Reason:        "Price above 5-day SMA with positive momentum",
	}
	return &domain.RunSummary{
		StartedAt:        started,
		FinishedAt:       started.Add(5 * time.Second),
		SymbolsRequested: 3,
		Analyses: []*domain.Analysis{
			best,
			{
				Symbol:        "XOM",
				LastClose:     100,
				LastReturnPct: -0.5,
				TrailingAvg:   101.25,
				TrendScore:    1,
				TradeSignal:   false,
				Reason:        "No strong bullish signal",
			},
		},
		Skipped: []domain.SkippedSymbol{{Symbol: "FAKE", Reason: "symbol not found"}},
		Best:    best,
	}
}

func TestRepository_SaveRunAndLoad(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	started := time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC)

	runID, err := repo.SaveRun(ctx, sampleSummary(started))
	require.NoError(t, err)
	require.Greater(t, runID, int64(0))

	runs, err := repo.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.Equal(t, 3, runs[0].SymbolsRequested)
	assert.Equal(t, 2, runs[0].SymbolsAnalyzed)
	assert.Equal(t, "AAPL", runs[0].BestSymbol)
	assert.True(t, runs[0].StartedAt.Equal(started))

	analyses, err := repo.AnalysesForRun(ctx, runID)
	require.NoError(t, err)
	require.Len(t, analyses, 2)
	assert.Equal(t, "AAPL", analyses[0].Symbol)
	assert.InDelta(t, 189.43, analyses[0].LastClose, 0.0001)
	assert.InDelta(t, 1.25, analyses[0].LastReturnPct, 0.0001)
	assert.Equal(t, 4, analyses[0].TrendScore)
	assert.True(t, analyses[0].TradeSignal)
	assert.Equal(t, "Price above 5-day SMA with positive momentum", analyses[0].Reason)
	assert.Equal(t, "XOM", analyses[1].Symbol)
	assert.False(t, analyses[1].TradeSignal)
}

func TestRepository_RecentRuns_Ordering(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		summary := sampleSummary(base.Add(time.Duration(i) * time.Hour))
		_, err := repo.SaveRun(ctx, summary)
		require.NoError(t, err)
	}

	runs, err := repo.RecentRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.True(t, runs[0].StartedAt.After(runs[1].StartedAt))
}

func TestRepository_SaveRun_NoBest(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	summary := sampleSummary(time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC))
	summary.Best = nil

	runID, err := repo.SaveRun(ctx, summary)
	require.NoError(t, err)

	runs, err := repo.RecentRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.Empty(t, runs[0].BestSymbol)
}

func TestRepository_AnalysesForRun_UnknownRun(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	analyses, err := repo.AnalysesForRun(context.Background(), 9999)
	require.NoError(t, err)
	assert.Empty(t, analyses)
}

func TestNoopRepository(t *testing.T) {
	repo := NewNoopRepository()
	ctx := context.Background()

	id, err := repo.SaveRun(ctx, sampleSummary(time.Now()))
	require.NoError(t, err)
	assert.Zero(t, id)

	runs, err := repo.RecentRuns(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, runs)

	analyses, err := repo.AnalysesForRun(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, analyses)

	require.NoError(t, repo.Close())
}
