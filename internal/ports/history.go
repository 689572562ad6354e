package ports

import (
	"context"

	"tradeScout/internal/domain"
)

// RunRepository stores and retrieves screening run history.
type RunRepository interface {
	// SaveRun persists a completed run together with its analyses and returns
	// the assigned run ID.
	SaveRun(ctx context.Context, summary *domain.RunSummary) (int64, error)
	// RecentRuns retrieves the most recent runs, newest first, up to limit.
	RecentRuns(ctx context.Context, limit int) ([]domain.RunRecord, error)
	// AnalysesForRun retrieves the analyses stored for a given run.
	AnalysesForRun(ctx context.Context, runID int64) ([]*domain.Analysis, error)
	// Close releases the underlying store.
	Close() error
}
