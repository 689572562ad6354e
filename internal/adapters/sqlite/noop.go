package sqlite

import (
	"context"

	"tradeScout/internal/domain"
)

// NoopRepository is a no-op implementation used when the database cannot be
// opened. Runs proceed without history.
type NoopRepository struct{}

func NewNoopRepository() *NoopRepository { return &NoopRepository{} }

func (n *NoopRepository) SaveRun(_ context.Context, _ *domain.RunSummary) (int64, error) {
	return 0, nil
}

func (n *NoopRepository) RecentRuns(_ context.Context, _ int) ([]domain.RunRecord, error) {
	return nil, nil
}

func (n *NoopRepository) AnalysesForRun(_ context.Context, _ int64) ([]*domain.Analysis, error) {
	return nil, nil
}

func (n *NoopRepository) Close() error { return nil }
