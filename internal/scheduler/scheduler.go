package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"tradeScout/internal/ports"
)

// Scheduler runs the screening job on a cron spec.
type Scheduler struct {
	cron   *cron.Cron
	logger ports.Logger
}

// New creates a scheduler using standard 5-field cron specs.
func New(logger ports.Logger) (*Scheduler, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required for scheduler")
	}
	return &Scheduler{cron: cron.New(), logger: logger}, nil
}

// Schedule registers job to run on the given cron expression. The expression
// is validated here, so a bad schedule fails at startup rather than at first
// trigger.
func (s *Scheduler) Schedule(spec string, job func()) error {
	if _, err := s.cron.AddFunc(spec, job); err != nil {
		return fmt.Errorf("failed to register schedule '%s': %w", spec, err)
	}
	s.logger.Info(context.Background(), "Job scheduled", map[string]interface{}{"spec": spec})
	return nil
}

// Start begins triggering scheduled jobs in their own goroutines.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info(context.Background(), "Scheduler started")
}

// Stop stops the scheduler and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info(context.Background(), "Scheduler stopped")
}
