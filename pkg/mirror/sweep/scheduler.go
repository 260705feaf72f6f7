package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs sweeps on a cron schedule.
type Scheduler struct {
	sweeper  *Sweeper
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// NewScheduler creates a scheduler running sweeper on the given cron
// schedule. Standard five-field expressions and the @hourly/@every
// descriptors are accepted.
func NewScheduler(sweeper *Sweeper, schedule string) *Scheduler {
	return &Scheduler{
		sweeper:  sweeper,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "sweep.scheduler"),
	}
}

// Start begins scheduled sweeping. It validates the cron expression,
// registers the job, and stops automatically when ctx is canceled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		s.runSweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule sweep: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("sweep scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runSweep executes one scheduled sweep.
func (s *Scheduler) runSweep(ctx context.Context) {
	s.logger.Info("starting scheduled sweep")

	if _, err := s.sweeper.Run(ctx); err != nil {
		s.logger.Error("scheduled sweep failed", "error", err)
	}
}

// Stop stops the scheduler and waits for any running sweep to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done() // Wait for running jobs to finish
		s.running = false
		s.logger.Info("sweep scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled sweep time.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return nil
	}

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
