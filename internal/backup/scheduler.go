package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// DefaultInterval is how often the scheduler takes a backup
const DefaultInterval = time.Hour

// Scheduler runs a backup job on a fixed interval
type Scheduler struct {
	scheduler *gocron.Scheduler
	interval  time.Duration
	run       func(context.Context) error
	timeout   time.Duration
	logger    *zap.Logger
}

// NewScheduler creates a scheduler that calls run every interval
func NewScheduler(interval time.Duration, loc *time.Location, run func(context.Context) error, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := gocron.NewScheduler(loc)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		interval:  interval,
		run:       run,
		timeout:   time.Minute,
		logger:    logger,
	}
}

// Start schedules the job and runs the scheduler in the background.
// The first backup is taken one interval after Start.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.runOnce); err != nil {
		return fmt.Errorf("schedule backup job: %w", err)
	}
	s.scheduler.StartAsync()
	s.logger.Info("backup_scheduler_started", zap.Duration("interval", s.interval))
	return nil
}

// Stop terminates the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunNow executes the job synchronously, used for the shutdown backup
func (s *Scheduler) RunNow(ctx context.Context) error {
	return s.exec(ctx)
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.exec(ctx); err != nil {
		s.logger.Error("scheduled_backup_failed", zap.Error(err))
	}
}

func (s *Scheduler) exec(ctx context.Context) error {
	if s.run == nil {
		return nil
	}
	return s.run(ctx)
}
