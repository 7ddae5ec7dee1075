package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper removes expired entries.
type Sweeper interface {
	Sweep(now time.Time) int
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	sweeper  Sweeper
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a scheduler that sweeps expired report downloads on schedule.
func NewScheduler(schedule string, sweeper Sweeper, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour, dom, month, dow).
	c := cron.New()

	return &Scheduler{
		cron:     c,
		schedule: schedule,
		sweeper:  sweeper,
		logger:   logger,
		now:      time.Now,
	}
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("sweep_schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.sweepDownloads); err != nil {
		return fmt.Errorf("schedule download sweep %q: %w", s.schedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sweepDownloads() {
	removed := s.sweeper.Sweep(s.now())
	if removed > 0 {
		s.logger.Info("expired report downloads removed", zap.Int("count", removed))
	}
}
