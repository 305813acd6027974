package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// runTimeout bounds one scheduled cycle.
const runTimeout = 5 * time.Minute

// Scheduler runs the pipeline on a fixed interval using gocron.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
	interval  time.Duration
	runner    Runner

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a scheduler that triggers runner every interval.
func NewScheduler(runner Runner, interval time.Duration, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create gocron scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: s,
		logger:    logger.With("component", "scheduler"),
		interval:  interval,
		runner:    runner,
	}, nil
}

// Start registers the crosspost job and starts the scheduler ticking.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.runOnce),
	)
	if err != nil {
		return fmt.Errorf("schedule crosspost job: %w", err)
	}

	s.scheduler.Start()
	s.running = true
	s.logger.Info("scheduler started", "interval", s.interval)
	return nil
}

// Stop shuts the scheduler down, waiting for a running job to finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	if err := s.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("shutdown scheduler: %w", err)
	}
	s.running = false
	s.logger.Info("scheduler stopped")
	return nil
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	start := time.Now()
	stats, err := s.runner.Run(ctx)
	if err != nil {
		s.logger.Error("scheduled run failed", "error", err, "duration", time.Since(start))
		return
	}
	s.logger.Info("scheduled run finished",
		"fetched", stats.Fetched,
		"skipped", stats.Skipped,
		"delivered", stats.Delivered,
		"failed", stats.Failed,
		"duration", time.Since(start))
}
