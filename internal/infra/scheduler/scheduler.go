// Package scheduler runs a job on a fixed interval until stopped.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Job func(ctx context.Context) error

type Scheduler struct {
	name     string
	interval time.Duration
	job      Job
	logger   *slog.Logger

	stopOnce sync.Once
	stopChan chan struct{}
	done     chan struct{}
}

func New(name string, interval time.Duration, job Job, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		name:     name,
		interval: interval,
		job:      job,
		logger:   logger.With("task", name),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the job once immediately, then on every tick.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("starting background task", "interval", s.interval.String())
	go s.loop(ctx)
}

// Stop waits for an in-flight run to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	select {
	case <-s.done:
		s.logger.Info("background task stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runOnce(ctx)
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if err := s.job(ctx); err != nil {
		s.logger.Error("background task failed", "error", err.Error())
	}
}
