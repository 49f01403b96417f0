// Package scheduler drives the periodic overdue sweep.
package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/z0m0dan/taskr/internal/engine"
)

// DefaultInterval matches the original every-2-minutes check.
const DefaultInterval = 2 * time.Minute

// Sweeper is the engine-facing contract: one synchronous sweep pass.
type Sweeper interface {
	SweepOverdue(ctx context.Context) (*engine.SweepResult, error)
}

// Scheduler fires the sweep at a fixed wall-clock interval. Ticks are
// single-flight: a tick arriving while a sweep is still running is skipped
// rather than queued, since sweeps are read-mutate-write cycles over a
// shared list. Sweep failures are logged; the loop never stops on them.
type Scheduler struct {
	sweeper  Sweeper
	interval time.Duration
	log      *zap.SugaredLogger

	inFlight atomic.Bool
}

func New(sweeper Sweeper, interval time.Duration, log *zap.SugaredLogger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Scheduler{sweeper: sweeper, interval: interval, log: log}
}

// Run blocks, sweeping once per interval until ctx is cancelled. Started
// once at process initialization and torn down at process exit.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Infow("scheduler started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			s.log.Infow("scheduler stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs one sweep unless another is already in flight.
func (s *Scheduler) Tick(ctx context.Context) {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.log.Debugw("sweep still in flight, tick skipped")
		return
	}
	defer s.inFlight.Store(false)

	res, err := s.sweeper.SweepOverdue(ctx)
	if err != nil {
		s.log.Errorw("sweep failed", "error", err)
		return
	}
	if res.MarkedOverdue > 0 || res.Activated > 0 {
		s.log.Infow("sweep applied changes",
			"overdue", res.MarkedOverdue,
			"activated", res.Activated,
			"tasks", len(res.Tasks),
		)
	}
}
