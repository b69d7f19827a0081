package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Job is a unit of periodic work.
type Job interface {
	Name() string
	Run(ctx context.Context) (any, error)
}

// ScheduleAware jobs are told when their timer is armed and disarmed.
type ScheduleAware interface {
	SetScheduled(scheduled bool)
}

type Options struct {
	StartupDelay time.Duration
	Interval     time.Duration
	// RunTimeout bounds a single cycle. Zero means no bound.
	RunTimeout time.Duration
}

// Outcome describes one finished cycle.
type Outcome struct {
	Job       string
	StartedAt time.Time
	Duration  time.Duration
	Result    any
	Err       error
}

type Scheduler struct {
	job    Job
	opts   Options
	logger *slog.Logger

	mu        sync.RWMutex
	observers []func(Outcome)
	scheduled atomic.Bool
}

func New(job Job, opts Options, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		job:    job,
		opts:   opts,
		logger: logger.With("component", "scheduler", "job", job.Name()),
	}
}

// Subscribe registers fn to be called after every cycle.
func (s *Scheduler) Subscribe(fn func(Outcome)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Scheduled reports whether the timer is armed.
func (s *Scheduler) Scheduled() bool {
	return s.scheduled.Load()
}

// Start waits for the startup delay, runs the job and then runs it every
// interval until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.opts.Interval <= 0 {
		return fmt.Errorf("scheduler %s: interval must be positive", s.job.Name())
	}

	s.setScheduled(true)
	defer s.setScheduled(false)

	s.logger.Info("scheduler started",
		"interval", s.opts.Interval,
		"startup_delay", s.opts.StartupDelay,
	)

	if s.opts.StartupDelay > 0 {
		delay := time.NewTimer(s.opts.StartupDelay)
		select {
		case <-ctx.Done():
			delay.Stop()
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-delay.C:
		}
	}

	s.RunOnce(ctx)

	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single cycle and notifies observers.
func (s *Scheduler) RunOnce(ctx context.Context) Outcome {
	runCtx := ctx
	if s.opts.RunTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.opts.RunTimeout)
		defer cancel()
	}

	outcome := Outcome{Job: s.job.Name(), StartedAt: time.Now()}
	outcome.Result, outcome.Err = s.run(runCtx)
	outcome.Duration = time.Since(outcome.StartedAt)

	if outcome.Err != nil {
		s.logger.Error("job failed", "error", outcome.Err, "duration", outcome.Duration)
	}

	s.notify(outcome)
	return outcome
}

func (s *Scheduler) run(ctx context.Context) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("job %s panicked: %v", s.job.Name(), r)
		}
	}()
	return s.job.Run(ctx)
}

func (s *Scheduler) notify(outcome Outcome) {
	s.mu.RLock()
	observers := make([]func(Outcome), len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()

	for _, fn := range observers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("outcome observer panicked", "panic", r)
				}
			}()
			fn(outcome)
		}()
	}
}

func (s *Scheduler) setScheduled(v bool) {
	s.scheduled.Store(v)
	if aware, ok := s.job.(ScheduleAware); ok {
		aware.SetScheduled(v)
	}
}
