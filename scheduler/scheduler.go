package scheduler

import (
	"context"
	"sync"
	"time"
)

// Scheduler runs a background task at a fixed interval until stopped
type Scheduler struct {
	interval time.Duration
	task     func(context.Context)
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
}

// New creates a new Scheduler instance
func New(interval time.Duration, task func(context.Context)) *Scheduler {
	return &Scheduler{
		interval: interval,
		task:     task,
	}
}

// Start begins executing the task at the configured interval.
// When firstRunImmediately is set the task runs once before the first tick.
// Calling Start on a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context, firstRunImmediately bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if firstRunImmediately {
			s.task(ctx)
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.task(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop terminates the periodic task and waits for an in-flight run to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.running = false
}

// IsRunning returns true if the scheduler is currently active
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
