package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is one unit of periodic work. Tick must be safe to call repeatedly; it
// is never called concurrently with itself.
type Job interface {
	Tick(ctx context.Context)
}

// Scheduler runs a single job on a fixed interval. A single goroutine drains
// the ticker, so a new tick cannot start while the previous one is still
// running; a slow tick simply delays the next one.
type Scheduler struct {
	job      Job
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

func NewScheduler(job Job, interval time.Duration, logger *zap.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		job:      job,
		interval: interval,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start launches the tick loop. The first tick runs immediately so pending
// outbox records do not wait a full interval after a restart.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true

	s.logger.Info("Starting dispatch scheduler", zap.Duration("interval", s.interval))

	go s.run()
}

// Stop cancels the loop and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	s.logger.Info("Stopping dispatch scheduler")
	s.cancel()
	<-s.done
	s.logger.Info("Dispatch scheduler stopped")
}

func (s *Scheduler) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.job.Tick(s.ctx)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.job.Tick(s.ctx)
		}
	}
}

// Global scheduler instance
var globalScheduler *Scheduler

// Initialize creates and starts the global scheduler.
func Initialize(job Job, interval time.Duration, logger *zap.Logger) {
	globalScheduler = NewScheduler(job, interval, logger)
	globalScheduler.Start()
}

// Shutdown stops the global scheduler.
func Shutdown() {
	if globalScheduler != nil {
		globalScheduler.Stop()
	}
}
