package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"zedtex/zedtex/pkg/telemetry/logging"
	"zedtex/zedtex/pkg/telemetry/metrics"

	"github.com/robfig/cron/v3"
)

// Scheduler prunes entries older than the TTL on a cron schedule.
type Scheduler struct {
	store    Store
	ttl      time.Duration
	schedule string

	cron    *cron.Cron
	logger  *logging.Logger
	metrics *metrics.Collector
	now     func() time.Time

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a scheduler for store. schedule is a standard
// five-field cron expression, e.g. "0 4 * * *" for daily at 4 AM.
func NewScheduler(store Store, ttl time.Duration, schedule string) *Scheduler {
	return &Scheduler{
		store:    store,
		ttl:      ttl,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logging.Discard(),
		now:      time.Now,
	}
}

// WithLogger sets the logger.
func (s *Scheduler) WithLogger(logger *logging.Logger) *Scheduler {
	s.logger = logger.With("component", "cache.scheduler")
	return s
}

// WithMetrics records pruned entries and the resulting cache size.
func (s *Scheduler) WithMetrics(collector *metrics.Collector) *Scheduler {
	s.metrics = collector
	return s
}

// Start schedules pruning and returns. An empty schedule is a no-op. The
// scheduler stops when ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("prune schedule not configured, skipping scheduler")
		return nil
	}
	if s.running {
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.RunOnce(ctx); err != nil {
			s.logger.Error("scheduled cache pruning failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule pruning: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("cache prune scheduler started",
		"schedule", s.schedule,
		"ttl", s.ttl.String(),
		"backend", s.store.Backend(),
	)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// RunOnce removes entries older than the TTL now.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.ttl)

	removed, err := s.store.Prune(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	backend := s.store.Backend()
	s.metrics.RecordCachePruned(backend, removed)
	if st, err := s.store.Stats(ctx); err == nil {
		s.metrics.UpdateCacheSize(backend, st.Entries)
	}

	if removed > 0 {
		s.logger.Info("cache pruned", "removed", removed, "cutoff", cutoff.Format(time.RFC3339))
	} else {
		s.logger.Debug("cache pruned, nothing to remove")
	}
	return removed, nil
}

// Stop stops the scheduler and waits for a running prune to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		<-s.cron.Stop().Done()
		s.running = false
		s.logger.Info("cache prune scheduler stopped")
	}
}

// IsRunning reports whether the scheduler has been started and not stopped.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled prune, or nil when not scheduled.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
