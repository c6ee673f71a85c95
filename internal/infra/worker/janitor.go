// Package worker runs background maintenance for the feed service: sweeping
// expired cache entries and recomputing the precomputed trending lists the
// fallback path serves.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"feedrank/internal/observability/metrics"
)

// Sweeper removes physically expired entries and reports how many were removed.
type Sweeper interface {
	Sweep() int
}

// TrendingRefresher recomputes the popularity-ordered fallback lists.
type TrendingRefresher interface {
	RefreshTrending()
}

// Janitor schedules periodic cache sweeps and trending refreshes.
type Janitor struct {
	caches    map[string]Sweeper
	trending  TrendingRefresher
	interval  time.Duration
	logger    *slog.Logger
	scheduler *cron.Cron
}

// New creates a janitor sweeping the named caches and refreshing trending
// every interval.
func New(caches map[string]Sweeper, trending TrendingRefresher, interval time.Duration, logger *slog.Logger) *Janitor {
	return &Janitor{
		caches:   caches,
		trending: trending,
		interval: interval,
		logger:   logger,
	}
}

// Start begins the schedule. Call Stop to halt it.
func (j *Janitor) Start() error {
	j.scheduler = cron.New()
	spec := fmt.Sprintf("@every %s", j.interval)
	if _, err := j.scheduler.AddFunc(spec, j.RunOnce); err != nil {
		return fmt.Errorf("schedule janitor: %w", err)
	}
	j.scheduler.Start()
	j.logger.Info("janitor started", slog.Duration("interval", j.interval))
	return nil
}

// Stop halts the schedule, waiting for a running job to finish.
func (j *Janitor) Stop() {
	if j.scheduler != nil {
		<-j.scheduler.Stop().Done()
		j.logger.Info("janitor stopped")
	}
}

// RunOnce performs one maintenance pass.
func (j *Janitor) RunOnce() {
	start := time.Now()

	total := 0
	for name, c := range j.caches {
		removed := c.Sweep()
		metrics.RecordCacheSweep(name, removed)
		total += removed
	}

	if j.trending != nil {
		j.trending.RefreshTrending()
	}

	j.logger.Debug("janitor pass completed",
		slog.Int("entries_swept", total),
		slog.Duration("duration", time.Since(start)),
	)
}
