package retention

import (
	"context"
	"log/slog"
	"time"

	"github.com/aevon-lab/caliper-gateway/internal/core/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const defaultInterval = time.Hour

var (
	eventsPurged = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "caliper",
		Subsystem: "retention",
		Name:      "events_purged_total",
		Help:      "Events deleted after their ttl passed.",
	})

	sweepFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "caliper",
		Subsystem: "retention",
		Name:      "sweep_failures_total",
		Help:      "Retention sweeps that returned an error.",
	})
)

// Sweeper deletes events whose ttl has passed on a periodic interval.
// It is stateless: each tick deletes everything expired at that moment.
type Sweeper struct {
	interval time.Duration
	store    storage.EventStore
	now      func() time.Time
}

func NewSweeper(interval time.Duration, store storage.EventStore) *Sweeper {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Sweeper{
		interval: interval,
		store:    store,
		now:      time.Now,
	}
}

// Start sweeps once immediately and then on every tick.
// Runs until context is cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("[Retention] Starting sweeper", "interval", s.interval)

	s.Sweep(ctx)

	for {
		select {
		case <-ticker.C:
			s.Sweep(ctx)
		case <-ctx.Done():
			slog.Info("[Retention] Stopping (context cancelled)")
			return nil
		}
	}
}

// Sweep runs one deletion pass and returns how many events it removed.
// Errors are logged; the next tick retries.
func (s *Sweeper) Sweep(ctx context.Context) int64 {
	now := s.now().UTC()
	deleted, err := s.store.DeleteExpired(ctx, now)
	if err != nil {
		if ctx.Err() == nil {
			sweepFailures.Inc()
			slog.Error("[Retention] Sweep failed", "error", err)
		}
		return 0
	}

	eventsPurged.Add(float64(deleted))
	if deleted > 0 {
		slog.Info("[Retention] Purged expired events", "deleted", deleted, "cutoff", now)
	}
	return deleted
}
