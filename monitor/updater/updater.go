// Package updater runs the refresh loop that keeps the snapshot store current
// and publishes change sets.
package updater

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hightemp/process-manager/monitor/diff"
	"github.com/hightemp/process-manager/monitor/domain"
	"github.com/hightemp/process-manager/monitor/store"
	"github.com/hightemp/process-manager/pkg/logger"
)

type Updater struct {
	collector domain.Collector
	store     *store.Store
	publisher domain.Publisher
	metrics   *Metrics
	now       func() time.Time
	primed    atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(collector domain.Collector, st *store.Store, publisher domain.Publisher, metrics *Metrics) *Updater {
	return &Updater{
		collector: collector,
		store:     st,
		publisher: publisher,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Prime performs the initial collection and installs it without emitting a
// notification. When it fails, the first successful Tick installs its
// snapshot the same way.
func (u *Updater) Prime(ctx context.Context) {
	snap, err := u.collector.Collect(ctx)
	if err != nil {
		u.metrics.CollectErrors.Inc()
		logger.Logger(ctx).Warn().Err(err).Msg("initial process collection failed")
		return
	}
	u.install(snap)
}

func (u *Updater) install(snap domain.Snapshot) {
	u.store.Replace(snap, u.collector.CurrentUser())
	u.metrics.Processes.Set(float64(len(snap)))
	u.primed.Store(true)
}

// Run primes the store and then refreshes it until ctx is cancelled.
func (u *Updater) Run(ctx context.Context) error {
	u.Prime(ctx)
	for {
		interval := time.Duration(u.store.Config().IntervalMs) * time.Millisecond
		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		u.Tick(ctx)
	}
}

// Tick runs one refresh step. It reports the change set it published, if any.
func (u *Updater) Tick(ctx context.Context) (domain.ChangeSet, bool) {
	if u.store.Config().Paused {
		u.metrics.SkippedTicks.Inc()
		return domain.ChangeSet{}, false
	}
	u.metrics.Ticks.Inc()

	start := time.Now()
	next, err := u.collector.Collect(ctx)
	u.metrics.CollectDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		u.metrics.CollectErrors.Inc()
		logger.Logger(ctx).Warn().Err(err).Msg("process collection failed, keeping previous snapshot")
		return domain.ChangeSet{}, false
	}
	if !u.primed.Load() {
		u.install(next)
		logger.Logger(ctx).Info().Int("processes", len(next)).Msg("initial snapshot installed")
		return domain.ChangeSet{}, false
	}

	prev := u.store.Swap(next, u.collector.CurrentUser())
	u.metrics.Processes.Set(float64(len(next)))

	cs := diff.Diff(prev, next, u.now())
	if cs.IsEmpty() {
		return cs, false
	}
	u.metrics.Changes.WithLabelValues("added").Add(float64(len(cs.Added)))
	u.metrics.Changes.WithLabelValues("updated").Add(float64(len(cs.Updated)))
	u.metrics.Changes.WithLabelValues("removed").Add(float64(len(cs.Removed)))

	if err := u.publisher.Publish(ctx, domain.EventProcessesUpdate, cs); err != nil {
		u.metrics.PublishFailures.Inc()
		logger.Logger(ctx).Debug().Err(err).Msg("change set not delivered to every subscriber")
	}
	return cs, true
}

// Start runs the loop in a background goroutine detached from ctx's
// cancellation. Stop ends it.
func (u *Updater) Start(ctx context.Context) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.cancel != nil {
		return
	}
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	u.cancel = cancel
	u.done = make(chan struct{})
	go func() {
		defer close(u.done)
		logger.Logger(loopCtx).Info().Msg("refresh loop started")
		_ = u.Run(loopCtx)
		logger.Logger(loopCtx).Info().Msg("refresh loop stopped")
	}()
}

// Stop cancels the loop and waits for it to exit or for ctx to expire.
func (u *Updater) Stop(ctx context.Context) error {
	u.mu.Lock()
	cancel, done := u.cancel, u.done
	u.cancel, u.done = nil, nil
	u.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
