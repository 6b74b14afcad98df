package updater

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hightemp/process-manager/monitor/domain"
	"github.com/hightemp/process-manager/monitor/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func rec(pid uint32, cpu float64, mem uint64) domain.ProcessRecord {
	return domain.ProcessRecord{PID: pid, Name: "p", Status: domain.StatusRunning, CPUPercent: cpu, MemoryBytes: mem}
}

type fixture struct {
	collector *domain.MockCollector
	publisher *domain.MockPublisher
	store     *store.Store
	metrics   *Metrics
	updater   *Updater
}

func newFixture(t *testing.T) *fixture {
	metrics, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	f := &fixture{
		collector: domain.NewMockCollector(t),
		publisher: domain.NewMockPublisher(t),
		store:     store.New(domain.RefreshConfig{IntervalMs: domain.MinIntervalMs}),
		metrics:   metrics,
	}
	f.updater = New(f.collector, f.store, f.publisher, f.metrics)
	f.updater.now = func() time.Time { return time.UnixMilli(5000) }
	f.collector.EXPECT().CurrentUser().Return("alice").Maybe()
	return f
}

// seed installs snap as if the initial collection had produced it.
func (f *fixture) seed(snap domain.Snapshot) {
	f.updater.install(snap)
}

func TestPrimeReplacesWithoutPublishing(t *testing.T) {
	f := newFixture(t)
	f.collector.EXPECT().Collect(mock.Anything).Return(domain.Snapshot{1: rec(1, 0, 10)}, nil).Once()

	f.updater.Prime(context.Background())

	assert.True(t, f.store.Contains(1))
	assert.Equal(t, "alice", f.store.CurrentUser())
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.Processes))
}

func TestTickPausedSkipsCollection(t *testing.T) {
	f := newFixture(t)
	f.store.SetPaused(true)

	_, emitted := f.updater.Tick(context.Background())
	assert.False(t, emitted)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.SkippedTicks))
	assert.Equal(t, float64(0), testutil.ToFloat64(f.metrics.Ticks))
}

func TestTickCollectErrorKeepsSnapshot(t *testing.T) {
	f := newFixture(t)
	f.seed(domain.Snapshot{1: rec(1, 0, 10)})
	f.collector.EXPECT().Collect(mock.Anything).Return(nil, errors.New("proc unreadable")).Once()

	_, emitted := f.updater.Tick(context.Background())
	assert.False(t, emitted)
	assert.True(t, f.store.Contains(1))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.CollectErrors))
}

func TestTickPublishesChangeSet(t *testing.T) {
	f := newFixture(t)
	f.seed(domain.Snapshot{1: rec(1, 5.0, 100), 2: rec(2, 10.0, 200)})
	next := domain.Snapshot{1: rec(1, 5.05, 100), 3: rec(3, 1.0, 50)}
	f.collector.EXPECT().Collect(mock.Anything).Return(next, nil).Once()
	f.publisher.EXPECT().
		Publish(mock.Anything, domain.EventProcessesUpdate, mock.Anything).
		Run(func(_ context.Context, _ string, cs domain.ChangeSet) {
			require.Len(t, cs.Added, 1)
			assert.Equal(t, uint32(3), cs.Added[0].PID)
			assert.Empty(t, cs.Updated)
			assert.Equal(t, []uint32{2}, cs.Removed)
			assert.Equal(t, uint64(5000), cs.TimestampMs)
		}).
		Return(nil).
		Once()

	cs, emitted := f.updater.Tick(context.Background())
	assert.True(t, emitted)
	assert.False(t, cs.IsEmpty())
	assert.True(t, f.store.Contains(3))
	assert.False(t, f.store.Contains(2))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.Changes.WithLabelValues("added")))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.Changes.WithLabelValues("removed")))
}

func TestTickWithoutChangesDoesNotPublish(t *testing.T) {
	f := newFixture(t)
	snap := domain.Snapshot{1: rec(1, 5.0, 100)}
	f.seed(snap.Clone())
	f.collector.EXPECT().Collect(mock.Anything).Return(snap, nil).Once()

	_, emitted := f.updater.Tick(context.Background())
	assert.False(t, emitted)
}

func TestTickPublishFailureIsSwallowed(t *testing.T) {
	f := newFixture(t)
	f.seed(domain.Snapshot{})
	f.collector.EXPECT().Collect(mock.Anything).Return(domain.Snapshot{7: rec(7, 0, 1)}, nil).Once()
	f.publisher.EXPECT().Publish(mock.Anything, domain.EventProcessesUpdate, mock.Anything).
		Return(errors.New("nobody listening")).Once()

	_, emitted := f.updater.Tick(context.Background())
	assert.True(t, emitted)
	assert.True(t, f.store.Contains(7))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.PublishFailures))
}

func TestRunStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	var collects atomic.Int32
	f.collector.EXPECT().Collect(mock.Anything).RunAndReturn(func(context.Context) (domain.Snapshot, error) {
		n := collects.Add(1)
		return domain.Snapshot{uint32(n): rec(uint32(n), 0, 1)}, nil
	}).Maybe()
	f.publisher.EXPECT().Publish(mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- f.updater.Run(ctx) }()

	require.Eventually(t, func() bool { return collects.Load() >= 2 }, 3*time.Second, 20*time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestStartStop(t *testing.T) {
	f := newFixture(t)
	f.store.SetPaused(true)
	f.collector.EXPECT().Collect(mock.Anything).Return(domain.Snapshot{}, nil).Once()

	f.updater.Start(context.Background())
	f.updater.Start(context.Background())
	require.Eventually(t, func() bool { return testutil.ToFloat64(f.metrics.SkippedTicks) >= 1 }, 3*time.Second, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, f.updater.Stop(ctx))
	require.NoError(t, f.updater.Stop(ctx))
}

func TestFirstTickAfterFailedPrimeDoesNotPublish(t *testing.T) {
	f := newFixture(t)
	f.collector.EXPECT().Collect(mock.Anything).Return(nil, errors.New("proc unreadable")).Once()
	f.updater.Prime(context.Background())
	snap, _ := f.store.Read()
	assert.Empty(t, snap)

	f.collector.EXPECT().Collect(mock.Anything).Return(domain.Snapshot{1: rec(1, 0, 10), 2: rec(2, 0, 20)}, nil).Once()
	_, emitted := f.updater.Tick(context.Background())
	assert.False(t, emitted)
	assert.True(t, f.store.Contains(1))
	assert.True(t, f.store.Contains(2))

	f.collector.EXPECT().Collect(mock.Anything).Return(domain.Snapshot{1: rec(1, 0, 10)}, nil).Once()
	f.publisher.EXPECT().Publish(mock.Anything, domain.EventProcessesUpdate, mock.Anything).Return(nil).Once()
	cs, emitted := f.updater.Tick(context.Background())
	assert.True(t, emitted)
	assert.Empty(t, cs.Added)
	assert.Equal(t, []uint32{2}, cs.Removed)
}
