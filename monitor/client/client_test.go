package client_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hightemp/process-manager/config"
	"github.com/hightemp/process-manager/monitor/client"
	"github.com/hightemp/process-manager/monitor/domain"
	"github.com/hightemp/process-manager/monitor/notify"
	"github.com/hightemp/process-manager/monitor/rest"
	"github.com/hightemp/process-manager/monitor/service"
	"github.com/hightemp/process-manager/monitor/store"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func ptr[T any](v T) *T { return &v }

type fixture struct {
	client     *client.Client
	hub        *notify.Hub
	store      *store.Store
	collector  *domain.MockCollector
	terminator *domain.MockTerminator
	clipboard  *domain.MockClipboard
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		hub:        notify.NewHub(8),
		store:      store.New(domain.DefaultRefreshConfig()),
		collector:  domain.NewMockCollector(t),
		terminator: domain.NewMockTerminator(t),
		clipboard:  domain.NewMockClipboard(t),
	}
	f.store.Replace(domain.Snapshot{
		1:    {PID: 1, Name: "init", Status: domain.StatusSleeping, CPUPercent: 0.1, MemoryBytes: 100, User: ptr("root")},
		1200: {PID: 1200, Name: "chrome", Status: domain.StatusRunning, CPUPercent: 35, MemoryBytes: 900, User: ptr("alice")},
		1300: {PID: 1300, Name: "bash", Status: domain.StatusSleeping, CPUPercent: 2, MemoryBytes: 50, User: ptr("alice")},
	}, "alice")

	var handler *rest.Handler
	app := fx.New(
		fx.NopLogger,
		fx.Supply(config.AuthConfig{}, f.store, f.hub),
		fx.Provide(
			func() domain.Collector { return f.collector },
			func() domain.Terminator { return f.terminator },
			func() domain.Opener { return domain.NewMockOpener(t) },
			func() domain.Clipboard { return f.clipboard },
		),
		fx.Provide(service.NewService),
		fx.Provide(rest.NewHandler),
		fx.Populate(&handler),
	)
	require.NoError(t, app.Err())

	e := echo.New()
	e.HideBanner = true
	handler.SetupRoutes(e)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	f.client = client.New(srv.URL)
	return f
}

func pids(records []domain.ProcessRecord) []uint32 {
	out := make([]uint32, 0, len(records))
	for _, r := range records {
		out = append(out, r.PID)
	}
	return out
}

func TestClientListProcesses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	records, err := f.client.ListProcesses(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1200, 1300, 1}, pids(records))

	records, err = f.client.ListProcesses(ctx,
		&domain.Filter{MineOnly: ptr(true)},
		&domain.SortSpec{Field: domain.SortByName, Direction: domain.SortAsc})
	require.NoError(t, err)
	assert.Equal(t, []uint32{1300, 1200}, pids(records))
}

func TestClientReportsBadRequest(t *testing.T) {
	f := newFixture(t)

	_, err := f.client.ListProcesses(context.Background(), nil, &domain.SortSpec{Field: "bogus"})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, rest.ErrTypeBadRequest, apiErr.Type)
}

func TestClientProcessDetails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.collector.EXPECT().Details(mock.Anything, uint32(1200)).Return(domain.ExtendedInfo{Threads: ptr(uint32(12))}, nil).Once()

	details, err := f.client.ProcessDetails(ctx, 1200)
	require.NoError(t, err)
	assert.Equal(t, "chrome", details.ProcessRecord.Name)
	require.NotNil(t, details.Threads)
	assert.Equal(t, uint32(12), *details.Threads)

	_, err = f.client.ProcessDetails(ctx, 4242)
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.KindNotFound, appErr.Kind)
	assert.Equal(t, uint32(4242), appErr.PID)
}

func TestClientTerminate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.terminator.EXPECT().Terminate(uint32(1200), domain.KillModeKill).Return(nil).Once()
	f.terminator.EXPECT().Terminate(uint32(1300), domain.KillModeTerminate).
		Return(domain.ErrPermissionDenied(1300, "operation not permitted")).Once()

	require.NoError(t, f.client.Terminate(ctx, 1200, domain.KillModeKill))

	err := f.client.Terminate(ctx, 1300, domain.KillModeTerminate)
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.KindPermissionDenied, appErr.Kind)
	assert.Equal(t, "operation not permitted", appErr.Message)
}

func TestClientRefreshSettings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cfg, err := f.client.SetRefreshInterval(ctx, 50)
	require.NoError(t, err)
	assert.Equal(t, uint64(domain.MinIntervalMs), cfg.IntervalMs)

	cfg, err = f.client.SetPaused(ctx, true)
	require.NoError(t, err)
	assert.True(t, cfg.Paused)

	cfg, err = f.client.RefreshConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.RefreshConfig{IntervalMs: domain.MinIntervalMs, Paused: true}, cfg)
	assert.Equal(t, cfg, f.store.Config())
}

func TestClientCopyTextAndHealth(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.clipboard.EXPECT().WriteText("/opt/google/chrome").Return(nil).Once()

	require.NoError(t, f.client.CopyText(ctx, "/opt/google/chrome"))
	require.NoError(t, f.client.Health(ctx))
}

func TestClientWatch(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stop := errors.New("stop")
	received := make(chan client.Event, 1)
	done := make(chan error, 1)
	go func() {
		done <- f.client.Watch(ctx, func(ev client.Event) error {
			received <- ev
			return stop
		})
	}()

	require.Eventually(t, func() bool { return f.hub.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)
	cs := domain.ChangeSet{
		Added:       []domain.ProcessRecord{{PID: 77, Name: "new", Status: domain.StatusRunning}},
		Removed:     []uint32{1300},
		TimestampMs: 1700000000000,
	}
	require.NoError(t, f.hub.Publish(ctx, domain.EventProcessesUpdate, cs))

	ev := <-received
	assert.Equal(t, domain.EventProcessesUpdate, ev.Name)
	assert.Equal(t, uint64(1), ev.ID)
	assert.Equal(t, []uint32{77}, pids(ev.Payload.Added))
	assert.Equal(t, []uint32{1300}, ev.Payload.Removed)
	assert.Equal(t, uint64(1700000000000), ev.Payload.TimestampMs)
	require.ErrorIs(t, <-done, stop)
}

func TestClientWatchCancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- f.client.Watch(ctx, func(client.Event) error { return nil })
	}()
	require.Eventually(t, func() bool { return f.hub.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not return after cancel")
	}
}

func TestNewAddsScheme(t *testing.T) {
	c := client.New("127.0.0.1:1/")
	err := c.Health(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "health check")
}
