package widget

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/qdm12/netscope/internal/widget/mock_widget"
	"github.com/qdm12/netscope/pkg/ipinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(ctrl *gomock.Controller, clock *clock,
	idleTimeout time.Duration) (registry *Registry,
	fetcher *mock_widget.MockFetcher, metrics *mock_widget.MockMetrics,
	logger *mock_widget.MockLogger) {
	fetcher = mock_widget.NewMockFetcher(ctrl)
	metrics = mock_widget.NewMockMetrics(ctrl)
	logger = mock_widget.NewMockLogger(ctrl)
	registry = NewRegistry(Settings{
		Fetcher:     fetcher,
		Notifier:    mock_widget.NewMockNotifier(ctrl),
		Metrics:     metrics,
		Logger:      logger,
		IdleTimeout: idleTimeout,
		TimeNow:     clock.Now,
	})
	registry.delay = 0
	return registry, fetcher, metrics, logger
}

func Test_Registry_Mount_Get(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	registry, fetcher, metrics, logger := newTestRegistry(ctrl, newClock(), time.Minute)

	record := &ipinfo.Record{IP: "198.51.100.1"}
	fetcher.EXPECT().Fetch(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (*ipinfo.Record, error) {
			assert.NoError(t, ctx.Err())
			return record, nil
		})
	metrics.EXPECT().SetActiveWidgets(1)
	metrics.EXPECT().WidgetMounted()
	metrics.EXPECT().FetchDone(OutcomeSuccess, time.Duration(0))
	logger.EXPECT().Debug(gomock.Any())

	// the fetch must outlive the context given, such as a request context.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	widget := registry.Mount(ctx)
	require.NotNil(t, widget)
	assert.Len(t, widget.ID(), 36)

	waitSettled(t, widget)
	assert.Equal(t, Ready(record), widget.State())

	got, ok := registry.Get(widget.ID())
	assert.True(t, ok)
	assert.Same(t, widget, got)

	got, ok = registry.Get("unknown")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func Test_Registry_Remove(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	registry, fetcher, metrics, logger := newTestRegistry(ctrl, newClock(), time.Minute)

	fetcher.EXPECT().Fetch(gomock.Any()).Return(nil, nil)
	metrics.EXPECT().WidgetMounted()
	metrics.EXPECT().FetchDone(OutcomeEmpty, time.Duration(0))
	logger.EXPECT().Debug(gomock.Any())
	gomock.InOrder(
		metrics.EXPECT().SetActiveWidgets(1),
		metrics.EXPECT().SetActiveWidgets(0),
	)

	widget := registry.Mount(context.Background())
	waitSettled(t, widget)

	registry.Remove(widget.ID())
	registry.Remove(widget.ID())

	assert.True(t, widget.TornDown())
	_, ok := registry.Get(widget.ID())
	assert.False(t, ok)
}

func Test_Registry_removeIdle(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	clock := newClock()
	const idleTimeout = time.Minute
	registry, fetcher, metrics, logger := newTestRegistry(ctrl, clock, idleTimeout)

	fetcher.EXPECT().Fetch(gomock.Any()).Return(nil, nil).Times(2)
	metrics.EXPECT().WidgetMounted().Times(2)
	metrics.EXPECT().FetchDone(OutcomeEmpty, time.Duration(0)).Times(2)
	logger.EXPECT().Debug(gomock.Any()).Times(2)

	gomock.InOrder(
		metrics.EXPECT().SetActiveWidgets(1),
		metrics.EXPECT().SetActiveWidgets(2),
	)
	idle := registry.Mount(context.Background())
	active := registry.Mount(context.Background())
	waitSettled(t, idle)
	waitSettled(t, active)

	registry.removeIdle()
	assert.False(t, idle.TornDown())

	clock.Advance(idleTimeout / 2)
	_, ok := registry.Get(active.ID())
	require.True(t, ok)
	clock.Advance(idleTimeout)

	metrics.EXPECT().SetActiveWidgets(1)
	logger.EXPECT().Debug("tore down 1 idle widget(s)")
	registry.removeIdle()

	assert.True(t, idle.TornDown())
	assert.False(t, active.TornDown())
	_, ok = registry.Get(idle.ID())
	assert.False(t, ok)
}

func Test_Registry_Start_Stop(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	registry, fetcher, metrics, logger := newTestRegistry(ctrl, newClock(), time.Hour)

	runError, err := registry.Start(context.Background())
	require.NoError(t, err)
	assert.Nil(t, runError)

	fetcher.EXPECT().Fetch(gomock.Any()).Return(&ipinfo.Record{}, nil)
	metrics.EXPECT().WidgetMounted()
	metrics.EXPECT().FetchDone(OutcomeSuccess, time.Duration(0))
	logger.EXPECT().Debug(gomock.Any())
	gomock.InOrder(
		metrics.EXPECT().SetActiveWidgets(1),
		metrics.EXPECT().SetActiveWidgets(0),
	)

	widget := registry.Mount(context.Background())
	waitSettled(t, widget)

	err = registry.Stop()
	require.NoError(t, err)

	assert.True(t, widget.TornDown())
	_, ok := registry.Get(widget.ID())
	assert.False(t, ok)
	assert.Equal(t, "widget registry", registry.String())
}

func Test_Registry_Stop_repeated(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	registry, _, metrics, _ := newTestRegistry(ctrl, newClock(), time.Hour)

	err := registry.Stop()
	require.NoError(t, err)

	_, err = registry.Start(context.Background())
	require.NoError(t, err)

	metrics.EXPECT().SetActiveWidgets(0)
	err = registry.Stop()
	require.NoError(t, err)
	err = registry.Stop()
	require.NoError(t, err)
}

func Test_Registry_Start_canceledContext(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	registry, _, metrics, _ := newTestRegistry(ctrl, newClock(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	metrics.EXPECT().SetActiveWidgets(0)
	_, err := registry.Start(ctx)
	require.NoError(t, err)

	err = registry.Stop()
	require.NoError(t, err)
}
