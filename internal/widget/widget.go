package widget

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/qdm12/netscope/internal/sections"
	"github.com/qdm12/netscope/pkg/ipinfo"
)

// Widget fetches IP information once when mounted and exposes
// the resulting view state together with its panels flags.
type Widget struct {
	// Injected fields
	id       string
	fetcher  Fetcher
	notifier Notifier
	metrics  Metrics
	logger   Logger
	timeNow  func() time.Time
	delay    time.Duration

	// Internal fields
	sections   *sections.Store
	mutex      sync.Mutex
	state      ViewState
	mounted    bool
	tornDown   bool
	lastAccess time.Time
	settled    chan struct{}
	teardown   chan struct{}
}

func newWidget(id string, delay time.Duration, fetcher Fetcher, notifier Notifier,
	metrics Metrics, logger Logger, timeNow func() time.Time) *Widget {
	return &Widget{
		id:         id,
		fetcher:    fetcher,
		notifier:   notifier,
		metrics:    metrics,
		logger:     logger,
		timeNow:    timeNow,
		delay:      delay,
		sections:   sections.New(),
		state:      Loading(),
		lastAccess: timeNow(),
		settled:    make(chan struct{}),
		teardown:   make(chan struct{}),
	}
}

func (w *Widget) ID() string {
	return w.id
}

// Mount launches the single fetch of the widget in a goroutine.
// Subsequent calls, or calls after Teardown, do nothing.
// The context is used for the fetch only and should not be
// canceled when the caller returns.
func (w *Widget) Mount(ctx context.Context) {
	w.mutex.Lock()
	if w.mounted || w.tornDown {
		w.mutex.Unlock()
		return
	}
	w.mounted = true
	w.mutex.Unlock()

	w.metrics.WidgetMounted()
	go w.run(ctx)
}

func (w *Widget) run(ctx context.Context) {
	start := w.timeNow()
	record, err := w.fetcher.Fetch(ctx)
	duration := w.timeNow().Sub(start)

	var state ViewState
	switch {
	case err != nil:
		w.metrics.FetchDone(OutcomeFailure, duration)
		w.logger.Warn("widget " + w.id + ": fetching IP information: " + err.Error())
		if errors.Is(err, ipinfo.ErrTooManyRequests) {
			w.notifier.Notify("IP information API rate limit reached: " + err.Error())
		}
		state = Failed(FailureMessage)
	case record == nil:
		w.metrics.FetchDone(OutcomeEmpty, duration)
		w.logger.Debug("widget " + w.id + ": no IP information available")
		state = Ready(nil)
	default:
		w.metrics.FetchDone(OutcomeSuccess, duration)
		w.logger.Debug("widget " + w.id + ": fetched information for IP " + record.IP)
		state = Ready(record)
	}

	timer := time.NewTimer(w.delay)
	select {
	case <-timer.C:
	case <-w.teardown:
		_ = timer.Stop()
		w.logger.Debug("widget " + w.id + ": torn down, discarding result")
		return
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.tornDown {
		return
	}
	w.state = state
	close(w.settled)
}

// Teardown discards the widget. A pending state update
// becomes a no-op. It is safe to call more than once.
func (w *Widget) Teardown() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.tornDown {
		return
	}
	w.tornDown = true
	close(w.teardown)
}

func (w *Widget) TornDown() bool {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.tornDown
}

func (w *Widget) State() ViewState {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.state
}

// Settled returns a channel closed once the widget
// left the loading state.
func (w *Widget) Settled() <-chan struct{} {
	return w.settled
}

// Toggle flips the given panel flag, and returns false
// if the panel identifier is unknown.
func (w *Widget) Toggle(id sections.ID) (ok bool) {
	return w.sections.Toggle(id)
}

// Sections returns a snapshot of the panels flags.
func (w *Widget) Sections() map[sections.ID]bool {
	return w.sections.Snapshot()
}

func (w *Widget) touch() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.lastAccess = w.timeNow()
}

func (w *Widget) idleSince(now time.Time) (idle time.Duration) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return now.Sub(w.lastAccess)
}
