package widget

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Settings struct {
	Fetcher     Fetcher
	Notifier    Notifier
	Metrics     Metrics
	Logger      Logger
	IdleTimeout time.Duration
	TimeNow     func() time.Time
}

// Registry owns the mounted widgets. It is a service whose run
// loop tears down widgets idle for longer than the idle timeout.
type Registry struct {
	// Injected fields
	fetcher     Fetcher
	notifier    Notifier
	metrics     Metrics
	logger      Logger
	idleTimeout time.Duration
	timeNow     func() time.Time

	// Internal fields
	delay        time.Duration
	widgets      map[string]*Widget
	widgetsMutex sync.RWMutex
	stopCh       chan<- struct{}
	done         <-chan struct{}
	stopMutex    sync.Mutex
}

func NewRegistry(settings Settings) *Registry {
	timeNow := settings.TimeNow
	if timeNow == nil {
		timeNow = time.Now
	}
	return &Registry{
		fetcher:     settings.Fetcher,
		notifier:    settings.Notifier,
		metrics:     settings.Metrics,
		logger:      settings.Logger,
		idleTimeout: settings.IdleTimeout,
		timeNow:     timeNow,
		delay:       DisplayDelay,
		widgets:     make(map[string]*Widget),
	}
}

func (r *Registry) String() string {
	return "widget registry"
}

// Mount creates a new widget and starts its fetch. The fetch
// is not canceled when ctx is canceled, so a request context
// can be given.
func (r *Registry) Mount(ctx context.Context) *Widget {
	id := uuid.NewString()
	widget := newWidget(id, r.delay, r.fetcher, r.notifier, r.metrics, r.logger, r.timeNow)

	r.widgetsMutex.Lock()
	r.widgets[id] = widget
	count := len(r.widgets)
	r.widgetsMutex.Unlock()
	r.metrics.SetActiveWidgets(count)

	widget.Mount(context.WithoutCancel(ctx))
	return widget
}

// Get returns the widget for the given identifier and refreshes
// its last access time. It returns false if no widget is found.
func (r *Registry) Get(id string) (widget *Widget, ok bool) {
	r.widgetsMutex.RLock()
	widget, ok = r.widgets[id]
	r.widgetsMutex.RUnlock()
	if !ok {
		return nil, false
	}
	widget.touch()
	return widget, true
}

// Remove tears down and forgets the widget with the given identifier.
func (r *Registry) Remove(id string) {
	r.widgetsMutex.Lock()
	widget, ok := r.widgets[id]
	delete(r.widgets, id)
	count := len(r.widgets)
	r.widgetsMutex.Unlock()
	if !ok {
		return
	}
	widget.Teardown()
	r.metrics.SetActiveWidgets(count)
}

func (r *Registry) Start(ctx context.Context) (runError <-chan error, startErr error) {
	ready := make(chan struct{})
	stopCh := make(chan struct{})
	done := make(chan struct{})
	r.stopMutex.Lock()
	r.stopCh = stopCh
	r.done = done
	r.stopMutex.Unlock()
	go r.run(ready, stopCh, done)
	select {
	case <-ready:
	case <-ctx.Done():
		return nil, r.Stop()
	}
	return nil, nil
}

func (r *Registry) run(ready chan<- struct{}, stopCh <-chan struct{},
	done chan<- struct{}) {
	defer close(done)

	period := r.idleTimeout / 2 //nolint:gomnd
	const minPeriod = time.Second
	if period < minPeriod {
		period = minPeriod
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	close(ready)

	for {
		select {
		case <-ticker.C:
			r.removeIdle()
		case <-stopCh:
			r.removeAll()
			return
		}
	}
}

func (r *Registry) removeIdle() {
	now := r.timeNow()
	var idleWidgets []*Widget

	r.widgetsMutex.Lock()
	for id, widget := range r.widgets {
		if widget.idleSince(now) <= r.idleTimeout {
			continue
		}
		idleWidgets = append(idleWidgets, widget)
		delete(r.widgets, id)
	}
	count := len(r.widgets)
	r.widgetsMutex.Unlock()

	if len(idleWidgets) == 0 {
		return
	}

	for _, widget := range idleWidgets {
		widget.Teardown()
	}
	r.metrics.SetActiveWidgets(count)
	r.logger.Debug("tore down " + strconv.Itoa(len(idleWidgets)) + " idle widget(s)")
}

func (r *Registry) removeAll() {
	r.widgetsMutex.Lock()
	widgets := r.widgets
	r.widgets = make(map[string]*Widget)
	r.widgetsMutex.Unlock()

	for _, widget := range widgets {
		widget.Teardown()
	}
	r.metrics.SetActiveWidgets(0)
}

// Stop tears down every widget and stops the idle widgets janitor.
// It does nothing if the registry is not running.
func (r *Registry) Stop() (err error) {
	r.stopMutex.Lock()
	defer r.stopMutex.Unlock()
	if r.stopCh == nil {
		return nil
	}
	close(r.stopCh)
	<-r.done
	r.stopCh = nil
	r.done = nil
	return nil
}
