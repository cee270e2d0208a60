// Package metrics exposes Prometheus collectors for widgets.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "netscope"

type Metrics struct {
	registry      *prometheus.Registry
	mounts        prometheus.Counter
	fetches       *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	activeWidgets prometheus.Gauge
}

// New creates metrics registered on their own registry, so that
// several instances can coexist, for example in parallel tests.
func New() (metrics *Metrics) {
	metrics = &Metrics{
		registry: prometheus.NewRegistry(),
		mounts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "widget_mounts_total",
			Help:      "Number of widgets mounted.",
		}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Number of IP information fetches by outcome.",
		}, []string{"outcome"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of IP information fetches.",
			Buckets:   prometheus.DefBuckets,
		}),
		activeWidgets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "widgets_active",
			Help:      "Number of widgets currently mounted.",
		}),
	}
	metrics.registry.MustRegister(
		metrics.mounts,
		metrics.fetches,
		metrics.fetchDuration,
		metrics.activeWidgets,
	)
	return metrics
}

func (m *Metrics) WidgetMounted() {
	m.mounts.Inc()
}

func (m *Metrics) FetchDone(outcome string, duration time.Duration) {
	m.fetches.WithLabelValues(outcome).Inc()
	m.fetchDuration.Observe(duration.Seconds())
}

func (m *Metrics) SetActiveWidgets(count int) {
	m.activeWidgets.Set(float64(count))
}

// Handler returns the HTTP handler serving the metrics
// in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry: m.registry,
	})
}
