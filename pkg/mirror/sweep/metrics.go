package sweep

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes sweep activity as Prometheus metrics.
type Metrics struct {
	registry *prometheus.Registry

	sweepsTotal    prometheus.Counter
	refreshedTotal prometheus.Counter
	failedTotal    prometheus.Counter
	skippedTotal   prometheus.Counter

	mirrorsFound      prometheus.Gauge
	lastSweepDuration prometheus.Gauge
	lastSweepTime     prometheus.Gauge
}

// NewMetrics creates and registers the sweep metrics. If registry is nil a
// fresh one is created.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,
		sweepsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "autogit",
			Subsystem: "sweep",
			Name:      "runs_total",
			Help:      "Total number of sweeps executed.",
		}),
		refreshedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "autogit",
			Subsystem: "sweep",
			Name:      "mirrors_refreshed_total",
			Help:      "Total number of successful mirror refreshes.",
		}),
		failedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "autogit",
			Subsystem: "sweep",
			Name:      "mirrors_failed_total",
			Help:      "Total number of failed mirror refreshes.",
		}),
		skippedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "autogit",
			Subsystem: "sweep",
			Name:      "mirrors_skipped_total",
			Help:      "Total number of mirrors skipped because a live session held their lock.",
		}),
		mirrorsFound: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "autogit",
			Subsystem: "sweep",
			Name:      "mirrors_found",
			Help:      "Number of mirrors discovered during the last sweep.",
		}),
		lastSweepDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "autogit",
			Subsystem: "sweep",
			Name:      "last_duration_seconds",
			Help:      "Wall-clock duration of the last sweep.",
		}),
		lastSweepTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "autogit",
			Subsystem: "sweep",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix timestamp of the last completed sweep.",
		}),
	}

	registry.MustRegister(
		m.sweepsTotal,
		m.refreshedTotal,
		m.failedTotal,
		m.skippedTotal,
		m.mirrorsFound,
		m.lastSweepDuration,
		m.lastSweepTime,
	)

	return m
}

// ObserveSweep records the outcome of one sweep.
func (m *Metrics) ObserveSweep(res Result) {
	m.sweepsTotal.Inc()
	m.refreshedTotal.Add(float64(res.Refreshed))
	m.failedTotal.Add(float64(res.Failed))
	m.skippedTotal.Add(float64(res.Skipped))
	m.mirrorsFound.Set(float64(res.Found))
	m.lastSweepDuration.Set(res.Duration.Seconds())
	m.lastSweepTime.SetToCurrentTime()
}

// Handler returns an HTTP handler serving the metrics in Prometheus
// exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
