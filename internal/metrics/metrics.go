// Package metrics records refresh cycles and status-service fetches.
//
// A nil *Recorder is valid and records nothing, so components can take one
// unconditionally.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "analog"

// Outcome labels shared by the refresh counters
const (
	OutcomeOpen    = "open"
	OutcomeClosed  = "closed"
	OutcomeError   = "error"
	OutcomeStale   = "stale"
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
)

// Recorder owns a private registry with the application's collectors
type Recorder struct {
	registry          *prometheus.Registry
	widgetRefreshes   *prometheus.CounterVec
	scheduleRefreshes *prometheus.CounterVec
	fetchDuration     *prometheus.HistogramVec
}

// New creates a Recorder with all collectors registered
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		widgetRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "widget_refreshes_total",
			Help:      "Completed widget refresh cycles by trigger reason and outcome.",
		}, []string{"reason", "outcome"}),
		scheduleRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_refreshes_total",
			Help:      "Completed schedule refreshes by outcome.",
		}, []string{"outcome"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Status service request latency, retries included.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"endpoint", "result"}),
	}
	r.registry.MustRegister(r.widgetRefreshes, r.scheduleRefreshes, r.fetchDuration)
	return r
}

// WidgetRefresh counts one finished widget cycle
func (r *Recorder) WidgetRefresh(reason, outcome string) {
	if r == nil {
		return
	}
	r.widgetRefreshes.WithLabelValues(reason, outcome).Inc()
}

// ScheduleRefresh counts one finished schedule refresh
func (r *Recorder) ScheduleRefresh(outcome string) {
	if r == nil {
		return
	}
	r.scheduleRefreshes.WithLabelValues(outcome).Inc()
}

// ObserveFetch records the latency of one request to endpoint
func (r *Recorder) ObserveFetch(endpoint string, d time.Duration, err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.fetchDuration.WithLabelValues(endpoint, result).Observe(d.Seconds())
}

// Gatherer exposes the registry, e.g. for tests or an HTTP handler
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the current values in the text exposition format,
// suitable for the node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
