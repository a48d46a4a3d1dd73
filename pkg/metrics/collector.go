// Package metrics provides instrumentation sinks for the back press arbiter.
// Collector wraps Prometheus counters on a private registry; Tally keeps an
// in-memory log for summaries and the interactive status line.
package metrics

import (
	"net/http"

	"github.com/entrhq/backnav/pkg/backpress"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records dispatch outcomes as Prometheus counters.
type Collector struct {
	registry *prometheus.Registry

	success *prometheus.CounterVec
	failure *prometheus.CounterVec
	edge    *prometheus.CounterVec
}

// NewCollector creates a collector registered on its own registry.
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "backnav"
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),
	}

	c.success = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dispatch",
			Name:      "success_total",
			Help:      "Back presses consumed, by handler type",
		},
		[]string{"type"},
	)

	c.failure = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dispatch",
			Name:      "failure_total",
			Help:      "Back presses an enabled handler failed to consume, by handler type",
		},
		[]string{"type"},
	)

	c.edge = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gesture",
			Name:      "edge_total",
			Help:      "Committed predictive back gestures, by handler type and start edge",
		},
		[]string{"type", "edge"},
	)

	c.registry.MustRegister(c.success, c.failure, c.edge)
	return c
}

// RecordSuccess implements backpress.Recorder.
func (c *Collector) RecordSuccess(t backpress.Type) {
	c.success.WithLabelValues(t.String()).Inc()
}

// RecordFailure implements backpress.Recorder.
func (c *Collector) RecordFailure(t backpress.Type) {
	c.failure.WithLabelValues(t.String()).Inc()
}

// RecordEdge implements backpress.Recorder.
func (c *Collector) RecordEdge(t backpress.Type, edge backpress.Edge) {
	c.edge.WithLabelValues(t.String(), edge.String()).Inc()
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns an HTTP handler exposing the collector's metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
