// Package metrics exposes Prometheus instrumentation for the webhook pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the webhook pipeline counters.
type Metrics struct {
	registry *prometheus.Registry

	EventsTotal   *prometheus.CounterVec
	OutcomesTotal *prometheus.CounterVec
	StoreFailures prometheus.Counter
	ReplyFailures prometheus.Counter
}

// New creates the counter set on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		EventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nomibot",
			Name:      "events_total",
			Help:      "Inbound webhook events by kind.",
		}, []string{"kind"}),
		OutcomesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nomibot",
			Name:      "outcomes_total",
			Help:      "Engine outcomes by kind.",
		}, []string{"kind"}),
		StoreFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nomibot",
			Name:      "store_failures_total",
			Help:      "Session store read/write failures.",
		}),
		ReplyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nomibot",
			Name:      "reply_failures_total",
			Help:      "Reply delivery failures.",
		}),
	}

	registry.MustRegister(m.EventsTotal, m.OutcomesTotal, m.StoreFailures, m.ReplyFailures)
	return m
}

// Handler returns the /metrics HTTP handler for the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
