// Package metrics exposes Prometheus collectors for the configuration
// server.
//
// Collectors live on a dedicated registry owned by [Metrics] rather than the
// global default one, so tests can create as many instances as they need.
//
// Usage:
//
//	m := metrics.New()
//	m.ConfigWrites.WithLabelValues(metrics.ResultSuccess).Inc()
//	router.Handle("/metrics", m.Handler())
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "conf_keeper"

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultInvalid = "invalid"
)

// Metrics groups every collector exported by the server.
type Metrics struct {
	registry *prometheus.Registry

	// ConfigWrites counts Set calls by result.
	ConfigWrites *prometheus.CounterVec
	// ConfigReloads counts reloads of the persisted record by result.
	ConfigReloads *prometheus.CounterVec
	// IdentifyValidations counts handshake validations by result and
	// failure kind.
	IdentifyValidations *prometheus.CounterVec
	// HTTPRequests counts served requests by method, route and status.
	HTTPRequests *prometheus.CounterVec
	// HTTPDuration observes request latency in seconds.
	HTTPDuration *prometheus.HistogramVec
}

// New creates the collectors on a fresh registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ConfigWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "config_writes_total",
			Help:      "Configuration writes by result.",
		}, []string{"result"}),
		ConfigReloads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "config_reloads_total",
			Help:      "Reloads of the persisted configuration by result.",
		}, []string{"result"}),
		IdentifyValidations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "identify_validations_total",
			Help:      "Gateway handshake validations by result and failure kind.",
		}, []string{"result", "kind"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Served HTTP requests.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format. Response
// compression is left to the HTTP middleware.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry, DisableCompression: true})
}
