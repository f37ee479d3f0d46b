// Package metrics provides Prometheus metrics for the planner service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace string
	registry  *prometheus.Registry

	// Business metrics
	eventsCreated prometheus.Counter
	eventsUpdated prometheus.Counter
	eventsDeleted prometheus.Counter
	eventsToggled prometheus.Counter
	eventsStored  prometheus.Gauge
	storeWrites   prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global manager instance backed by a custom registry so the default Go
// collectors never leak in.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager()
}

// NewManager creates a metrics manager with its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "planner",
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.eventsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "events_created_total",
		Help:      "Number of events created.",
	})
	m.eventsUpdated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "events_updated_total",
		Help:      "Number of events updated.",
	})
	m.eventsDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "events_deleted_total",
		Help:      "Number of events deleted.",
	})
	m.eventsToggled = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "events_toggled_total",
		Help:      "Number of completion toggles.",
	})
	m.eventsStored = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "events_stored",
		Help:      "Current number of stored events.",
	})
	m.storeWrites = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "store_writes_total",
		Help:      "Number of writes issued to the backing store.",
	})
	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	}, []string{"endpoint", "method", "status"})

	m.registry.MustRegister(
		m.eventsCreated,
		m.eventsUpdated,
		m.eventsDeleted,
		m.eventsToggled,
		m.eventsStored,
		m.storeWrites,
		m.httpRequests,
		m.httpRequestDuration,
	)
	return m
}

// GetRegistry returns the registry behind the global manager, for mounting
// the /metrics handler.
func GetRegistry() *prometheus.Registry {
	return globalManager.registry
}

// RecordEventCreated increments the created counter.
func RecordEventCreated() { globalManager.eventsCreated.Inc() }

// RecordEventUpdated increments the updated counter.
func RecordEventUpdated() { globalManager.eventsUpdated.Inc() }

// RecordEventDeleted increments the deleted counter.
func RecordEventDeleted() { globalManager.eventsDeleted.Inc() }

// RecordEventToggled increments the toggle counter.
func RecordEventToggled() { globalManager.eventsToggled.Inc() }

// RecordStoreWrite increments the store write counter.
func RecordStoreWrite() { globalManager.storeWrites.Inc() }

// UpdateEventsStored sets the stored-events gauge.
func UpdateEventsStored(n int) { globalManager.eventsStored.Set(float64(n)) }

// RecordHTTPRequest counts one request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes one request's latency in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}
