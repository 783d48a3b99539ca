// Package metrics provides Prometheus metrics for the platos service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Registry metrics
	dishesTotal        prometheus.Gauge
	dishesCreated      prometheus.Counter
	dishesDeleted      prometheus.Counter
	registryOperations *prometheus.CounterVec
	registryLatency    *prometheus.HistogramVec
	validationFailures *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "platos",
		subsystem:        "api",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
		enabled:          true,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.dishesTotal = auto.NewGauge(m.gaugeOpts("dishes_total", "Number of dishes currently held by the registry"))
	m.dishesCreated = auto.NewCounter(m.counterOpts("dishes_created_total", "Total number of dishes created"))
	m.dishesDeleted = auto.NewCounter(m.counterOpts("dishes_deleted_total", "Total number of dishes deleted"))
	m.registryOperations = auto.NewCounterVec(
		m.counterOpts("registry_operations_total", "Registry operations by operation and result"),
		[]string{"operation", "result"},
	)
	m.registryLatency = auto.NewHistogramVec(
		m.histogramOpts("registry_operation_latency_milliseconds", "Registry operation latency in milliseconds", m.histogramBuckets),
		[]string{"operation"},
	)
	m.validationFailures = auto.NewCounterVec(
		m.counterOpts("validation_failures_total", "Rejected inputs by field"),
		[]string{"field"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Errors by endpoint, method and error type"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Errors by type and severity"),
		[]string{"error_type", "severity"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds",
		"GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	))
}

// SetDishesTotal sets the current number of dishes.
func (m *Manager) SetDishesTotal(count int) {
	if m.enabled {
		m.dishesTotal.Set(float64(count))
	}
}

// RecordDishCreated increments the created dishes counter.
func (m *Manager) RecordDishCreated() {
	if m.enabled {
		m.dishesCreated.Inc()
	}
}

// RecordDishDeleted increments the deleted dishes counter.
func (m *Manager) RecordDishDeleted() {
	if m.enabled {
		m.dishesDeleted.Inc()
	}
}

// RecordRegistryOperation counts one registry call with its outcome.
func (m *Manager) RecordRegistryOperation(operation, result string) {
	if m.enabled {
		m.registryOperations.WithLabelValues(operation, result).Inc()
	}
}

// RecordRegistryLatency records the latency of a registry call.
func (m *Manager) RecordRegistryLatency(operation string, latencyMs float64) {
	if m.enabled {
		m.registryLatency.WithLabelValues(operation).Observe(latencyMs)
	}
}

// RecordValidationFailure counts one rejected field.
func (m *Manager) RecordValidationFailure(field string) {
	if m.enabled {
		m.validationFailures.WithLabelValues(field).Inc()
	}
}

// RecordHTTPRequest records an HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	if m.enabled {
		m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request duration.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if m.enabled {
		m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

// RecordErrorByEndpoint records an error with endpoint, method and type labels.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if m.enabled {
		m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// RecordErrorByType records an error with type and severity labels.
func (m *Manager) RecordErrorByType(errorType, severity string) {
	if m.enabled {
		m.errorRateByType.WithLabelValues(errorType, severity).Inc()
	}
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	if m.enabled {
		m.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func (m *Manager) UpdateSystemGoroutineCount(count int) {
	if m.enabled {
		m.systemGoroutineCount.Set(float64(count))
	}
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func (m *Manager) RecordSystemGCPauseTime(pauseMs float64) {
	if m.enabled {
		m.systemGCPauseTime.Observe(pauseMs)
	}
}

// Package-level helpers forward to the global manager.

// SetDishesTotal sets the current number of dishes.
func SetDishesTotal(count int) { globalManager.SetDishesTotal(count) }

// RecordDishCreated increments the created dishes counter.
func RecordDishCreated() { globalManager.RecordDishCreated() }

// RecordDishDeleted increments the deleted dishes counter.
func RecordDishDeleted() { globalManager.RecordDishDeleted() }

// RecordRegistryOperation counts one registry call with its outcome.
func RecordRegistryOperation(operation, result string) {
	globalManager.RecordRegistryOperation(operation, result)
}

// RecordRegistryLatency records the latency of a registry call.
func RecordRegistryLatency(operation string, latencyMs float64) {
	globalManager.RecordRegistryLatency(operation, latencyMs)
}

// RecordValidationFailure counts one rejected field.
func RecordValidationFailure(field string) { globalManager.RecordValidationFailure(field) }

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, durationMs)
}

// RecordErrorByEndpoint records an error with endpoint, method and type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.RecordErrorByType(errorType, severity)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.UpdateSystemMemoryUsage(bytes) }

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) { globalManager.UpdateSystemGoroutineCount(count) }

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.RecordSystemGCPauseTime(pauseMs) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
