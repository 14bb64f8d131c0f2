// Package metrics provides Prometheus metrics for the training planner service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Import pipeline metrics.
	importsStarted    prometheus.Counter
	importsRejected   prometheus.Counter
	importErrors      *prometheus.CounterVec
	recordsFetched    prometheus.Counter
	recordsDeduped    prometheus.Counter
	workoutsInserted  prometheus.Counter
	workoutsUpdated   prometheus.Counter
	importDurationMs  prometheus.Histogram

	// Store metrics.
	workoutCount       prometheus.Gauge
	storeUpdateLatency prometheus.Histogram
	storeQueryLatency  prometheus.Histogram

	// Aggregation metrics.
	aggregateQueries *prometheus.CounterVec

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByComponent   *prometheus.CounterVec
}

// Global manager on a custom registry, so the default Go collectors do not
// pollute the /healthz output.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers all metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "trainingplanner",
		subsystem:        "core",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.importsStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "imports_started_total",
		Help:      "Total number of reconciliation imports started",
	})

	m.importsRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "imports_rejected_total",
		Help:      "Total number of imports rejected because one was already in flight",
	})

	m.importErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "import_errors_total",
			Help:      "Total number of failed imports by reason",
		},
		[]string{"reason"},
	)

	m.recordsFetched = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "source_records_fetched_total",
		Help:      "Total number of external workout records fetched",
	})

	m.recordsDeduped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "source_records_deduplicated_total",
		Help:      "Total number of external records dropped as cross-provider duplicates",
	})

	m.workoutsInserted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "workouts_inserted_total",
		Help:      "Total number of workouts inserted by reconciliation",
	})

	m.workoutsUpdated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "workouts_updated_total",
		Help:      "Total number of local workouts overwritten by reconciliation",
	})

	m.importDurationMs = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "import_duration_milliseconds",
		Help:      "End-to-end import duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.workoutCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "workouts_total",
		Help:      "Current number of workouts in the store",
	})

	m.storeUpdateLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_update_latency_milliseconds",
		Help:      "Store mutation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.storeQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_query_latency_milliseconds",
		Help:      "Store read latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.aggregateQueries = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "aggregate_queries_total",
			Help:      "Total number of aggregate queries by kind and metric",
		},
		[]string{"kind", "metric"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method, and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_total",
			Help:      "Total number of errors by component and type",
		},
		[]string{"component", "type"},
	)
}

// GetRegistry returns the registry backing the global manager, for use by
// the /healthz metrics handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers recording against the global manager.

func RecordImportStarted()  { globalManager.importsStarted.Inc() }
func RecordImportRejected() { globalManager.importsRejected.Inc() }

func RecordImportError(reason string) {
	globalManager.importErrors.WithLabelValues(reason).Inc()
}

func RecordRecordsFetched(n int) {
	globalManager.recordsFetched.Add(float64(n))
}

func RecordRecordsDeduplicated(n int) {
	globalManager.recordsDeduped.Add(float64(n))
}

func RecordWorkoutsInserted(n int) {
	globalManager.workoutsInserted.Add(float64(n))
}

func RecordWorkoutsUpdated(n int) {
	globalManager.workoutsUpdated.Add(float64(n))
}

func RecordImportDuration(ms float64) {
	globalManager.importDurationMs.Observe(ms)
}

func UpdateWorkoutCount(n int) {
	globalManager.workoutCount.Set(float64(n))
}

func RecordStoreUpdateLatency(ms float64) {
	globalManager.storeUpdateLatency.Observe(ms)
}

func RecordStoreQueryLatency(ms float64) {
	globalManager.storeQueryLatency.Observe(ms)
}

func RecordAggregateQuery(kind, metric string) {
	globalManager.aggregateQueries.WithLabelValues(kind, metric).Inc()
}

func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

func RecordErrorByComponent(component, errType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errType).Inc()
}
