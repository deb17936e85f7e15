// Package metrics provides Prometheus metrics for the puzzleboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector for the service.
type Manager struct {
	namespace string
	registry  prometheus.Registerer

	// Ingestion
	submissionsReceived  prometheus.Counter
	submissionsDuplicate prometheus.Counter
	parseFailures        *prometheus.CounterVec
	entriesUpserted      *prometheus.CounterVec
	entriesRemoved       *prometheus.CounterVec

	// Persistence
	persistenceErrors prometheus.Counter

	// Store
	storeSize *prometheus.GaugeVec

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueues      prometheus.Counter
	queueDequeues      prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Workers and queries
	workerLatency prometheus.Histogram
	queryLatency  prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager backed by a custom registry so the default Go
// collectors do not leak into scrape output.
var (
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry
	globalManager  *Manager                   //nolint:gochecknoglobals // singleton manager
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with configuration options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "puzzleboard",
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := promauto.With(m.registry)

	m.submissionsReceived = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "submissions_received_total",
		Help:      "Submissions accepted for processing.",
	})
	m.submissionsDuplicate = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "submissions_duplicate_total",
		Help:      "Submissions acknowledged as duplicates by id.",
	})
	m.parseFailures = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "parse_failures_total",
		Help:      "Submissions rejected by the parser.",
	}, []string{"game"})
	m.entriesUpserted = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "entries_upserted_total",
		Help:      "Entries inserted or replaced in the store.",
	}, []string{"game"})
	m.entriesRemoved = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "entries_removed_total",
		Help:      "Entries removed from the store.",
	}, []string{"game"})

	m.persistenceErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "persistence_errors_total",
		Help:      "Failed writes to the entry archive.",
	})

	m.storeSize = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "store_entries",
		Help:      "Entries currently held per game store.",
	}, []string{"game"})

	m.queueSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "queue_size",
		Help:      "Submissions waiting in the intake queue.",
	})
	m.queueCapacity = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "queue_capacity",
		Help:      "Configured intake queue capacity.",
	})
	m.queueEnqueues = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "queue_enqueues_total",
		Help:      "Successful queue enqueues.",
	})
	m.queueDequeues = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "queue_dequeues_total",
		Help:      "Successful queue dequeues.",
	})
	m.queueEnqueueErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "queue_enqueue_errors_total",
		Help:      "Enqueues rejected by backpressure or shutdown.",
	})

	m.workerLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "worker_processing_seconds",
		Help:      "Time spent recording one submission.",
		Buckets:   prometheus.DefBuckets,
	})
	m.queryLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "leaderboard_query_seconds",
		Help:      "Time spent building one leaderboard response.",
		Buckets:   prometheus.DefBuckets,
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_seconds",
		Help:      "HTTP request latency by endpoint and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint", "method"})

	return m
}

// GetRegistry exposes the custom registry for the scrape handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers against the global manager.

func RecordSubmissionReceived()  { globalManager.submissionsReceived.Inc() }
func RecordSubmissionDuplicate() { globalManager.submissionsDuplicate.Inc() }

func RecordParseFailure(g string) { globalManager.parseFailures.WithLabelValues(g).Inc() }
func RecordEntryUpserted(g string) {
	globalManager.entriesUpserted.WithLabelValues(g).Inc()
}
func RecordEntryRemoved(g string) { globalManager.entriesRemoved.WithLabelValues(g).Inc() }

func RecordPersistenceError() { globalManager.persistenceErrors.Inc() }

func UpdateStoreSize(g string, n int) {
	globalManager.storeSize.WithLabelValues(g).Set(float64(n))
}

func UpdateQueueSize(n int)       { globalManager.queueSize.Set(float64(n)) }
func UpdateQueueCapacity(n int)   { globalManager.queueCapacity.Set(float64(n)) }
func RecordQueueEnqueue()         { globalManager.queueEnqueues.Inc() }
func RecordQueueDequeue()         { globalManager.queueDequeues.Inc() }
func RecordQueueEnqueueError()    { globalManager.queueEnqueueErrors.Inc() }
func RecordWorkerLatency(s float64) { globalManager.workerLatency.Observe(s) }
func RecordQueryLatency(s float64)  { globalManager.queryLatency.Observe(s) }

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method string, seconds float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(seconds)
}
