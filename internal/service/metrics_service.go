package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels shared by the import and snapshot counters.
const (
	OutcomeAccepted = "accepted"
	OutcomeSkipped  = "skipped"
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
)

// MetricsService encapsulates Prometheus instrumentation. A nil receiver is a no-op.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Histogram
	cacheWrite      prometheus.Histogram
	cacheHitRatio   prometheus.Gauge
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	importRows      *prometheus.CounterVec
	importFailures  *prometheus.CounterVec
	snapshotWrites  *prometheus.CounterVec
	snapshotLatency *prometheus.HistogramVec
	records         *prometheus.GaugeVec
	dataVersion     prometheus.Gauge

	cacheHitCount  uint64
	cacheMissCount uint64
}

// NewMetricsService registers every collector on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	m := &MetricsService{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		cacheLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cache_latency_seconds",
			Help:    "Latency for cache lookups",
			Buckets: prometheus.DefBuckets,
		}),
		cacheWrite: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cache_write_seconds",
			Help:    "Latency for cache set operations",
			Buckets: prometheus.DefBuckets,
		}),
		cacheHitRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cache_hit_ratio",
			Help: "Ratio of cache hits to total cache lookups",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total cache hits",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total cache misses",
		}),
		importRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ppgee_import_rows_total",
			Help: "Spreadsheet rows processed by record kind and outcome",
		}, []string{"kind", "outcome"}),
		importFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ppgee_import_failures_total",
			Help: "Spreadsheet uploads rejected before any row was read",
		}, []string{"kind"}),
		snapshotWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ppgee_snapshot_writes_total",
			Help: "Collection snapshot writes by collection and outcome",
		}, []string{"collection", "outcome"}),
		snapshotLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ppgee_snapshot_write_seconds",
			Help:    "Duration of collection snapshot writes",
			Buckets: prometheus.DefBuckets,
		}, []string{"collection"}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ppgee_records",
			Help: "Records currently held per collection",
		}, []string{"collection"}),
		dataVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ppgee_data_version",
			Help: "Monotonic version of the record store",
		}),
	}

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(
		m.requestDuration, m.requestTotal,
		m.cacheLatency, m.cacheWrite, m.cacheHitRatio, m.cacheHits, m.cacheMisses,
		m.importRows, m.importFailures, m.snapshotWrites, m.snapshotLatency, m.records, m.dataVersion,
		goroutines,
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry returns the registry backing the handler.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCacheOperation records a cache hit or miss and updates the hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	total := hits + atomic.LoadUint64(&m.cacheMissCount)
	if total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks the duration of cache writes.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// RecordImport counts the accepted and skipped rows of one import.
func (m *MetricsService) RecordImport(kind string, accepted, skipped int) {
	if m == nil {
		return
	}
	m.importRows.WithLabelValues(kind, OutcomeAccepted).Add(float64(accepted))
	m.importRows.WithLabelValues(kind, OutcomeSkipped).Add(float64(skipped))
}

// RecordImportFailure counts an upload rejected as unreadable.
func (m *MetricsService) RecordImportFailure(kind string) {
	if m == nil {
		return
	}
	m.importFailures.WithLabelValues(kind).Inc()
}

// ObserveSnapshotWrite records one collection write.
func (m *MetricsService) ObserveSnapshotWrite(collection string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.snapshotWrites.WithLabelValues(collection, outcome).Inc()
	m.snapshotLatency.WithLabelValues(collection).Observe(duration.Seconds())
}

// SetRecordCounts publishes collection sizes and the store version.
func (m *MetricsService) SetRecordCounts(version uint64, counts map[string]int) {
	if m == nil {
		return
	}
	m.dataVersion.Set(float64(version))
	for collection, n := range counts {
		m.records.WithLabelValues(collection).Set(float64(n))
	}
}
