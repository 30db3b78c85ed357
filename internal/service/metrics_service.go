package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ManithKumarpace/Edu-Pilot/internal/dto"
)

// Generation outcomes used as metric labels.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
type MetricsService struct {
	registry           *prometheus.Registry
	handler            http.Handler
	requestDuration    *prometheus.HistogramVec
	requestTotal       *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	generationTotal    *prometheus.CounterVec
	examClashes        prometheus.Counter
	examUnscheduled    prometheus.Counter
	weeklyAdjustments  *prometheus.CounterVec
	exportsTotal       *prometheus.CounterVec
	cacheLatency       prometheus.Observer
	cacheWrite         prometheus.Observer
	cacheHitRatio      prometheus.Gauge
	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter

	cacheHitCount        uint64
	cacheMissCount       uint64
	requestCount         uint64
	requestDurationTotal uint64
	generationCount      uint64
	generationFailures   uint64
	clashCount           uint64
	displacedCount       uint64
	droppedCount         uint64
	exportCount          uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	generationDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "timetable_generation_duration_seconds",
		Help:    "Duration of timetable generation runs",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"kind"})

	generationTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_generations_total",
		Help: "Timetable generation runs by kind and outcome",
	}, []string{"kind", "outcome"})

	examClashes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_exam_clashes_total",
		Help: "Exam placements that fell back onto a date already carrying the subject",
	})

	examUnscheduled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_exam_unscheduled_total",
		Help: "Exam subjects left without a date",
	})

	weeklyAdjustments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_weekly_adjustments_total",
		Help: "Teacher grid cells displaced, dropped or left unstaffed",
	}, []string{"kind"})

	exportsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_exports_total",
		Help: "Rendered timetable exports by view and format",
	}, []string{"view", "format"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for preview cache lookups",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for preview cache writes",
		Buckets: prometheus.DefBuckets,
	})

	cacheHitRatio := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cache_hit_ratio",
		Help: "Ratio of cache hits to total cache lookups",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, generationDuration, generationTotal, examClashes, examUnscheduled,
		weeklyAdjustments, exportsTotal, cacheLatency, cacheWrite, cacheHitRatio, cacheHits, cacheMisses, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:           registry,
		handler:            handler,
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		generationDuration: generationDuration,
		generationTotal:    generationTotal,
		examClashes:        examClashes,
		examUnscheduled:    examUnscheduled,
		weeklyAdjustments:  weeklyAdjustments,
		exportsTotal:       exportsTotal,
		cacheLatency:       cacheLatency,
		cacheWrite:         cacheWrite,
		cacheHitRatio:      cacheHitRatio,
		cacheHits:          cacheHits,
		cacheMisses:        cacheMisses,
	}
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

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveGeneration records one generation run of the given kind.
func (m *MetricsService) ObserveGeneration(kind, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.generationTotal.WithLabelValues(kind, outcome).Inc()
	m.generationDuration.WithLabelValues(kind).Observe(duration.Seconds())
	atomic.AddUint64(&m.generationCount, 1)
	if outcome != OutcomeSuccess {
		atomic.AddUint64(&m.generationFailures, 1)
	}
}

// RecordExamDiagnostics counts clash fallbacks and unscheduled subjects.
func (m *MetricsService) RecordExamDiagnostics(clashes, unscheduled int) {
	if m == nil {
		return
	}
	m.examClashes.Add(float64(clashes))
	m.examUnscheduled.Add(float64(unscheduled))
	atomic.AddUint64(&m.clashCount, uint64(clashes))
}

// RecordWeeklyDiagnostics counts teacher grid adjustments.
func (m *MetricsService) RecordWeeklyDiagnostics(displaced, dropped, unstaffed int) {
	if m == nil {
		return
	}
	m.weeklyAdjustments.WithLabelValues("displaced").Add(float64(displaced))
	m.weeklyAdjustments.WithLabelValues("dropped").Add(float64(dropped))
	m.weeklyAdjustments.WithLabelValues("unstaffed").Add(float64(unstaffed))
	atomic.AddUint64(&m.displacedCount, uint64(displaced))
	atomic.AddUint64(&m.droppedCount, uint64(dropped))
}

// RecordExport counts a rendered export.
func (m *MetricsService) RecordExport(view, format string) {
	if m == nil {
		return
	}
	m.exportsTotal.WithLabelValues(view, format).Inc()
	atomic.AddUint64(&m.exportCount, 1)
}

// RecordCacheOperation records cache hit/miss metrics and updates hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	if m.cacheLatency != nil {
		m.cacheLatency.Observe(duration.Seconds())
	}
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	total := hits + misses
	if total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil || m.cacheWrite == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// Snapshot returns aggregated metrics for the summary endpoint.
func (m *MetricsService) Snapshot() dto.MetricsSnapshot {
	if m == nil {
		return dto.MetricsSnapshot{}
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)

	var cacheRatio float64
	if total := hits + misses; total > 0 {
		cacheRatio = float64(hits) / float64(total)
	}

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	return dto.MetricsSnapshot{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		Generations:              atomic.LoadUint64(&m.generationCount),
		GenerationFailures:       atomic.LoadUint64(&m.generationFailures),
		ExamClashes:              atomic.LoadUint64(&m.clashCount),
		Displaced:                atomic.LoadUint64(&m.displacedCount),
		Dropped:                  atomic.LoadUint64(&m.droppedCount),
		Exports:                  atomic.LoadUint64(&m.exportCount),
		CacheHitRatio:            cacheRatio,
		CacheHits:                hits,
		CacheMisses:              misses,
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
