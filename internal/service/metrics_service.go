package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation. All observers are
// nil-safe so instrumentation can be disabled by simply not constructing one.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	snapshotReads   *prometheus.CounterVec
	snapshotWrites  *prometheus.CounterVec
	plannerDuration *prometheus.HistogramVec
	plannerTotal    *prometheus.CounterVec
	sessionsLive    prometheus.GaugeFunc
}

// NewMetricsService registers core Prometheus collectors. sessionCount feeds
// the live-session gauge and may be nil.
func NewMetricsService(sessionCount func() int) *MetricsService {
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

	snapshotReads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_reads_total",
		Help: "Durable snapshot slot reads by outcome",
	}, []string{"outcome"})

	snapshotWrites := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_writes_total",
		Help: "Durable snapshot slot writes by outcome",
	}, []string{"outcome"})

	plannerDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planner_request_duration_seconds",
		Help:    "Duration of calls to the planner service",
		Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 90},
	}, []string{"operation"})

	plannerTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_requests_total",
		Help: "Calls to the planner service by operation and outcome",
	}, []string{"operation", "outcome"})

	sessionsLive := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "wizard_sessions_live",
		Help: "Number of wizard sessions held in memory",
	}, func() float64 {
		if sessionCount == nil {
			return 0
		}
		return float64(sessionCount())
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, snapshotReads, snapshotWrites, plannerDuration, plannerTotal, sessionsLive, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		snapshotReads:   snapshotReads,
		snapshotWrites:  snapshotWrites,
		plannerDuration: plannerDuration,
		plannerTotal:    plannerTotal,
		sessionsLive:    sessionsLive,
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

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordSnapshotRead counts a durable slot read as hit or miss.
func (m *MetricsService) RecordSnapshotRead(hit bool) {
	if m == nil {
		return
	}
	label := "miss"
	if hit {
		label = "hit"
	}
	m.snapshotReads.WithLabelValues(label).Inc()
}

// RecordSnapshotWrite counts a durable slot write by outcome.
func (m *MetricsService) RecordSnapshotWrite(ok bool) {
	if m == nil {
		return
	}
	m.snapshotWrites.WithLabelValues(outcomeLabel(ok)).Inc()
}

// ObservePlannerRequest records one call to the planner service.
func (m *MetricsService) ObservePlannerRequest(operation string, ok bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.plannerDuration.WithLabelValues(operation).Observe(duration.Seconds())
	m.plannerTotal.WithLabelValues(operation, outcomeLabel(ok)).Inc()
}

func outcomeLabel(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
