// Package metrics defines the Prometheus collectors for the service.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/trace"
)

// Metrics holds every collector registered by the service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	AnalysesTotal       *prometheus.CounterVec
	AnalysisDuration    *prometheus.HistogramVec
	EnhancementsTotal   *prometheus.CounterVec
	EnhancementDuration *prometheus.HistogramVec
	QueueWaitSeconds    prometheus.Histogram
}

// New registers and returns the service collectors under the given
// namespace. Call at most once per process.
func New(namespace string) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		AnalysesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Total analyses performed, by depth.",
		}, []string{"depth"}),
		AnalysisDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Rule-based analysis latency, by depth.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"depth"}),
		EnhancementsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_enhancements_total",
			Help:      "AI enhancement attempts, by outcome (success, error kind).",
		}, []string{"outcome"}),
		EnhancementDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ai_enhancement_duration_seconds",
			Help:      "AI enhancement latency, by outcome.",
			Buckets:   []float64{.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}, []string{"outcome"}),
		QueueWaitSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "queue_wait_seconds",
			Help:      "Time enhancement tasks spend queued before processing.",
			Buckets:   []float64{.1, .5, 1, 5, 15, 60, 300, 900, 3600},
		}),
	}
}

// ObserveEnhancementWithExemplar records an enhancement duration, attaching
// the current trace ID as an exemplar when the context carries a sampled span.
func (m *Metrics) ObserveEnhancementWithExemplar(ctx context.Context, seconds float64, outcome string) {
	observer := m.EnhancementDuration.WithLabelValues(outcome)
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() && sc.IsSampled() {
		if exemplarObserver, ok := observer.(prometheus.ExemplarObserver); ok {
			exemplarObserver.ObserveWithExemplar(seconds, prometheus.Labels{
				"trace_id": sc.TraceID().String(),
			})
			return
		}
	}
	observer.Observe(seconds)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// HTTPMiddleware records request counts and latencies for every route.
func (m *Metrics) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		path := routeLabel(r.URL.Path)
		m.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(recorder.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// routeLabel collapses ID-bearing paths to a fixed label to bound cardinality.
func routeLabel(path string) string {
	if len(path) > len("/api/analyses/") && path[:len("/api/analyses/")] == "/api/analyses/" {
		return "/api/analyses/{id}"
	}
	return path
}
