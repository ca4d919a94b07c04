package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	funnelCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_cache_lookups_total",
			Help: "Funnel week cache lookups by result",
		},
		[]string{"result"},
	)

	funnelCacheInvalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "funnel_cache_invalidations_total",
			Help: "Funnel weeks removed from the cache",
		},
	)

	applicantsRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "applicants_registered_total",
			Help: "Total number of applicants registered",
		},
	)

	applicantEventsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "applicant_events_failed_total",
			Help: "Registration events that could not be published",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		path := routePattern(r)
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// routePattern uses the chi route template so path parameters do not explode label cardinality.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

// UseCaseMetrics reports use case counters to Prometheus.
type UseCaseMetrics struct{}

func (UseCaseMetrics) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	funnelCacheLookups.WithLabelValues(result).Inc()
}

func (UseCaseMetrics) RecordCacheInvalidation() {
	funnelCacheInvalidations.Inc()
}

func (UseCaseMetrics) RecordApplicantRegistered() {
	applicantsRegistered.Inc()
}

func (UseCaseMetrics) RecordEventPublishFailure() {
	applicantEventsFailed.Inc()
}
