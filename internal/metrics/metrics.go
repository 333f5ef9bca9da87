// Package metrics provides Prometheus metric collection and exposure for the
// HTTP API and the session tracking features.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers request-level and domain-level Prometheus metrics.
type Collector struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	sessionsCreated prometheus.Counter
	overlapRejects  prometheus.Counter
}

// NewCollector creates a new Collector and registers its metrics with the
// given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "worktracker_http_requests_total",
			Help: "Number of HTTP requests by method and status code.",
		}, []string{"method", "status_code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "worktracker_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		sessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "worktracker_sessions_created_total",
			Help: "Number of work sessions recorded.",
		}),
		overlapRejects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "worktracker_session_overlap_rejections_total",
			Help: "Number of session writes rejected because of time overlap.",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.sessionsCreated,
		c.overlapRejects,
	)

	return c
}

// RecordSessionCreated counts a recorded work session.
func (c *Collector) RecordSessionCreated() {
	c.sessionsCreated.Inc()
}

// RecordOverlapRejection counts a session write rejected due to overlap.
func (c *Collector) RecordOverlapRejection() {
	c.overlapRejects.Inc()
}

// Middleware instruments every request with a counter and a latency histogram.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		c.httpRequests.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
		c.httpDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
