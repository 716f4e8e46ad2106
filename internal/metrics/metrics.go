// Package metrics defines the Prometheus collectors of the service.
//
// - http_requests_total: requests by route pattern, method and status
// - http_request_duration_seconds: latency by route pattern and method
// - favorites_operations_total: favorites add/remove/list by kind and outcome
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "HTTP requests by route, method and status."},
		[]string{"path", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request latency in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"path", "method"},
	)
	FavoriteOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "favorites_operations_total", Help: "Favorites operations by kind and result."},
		[]string{"op", "kind", "result"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPLatency, FavoriteOps)
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and latency per route pattern.
// The pattern (not the raw URL) is used as the label so that ids in
// paths do not explode the label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		// ServeMux fills in r.Pattern on the request it was handed.
		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		HTTPLatency.WithLabelValues(path, r.Method).Observe(time.Since(start).Seconds())
		HTTPRequests.WithLabelValues(path, r.Method, strconv.Itoa(rec.status)).Inc()
	})
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
