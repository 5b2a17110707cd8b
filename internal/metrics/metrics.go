// Package metrics exposes the Prometheus collectors served on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Kinds of query failure, used as the "kind" label.
const (
	KindConnectivity = "connectivity"
	KindQuery        = "query"
)

var (
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "broadcast_query_duration_seconds",
			Help:    "Duration of data store reads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	QueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcast_query_errors_total",
			Help: "Total number of failed data store reads",
		},
		[]string{"operation", "kind"},
	)

	DegradedResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcast_degraded_responses_total",
			Help: "Responses served empty because the data store could not be read",
		},
		[]string{"endpoint", "reason"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcast_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "broadcast_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordQuery records the duration of a read. A non-empty kind marks it failed.
func RecordQuery(operation string, d time.Duration, kind string) {
	QueryDuration.WithLabelValues(operation).Observe(d.Seconds())
	if kind != "" {
		QueryErrors.WithLabelValues(operation, kind).Inc()
	}
}

// RecordDegraded counts a response served empty after a data store failure.
func RecordDegraded(endpoint, reason string) {
	DegradedResponses.WithLabelValues(endpoint, reason).Inc()
}

// RecordHTTPRequest records one completed request.
func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
