// Package metrics provides Prometheus metrics for postwatch.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "postwatch",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "postwatch",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// EnrichDuration measures how long the per-page profile enrichment takes.
	EnrichDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "postwatch",
			Name:      "profile_enrich_duration_seconds",
			Help:      "Duration of profile statistics enrichment per page",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// EmptyIntersections counts queries short-circuited by a provably empty filter.
	EmptyIntersections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "postwatch",
			Name:      "empty_intersections_total",
			Help:      "Queries answered with an empty page without touching the store",
		},
		[]string{"entity"},
	)

	// CategoryCacheLookups counts category cache hits and misses.
	CategoryCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "postwatch",
			Name:      "category_cache_lookups_total",
			Help:      "Category cache lookups by result",
		},
		[]string{"result"},
	)
)

// RecordRequest records one handled HTTP request.
func RecordRequest(method, route, status string, seconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}
