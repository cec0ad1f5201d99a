// Package metrics holds the Prometheus collectors of the librarium API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rejection sources.
const (
	SourceSchema     = "schema"
	SourceConstraint = "constraint"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "librarium_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "librarium_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ValidationRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "librarium_request_validation_rejections_total",
			Help: "Total number of requests rejected as invalid, by source",
		},
		[]string{"source"},
	)

	ValidationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "librarium_request_validation_errors_total",
			Help: "Total number of individual errors reported in rejected requests, by source",
		},
		[]string{"source"},
	)

	FixturesLoaded = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "librarium_fixtures_loaded",
			Help: "Number of records loaded from fixtures at startup",
		},
		[]string{"collection"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordRejection records a rejected request and the number of errors reported.
func RecordRejection(source string, errors int) {
	ValidationRejections.WithLabelValues(source).Inc()
	ValidationErrors.WithLabelValues(source).Add(float64(errors))
}

// RecordFixtures records how many records a fixture file provided.
func RecordFixtures(collection string, count int) {
	FixturesLoaded.WithLabelValues(collection).Set(float64(count))
}
