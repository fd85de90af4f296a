package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HTTPRequestDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "http_request_duration_seconds",
	Help:    "Duration of HTTP requests in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "path", "status"})

var HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of HTTP requests.",
}, []string{"method", "path", "status"})

var HTTPResponseSizeBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "http_response_size_bytes",
	Help:    "Size of HTTP responses in bytes.",
	Buckets: prometheus.ExponentialBuckets(64, 4, 8),
}, []string{"method", "path", "status"})

var InFlightRequests = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "http_in_flight_requests",
	Help: "Current number of in-flight HTTP requests.",
})

// Upstream (Readwise API) Metrics
var UpstreamRequestDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "readwise_request_duration_seconds",
	Help:    "Duration of calls to the Readwise API in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"endpoint", "method", "status"})

var UpstreamErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "readwise_request_errors_total",
	Help: "Total number of Readwise API calls that failed before a response was read.",
}, []string{"endpoint", "method"})

var OperationDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "readwise_operation_duration_seconds",
	Help:    "Duration of document repository operations, including pagination and retries.",
	Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
}, []string{"operation", "repository", "status"})

var OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "readwise_operation_errors_total",
	Help: "Total number of failed document repository operations.",
}, []string{"operation", "repository"})
