// Package metrics provides Prometheus metrics collection for the interactions checker.
// It exports metrics for inbound HTTP traffic and for calls made to the upstream
// drug catalog:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//   - upstream_request_total: Counter with endpoint and outcome labels
//   - upstream_request_duration_seconds: Histogram with endpoint label
//   - identifier_resolutions_total: Counter with result label
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Upstream endpoint label values
const (
	EndpointLookup      = "lookup"
	EndpointInteraction = "interaction"
)

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	UpstreamRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_request_total",
			Help: "Total requests sent to the drug catalog, by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Drug catalog request latency",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	IdentifierResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identifier_resolutions_total",
			Help: "Medication name resolutions, by result",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(UpstreamRequestTotals)
	prometheus.MustRegister(UpstreamRequestDuration)
	prometheus.MustRegister(IdentifierResolutions)
}
