// Package metrics holds the Prometheus collectors exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry bundles the HTTP-level collectors recorded by the metrics
// middleware. Route labels use the echo route pattern (e.g.
// /api/admin/sports/:id) so path parameters do not explode cardinality.
type Registry struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewRegistry registers and returns the collectors on the default
// Prometheus registerer.
func NewRegistry() *Registry {
	return &Registry{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sportcenter_http_requests_total",
				Help: "Total HTTP requests by route, method and status code",
			},
			[]string{"route", "method", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sportcenter_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"route", "method"},
		),
	}
}
