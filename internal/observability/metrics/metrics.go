// Package metrics exposes the application-level prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/montluxe/storefront/pkg/db"
)

// Metrics bundles the instruments exposed on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	HTTPDuration *prometheus.HistogramVec
}

// New builds a private registry holding the HTTP instruments plus the
// transaction-outcome counters owned by pkg/db.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	registry.MustRegister(m.HTTPDuration)
	registry.MustRegister(db.Collectors()...)
	return m
}

// Registry returns the gatherer backing the /metrics endpoint.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Module provides the metrics bundle.
var Module = fx.Module("metrics",
	fx.Provide(New),
)
