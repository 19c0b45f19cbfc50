// Package metrics defines the Prometheus collectors exported by the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the service collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	conversionsTotal    *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method", "code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of response latency (seconds) for HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		conversionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exchange_conversions_total",
				Help: "Conversions by currency pair and outcome",
			},
			[]string{"from", "to", "outcome"},
		),
	}
}

func (m *Metrics) ObserveRequest(route, method, code string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(route, method, code).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(seconds)
}

// ObserveConversion counts one conversion attempt. outcome is "ok" or the
// lowercased failure kind.
func (m *Metrics) ObserveConversion(from, to, outcome string) {
	if m == nil {
		return
	}
	m.conversionsTotal.WithLabelValues(from, to, outcome).Inc()
}

// ConversionsTotal exposes the counter for tests and admin tooling.
func (m *Metrics) ConversionsTotal() *prometheus.CounterVec {
	return m.conversionsTotal
}

func (m *Metrics) RequestsTotal() *prometheus.CounterVec {
	return m.httpRequestsTotal
}
