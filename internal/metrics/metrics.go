// Package metrics holds the Prometheus collectors shared by the product client,
// the admin controller and the HTTP servers.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeRejected = "rejected"
	OutcomeDeclined = "declined"
	OutcomeStale    = "stale"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	clientRequests *prometheus.CounterVec
	clientDuration *prometheus.HistogramVec
	adminActions   *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
}

// New creates the collectors on a fresh registry.
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		clientRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "product_client_requests_total",
			Help:      "Calls issued to the products API, by operation and outcome.",
		}, []string{"operation", "outcome"}),
		clientDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "product_client_request_duration_seconds",
			Help:      "Latency of calls to the products API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		adminActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_actions_total",
			Help:      "Admin console actions, by action and outcome.",
		}, []string{"action", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method and status code.",
		}, []string{"method", "status"}),
	}

	m.registry.MustRegister(
		m.clientRequests,
		m.clientDuration,
		m.adminActions,
		m.httpRequests,
		collectors.NewGoCollector(),
	)

	return m
}

// ObserveClientCall records one products API call.
func (m *Metrics) ObserveClientCall(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.clientRequests.WithLabelValues(operation, outcome).Inc()
	m.clientDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ObserveAdminAction records the outcome of one admin console action.
func (m *Metrics) ObserveAdminAction(action, outcome string) {
	if m == nil {
		return
	}
	m.adminActions.WithLabelValues(action, outcome).Inc()
}

// ObserveHTTPRequest records one served HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, status string) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, status).Inc()
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
