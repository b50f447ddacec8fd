// Package metrics defines the Prometheus collectors of the insights service
// and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the service.
// Each instance owns its registry so tests can build as many as they need.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	ChartRenderDuration  *prometheus.HistogramVec
	ChartRenderFailures  *prometheus.CounterVec
	DatasetRows          prometheus.Gauge
}

// New creates and registers all collectors together with the Go runtime
// and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed.",
			},
		),
		ChartRenderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chart_render_duration_seconds",
				Help:    "Chart render and encode latency in seconds.",
				Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"chart"},
		),
		ChartRenderFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chart_render_failures_total",
				Help: "Total chart renders that returned an error.",
			},
			[]string{"chart"},
		),
		DatasetRows: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "dataset_rows",
				Help: "Number of recipes in the loaded dataset.",
			},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.ChartRenderDuration,
		m.ChartRenderFailures,
		m.DatasetRows,
	)

	return m
}

// ObserveRender records one chart render
func (m *Metrics) ObserveRender(chart string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.ChartRenderDuration.WithLabelValues(chart).Observe(elapsed.Seconds())
	if err != nil {
		m.ChartRenderFailures.WithLabelValues(chart).Inc()
	}
}

// Registry exposes the underlying registry, mostly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus scrape HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
