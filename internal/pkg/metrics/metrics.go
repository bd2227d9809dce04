package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the service collectors. A nil *Metrics is a valid no-op.
type Metrics struct {
	Registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	predictions   *prometheus.CounterVec
	enrichments   *prometheus.CounterVec
	enrichLatency prometheus.Histogram
}

const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)

func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Career predictions by outcome.",
		}, []string{"outcome"}),
		enrichments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "career_enrichments_total",
			Help:      "Career detail generations by outcome.",
		}, []string{"outcome"}),
		enrichLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "career_enrichment_duration_seconds",
			Help:      "Latency of one career detail generation, fallbacks included.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40},
		}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.predictions,
		m.enrichments,
		m.enrichLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) ObservePrediction(outcome string) {
	if m == nil {
		return
	}
	m.predictions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveEnrichment(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.enrichments.WithLabelValues(outcome).Inc()
	m.enrichLatency.Observe(d.Seconds())
}

// EnrichmentsCounter exposes one outcome series, mainly for tests.
func (m *Metrics) EnrichmentsCounter(outcome string) prometheus.Counter {
	return m.enrichments.WithLabelValues(outcome)
}

// PredictionsCounter exposes one outcome series, mainly for tests.
func (m *Metrics) PredictionsCounter(outcome string) prometheus.Counter {
	return m.predictions.WithLabelValues(outcome)
}
