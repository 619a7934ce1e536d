// Package metrics holds the Prometheus collectors of the servers.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its registry so several servers (and tests) can coexist.
type Metrics struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	searchDuration prometheus.Histogram
	phrases        prometheus.Histogram
	cache          *prometheus.CounterVec
	rejected       *prometheus.CounterVec
	dictWords      prometheus.Gauge
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "anagramserve_requests_total",
				Help: "Requests handled, by transport, route and status code",
			},
			[]string{"transport", "route", "code"},
		),
		searchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "anagramserve_search_duration_seconds",
				Help:    "Time spent generating the phrases of one query",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),
		phrases: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "anagramserve_phrases_per_query",
				Help:    "Number of phrases returned per query",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
		cache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "anagramserve_cache_lookups_total",
				Help: "Result cache lookups by outcome",
			},
			[]string{"result"},
		),
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "anagramserve_rejected_queries_total",
				Help: "Queries refused before searching, by reason",
			},
			[]string{"reason"},
		),
		dictWords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "anagramserve_dictionary_words",
				Help: "Distinct words in the loaded dictionary",
			},
		),
	}

	m.registry.MustRegister(
		m.requests, m.searchDuration, m.phrases, m.cache, m.rejected, m.dictWords,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveRequest(transport, route, code string) {
	m.requests.WithLabelValues(transport, route, code).Inc()
}

func (m *Metrics) ObserveSearch(elapsed time.Duration, phrases int) {
	m.searchDuration.Observe(elapsed.Seconds())
	m.phrases.Observe(float64(phrases))
}

func (m *Metrics) ObserveCache(hit bool) {
	if hit {
		m.cache.WithLabelValues("hit").Inc()
		return
	}
	m.cache.WithLabelValues("miss").Inc()
}

func (m *Metrics) ObserveRejected(reason string) {
	m.rejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) SetDictionaryWords(n int) {
	m.dictWords.Set(float64(n))
}
