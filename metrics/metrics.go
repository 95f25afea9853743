// Package metrics defines the Prometheus collectors for thesaurus loading,
// expansion and caching.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Load origins.
const (
	OriginParsed   = "parsed"
	OriginSnapshot = "snapshot"
)

// Metrics holds all Prometheus collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	ExpansionsTotal       *prometheus.CounterVec
	ExpansionTerms        prometheus.Histogram
	CacheHitsTotal        prometheus.Counter
	CacheMissesTotal      prometheus.Counter
	ConceptsLoaded        prometheus.Gauge
	ParseDiagnosticsTotal prometheus.Counter
	LoadsTotal            *prometheus.CounterVec
	LoadDuration          *prometheus.HistogramVec
}

// New creates all collectors and registers them with reg.
// A nil reg leaves the collectors unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ExpansionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skosexpand_expansions_total",
				Help: "Total expansions computed, by token kind.",
			},
			[]string{"kind"},
		),
		ExpansionTerms: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "skosexpand_expansion_terms",
				Help:    "Number of terms produced per expansion.",
				Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "skosexpand_cache_hits_total",
				Help: "Total number of expansion cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "skosexpand_cache_misses_total",
				Help: "Total number of expansion cache misses.",
			},
		),
		ConceptsLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "skosexpand_concepts",
				Help: "Number of concepts in the published thesaurus.",
			},
		),
		ParseDiagnosticsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "skosexpand_parse_diagnostics_total",
				Help: "Total malformed statements skipped while parsing.",
			},
		),
		LoadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skosexpand_loads_total",
				Help: "Total thesaurus loads by origin (parsed, snapshot).",
			},
			[]string{"origin"},
		),
		LoadDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skosexpand_load_duration_seconds",
				Help:    "Thesaurus load latency in seconds.",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"origin"},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.ExpansionsTotal,
			m.ExpansionTerms,
			m.CacheHitsTotal,
			m.CacheMissesTotal,
			m.ConceptsLoaded,
			m.ParseDiagnosticsTotal,
			m.LoadsTotal,
			m.LoadDuration,
		)
	}
	return m
}

// ObserveExpansion records one computed expansion.
func (m *Metrics) ObserveExpansion(kind string, terms int) {
	if m == nil {
		return
	}
	m.ExpansionsTotal.WithLabelValues(kind).Inc()
	m.ExpansionTerms.Observe(float64(terms))
}

// CacheHit records a cache hit.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Inc()
}

// CacheMiss records a cache miss.
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.CacheMissesTotal.Inc()
}

// ParseDiagnostic records a skipped statement.
func (m *Metrics) ParseDiagnostic() {
	if m == nil {
		return
	}
	m.ParseDiagnosticsTotal.Inc()
}

// ObserveLoad records a published thesaurus.
func (m *Metrics) ObserveLoad(origin string, concepts int, seconds float64) {
	if m == nil {
		return
	}
	m.LoadsTotal.WithLabelValues(origin).Inc()
	m.LoadDuration.WithLabelValues(origin).Observe(seconds)
	m.ConceptsLoaded.Set(float64(concepts))
}
