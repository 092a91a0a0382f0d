package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/aretw0/latword/pkg/expand"
	"github.com/aretw0/latword/pkg/pipeline"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "latword"

// Metrics holds the expansion collectors.
type Metrics struct {
	registry *prometheus.Registry

	Lattices     *prometheus.CounterVec
	Arcs         *prometheus.CounterVec
	Pruned       prometheus.Counter
	Duration     prometheus.Histogram
	OutputStates prometheus.Histogram
	Symbols      prometheus.Gauge
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Lattices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lattices_total",
			Help:      "Total number of expanded lattices",
		}, []string{"pruned"}),
		Arcs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "arcs_total",
			Help:      "Total number of arcs written, by kind",
		}, []string{"kind"}),
		Pruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "length_pruned_total",
			Help:      "Partial words dropped for exceeding the maximum length",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "expand_duration_seconds",
			Help:      "Duration of a single lattice expansion",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		OutputStates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "output_states",
			Help:      "Number of states in expanded lattices",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		Symbols: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "symbols",
			Help:      "Number of entries in the shared symbol table",
		}),
	}
	m.registry.MustRegister(m.Lattices, m.Arcs, m.Pruned, m.Duration, m.OutputStates, m.Symbols)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Observe records one expansion.
func (m *Metrics) Observe(stats expand.Stats, d time.Duration, pruned bool) {
	label := "false"
	if pruned {
		label = "true"
	}
	m.Lattices.WithLabelValues(label).Inc()
	m.Arcs.WithLabelValues("word").Add(float64(stats.WordArcs))
	m.Arcs.WithLabelValues("delimiter").Add(float64(stats.DelimiterArcs))
	m.Pruned.Add(float64(stats.Pruned))
	m.Duration.Observe(d.Seconds())
	m.OutputStates.Observe(float64(stats.DestStates))
}

// Hooks adapts Observe to pipeline callbacks. next, if set, runs afterwards.
func (m *Metrics) Hooks(next pipeline.Hooks) pipeline.Hooks {
	return pipeline.Hooks{
		OnEntry: func(ctx context.Context, e pipeline.EntryEvent) {
			m.Observe(e.Stats, e.Duration, e.Pruned)
			if next.OnEntry != nil {
				next.OnEntry(ctx, e)
			}
		},
	}
}
