package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	kindLabel   = "kind"
	resultLabel = "result"
)

// PrometheusCollector exports query statistics as Prometheus metrics.
type PrometheusCollector struct {
	queries    *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	candidates *prometheus.HistogramVec
	shrinks    *prometheus.CounterVec
}

// NewPrometheusCollector creates the collectors under namespace and registers
// them with reg. A nil reg registers with the default registerer.
func NewPrometheusCollector(reg prometheus.Registerer, namespace string) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &PrometheusCollector{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Total needle queries by kind and result (ok, incomplete).",
		}, []string{kindLabel, resultLabel}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Needle query latency in seconds.",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{kindLabel}),
		candidates: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_candidates",
			Help:      "Index hits delivered per needle query.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		}, []string{kindLabel}),
		shrinks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sphere_shrinks_total",
			Help:      "Total search sphere narrowings during k-nearest queries.",
		}, []string{kindLabel}),
	}
	for _, collector := range []prometheus.Collector{c.queries, c.latency, c.candidates, c.shrinks} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordQuery implements Collector.
func (c *PrometheusCollector) RecordQuery(kind string, candidates, shrinks, results int, duration time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "incomplete"
	}
	c.queries.With(prometheus.Labels{kindLabel: kind, resultLabel: result}).Inc()
	c.latency.With(prometheus.Labels{kindLabel: kind}).Observe(duration.Seconds())
	c.candidates.With(prometheus.Labels{kindLabel: kind}).Observe(float64(candidates))
	if shrinks > 0 {
		c.shrinks.With(prometheus.Labels{kindLabel: kind}).Add(float64(shrinks))
	}
}
