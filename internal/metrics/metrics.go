// Package metrics holds the Prometheus collectors for pool reports and
// storage operations. Collectors live on their own registry and are exported
// as a node-exporter textfile, since the CLI has no scrape endpoint.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "costsplits"

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	reports   *prometheus.CounterVec
	transfers prometheus.Histogram
	storeOps  *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Pool reports computed, by kind.",
		}, []string{"kind"}),
		transfers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_transfers",
			Help:      "Number of transfers in each settlement plan.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32},
		}),
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Pool store operations, by operation and result.",
		}, []string{"op", "result"}),
	}
	m.registry.MustRegister(m.reports, m.transfers, m.storeOps)
	return m
}

// Registry exposes the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveReport counts a computed report and the size of its settlement plan.
func (m *Metrics) ObserveReport(kind string, transfers int) {
	if m == nil {
		return
	}
	m.reports.WithLabelValues(kind).Inc()
	m.transfers.Observe(float64(transfers))
}

// ObserveStore counts a store operation, labelled ok or error.
func (m *Metrics) ObserveStore(op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.storeOps.WithLabelValues(op, result).Inc()
}

// WriteTextfile writes the current values in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
