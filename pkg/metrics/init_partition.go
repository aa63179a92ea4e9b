package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initPartitionMetrics() {
	r.PartitionRunsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "partition_runs_total",
			Help: "Total number of partitioning runs",
		},
	)

	r.PartitionRunDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "partition_run_duration_seconds",
			Help:    "Partitioning run duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
	)

	r.PartitionCount = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "partition_count",
			Help: "Number of partitions in the last run",
		},
	)

	r.PartitionEdgeCut = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "partition_edge_cut",
			Help: "Edges crossing partitions in the last run",
		},
	)

	r.PartitionModularity = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "partition_modularity",
			Help: "Modularity of the last partitioning",
		},
	)

	r.PartitionBalanceFactor = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "partition_balance_factor",
			Help: "Largest partition size over mean size in the last run",
		},
	)
}
