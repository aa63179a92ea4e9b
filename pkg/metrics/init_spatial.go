package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSpatialMetrics() {
	r.TreeRebuildsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "spatial_tree_rebuilds_total",
			Help: "Total number of Barnes-Hut tree rebuilds",
		},
	)

	r.TreeRebuildDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "spatial_tree_rebuild_duration_seconds",
			Help:    "Barnes-Hut tree rebuild duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	r.TreeNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "spatial_tree_nodes",
			Help: "Number of graph nodes in the last built tree",
		},
	)

	r.GridRebuildsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "spatial_grid_rebuilds_total",
			Help: "Total number of hash grid rebuilds",
		},
	)

	r.GridRebuildDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "spatial_grid_rebuild_duration_seconds",
			Help:    "Hash grid rebuild duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	r.GridOccupiedCells = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "spatial_grid_occupied_cells",
			Help: "Number of occupied cells in the last built grid",
		},
	)

	r.ForceQueriesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "spatial_force_queries_total",
			Help: "Total number of Barnes-Hut force queries",
		},
	)

	r.NeighborQueriesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "spatial_neighbor_queries_total",
			Help: "Total number of grid neighbor queries",
		},
	)
}
