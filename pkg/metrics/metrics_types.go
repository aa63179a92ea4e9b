// Package metrics exposes the engine's prometheus metrics: rebuild
// durations for the spatial structures, query throughput, culling and
// LOD population, partition quality and relayout decisions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the engine.
type Registry struct {
	registry *prometheus.Registry

	// Spatial structure metrics
	TreeRebuildsTotal    prometheus.Counter
	TreeRebuildDuration  prometheus.Histogram
	TreeNodesTotal       prometheus.Gauge
	GridRebuildsTotal    prometheus.Counter
	GridRebuildDuration  prometheus.Histogram
	GridOccupiedCells    prometheus.Gauge
	ForceQueriesTotal    prometheus.Counter
	NeighborQueriesTotal prometheus.Counter

	// View metrics
	CullingVisibleNodes prometheus.Gauge
	CullingCulledNodes  prometheus.Gauge
	LodBandNodes        *prometheus.GaugeVec

	// Partition metrics
	PartitionRunsTotal     prometheus.Counter
	PartitionRunDuration   prometheus.Histogram
	PartitionCount         prometheus.Gauge
	PartitionEdgeCut       prometheus.Gauge
	PartitionModularity    prometheus.Gauge
	PartitionBalanceFactor prometheus.Gauge

	// Relayout metrics
	RelayoutDecisionsTotal *prometheus.CounterVec
	LayoutPassDuration     *prometheus.HistogramVec
}

// NewRegistry creates a registry with all engine metrics registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initSpatialMetrics()
	r.initViewMetrics()
	r.initPartitionMetrics()
	r.initLayoutMetrics()
	return r
}

// PrometheusRegistry returns the underlying registry, for exposing via
// an HTTP handler or for gathering in tests.
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.registry
}
