package metrics

import (
	"time"
)

// RecordTreeRebuild records one Barnes-Hut rebuild.
func (r *Registry) RecordTreeRebuild(nodeCount int, duration time.Duration) {
	r.TreeRebuildsTotal.Inc()
	r.TreeRebuildDuration.Observe(duration.Seconds())
	r.TreeNodesTotal.Set(float64(nodeCount))
}

// RecordGridRebuild records one hash grid rebuild.
func (r *Registry) RecordGridRebuild(occupiedCells int, duration time.Duration) {
	r.GridRebuildsTotal.Inc()
	r.GridRebuildDuration.Observe(duration.Seconds())
	r.GridOccupiedCells.Set(float64(occupiedCells))
}

// RecordForceQueries counts force queries against the tree.
func (r *Registry) RecordForceQueries(n int) {
	r.ForceQueriesTotal.Add(float64(n))
}

// RecordNeighborQueries counts radius queries against the grid.
func (r *Registry) RecordNeighborQueries(n int) {
	r.NeighborQueriesTotal.Add(float64(n))
}

// RecordCullingPass records visible/culled counts after one culling
// pass.
func (r *Registry) RecordCullingPass(visible, culled int) {
	r.CullingVisibleNodes.Set(float64(visible))
	r.CullingCulledNodes.Set(float64(culled))
}

// RecordLodPass records per-band counts after one LOD pass.
func (r *Registry) RecordLodPass(high, medium, low, minimal, culled int) {
	r.LodBandNodes.WithLabelValues("high").Set(float64(high))
	r.LodBandNodes.WithLabelValues("medium").Set(float64(medium))
	r.LodBandNodes.WithLabelValues("low").Set(float64(low))
	r.LodBandNodes.WithLabelValues("minimal").Set(float64(minimal))
	r.LodBandNodes.WithLabelValues("culled").Set(float64(culled))
}

// RecordPartitionRun records one partitioning run and its quality.
func (r *Registry) RecordPartitionRun(count, edgeCut int, modularity, balanceFactor float64, duration time.Duration) {
	r.PartitionRunsTotal.Inc()
	r.PartitionRunDuration.Observe(duration.Seconds())
	r.PartitionCount.Set(float64(count))
	r.PartitionEdgeCut.Set(float64(edgeCut))
	r.PartitionModularity.Set(modularity)
	r.PartitionBalanceFactor.Set(balanceFactor)
}

// RecordRelayoutDecision records whether a change set triggered a full
// or partial relayout.
func (r *Registry) RecordRelayoutDecision(full bool) {
	if full {
		r.RelayoutDecisionsTotal.WithLabelValues("full").Inc()
	} else {
		r.RelayoutDecisionsTotal.WithLabelValues("partial").Inc()
	}
}

// RecordLayoutPass records the duration of one layout pass.
func (r *Registry) RecordLayoutPass(kind string, duration time.Duration) {
	r.LayoutPassDuration.WithLabelValues(kind).Observe(duration.Seconds())
}
