package layout

import (
	"sync"
	"time"

	"github.com/dd0wney/cluso-spatial/pkg/geometry"
	"github.com/dd0wney/cluso-spatial/pkg/graph"
	"github.com/dd0wney/cluso-spatial/pkg/logging"
	"github.com/dd0wney/cluso-spatial/pkg/parallel"
	"github.com/dd0wney/cluso-spatial/pkg/partition"
)

// RunPartitioned lays out each partition's subgraph independently across
// the worker pool and merges the results. Edges crossing partitions are
// ignored during the pass, which is what makes partitions independent;
// callers run a periodic global pass to correct the seams. Each
// partition gets its own engine so no velocity state is shared between
// workers.
func (e *Engine) RunPartitioned(snapshot *graph.Snapshot, result *partition.Result, pool *parallel.WorkerPool) (map[graph.NodeID]geometry.Vec3, error) {
	start := time.Now()

	subgraphs := make([]*graph.Snapshot, len(result.Partitions))
	for i, members := range result.Partitions {
		sub, err := subgraph(snapshot, result, i, members)
		if err != nil {
			return nil, err
		}
		subgraphs[i] = sub
	}

	var mu sync.Mutex
	merged := make(map[graph.NodeID]geometry.Vec3, snapshot.NodeCount())
	errs := make([]error, len(subgraphs))

	forErr := pool.ForEach(len(subgraphs), func(i int) {
		worker, err := NewEngine(e.config)
		if err != nil {
			errs[i] = err
			return
		}
		for id := range e.pinned {
			worker.Pin(id)
		}

		positions, err := worker.Run(subgraphs[i])
		if err != nil {
			errs[i] = err
			return
		}

		mu.Lock()
		for id, pos := range positions {
			merged[id] = pos
		}
		mu.Unlock()
	})
	if forErr != nil {
		return nil, forErr
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	e.logger.Info("partitioned layout pass complete",
		logging.Component("layout"),
		logging.Int("partitions", len(result.Partitions)),
		logging.NodeCount(len(merged)),
		logging.Duration("duration", time.Since(start)))
	if e.metrics != nil {
		e.metrics.RecordLayoutPass("partitioned", time.Since(start))
	}
	return merged, nil
}

// subgraph extracts one partition's nodes and internal edges as a
// standalone snapshot.
func subgraph(snapshot *graph.Snapshot, result *partition.Result, index int, members []graph.NodeID) (*graph.Snapshot, error) {
	positions := make(map[graph.NodeID]geometry.Vec3, len(members))
	for _, id := range members {
		if pos, ok := snapshot.Position(id); ok {
			positions[id] = pos
		}
	}

	var edges []graph.Edge
	for _, edge := range snapshot.Edges() {
		from, fromOK := result.Assignments[edge.From]
		to, toOK := result.Assignments[edge.To]
		if fromOK && toOK && from == index && to == index {
			edges = append(edges, edge)
		}
	}
	return graph.NewSnapshot(positions, edges)
}
