package layout

import (
	"math/rand"
	"time"

	"github.com/dd0wney/cluso-spatial/pkg/geometry"
	"github.com/dd0wney/cluso-spatial/pkg/graph"
	"github.com/dd0wney/cluso-spatial/pkg/incremental"
	"github.com/dd0wney/cluso-spatial/pkg/logging"
	"github.com/dd0wney/cluso-spatial/pkg/pools"
	"github.com/dd0wney/cluso-spatial/pkg/spatial"
)

// movementEpsilon stops a localized pass early once the region has
// settled.
const movementEpsilon = 0.5

// Relayout consumes the change tracker and runs either a full pass or a
// localized pass over the affected region, then resets the tracker. The
// full-vs-partial decision is the tracker's.
func (e *Engine) Relayout(snapshot *graph.Snapshot, tracker *incremental.ChangeTracker, propagationDistance int) (map[graph.NodeID]geometry.Vec3, error) {
	full := tracker.ShouldFullRelayout(snapshot.NodeCount())
	if e.metrics != nil {
		e.metrics.RecordRelayoutDecision(full)
	}

	var positions map[graph.NodeID]geometry.Vec3
	var err error
	if full {
		positions, err = e.Run(snapshot)
	} else {
		positions, err = e.LocalizedPass(snapshot, tracker.AffectedNodes(), propagationDistance)
	}
	if err != nil {
		return nil, err
	}
	tracker.Reset()
	return positions, nil
}

// LocalizedPass moves only the affected nodes and their neighborhood up
// to propagationDistance hops away. Repulsion still comes from the whole
// graph through the spatial tree, so the region settles into the global
// layout instead of drifting.
func (e *Engine) LocalizedPass(snapshot *graph.Snapshot, affected map[graph.NodeID]struct{}, propagationDistance int) (map[graph.NodeID]geometry.Vec3, error) {
	start := time.Now()

	positions := clonePositions(snapshot.Positions())
	region := e.expandRegion(snapshot, affected, propagationDistance)

	for iter := 0; iter < e.config.Iterations; iter++ {
		working, err := graph.NewSnapshot(positions, snapshot.Edges())
		if err != nil {
			return nil, err
		}
		tree, err := spatial.NewBarnesHutTree(positions, e.config.Theta)
		if err != nil {
			return nil, err
		}

		forces := make(map[graph.NodeID]geometry.Vec3, len(region))
		for id := range region {
			pos, ok := positions[id]
			if !ok {
				continue
			}
			forces[id] = e.nodeForce(tree, working, id, pos)
		}

		if e.integrate(positions, forces, initialTemperature(positions)) < movementEpsilon {
			break
		}
	}

	e.logger.Debug("localized pass complete",
		logging.Component("layout"),
		logging.NodeCount(len(region)),
		logging.Duration("duration", time.Since(start)))
	if e.metrics != nil {
		e.metrics.RecordLayoutPass("localized", time.Since(start))
	}
	return positions, nil
}

// expandRegion grows the affected set outward by breadth-first
// traversal, excluding pinned nodes from the expansion.
func (e *Engine) expandRegion(snapshot *graph.Snapshot, affected map[graph.NodeID]struct{}, propagationDistance int) map[graph.NodeID]struct{} {
	region := make(map[graph.NodeID]struct{}, len(affected))
	frontier := pools.GetIDs(len(affected))

	for id := range affected {
		region[id] = struct{}{}
		frontier = append(frontier, id)
	}

	for hop := 0; hop < propagationDistance && len(frontier) > 0; hop++ {
		next := pools.GetIDs(len(frontier))
		for _, id := range frontier {
			for _, neighbor := range snapshot.Neighbors(id) {
				if _, seen := region[neighbor]; seen {
					continue
				}
				if e.IsPinned(neighbor) {
					continue
				}
				region[neighbor] = struct{}{}
				next = append(next, neighbor)
			}
		}
		pools.PutIDs(frontier)
		frontier = next
	}
	pools.PutIDs(frontier)
	return region
}

// PlaceNewNodes gives freshly added nodes an initial position near the
// centroid of their already-placed neighbors, with a small jitter so
// they do not stack; nodes with no placed neighbors scatter across the
// layout volume.
func (e *Engine) PlaceNewNodes(snapshot *graph.Snapshot, added map[graph.NodeID]struct{}, rng *rand.Rand) map[graph.NodeID]geometry.Vec3 {
	placed := make(map[graph.NodeID]geometry.Vec3, len(added))
	for id := range added {
		if _, exists := snapshot.Position(id); exists {
			continue
		}

		centroid := geometry.Zero
		count := 0
		for _, neighbor := range snapshot.Neighbors(id) {
			if pos, ok := snapshot.Position(neighbor); ok {
				centroid = centroid.Add(pos)
				count++
			}
		}

		if count > 0 {
			centroid = centroid.Scale(1 / float64(count))
			placed[id] = centroid.Add(geometry.NewVec3(
				(rng.Float64()-0.5)*e.config.SpringLength,
				(rng.Float64()-0.5)*e.config.SpringLength,
				(rng.Float64()-0.5)*e.config.SpringLength,
			))
			continue
		}

		scale := e.config.SpringLength * 10
		placed[id] = geometry.NewVec3(
			(rng.Float64()-0.5)*scale,
			(rng.Float64()-0.5)*scale,
			(rng.Float64()-0.5)*scale,
		)
	}
	return placed
}
