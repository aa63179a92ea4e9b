package layout

import (
	"math/rand"
	"testing"

	"github.com/dd0wney/cluso-spatial/pkg/geometry"
	"github.com/dd0wney/cluso-spatial/pkg/graph"
	"github.com/dd0wney/cluso-spatial/pkg/incremental"
)

// gridSnapshot lays n nodes on a widely spaced line with chain edges.
func gridSnapshot(t *testing.T, n int) *graph.Snapshot {
	t.Helper()
	positions := make(map[graph.NodeID]geometry.Vec3, n)
	var edges []graph.Edge
	for i := 0; i < n; i++ {
		id := graph.NodeID(i + 1)
		positions[id] = geometry.NewVec3(float64(i)*100, 0, 0)
		if i > 0 {
			edges = append(edges, graph.Edge{From: id - 1, To: id})
		}
	}
	return testSnapshot(t, positions, edges)
}

// TestLocalizedPass_OnlyMovesRegion perturbs one node and checks that
// nodes outside the propagation region keep their exact positions.
func TestLocalizedPass_OnlyMovesRegion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Iterations = 5
	engine, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	snapshot := gridSnapshot(t, 20)
	affected := map[graph.NodeID]struct{}{10: {}}

	result, err := engine.LocalizedPass(snapshot, affected, 2)
	if err != nil {
		t.Fatalf("LocalizedPass failed: %v", err)
	}

	// Region is node 10 plus 2 hops: 8..12. Everything else is frozen.
	for id := graph.NodeID(1); id <= 20; id++ {
		original, _ := snapshot.Position(id)
		inRegion := id >= 8 && id <= 12
		if !inRegion && result[id] != original {
			t.Errorf("Node %d outside the region moved from %+v to %+v", id, original, result[id])
		}
	}
}

func TestLocalizedPass_RespectsPinsInExpansion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Iterations = 3
	engine, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	engine.Pin(11)

	snapshot := gridSnapshot(t, 20)
	region := engine.expandRegion(snapshot, map[graph.NodeID]struct{}{10: {}}, 3)

	if _, ok := region[11]; ok {
		t.Error("Pinned node 11 should not join the region")
	}
	// Expansion must not pass through the pinned node either.
	if _, ok := region[12]; ok {
		t.Error("Nodes behind the pinned node should stay outside the region")
	}
	if _, ok := region[7]; !ok {
		t.Error("Node 7 is 3 hops away on the open side and should be inside")
	}
}

// TestRelayout_FullVersusLocalized drives the decision through the
// change tracker: few changes patch locally, a forced full relayout
// rebuilds everything. Both paths reset the tracker.
func TestRelayout_FullVersusLocalized(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Iterations = 3
	engine, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	snapshot := gridSnapshot(t, 50)

	tracker, err := incremental.NewChangeTracker(incremental.DefaultConfig())
	if err != nil {
		t.Fatalf("Failed to create tracker: %v", err)
	}
	tracker.NodeMoved(25, []graph.NodeID{24, 26})

	result, err := engine.Relayout(snapshot, tracker, 1)
	if err != nil {
		t.Fatalf("Relayout failed: %v", err)
	}
	if len(result) != 50 {
		t.Fatalf("Expected 50 positions, got %d", len(result))
	}
	if pos, _ := snapshot.Position(1); result[1] != pos {
		t.Error("Localized relayout should leave distant nodes untouched")
	}
	if tracker.HasChanges() {
		t.Error("Relayout should reset the tracker")
	}

	tracker.RequireFullRelayout()
	if _, err := engine.Relayout(snapshot, tracker, 1); err != nil {
		t.Fatalf("Full relayout failed: %v", err)
	}
	if tracker.HasChanges() || tracker.ShouldFullRelayout(snapshot.NodeCount()) {
		t.Error("Full relayout should reset the tracker")
	}
}

// TestPlaceNewNodes_NeighborCentroid places a new node near its placed
// neighbors and scatters isolated nodes.
func TestPlaceNewNodes_NeighborCentroid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpringLength = 10
	engine, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	positions := map[graph.NodeID]geometry.Vec3{
		1: geometry.NewVec3(0, 0, 0),
		2: geometry.NewVec3(100, 0, 0),
	}
	edges := []graph.Edge{
		{From: 3, To: 1},
		{From: 3, To: 2},
	}
	snapshot := testSnapshot(t, positions, edges)

	rng := rand.New(rand.NewSource(42))
	placed := engine.PlaceNewNodes(snapshot, map[graph.NodeID]struct{}{3: {}, 4: {}}, rng)

	pos3, ok := placed[3]
	if !ok {
		t.Fatal("Node 3 should have been placed")
	}
	// Centroid of (0,0,0) and (100,0,0) is (50,0,0); jitter stays within
	// half a spring length per axis.
	centroid := geometry.NewVec3(50, 0, 0)
	if pos3.DistanceTo(centroid) > cfg.SpringLength {
		t.Errorf("Node 3 placed at %+v, too far from centroid %+v", pos3, centroid)
	}

	if _, ok := placed[4]; !ok {
		t.Error("Isolated node 4 should still get a position")
	}

	// Already-placed nodes are skipped.
	placed = engine.PlaceNewNodes(snapshot, map[graph.NodeID]struct{}{1: {}}, rng)
	if _, ok := placed[1]; ok {
		t.Error("Node 1 already has a position and should be skipped")
	}
}
