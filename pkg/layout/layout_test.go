package layout

import (
	"math"
	"testing"

	"github.com/dd0wney/cluso-spatial/pkg/geometry"
	"github.com/dd0wney/cluso-spatial/pkg/graph"
)

func testSnapshot(t *testing.T, positions map[graph.NodeID]geometry.Vec3, edges []graph.Edge) *graph.Snapshot {
	t.Helper()
	snapshot, err := graph.NewSnapshot(positions, edges)
	if err != nil {
		t.Fatalf("Failed to create snapshot: %v", err)
	}
	return snapshot
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero iterations", func(c *Config) { c.Iterations = 0 }},
		{"zero repulsion", func(c *Config) { c.RepulsionStrength = 0 }},
		{"zero spring length", func(c *Config) { c.SpringLength = 0 }},
		{"zero theta", func(c *Config) { c.Theta = 0 }},
		{"zero timestep", func(c *Config) { c.Timestep = 0 }},
		{"damping above one", func(c *Config) { c.Damping = 1.5 }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)
		if _, err := NewEngine(cfg); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

// TestComputeForces_TwoNodesRepel pushes two unconnected nodes apart.
func TestComputeForces_TwoNodesRepel(t *testing.T) {
	engine, err := NewEngine(DefaultConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	snapshot := testSnapshot(t, map[graph.NodeID]geometry.Vec3{
		1: geometry.NewVec3(0, 0, 0),
		2: geometry.NewVec3(10, 0, 0),
	}, nil)

	forces, err := engine.ComputeForces(snapshot)
	if err != nil {
		t.Fatalf("ComputeForces failed: %v", err)
	}

	if forces[1].X >= 0 {
		t.Errorf("Node 1 should be pushed in -X, got %+v", forces[1])
	}
	if forces[2].X <= 0 {
		t.Errorf("Node 2 should be pushed in +X, got %+v", forces[2])
	}
}

// TestComputeForces_StretchedSpringAttracts overrides repulsion with a
// long spring: nodes far beyond the rest length pull together.
func TestComputeForces_StretchedSpringAttracts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RepulsionStrength = 0.001
	cfg.SpringLength = 10
	engine, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	snapshot := testSnapshot(t, map[graph.NodeID]geometry.Vec3{
		1: geometry.NewVec3(0, 0, 0),
		2: geometry.NewVec3(1000, 0, 0),
	}, []graph.Edge{{From: 1, To: 2}})

	forces, err := engine.ComputeForces(snapshot)
	if err != nil {
		t.Fatalf("ComputeForces failed: %v", err)
	}

	if forces[1].X <= 0 {
		t.Errorf("Node 1 should be pulled in +X, got %+v", forces[1])
	}
	if forces[2].X >= 0 {
		t.Errorf("Node 2 should be pulled in -X, got %+v", forces[2])
	}
}

// TestRun_SpreadsClusteredNodes runs a full pass on nodes packed into a
// small cube and expects them to spread out.
func TestRun_SpreadsClusteredNodes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Iterations = 20
	engine, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	positions := map[graph.NodeID]geometry.Vec3{
		1: geometry.NewVec3(0, 0, 0),
		2: geometry.NewVec3(1, 0, 0),
		3: geometry.NewVec3(0, 1, 0),
		4: geometry.NewVec3(0, 0, 1),
	}
	snapshot := testSnapshot(t, positions, nil)

	result, err := engine.Run(snapshot)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result) != 4 {
		t.Fatalf("Expected 4 positions, got %d", len(result))
	}
	for id, pos := range result {
		if !pos.IsFinite() {
			t.Fatalf("Node %d has non-finite position %+v", id, pos)
		}
	}

	// Mean pairwise distance must grow.
	before := meanPairwiseDistance(positions)
	after := meanPairwiseDistance(result)
	if after <= before {
		t.Errorf("Expected spread: mean distance %v before, %v after", before, after)
	}

	// Input snapshot stays untouched.
	if pos, _ := snapshot.Position(1); pos != (geometry.NewVec3(0, 0, 0)) {
		t.Error("Run must not mutate the input snapshot")
	}
}

// TestRun_PinnedNodeStaysPut pins one node and checks it never moves.
func TestRun_PinnedNodeStaysPut(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Iterations = 10
	engine, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	engine.Pin(1)
	if !engine.IsPinned(1) {
		t.Fatal("Node 1 should be pinned")
	}

	anchor := geometry.NewVec3(5, 5, 5)
	snapshot := testSnapshot(t, map[graph.NodeID]geometry.Vec3{
		1: anchor,
		2: geometry.NewVec3(6, 5, 5),
		3: geometry.NewVec3(5, 6, 5),
	}, nil)

	result, err := engine.Run(snapshot)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result[1] != anchor {
		t.Errorf("Pinned node moved from %+v to %+v", anchor, result[1])
	}

	engine.Unpin(1)
	if engine.IsPinned(1) {
		t.Error("Unpin should release the node")
	}
}

func meanPairwiseDistance(positions map[graph.NodeID]geometry.Vec3) float64 {
	ids := make([]graph.NodeID, 0, len(positions))
	for id := range positions {
		ids = append(ids, id)
	}
	sum := 0.0
	pairs := 0
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			sum += positions[ids[i]].DistanceTo(positions[ids[j]])
			pairs++
		}
	}
	if pairs == 0 {
		return 0
	}
	return sum / float64(pairs)
}

func TestInitialTemperature(t *testing.T) {
	if got := initialTemperature(nil); got != 1 {
		t.Errorf("Empty positions: got %v, want 1", got)
	}
	positions := map[graph.NodeID]geometry.Vec3{1: geometry.NewVec3(1000, 0, 0)}
	if got := initialTemperature(positions); math.Abs(got-100) > 1e-9 {
		t.Errorf("Extent 1000: got %v, want 100", got)
	}
}
