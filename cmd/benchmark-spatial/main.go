package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/dd0wney/cluso-spatial/pkg/culling"
	"github.com/dd0wney/cluso-spatial/pkg/geometry"
	"github.com/dd0wney/cluso-spatial/pkg/graph"
	"github.com/dd0wney/cluso-spatial/pkg/lod"
	"github.com/dd0wney/cluso-spatial/pkg/metrics"
	"github.com/dd0wney/cluso-spatial/pkg/spatial"
)

func main() {
	nodes := flag.Int("nodes", 100000, "Number of nodes to scatter")
	queries := flag.Int("queries", 1000, "Number of neighbor queries")
	cellSize := flag.Float64("cell-size", 50, "Grid cell size")
	radius := flag.Float64("radius", 100, "Neighbor query radius")
	seed := flag.Int64("seed", 42, "Random seed")
	flag.Parse()

	fmt.Printf("🔥 Cluso Spatial - View & Query Benchmark\n")
	fmt.Printf("=========================================\n\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Nodes: %d\n", *nodes)
	fmt.Printf("  Queries: %d\n", *queries)
	fmt.Printf("  Cell size: %.1f  radius: %.1f\n\n", *cellSize, *radius)

	rng := rand.New(rand.NewSource(*seed))
	registry := metrics.NewRegistry()

	positions := make(map[graph.NodeID]geometry.Vec3, *nodes)
	for id := graph.NodeID(1); id <= graph.NodeID(*nodes); id++ {
		positions[id] = geometry.NewVec3(
			rng.Float64()*4000-2000,
			rng.Float64()*4000-2000,
			rng.Float64()*4000-2000,
		)
	}

	fmt.Printf("🧮 Building hash grid...\n")
	grid, err := spatial.NewHashGrid(*cellSize)
	if err != nil {
		log.Fatalf("Failed to create grid: %v", err)
	}
	start := time.Now()
	if err := grid.Build(positions); err != nil {
		log.Fatalf("Failed to build grid: %v", err)
	}
	registry.RecordGridRebuild(grid.CellCount(), time.Since(start))
	fmt.Printf("  %d occupied cells in %v\n\n", grid.CellCount(), time.Since(start))

	fmt.Printf("🔍 Running %d neighbor queries...\n", *queries)
	start = time.Now()
	found := 0
	for i := 0; i < *queries; i++ {
		point := geometry.NewVec3(
			rng.Float64()*4000-2000,
			rng.Float64()*4000-2000,
			rng.Float64()*4000-2000,
		)
		found += len(grid.FindNeighbors(point, *radius))
	}
	registry.RecordNeighborQueries(*queries)
	fmt.Printf("  %d candidates in %v (%.1f per query)\n\n",
		found, time.Since(start), float64(found)/float64(*queries))

	fmt.Printf("📷 Frustum culling pass...\n")
	frustum, err := culling.NewViewFrustum(culling.Camera{
		Position: geometry.NewVec3(0, 0, 2500),
		Forward:  geometry.NewVec3(0, 0, -1),
		Up:       geometry.NewVec3(0, 1, 0),
		FOV:      math.Pi / 2,
		Aspect:   16.0 / 9.0,
		Near:     0.1,
		Far:      6000,
	})
	if err != nil {
		log.Fatalf("Failed to create frustum: %v", err)
	}
	start = time.Now()
	_, cullStats := frustum.CullNodes(positions, 10)
	registry.RecordCullingPass(cullStats.VisibleNodes, cullStats.CulledNodes)
	fmt.Printf("  visible: %d  culled: %d in %v\n\n",
		cullStats.VisibleNodes, cullStats.CulledNodes, time.Since(start))

	fmt.Printf("🎚️  LOD selection pass...\n")
	selector, err := lod.NewSelector(lod.Config{
		CameraPosition:      frustum.Camera().Position,
		Distances:           [4]float64{500, 1500, 3000, 5000},
		UseSquaredDistances: true,
		Hysteresis:          1.1,
	})
	if err != nil {
		log.Fatalf("Failed to create selector: %v", err)
	}
	levels := make(map[graph.NodeID]lod.Level, len(positions))
	start = time.Now()
	lodStats := selector.UpdateAll(positions, levels)
	registry.RecordLodPass(lodStats.High, lodStats.Medium, lodStats.Low, lodStats.Minimal, lodStats.Culled)
	fmt.Printf("  high: %d  medium: %d  low: %d  minimal: %d  culled: %d in %v\n\n",
		lodStats.High, lodStats.Medium, lodStats.Low, lodStats.Minimal, lodStats.Culled, time.Since(start))

	fmt.Printf("✅ Benchmark complete\n")
}
