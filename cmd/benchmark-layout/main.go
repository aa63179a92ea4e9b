package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/dd0wney/cluso-spatial/pkg/config"
	"github.com/dd0wney/cluso-spatial/pkg/geometry"
	"github.com/dd0wney/cluso-spatial/pkg/graph"
	"github.com/dd0wney/cluso-spatial/pkg/layout"
	"github.com/dd0wney/cluso-spatial/pkg/logging"
	"github.com/dd0wney/cluso-spatial/pkg/metrics"
	"github.com/dd0wney/cluso-spatial/pkg/parallel"
	"github.com/dd0wney/cluso-spatial/pkg/partition"
	"github.com/dd0wney/cluso-spatial/pkg/spatial"
)

func main() {
	nodes := flag.Int("nodes", 10000, "Number of nodes to generate")
	edges := flag.Int("edges", 30000, "Number of edges to generate")
	seed := flag.Int64("seed", 42, "Random seed")
	configPath := flag.String("config", "", "Optional engine config YAML")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	fmt.Printf("🔥 Cluso Spatial - Layout Benchmark\n")
	fmt.Printf("===================================\n\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Nodes: %d\n", *nodes)
	fmt.Printf("  Edges: %d\n", *edges)
	fmt.Printf("  Theta: %.2f\n\n", cfg.Spatial.Theta)

	rng := rand.New(rand.NewSource(*seed))
	snapshot := randomGraph(rng, *nodes, *edges)
	logger := logging.NewDefaultLogger()
	registry := metrics.NewRegistry()

	// Brute-force pairwise repulsion for comparison.
	fmt.Printf("⚖️  Brute-force O(n²) force pass...\n")
	start := time.Now()
	bruteForcePass(snapshot, cfg.Layout.RepulsionStrength)
	bruteDuration := time.Since(start)
	fmt.Printf("  Done in %v\n\n", bruteDuration)

	fmt.Printf("🌳 Barnes-Hut O(n log n) force pass...\n")
	start = time.Now()
	tree, err := spatial.NewBarnesHutTree(snapshot.Positions(), cfg.Spatial.Theta)
	if err != nil {
		log.Fatalf("Failed to build tree: %v", err)
	}
	registry.RecordTreeRebuild(snapshot.NodeCount(), time.Since(start))
	for id, pos := range snapshot.Positions() {
		tree.CalculateForce(id, pos, cfg.Layout.RepulsionStrength)
	}
	registry.RecordForceQueries(snapshot.NodeCount())
	bhDuration := time.Since(start)
	fmt.Printf("  Done in %v (%.1fx speedup)\n\n", bhDuration, float64(bruteDuration)/float64(bhDuration))

	fmt.Printf("🧲 Full layout pass (%d iterations)...\n", cfg.Layout.Iterations)
	engine, err := layout.NewEngine(layout.Config{
		Iterations:        cfg.Layout.Iterations,
		RepulsionStrength: cfg.Layout.RepulsionStrength,
		SpringLength:      cfg.Layout.SpringLength,
		Theta:             cfg.Spatial.Theta,
		Timestep:          0.1,
		Damping:           0.95,
	}, layout.WithLogger(logger), layout.WithMetrics(registry))
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	start = time.Now()
	if _, err := engine.Run(snapshot); err != nil {
		log.Fatalf("Layout failed: %v", err)
	}
	fmt.Printf("  Done in %v\n\n", time.Since(start))

	fmt.Printf("✂️  Partitioning + parallel layout...\n")
	partitioner, err := partition.NewPartitioner(partition.Config{
		TargetPartitions: cfg.Partition.TargetPartitions,
		MinSize:          cfg.Partition.MinSize,
		MaxSize:          cfg.Partition.MaxSize,
		Algorithm:        partition.BreadthFirst,
	})
	if err != nil {
		log.Fatalf("Failed to create partitioner: %v", err)
	}

	nodeIDs := make([]graph.NodeID, 0, snapshot.NodeCount())
	for id := graph.NodeID(1); id <= graph.NodeID(*nodes); id++ {
		nodeIDs = append(nodeIDs, id)
	}
	start = time.Now()
	result, err := partitioner.Partition(nodeIDs, snapshot.Edges())
	if err != nil {
		log.Fatalf("Partitioning failed: %v", err)
	}
	registry.RecordPartitionRun(result.Metrics.PartitionCount, result.Metrics.TotalEdgeCut,
		result.Metrics.Modularity, result.Metrics.BalanceFactor, time.Since(start))
	fmt.Printf("  Partitions: %d  edge cut: %d  modularity: %.3f  balance: %.2f (%v)\n",
		result.Metrics.PartitionCount, result.Metrics.TotalEdgeCut,
		result.Metrics.Modularity, result.Metrics.BalanceFactor, time.Since(start))

	pool, err := parallel.NewWorkerPool(cfg.Layout.Workers)
	if err != nil {
		log.Fatalf("Failed to create worker pool: %v", err)
	}
	defer pool.Close()

	start = time.Now()
	if _, err := engine.RunPartitioned(snapshot, result, pool); err != nil {
		log.Fatalf("Partitioned layout failed: %v", err)
	}
	fmt.Printf("  Parallel layout (%d workers): %v\n\n", pool.Workers(), time.Since(start))

	fmt.Printf("✅ Benchmark complete\n")
}

// randomGraph builds a snapshot with uniformly scattered positions and
// random edges.
func randomGraph(rng *rand.Rand, nodeCount, edgeCount int) *graph.Snapshot {
	positions := make(map[graph.NodeID]geometry.Vec3, nodeCount)
	for id := graph.NodeID(1); id <= graph.NodeID(nodeCount); id++ {
		positions[id] = geometry.NewVec3(
			rng.Float64()*2000-1000,
			rng.Float64()*2000-1000,
			rng.Float64()*2000-1000,
		)
	}

	edges := make([]graph.Edge, 0, edgeCount)
	for i := 0; i < edgeCount; i++ {
		from := graph.NodeID(rng.Intn(nodeCount) + 1)
		to := graph.NodeID(rng.Intn(nodeCount) + 1)
		if from != to {
			edges = append(edges, graph.Edge{From: from, To: to})
		}
	}

	snapshot, err := graph.NewSnapshot(positions, edges)
	if err != nil {
		log.Fatalf("Failed to build snapshot: %v", err)
	}
	return snapshot
}

// bruteForcePass computes exact pairwise repulsion for every node.
func bruteForcePass(snapshot *graph.Snapshot, strength float64) {
	positions := snapshot.Positions()
	for id, pos := range positions {
		force := geometry.Zero
		for otherID, otherPos := range positions {
			if id == otherID {
				continue
			}
			delta := pos.Sub(otherPos)
			distance := delta.Length()
			if distance < 0.01 {
				distance = 0.01
			}
			force = force.Add(delta.Normalize().Scale(strength / (distance * distance)))
		}
		_ = force
	}
}
