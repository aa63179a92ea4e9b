// Package partition splits a graph's node set into balanced clusters with
// bounded size so disjoint subgraphs can be laid out in parallel or
// sharded across storage. Quality is reported as edge cut, modularity and
// balance factor.
package partition

import (
	"fmt"

	"github.com/dd0wney/cluso-spatial/pkg/graph"
)

// ErrInvalidConfig is returned for partitioning configuration that cannot
// work.
var ErrInvalidConfig = fmt.Errorf("invalid partition configuration")

// Algorithm selects the partitioning algorithm.
type Algorithm int

const (
	// BreadthFirst grows partitions by breadth-first traversal from
	// evenly spaced seed nodes. It is the baseline algorithm and is
	// deterministic for a fixed input ordering.
	BreadthFirst Algorithm = iota
)

// String returns the algorithm name.
func (a Algorithm) String() string {
	switch a {
	case BreadthFirst:
		return "breadth-first"
	default:
		return "unknown"
	}
}

// Config holds partitioning parameters.
type Config struct {
	// TargetPartitions is the number of partitions to produce. Zero
	// derives the count from MaxSize.
	TargetPartitions int
	// MinSize is the smallest acceptable partition before growth may
	// stop early.
	MinSize int
	// MaxSize caps how many nodes breadth-first growth puts into one
	// partition.
	MaxSize int
	// Algorithm picks the partitioning strategy.
	Algorithm Algorithm
}

// DefaultConfig returns a configuration suitable for graphs of a few
// thousand nodes.
func DefaultConfig() Config {
	return Config{
		TargetPartitions: 0,
		MinSize:          10,
		MaxSize:          1000,
		Algorithm:        BreadthFirst,
	}
}

// Metrics reports the quality of a partitioning.
type Metrics struct {
	// PartitionCount is the number of partitions produced.
	PartitionCount int
	// AverageSize is the mean partition size in nodes.
	AverageSize float64
	// TotalEdgeCut counts edges whose endpoints land in different
	// partitions.
	TotalEdgeCut int
	// Modularity is the standard quality score: observed intra-partition
	// edge density minus the density expected under random rewiring.
	Modularity float64
	// BalanceFactor is the largest partition size divided by the mean
	// size; 1.0 is perfect balance.
	BalanceFactor float64
}

// Result is a total, exactly-once assignment of every input node to a
// partition index. It is an immutable value owned by the caller.
type Result struct {
	// Assignments maps every input node to its partition in [0, count).
	Assignments map[graph.NodeID]int
	// Partitions lists the members of each partition in assignment
	// order.
	Partitions [][]graph.NodeID
	// Metrics reports partitioning quality.
	Metrics Metrics
}

// Partitioner splits node/edge sets according to its configuration.
type Partitioner struct {
	config Config
}

// NewPartitioner validates the configuration and returns a partitioner.
func NewPartitioner(config Config) (*Partitioner, error) {
	if config.MaxSize <= 0 {
		return nil, fmt.Errorf("%w: max size must be positive, got %d", ErrInvalidConfig, config.MaxSize)
	}
	if config.MinSize < 0 {
		return nil, fmt.Errorf("%w: min size must be non-negative, got %d", ErrInvalidConfig, config.MinSize)
	}
	if config.MinSize > config.MaxSize {
		return nil, fmt.Errorf("%w: min size %d exceeds max size %d", ErrInvalidConfig, config.MinSize, config.MaxSize)
	}
	if config.TargetPartitions < 0 {
		return nil, fmt.Errorf("%w: target partitions must be non-negative, got %d", ErrInvalidConfig, config.TargetPartitions)
	}
	return &Partitioner{config: config}, nil
}

// Config returns the partitioner's configuration.
func (p *Partitioner) Config() Config {
	return p.config
}

// Partition assigns every node to exactly one partition. Output is
// deterministic for identical input ordering and configuration.
func (p *Partitioner) Partition(nodes []graph.NodeID, edges []graph.Edge) (*Result, error) {
	if len(nodes) == 0 {
		return &Result{
			Assignments: map[graph.NodeID]int{},
			Partitions:  [][]graph.NodeID{},
			Metrics:     Metrics{BalanceFactor: 1},
		}, nil
	}

	switch p.config.Algorithm {
	case BreadthFirst:
		return p.bfsPartition(nodes, edges), nil
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %d", ErrInvalidConfig, p.config.Algorithm)
	}
}

// partitionCount derives how many partitions to grow.
func (p *Partitioner) partitionCount(nodeCount int) int {
	k := p.config.TargetPartitions
	if k == 0 {
		k = nodeCount / p.config.MaxSize
	}
	if k < 1 {
		k = 1
	}
	if k > nodeCount {
		k = nodeCount
	}
	return k
}

// bfsPartition seeds k partitions at evenly spaced indices of the input
// ordering and grows them round-robin by breadth-first traversal over
// unassigned neighbors, respecting MaxSize. Nodes unreachable from any
// seed are handed to the currently-smallest partition once growth
// stalls.
func (p *Partitioner) bfsPartition(nodes []graph.NodeID, edges []graph.Edge) *Result {
	adjacency := buildAdjacency(edges)
	k := p.partitionCount(len(nodes))

	// Edges may mention nodes outside the input set, for example stale
	// edges left behind by a removal. Traversal stays inside the set.
	members := make(map[graph.NodeID]struct{}, len(nodes))
	for _, id := range nodes {
		members[id] = struct{}{}
	}

	assignments := make(map[graph.NodeID]int, len(nodes))
	partitions := make([][]graph.NodeID, k)
	queues := make([][]graph.NodeID, k)

	// Seeds spread across the input ordering.
	for i := 0; i < k; i++ {
		seed := nodes[i*len(nodes)/k]
		queues[i] = append(queues[i], seed)
	}

	assigned := func(id graph.NodeID) bool {
		_, ok := assignments[id]
		return ok
	}

	// Round-robin growth keeps partitions near the same size instead of
	// letting the first seed swallow the whole graph.
	for {
		grew := false
		for part := 0; part < k; part++ {
			if len(partitions[part]) >= p.config.MaxSize {
				queues[part] = nil
				continue
			}
			for len(queues[part]) > 0 {
				id := queues[part][0]
				queues[part] = queues[part][1:]
				if assigned(id) {
					continue
				}
				assignments[id] = part
				partitions[part] = append(partitions[part], id)
				for _, neighbor := range adjacency[id] {
					if _, ok := members[neighbor]; !ok {
						continue
					}
					if !assigned(neighbor) {
						queues[part] = append(queues[part], neighbor)
					}
				}
				grew = true
				break
			}
		}
		if !grew {
			break
		}
	}

	// Growth stalled: place stragglers in the currently-smallest
	// partition, preserving input order.
	for _, id := range nodes {
		if assigned(id) {
			continue
		}
		smallest := 0
		for part := 1; part < k; part++ {
			if len(partitions[part]) < len(partitions[smallest]) {
				smallest = part
			}
		}
		assignments[id] = smallest
		partitions[smallest] = append(partitions[smallest], id)
	}

	return &Result{
		Assignments: assignments,
		Partitions:  partitions,
		Metrics:     computeMetrics(assignments, partitions, edges),
	}
}

// buildAdjacency returns an undirected adjacency list preserving input
// edge order.
func buildAdjacency(edges []graph.Edge) map[graph.NodeID][]graph.NodeID {
	adjacency := make(map[graph.NodeID][]graph.NodeID)
	for _, e := range edges {
		adjacency[e.From] = append(adjacency[e.From], e.To)
		adjacency[e.To] = append(adjacency[e.To], e.From)
	}
	return adjacency
}

// computeMetrics derives quality metrics after assignment. Modularity is
// the Newman definition over undirected edges:
//
//	Q = sum_c (e_c/m - (d_c/2m)^2)
//
// where e_c is the intra-partition edge count, d_c the degree sum of the
// partition and m the total edge count.
func computeMetrics(assignments map[graph.NodeID]int, partitions [][]graph.NodeID, edges []graph.Edge) Metrics {
	count := len(partitions)
	metrics := Metrics{PartitionCount: count, BalanceFactor: 1}
	if count == 0 {
		return metrics
	}

	total := 0
	maxSize := 0
	for _, part := range partitions {
		total += len(part)
		if len(part) > maxSize {
			maxSize = len(part)
		}
	}
	metrics.AverageSize = float64(total) / float64(count)
	if metrics.AverageSize > 0 {
		metrics.BalanceFactor = float64(maxSize) / metrics.AverageSize
	}

	internal := make([]int, count)
	degrees := make([]int, count)
	for _, e := range edges {
		from, fromOK := assignments[e.From]
		to, toOK := assignments[e.To]
		if !fromOK || !toOK {
			continue
		}
		degrees[from]++
		degrees[to]++
		if from == to {
			internal[from]++
		} else {
			metrics.TotalEdgeCut++
		}
	}

	m := float64(len(edges))
	if m > 0 {
		for part := 0; part < count; part++ {
			observed := float64(internal[part]) / m
			expected := float64(degrees[part]) / (2 * m)
			metrics.Modularity += observed - expected*expected
		}
	}
	return metrics
}
