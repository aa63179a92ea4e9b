package partition

import (
	"fmt"
	"hash/fnv"

	"github.com/dd0wney/cluso-spatial/pkg/graph"
)

// Strategy maps node ids to partitions without looking at graph
// structure. Strategies complement the structural partitioner: they are
// O(1) per node and suit sharded storage, while breadth-first growth
// minimizes edge cut for parallel layout.
type Strategy interface {
	PartitionFor(id graph.NodeID) int
	PartitionCount() int
}

// HashStrategy assigns nodes by FNV hash of their id. Load balance is
// good regardless of id distribution.
type HashStrategy struct {
	count int
}

// NewHashStrategy creates a hash-based strategy.
func NewHashStrategy(count int) (*HashStrategy, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: partition count must be positive, got %d", ErrInvalidConfig, count)
	}
	return &HashStrategy{count: count}, nil
}

// PartitionFor returns the partition for a node.
func (s *HashStrategy) PartitionFor(id graph.NodeID) int {
	h := fnv.New64a()
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(id >> (i * 8))
	}
	h.Write(b[:])
	return int(h.Sum64() % uint64(s.count))
}

// PartitionCount returns the total number of partitions.
func (s *HashStrategy) PartitionCount() int {
	return s.count
}

// RangeStrategy assigns nodes by contiguous id ranges, which keeps ids
// allocated together in the same partition.
type RangeStrategy struct {
	count     int
	rangeSize graph.NodeID
}

// NewRangeStrategy creates a range-based strategy covering ids up to
// maxNodeID.
func NewRangeStrategy(count int, maxNodeID graph.NodeID) (*RangeStrategy, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: partition count must be positive, got %d", ErrInvalidConfig, count)
	}
	rangeSize := maxNodeID / graph.NodeID(count)
	if rangeSize == 0 {
		rangeSize = 1
	}
	return &RangeStrategy{count: count, rangeSize: rangeSize}, nil
}

// PartitionFor returns the partition for a node.
func (s *RangeStrategy) PartitionFor(id graph.NodeID) int {
	part := int(id / s.rangeSize)
	if part >= s.count {
		part = s.count - 1
	}
	return part
}

// PartitionCount returns the total number of partitions.
func (s *RangeStrategy) PartitionCount() int {
	return s.count
}

// FromResult wraps a structural partitioning result as a Strategy so
// sharding code can consume either interchangeably.
type FromResult struct {
	result *Result
}

// NewFromResult wraps a Result.
func NewFromResult(result *Result) *FromResult {
	return &FromResult{result: result}
}

// PartitionFor returns the partition for a node, or 0 for ids the result
// never saw.
func (s *FromResult) PartitionFor(id graph.NodeID) int {
	return s.result.Assignments[id]
}

// PartitionCount returns the total number of partitions.
func (s *FromResult) PartitionCount() int {
	return s.result.Metrics.PartitionCount
}
