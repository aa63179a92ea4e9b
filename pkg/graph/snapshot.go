// Package graph holds the per-tick view of the hosted graph that the
// acceleration structures are built from: node positions, edges and the
// derived adjacency. The host refreshes a Snapshot once per layout tick;
// everything in this package is plain data with no storage behind it.
package graph

import (
	"fmt"

	"github.com/dd0wney/cluso-spatial/pkg/geometry"
)

// NodeID identifies a node. IDs are assigned by the host and are stable
// across frames.
type NodeID = uint64

// Edge is an undirected connection between two nodes.
type Edge struct {
	From NodeID
	To   NodeID
}

// ErrNonFinitePosition is returned when a position contains NaN or Inf.
// Non-finite coordinates would corrupt bounding-box and center-of-mass
// computation, so they are rejected at ingestion.
var ErrNonFinitePosition = fmt.Errorf("non-finite position")

// Snapshot is an immutable view of node positions and edges for one
// layout tick.
type Snapshot struct {
	positions map[NodeID]geometry.Vec3
	edges     []Edge
	adjacency map[NodeID][]NodeID
}

// NewSnapshot builds a snapshot from positions and edges. Positions with
// NaN or Inf components are rejected.
func NewSnapshot(positions map[NodeID]geometry.Vec3, edges []Edge) (*Snapshot, error) {
	for id, pos := range positions {
		if !pos.IsFinite() {
			return nil, fmt.Errorf("%w: node %d at (%v, %v, %v)", ErrNonFinitePosition, id, pos.X, pos.Y, pos.Z)
		}
	}

	adjacency := make(map[NodeID][]NodeID)
	for _, edge := range edges {
		adjacency[edge.From] = append(adjacency[edge.From], edge.To)
		adjacency[edge.To] = append(adjacency[edge.To], edge.From)
	}

	return &Snapshot{
		positions: positions,
		edges:     edges,
		adjacency: adjacency,
	}, nil
}

// NodeCount returns the number of nodes in the snapshot.
func (s *Snapshot) NodeCount() int {
	return len(s.positions)
}

// EdgeCount returns the number of edges in the snapshot.
func (s *Snapshot) EdgeCount() int {
	return len(s.edges)
}

// Position returns the position of a node and whether it exists.
func (s *Snapshot) Position(id NodeID) (geometry.Vec3, bool) {
	pos, ok := s.positions[id]
	return pos, ok
}

// Positions returns the full position map. Callers must treat it as
// read-only.
func (s *Snapshot) Positions() map[NodeID]geometry.Vec3 {
	return s.positions
}

// Edges returns the edge list. Callers must treat it as read-only.
func (s *Snapshot) Edges() []Edge {
	return s.edges
}

// Neighbors returns the nodes directly connected to id.
func (s *Snapshot) Neighbors(id NodeID) []NodeID {
	return s.adjacency[id]
}

// Degree returns the number of edges incident to id.
func (s *Snapshot) Degree(id NodeID) int {
	return len(s.adjacency[id])
}
