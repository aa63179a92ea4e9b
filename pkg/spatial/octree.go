// Package spatial provides the acceleration structures used by the layout
// engine: a Barnes-Hut octree for O(n log n) approximate long-range
// repulsion, and a uniform hash grid for radius-neighbor queries. Both are
// rebuilt wholesale from a position snapshot; a built structure is an
// immutable snapshot and is safe for concurrent read-only queries.
package spatial

import (
	"fmt"

	"github.com/dd0wney/cluso-spatial/pkg/geometry"
	"github.com/dd0wney/cluso-spatial/pkg/graph"
)

// ErrInvalidConfig is returned when a structure is constructed with an
// invalid parameter. Configuration is rejected at construction, never
// clamped.
var ErrInvalidConfig = fmt.Errorf("invalid configuration")

// minForceDistance floors the distance used in force calculations to
// avoid singularities when two nodes (nearly) coincide.
const minForceDistance = 0.01

// maxTreeDepth bounds octant subdivision so coincident points cannot
// recurse forever. Past this depth a new point is merged into the
// occupying leaf as extra mass.
const maxTreeDepth = 32

// BarnesHutTree approximates long-range repulsive forces by treating
// distant clusters of nodes as single point masses. Accuracy is governed
// by theta: a subtree is collapsed to its center of mass when
// boundingBoxSize/distance < theta, so lower values are more accurate and
// slower. The tree is always rebuilt from scratch, never patched.
type BarnesHutTree struct {
	root  *bhNode
	theta float64
}

// bhNode is one tree node, either a leaf holding a single graph node or
// an internal node with up to eight children. Internal bounds contain
// every descendant leaf position; centerOfMass/totalMass are the
// mass-weighted aggregate of descendants, filled in bottom-up after all
// insertions.
type bhNode struct {
	leaf bool

	// Leaf fields.
	nodeID   graph.NodeID
	position geometry.Vec3
	mass     float64

	// Internal fields.
	centerOfMass geometry.Vec3
	totalMass    float64
	bounds       geometry.AABB
	children     [8]*bhNode
}

// NewBarnesHutTree builds a tree over the given positions. All nodes get
// unit mass. Theta must be positive; positions must be finite; ids must
// be unique (duplicates are a caller-contract violation). An empty
// position map yields a valid tree whose every force query returns zero.
func NewBarnesHutTree(positions map[graph.NodeID]geometry.Vec3, theta float64) (*BarnesHutTree, error) {
	if theta <= 0 {
		return nil, fmt.Errorf("%w: theta must be positive, got %v", ErrInvalidConfig, theta)
	}

	if len(positions) == 0 {
		root := &bhNode{
			bounds: geometry.NewAABB(geometry.Zero, geometry.NewVec3(1, 1, 1)),
		}
		return &BarnesHutTree{root: root, theta: theta}, nil
	}

	bounds, err := computeBounds(positions)
	if err != nil {
		return nil, err
	}

	root := &bhNode{bounds: bounds}
	for id, pos := range positions {
		root.insert(id, pos, 1.0, 0)
	}
	root.computeMass()

	return &BarnesHutTree{root: root, theta: theta}, nil
}

// Theta returns the accuracy parameter the tree was built with.
func (t *BarnesHutTree) Theta() float64 {
	return t.theta
}

// computeBounds returns the axis-aligned bounding box of all positions,
// padded by 1% of its diagonal so coincident points never produce a
// degenerate zero-size box.
func computeBounds(positions map[graph.NodeID]geometry.Vec3) (geometry.AABB, error) {
	first := true
	var min, max geometry.Vec3
	for id, pos := range positions {
		if !pos.IsFinite() {
			return geometry.AABB{}, fmt.Errorf("%w: node %d", graph.ErrNonFinitePosition, id)
		}
		if first {
			min, max = pos, pos
			first = false
			continue
		}
		if pos.X < min.X {
			min.X = pos.X
		}
		if pos.Y < min.Y {
			min.Y = pos.Y
		}
		if pos.Z < min.Z {
			min.Z = pos.Z
		}
		if pos.X > max.X {
			max.X = pos.X
		}
		if pos.Y > max.Y {
			max.Y = pos.Y
		}
		if pos.Z > max.Z {
			max.Z = pos.Z
		}
	}

	padding := max.Sub(min).Length() * 0.01
	if padding == 0 {
		padding = 0.5
	}
	pad := geometry.NewVec3(padding, padding, padding)
	return geometry.NewAABB(min.Sub(pad), max.Add(pad)), nil
}

// insert places a point into the subtree rooted at n. An empty octant
// becomes a new leaf; inserting into an occupied leaf converts it to an
// internal node, re-inserting the dislodged leaf first.
func (n *bhNode) insert(id graph.NodeID, pos geometry.Vec3, mass float64, depth int) {
	if n.leaf {
		if depth >= maxTreeDepth {
			// Coincident points; fold into the occupying leaf.
			n.mass += mass
			return
		}

		oldID, oldPos, oldMass := n.nodeID, n.position, n.mass
		*n = bhNode{bounds: n.bounds}

		octant := n.bounds.Octant(oldPos)
		n.children[octant] = &bhNode{
			leaf:     true,
			nodeID:   oldID,
			position: oldPos,
			mass:     oldMass,
			bounds:   n.bounds.ChildBounds(octant),
		}
		n.insert(id, pos, mass, depth)
		return
	}

	octant := n.bounds.Octant(pos)
	if child := n.children[octant]; child != nil {
		child.insert(id, pos, mass, depth+1)
		return
	}
	n.children[octant] = &bhNode{
		leaf:     true,
		nodeID:   id,
		position: pos,
		mass:     mass,
		bounds:   n.bounds.ChildBounds(octant),
	}
}

// computeMass fills in totalMass and centerOfMass bottom-up. A childless
// internal node keeps total mass 0 and a zero center.
func (n *bhNode) computeMass() (geometry.Vec3, float64) {
	if n.leaf {
		return n.position, n.mass
	}

	com := geometry.Zero
	massSum := 0.0
	for _, child := range n.children {
		if child == nil {
			continue
		}
		childCOM, childMass := child.computeMass()
		com = com.Add(childCOM.Scale(childMass))
		massSum += childMass
	}
	if massSum > 0 {
		com = com.Scale(1 / massSum)
	}

	n.centerOfMass = com
	n.totalMass = massSum
	return com, massSum
}

// CalculateForce returns the approximate net repulsive force on a node at
// the given position. Strength scales the inverse-square contribution of
// every body. A leaf whose id equals targetID contributes nothing, so a
// tracked node feels no self-force; querying an id the tree never saw is
// fine and simply sums over all bodies.
func (t *BarnesHutTree) CalculateForce(targetID graph.NodeID, target geometry.Vec3, strength float64) geometry.Vec3 {
	return t.root.force(targetID, target, strength, t.theta)
}

func (n *bhNode) force(targetID graph.NodeID, target geometry.Vec3, strength, theta float64) geometry.Vec3 {
	if n.leaf {
		if n.nodeID == targetID {
			return geometry.Zero
		}
		delta := target.Sub(n.position)
		distance := delta.Length()
		if distance < minForceDistance {
			distance = minForceDistance
		}
		magnitude := strength * n.mass / (distance * distance)
		return delta.Normalize().Scale(magnitude)
	}

	delta := target.Sub(n.centerOfMass)
	distance := delta.Length()
	if distance > 0 && n.bounds.Size()/distance < theta {
		// Far enough away: treat the whole subtree as one point mass.
		magnitude := strength * n.totalMass / (distance * distance)
		return delta.Normalize().Scale(magnitude)
	}

	total := geometry.Zero
	for _, child := range n.children {
		if child == nil {
			continue
		}
		total = total.Add(child.force(targetID, target, strength, theta))
	}
	return total
}
