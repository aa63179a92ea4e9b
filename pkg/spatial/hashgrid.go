package spatial

import (
	"fmt"
	"math"
	"sort"

	"github.com/dd0wney/cluso-spatial/pkg/geometry"
	"github.com/dd0wney/cluso-spatial/pkg/graph"
)

// cellKey addresses one grid cell by its integer coordinates,
// floor(position/cellSize) per axis.
type cellKey struct {
	X, Y, Z int
}

// HashGrid buckets nodes into uniform cells for conservative
// radius-neighbor queries. Queries never miss a true neighbor; they may
// return false positives from the outer ring of scanned cells, so
// callers needing an exact radius must post-filter. The grid is rebuilt
// wholesale on every Build call, never patched.
type HashGrid struct {
	cellSize float64
	cells    map[cellKey][]graph.NodeID
}

// NewHashGrid creates a grid with the given cell size. The size must be
// positive.
func NewHashGrid(cellSize float64) (*HashGrid, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("%w: cell size must be positive, got %v", ErrInvalidConfig, cellSize)
	}
	return &HashGrid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]graph.NodeID),
	}, nil
}

// CellSize returns the configured cell edge length.
func (g *HashGrid) CellSize() float64 {
	return g.cellSize
}

// Build clears the grid and repopulates it from the given positions.
// Non-finite positions are rejected. Members of each cell are kept in
// ascending id order so results are deterministic across builds.
func (g *HashGrid) Build(positions map[graph.NodeID]geometry.Vec3) error {
	for id, pos := range positions {
		if !pos.IsFinite() {
			return fmt.Errorf("%w: node %d", graph.ErrNonFinitePosition, id)
		}
	}

	g.cells = make(map[cellKey][]graph.NodeID)
	for id, pos := range positions {
		key := g.cellFor(pos)
		g.cells[key] = append(g.cells[key], id)
	}
	for _, members := range g.cells {
		sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
	}
	return nil
}

// cellFor maps a position to its cell coordinates.
func (g *HashGrid) cellFor(p geometry.Vec3) cellKey {
	return cellKey{
		X: int(math.Floor(p.X / g.cellSize)),
		Y: int(math.Floor(p.Y / g.cellSize)),
		Z: int(math.Floor(p.Z / g.cellSize)),
	}
}

// FindNeighbors returns every node within radius of the point, plus
// possible false positives from the surrounding cells. It enumerates all
// cells within ceil(radius/cellSize) of the point's cell along each axis
// and concatenates their members.
func (g *HashGrid) FindNeighbors(point geometry.Vec3, radius float64) []graph.NodeID {
	if radius <= 0 {
		return nil
	}

	cellRadius := int(math.Ceil(radius / g.cellSize))
	center := g.cellFor(point)

	var neighbors []graph.NodeID
	for dx := -cellRadius; dx <= cellRadius; dx++ {
		for dy := -cellRadius; dy <= cellRadius; dy++ {
			for dz := -cellRadius; dz <= cellRadius; dz++ {
				key := cellKey{X: center.X + dx, Y: center.Y + dy, Z: center.Z + dz}
				neighbors = append(neighbors, g.cells[key]...)
			}
		}
	}
	return neighbors
}

// CellCount returns the number of occupied cells.
func (g *HashGrid) CellCount() int {
	return len(g.cells)
}
