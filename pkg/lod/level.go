// Package lod assigns each node one of five detail bands by distance from
// the camera, with hysteresis so nodes hovering near a band boundary do
// not flicker between levels.
package lod

// Level is a detail band. Lower values mean more detail; the bands are
// ordered High < Medium < Low < Minimal < Culled.
type Level int

const (
	// LevelHigh is full detail, close to the camera.
	LevelHigh Level = iota
	// LevelMedium is reduced detail at moderate distance.
	LevelMedium
	// LevelLow is low detail, far from the camera.
	LevelLow
	// LevelMinimal is the cheapest rendered representation.
	LevelMinimal
	// LevelCulled is beyond the maximum distance and not rendered.
	LevelCulled
)

// String returns the band name.
func (l Level) String() string {
	switch l {
	case LevelHigh:
		return "high"
	case LevelMedium:
		return "medium"
	case LevelLow:
		return "low"
	case LevelMinimal:
		return "minimal"
	case LevelCulled:
		return "culled"
	default:
		return "unknown"
	}
}

// ComplexityFactor returns the relative rendering cost of the band,
// from 1.0 at full detail down to 0 when culled.
func (l Level) ComplexityFactor() float64 {
	switch l {
	case LevelHigh:
		return 1.0
	case LevelMedium:
		return 0.5
	case LevelLow:
		return 0.25
	case LevelMinimal:
		return 0.1
	default:
		return 0.0
	}
}

// VertexMultiplier returns the mesh-simplification vertex budget for the
// band as a fraction of the full mesh.
func (l Level) VertexMultiplier() float64 {
	switch l {
	case LevelHigh:
		return 1.0
	case LevelMedium:
		return 0.3
	case LevelLow:
		return 0.1
	case LevelMinimal:
		return 0.05
	default:
		return 0.0
	}
}

// RenderEdges reports whether edges should be drawn at this band.
func (l Level) RenderEdges() bool {
	return l == LevelHigh || l == LevelMedium
}

// RenderLabels reports whether labels should be drawn at this band.
func (l Level) RenderLabels() bool {
	return l == LevelHigh
}
