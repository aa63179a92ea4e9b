package lod

import (
	"fmt"

	"github.com/dd0wney/cluso-spatial/pkg/geometry"
	"github.com/dd0wney/cluso-spatial/pkg/graph"
)

// ErrInvalidConfig is returned for LOD configuration that cannot work.
var ErrInvalidConfig = fmt.Errorf("invalid lod configuration")

// Config holds the parameters for detail selection.
type Config struct {
	// CameraPosition is the viewpoint distances are measured from.
	CameraPosition geometry.Vec3
	// Distances are the four ascending thresholds separating the five
	// bands.
	Distances [4]float64
	// UseSquaredDistances compares squared distances against squared
	// thresholds, skipping the square root per node.
	UseSquaredDistances bool
	// Hysteresis scales the threshold a node must cross back inside
	// before detail is restored. Must be greater than 1.
	Hysteresis float64
}

// DefaultConfig returns the configuration used when the host supplies
// none.
func DefaultConfig() Config {
	return Config{
		Distances:           [4]float64{100, 500, 1000, 2000},
		UseSquaredDistances: true,
		Hysteresis:          1.1,
	}
}

// Selector buckets nodes into detail bands for one camera position.
// Update is a pure function of (previous level, new distance), so
// distinct nodes may be updated in parallel.
type Selector struct {
	config     Config
	thresholds [4]float64 // squared when UseSquaredDistances
}

// NewSelector validates the configuration and returns a selector.
// Thresholds must be positive and strictly ascending, and hysteresis
// must exceed 1.
func NewSelector(config Config) (*Selector, error) {
	if config.Hysteresis <= 1 {
		return nil, fmt.Errorf("%w: hysteresis must be > 1, got %v", ErrInvalidConfig, config.Hysteresis)
	}
	prev := 0.0
	for i, d := range config.Distances {
		if d <= prev {
			return nil, fmt.Errorf("%w: distance thresholds must be positive and ascending, got %v at index %d", ErrInvalidConfig, d, i)
		}
		prev = d
	}

	s := &Selector{config: config}
	for i, d := range config.Distances {
		if config.UseSquaredDistances {
			s.thresholds[i] = d * d
		} else {
			s.thresholds[i] = d
		}
	}
	return s, nil
}

// Config returns the selector's configuration.
func (s *Selector) Config() Config {
	return s.config
}

// Update returns the detail band for a node at the given position,
// taking its current band into account. A move to lower detail applies
// immediately; a move to higher detail applies only once the node is
// back well inside the previous threshold (threshold divided by the
// hysteresis factor), which prevents oscillation at band boundaries.
func (s *Selector) Update(position geometry.Vec3, current Level) Level {
	delta := position.Sub(s.config.CameraPosition)
	distance := delta.LengthSquared()
	if !s.config.UseSquaredDistances {
		distance = delta.Length()
	}

	next := s.bucket(distance)
	if next == current {
		return current
	}

	// Lower detail (farther away) always wins.
	if next > current {
		return next
	}

	// Higher detail requires crossing back inside the hysteresis margin.
	if current > LevelHigh {
		threshold := s.thresholds[current-1] / s.hysteresisDivisor()
		if distance < threshold {
			return next
		}
		return current
	}
	return next
}

// hysteresisDivisor converts the configured linear hysteresis factor to
// the compared-distance domain.
func (s *Selector) hysteresisDivisor() float64 {
	if s.config.UseSquaredDistances {
		return s.config.Hysteresis * s.config.Hysteresis
	}
	return s.config.Hysteresis
}

// bucket maps a compared distance to a band with no hysteresis applied.
func (s *Selector) bucket(distance float64) Level {
	switch {
	case distance < s.thresholds[0]:
		return LevelHigh
	case distance < s.thresholds[1]:
		return LevelMedium
	case distance < s.thresholds[2]:
		return LevelLow
	case distance < s.thresholds[3]:
		return LevelMinimal
	default:
		return LevelCulled
	}
}

// Stats counts nodes per band after an update pass.
type Stats struct {
	High    int
	Medium  int
	Low     int
	Minimal int
	Culled  int
	Total   int
}

// UpdateAll updates every node's band in place and returns per-band
// counts. The levels map is host-owned state carried across frames.
func (s *Selector) UpdateAll(positions map[graph.NodeID]geometry.Vec3, levels map[graph.NodeID]Level) Stats {
	var stats Stats
	for id, pos := range positions {
		level := s.Update(pos, levels[id])
		levels[id] = level
		stats.Total++
		switch level {
		case LevelHigh:
			stats.High++
		case LevelMedium:
			stats.Medium++
		case LevelLow:
			stats.Low++
		case LevelMinimal:
			stats.Minimal++
		case LevelCulled:
			stats.Culled++
		}
	}
	return stats
}
