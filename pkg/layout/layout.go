// Package layout computes force-directed layouts for large graphs. Long
// range repulsion comes from the Barnes-Hut tree so a full pass is
// O(n log n) instead of O(n^2); attraction is a spring force along
// edges. The engine supports full passes, localized passes limited to a
// change tracker's affected region, and parallel per-partition passes.
package layout

import (
	"fmt"
	"math"
	"time"

	"github.com/dd0wney/cluso-spatial/pkg/geometry"
	"github.com/dd0wney/cluso-spatial/pkg/graph"
	"github.com/dd0wney/cluso-spatial/pkg/logging"
	"github.com/dd0wney/cluso-spatial/pkg/metrics"
	"github.com/dd0wney/cluso-spatial/pkg/spatial"
)

// ErrInvalidConfig is returned for layout parameters that cannot work.
var ErrInvalidConfig = fmt.Errorf("invalid layout configuration")

// Config holds the force model parameters.
type Config struct {
	// Iterations is the number of integration steps in a full pass.
	Iterations int
	// RepulsionStrength scales the inverse-square node repulsion.
	RepulsionStrength float64
	// SpringLength is the rest length of edge springs.
	SpringLength float64
	// Theta is the Barnes-Hut accuracy parameter.
	Theta float64
	// Timestep scales force into displacement per iteration.
	Timestep float64
	// Damping is applied to velocities each step.
	Damping float64
}

// DefaultConfig returns parameters that converge on graphs in the
// 10k-100k node range.
func DefaultConfig() Config {
	return Config{
		Iterations:        50,
		RepulsionStrength: 10000,
		SpringLength:      100,
		Theta:             0.5,
		Timestep:          0.1,
		Damping:           0.95,
	}
}

// Engine runs force-directed layout passes. Velocities and pinned nodes
// are carried across passes.
type Engine struct {
	config     Config
	logger     logging.Logger
	metrics    *metrics.Registry
	velocities map[graph.NodeID]geometry.Vec3
	pinned     map[graph.NodeID]struct{}
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a logger to the engine.
func WithLogger(logger logging.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics attaches a metrics registry to the engine.
func WithMetrics(registry *metrics.Registry) Option {
	return func(e *Engine) { e.metrics = registry }
}

// NewEngine validates the configuration and creates an engine.
func NewEngine(config Config, opts ...Option) (*Engine, error) {
	if config.Iterations <= 0 {
		return nil, fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, config.Iterations)
	}
	if config.RepulsionStrength <= 0 {
		return nil, fmt.Errorf("%w: repulsion strength must be positive, got %v", ErrInvalidConfig, config.RepulsionStrength)
	}
	if config.SpringLength <= 0 {
		return nil, fmt.Errorf("%w: spring length must be positive, got %v", ErrInvalidConfig, config.SpringLength)
	}
	if config.Theta <= 0 {
		return nil, fmt.Errorf("%w: theta must be positive, got %v", ErrInvalidConfig, config.Theta)
	}
	if config.Timestep <= 0 {
		return nil, fmt.Errorf("%w: timestep must be positive, got %v", ErrInvalidConfig, config.Timestep)
	}
	if config.Damping <= 0 || config.Damping > 1 {
		return nil, fmt.Errorf("%w: damping must be in (0, 1], got %v", ErrInvalidConfig, config.Damping)
	}

	e := &Engine{
		config:     config,
		logger:     logging.Nop{},
		velocities: make(map[graph.NodeID]geometry.Vec3),
		pinned:     make(map[graph.NodeID]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Pin freezes a node so layout passes never move it.
func (e *Engine) Pin(id graph.NodeID) {
	e.pinned[id] = struct{}{}
	delete(e.velocities, id)
}

// Unpin releases a pinned node.
func (e *Engine) Unpin(id graph.NodeID) {
	delete(e.pinned, id)
}

// IsPinned reports whether a node is pinned.
func (e *Engine) IsPinned(id graph.NodeID) bool {
	_, ok := e.pinned[id]
	return ok
}

// ComputeForces returns the net force on every node: Barnes-Hut
// approximate repulsion plus spring attraction along edges. The result
// is what an external integrator consumes to move positions.
func (e *Engine) ComputeForces(snapshot *graph.Snapshot) (map[graph.NodeID]geometry.Vec3, error) {
	positions := snapshot.Positions()
	tree, err := spatial.NewBarnesHutTree(positions, e.config.Theta)
	if err != nil {
		return nil, err
	}

	forces := make(map[graph.NodeID]geometry.Vec3, len(positions))
	for id, pos := range positions {
		forces[id] = e.nodeForce(tree, snapshot, id, pos)
	}
	return forces, nil
}

// nodeForce computes the net force on one node against a built tree.
func (e *Engine) nodeForce(tree *spatial.BarnesHutTree, snapshot *graph.Snapshot, id graph.NodeID, pos geometry.Vec3) geometry.Vec3 {
	force := tree.CalculateForce(id, pos, e.config.RepulsionStrength)

	for _, neighbor := range snapshot.Neighbors(id) {
		other, ok := snapshot.Position(neighbor)
		if !ok {
			continue
		}
		delta := other.Sub(pos)
		distance := delta.Length()
		if distance < 0.01 {
			continue
		}
		// Hooke spring toward the rest length.
		stretch := (distance - e.config.SpringLength) / e.config.SpringLength
		force = force.Add(delta.Normalize().Scale(stretch))
	}
	return force
}

// Run performs a full layout pass: Iterations integration steps with a
// cooling schedule, rebuilding the spatial tree each step. It returns
// the new positions; the input snapshot is not mutated.
func (e *Engine) Run(snapshot *graph.Snapshot) (map[graph.NodeID]geometry.Vec3, error) {
	start := time.Now()

	positions := clonePositions(snapshot.Positions())
	temperature := initialTemperature(positions)

	for iter := 0; iter < e.config.Iterations; iter++ {
		working, err := graph.NewSnapshot(positions, snapshot.Edges())
		if err != nil {
			return nil, err
		}
		forces, err := e.ComputeForces(working)
		if err != nil {
			return nil, err
		}

		cool := 1.0 - float64(iter)/float64(e.config.Iterations)
		e.integrate(positions, forces, temperature*cool)
	}

	e.logger.Info("layout pass complete",
		logging.Component("layout"),
		logging.NodeCount(len(positions)),
		logging.Duration("duration", time.Since(start)))
	if e.metrics != nil {
		e.metrics.RecordLayoutPass("full", time.Since(start))
	}
	return positions, nil
}

// integrate applies forces to positions through damped velocities,
// clamping each displacement to the temperature. It returns the largest
// movement applied.
func (e *Engine) integrate(positions map[graph.NodeID]geometry.Vec3, forces map[graph.NodeID]geometry.Vec3, temperature float64) float64 {
	maxMovement := 0.0
	for id, force := range forces {
		if e.IsPinned(id) {
			continue
		}
		velocity := e.velocities[id].Add(force.Scale(e.config.Timestep)).Scale(e.config.Damping)
		e.velocities[id] = velocity

		movement := velocity.Scale(e.config.Timestep)
		if length := movement.Length(); length > temperature && length > 0 {
			movement = movement.Scale(temperature / length)
		}
		positions[id] = positions[id].Add(movement)
		if l := movement.Length(); l > maxMovement {
			maxMovement = l
		}
	}
	return maxMovement
}

// initialTemperature derives the displacement cap from the extent of
// the current positions.
func initialTemperature(positions map[graph.NodeID]geometry.Vec3) float64 {
	if len(positions) == 0 {
		return 1
	}
	maxExtent := 0.0
	for _, pos := range positions {
		if l := pos.Length(); l > maxExtent {
			maxExtent = l
		}
	}
	if maxExtent == 0 {
		return 1
	}
	return math.Max(maxExtent/10, 1)
}

func clonePositions(positions map[graph.NodeID]geometry.Vec3) map[graph.NodeID]geometry.Vec3 {
	cloned := make(map[graph.NodeID]geometry.Vec3, len(positions))
	for id, pos := range positions {
		cloned[id] = pos
	}
	return cloned
}
