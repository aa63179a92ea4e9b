// Package incremental accumulates structural graph changes between layout
// passes and decides whether the next pass should rebuild everything or
// only touch the affected neighborhood.
package incremental

import (
	"fmt"

	"github.com/dd0wney/cluso-spatial/pkg/graph"
)

// ErrInvalidConfig is returned for a relayout trigger fraction outside
// (0, 1].
var ErrInvalidConfig = fmt.Errorf("invalid change tracker configuration")

// DefaultFullRelayoutFraction is the affected-node fraction above which a
// full relayout is preferred over patching.
const DefaultFullRelayoutFraction = 0.10

// Config tunes the full-vs-partial relayout decision.
type Config struct {
	// FullRelayoutFraction triggers a full relayout when the affected
	// share of the graph exceeds it. Must be in (0, 1].
	FullRelayoutFraction float64
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{FullRelayoutFraction: DefaultFullRelayoutFraction}
}

// ChangeTracker records added, removed and moved nodes since the last
// consumed relayout, together with the affected closure: the changed
// nodes plus their direct graph neighbors. State is host-owned and
// cleared by Reset once a relayout pass has consumed it.
type ChangeTracker struct {
	config Config

	added   map[graph.NodeID]struct{}
	removed map[graph.NodeID]struct{}
	moved   map[graph.NodeID]struct{}

	addedEdges   []graph.Edge
	removedEdges []graph.Edge

	affected map[graph.NodeID]struct{}

	// forceFull is set when a change is too structural to patch around.
	forceFull bool
}

// NewChangeTracker validates the configuration and returns an empty
// tracker.
func NewChangeTracker(config Config) (*ChangeTracker, error) {
	if config.FullRelayoutFraction <= 0 || config.FullRelayoutFraction > 1 {
		return nil, fmt.Errorf("%w: relayout fraction must be in (0, 1], got %v", ErrInvalidConfig, config.FullRelayoutFraction)
	}
	t := &ChangeTracker{config: config}
	t.Reset()
	return t, nil
}

// NodeAdded records a node added since the last relayout. Its graph
// neighbors join the affected set.
func (t *ChangeTracker) NodeAdded(id graph.NodeID, neighbors []graph.NodeID) {
	t.added[id] = struct{}{}
	t.markAffected(id, neighbors)
}

// NodeRemoved records a removed node. The neighbors it used to have join
// the affected set since their local layout changes.
func (t *ChangeTracker) NodeRemoved(id graph.NodeID, formerNeighbors []graph.NodeID) {
	t.removed[id] = struct{}{}
	t.markAffected(id, formerNeighbors)
}

// NodeMoved records a node whose position changed significantly.
func (t *ChangeTracker) NodeMoved(id graph.NodeID, neighbors []graph.NodeID) {
	t.moved[id] = struct{}{}
	t.markAffected(id, neighbors)
}

// EdgeAdded records a new edge. Both endpoints join the affected set.
func (t *ChangeTracker) EdgeAdded(e graph.Edge) {
	t.addedEdges = append(t.addedEdges, e)
	t.markAffected(e.From, nil)
	t.markAffected(e.To, nil)
}

// EdgeRemoved records a removed edge. Both endpoints join the affected
// set.
func (t *ChangeTracker) EdgeRemoved(e graph.Edge) {
	t.removedEdges = append(t.removedEdges, e)
	t.markAffected(e.From, nil)
	t.markAffected(e.To, nil)
}

// RequireFullRelayout forces the next ShouldFullRelayout to return true
// regardless of the affected fraction.
func (t *ChangeTracker) RequireFullRelayout() {
	t.forceFull = true
}

func (t *ChangeTracker) markAffected(id graph.NodeID, neighbors []graph.NodeID) {
	t.affected[id] = struct{}{}
	for _, n := range neighbors {
		t.affected[n] = struct{}{}
	}
}

// HasChanges reports whether anything was recorded since the last Reset.
func (t *ChangeTracker) HasChanges() bool {
	return len(t.added) > 0 || len(t.removed) > 0 || len(t.moved) > 0 ||
		len(t.addedEdges) > 0 || len(t.removedEdges) > 0
}

// AffectedCount returns the size of the affected closure.
func (t *ChangeTracker) AffectedCount() int {
	return len(t.affected)
}

// AffectedNodes returns the affected closure: changed nodes and their
// direct neighbors. The caller must not mutate the returned map.
func (t *ChangeTracker) AffectedNodes() map[graph.NodeID]struct{} {
	return t.affected
}

// AddedNodes returns the set of nodes added since the last Reset.
func (t *ChangeTracker) AddedNodes() map[graph.NodeID]struct{} {
	return t.added
}

// RemovedNodes returns the set of nodes removed since the last Reset.
func (t *ChangeTracker) RemovedNodes() map[graph.NodeID]struct{} {
	return t.removed
}

// MovedNodes returns the set of nodes moved since the last Reset.
func (t *ChangeTracker) MovedNodes() map[graph.NodeID]struct{} {
	return t.moved
}

// ShouldFullRelayout reports whether the accumulated changes warrant a
// full spatial rebuild rather than a localized pass over the affected
// set. The decision compares the affected fraction of the graph against
// the configured trigger fraction.
func (t *ChangeTracker) ShouldFullRelayout(totalNodeCount int) bool {
	if t.forceFull {
		return true
	}
	if totalNodeCount <= 0 {
		return len(t.affected) > 0
	}
	fraction := float64(len(t.affected)) / float64(totalNodeCount)
	return fraction > t.config.FullRelayoutFraction
}

// Reset clears all tracked state once a relayout pass has consumed it.
func (t *ChangeTracker) Reset() {
	t.added = make(map[graph.NodeID]struct{})
	t.removed = make(map[graph.NodeID]struct{})
	t.moved = make(map[graph.NodeID]struct{})
	t.addedEdges = nil
	t.removedEdges = nil
	t.affected = make(map[graph.NodeID]struct{})
	t.forceFull = false
}
