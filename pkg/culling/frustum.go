// Package culling tests points, spheres and boxes against a camera view
// frustum so the renderer only draws what the camera can see.
package culling

import (
	"fmt"
	"math"

	"github.com/dd0wney/cluso-spatial/pkg/geometry"
	"github.com/dd0wney/cluso-spatial/pkg/graph"
)

// ErrInvalidConfig is returned for camera parameters that cannot form a
// frustum.
var ErrInvalidConfig = fmt.Errorf("invalid frustum configuration")

// plane is a half-space: points with Normal·p + Offset >= 0 are on the
// visible side.
type plane struct {
	Normal geometry.Vec3
	Offset float64
}

// distanceTo returns the signed distance from p to the plane.
func (pl plane) distanceTo(p geometry.Vec3) float64 {
	return pl.Normal.Dot(p) + pl.Offset
}

// Camera holds the parameters a frustum is derived from.
type Camera struct {
	Position geometry.Vec3
	Forward  geometry.Vec3 // unit vector
	Up       geometry.Vec3 // unit vector
	FOV      float64       // vertical field of view, radians
	Aspect   float64       // width / height
	Near     float64
	Far      float64
}

// ViewFrustum is the visible region of a camera, bounded by six planes
// whose normals point inward. Planes are derived once at construction;
// when camera parameters change the caller must build a new frustum,
// there is no internal dirty tracking.
type ViewFrustum struct {
	camera Camera
	planes [6]plane
}

// Plane indices into the frustum's plane array.
const (
	planeNear = iota
	planeFar
	planeRight
	planeLeft
	planeTop
	planeBottom
)

// NewViewFrustum derives a frustum from camera parameters. FOV and
// aspect must be positive and 0 < near < far.
func NewViewFrustum(camera Camera) (*ViewFrustum, error) {
	if camera.FOV <= 0 || camera.FOV >= math.Pi {
		return nil, fmt.Errorf("%w: fov must be in (0, pi), got %v", ErrInvalidConfig, camera.FOV)
	}
	if camera.Aspect <= 0 {
		return nil, fmt.Errorf("%w: aspect must be positive, got %v", ErrInvalidConfig, camera.Aspect)
	}
	if camera.Near <= 0 || camera.Far <= camera.Near {
		return nil, fmt.Errorf("%w: need 0 < near < far, got near=%v far=%v", ErrInvalidConfig, camera.Near, camera.Far)
	}

	f := &ViewFrustum{camera: camera}
	f.derivePlanes()
	return f, nil
}

// Camera returns the parameters the frustum was built from.
func (f *ViewFrustum) Camera() Camera {
	return f.camera
}

// derivePlanes computes the six half-space planes from the camera.
func (f *ViewFrustum) derivePlanes() {
	cam := f.camera
	right := cam.Forward.Cross(cam.Up)

	halfV := math.Tan(cam.FOV * 0.5)
	halfH := halfV * cam.Aspect

	nearCenter := cam.Position.Add(cam.Forward.Scale(cam.Near))
	farCenter := cam.Position.Add(cam.Forward.Scale(cam.Far))

	f.planes[planeNear] = plane{
		Normal: cam.Forward,
		Offset: -cam.Forward.Dot(nearCenter),
	}
	backward := cam.Forward.Scale(-1)
	f.planes[planeFar] = plane{
		Normal: backward,
		Offset: -backward.Dot(farCenter),
	}

	nearHalfH := halfH * cam.Near
	nearHalfV := halfV * cam.Near

	rightNormal := cam.Up.Cross(nearCenter.Add(right.Scale(nearHalfH)).Sub(cam.Position)).Normalize()
	f.planes[planeRight] = plane{
		Normal: rightNormal,
		Offset: -rightNormal.Dot(cam.Position),
	}

	leftNormal := nearCenter.Sub(right.Scale(nearHalfH)).Sub(cam.Position).Cross(cam.Up).Normalize()
	f.planes[planeLeft] = plane{
		Normal: leftNormal,
		Offset: -leftNormal.Dot(cam.Position),
	}

	topNormal := nearCenter.Add(cam.Up.Scale(nearHalfV)).Sub(cam.Position).Cross(right).Normalize()
	f.planes[planeTop] = plane{
		Normal: topNormal,
		Offset: -topNormal.Dot(cam.Position),
	}

	bottomNormal := right.Cross(nearCenter.Sub(cam.Up.Scale(nearHalfV)).Sub(cam.Position)).Normalize()
	f.planes[planeBottom] = plane{
		Normal: bottomNormal,
		Offset: -bottomNormal.Dot(cam.Position),
	}
}

// ContainsPoint reports whether the point is inside the frustum.
func (f *ViewFrustum) ContainsPoint(p geometry.Vec3) bool {
	for _, pl := range f.planes {
		if pl.distanceTo(p) < 0 {
			return false
		}
	}
	return true
}

// ContainsSphere reports whether a sphere is at least partially inside
// the frustum.
func (f *ViewFrustum) ContainsSphere(center geometry.Vec3, radius float64) bool {
	for _, pl := range f.planes {
		if pl.distanceTo(center) < -radius {
			return false
		}
	}
	return true
}

// IntersectsAABB conservatively reports whether a box overlaps the
// frustum. For each plane only the box vertex furthest along the plane's
// normal is tested; if that vertex is outside any plane the box is fully
// outside.
func (f *ViewFrustum) IntersectsAABB(min, max geometry.Vec3) bool {
	for _, pl := range f.planes {
		p := min
		if pl.Normal.X >= 0 {
			p.X = max.X
		}
		if pl.Normal.Y >= 0 {
			p.Y = max.Y
		}
		if pl.Normal.Z >= 0 {
			p.Z = max.Z
		}
		if pl.distanceTo(p) < 0 {
			return false
		}
	}
	return true
}

// Stats summarizes one culling pass.
type Stats struct {
	TotalNodes   int
	VisibleNodes int
	CulledNodes  int
}

// CullNodes tests every node as a sphere of the given radius and returns
// a per-node visibility flag plus pass statistics.
func (f *ViewFrustum) CullNodes(positions map[graph.NodeID]geometry.Vec3, nodeRadius float64) (map[graph.NodeID]bool, Stats) {
	visible := make(map[graph.NodeID]bool, len(positions))
	stats := Stats{TotalNodes: len(positions)}
	for id, pos := range positions {
		v := f.ContainsSphere(pos, nodeRadius)
		visible[id] = v
		if v {
			stats.VisibleNodes++
		} else {
			stats.CulledNodes++
		}
	}
	return visible, stats
}
