package geometry

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB creates a bounding box from its corners.
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Center returns the midpoint of the box.
func (b AABB) Center() Vec3 {
	return Vec3{
		X: (b.Min.X + b.Max.X) * 0.5,
		Y: (b.Min.Y + b.Max.Y) * 0.5,
		Z: (b.Min.Z + b.Max.Z) * 0.5,
	}
}

// Size returns the longest edge length of the box.
func (b AABB) Size() float64 {
	dx := b.Max.X - b.Min.X
	dy := b.Max.Y - b.Min.Y
	dz := b.Max.Z - b.Min.Z
	size := dx
	if dy > size {
		size = dy
	}
	if dz > size {
		size = dz
	}
	return size
}

// Contains reports whether p lies inside the box (inclusive).
func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Octant returns which of the eight octants of the box p falls into.
// Coordinates strictly greater than the center select the upper half on
// each axis: bit 0 for x, bit 1 for y, bit 2 for z.
func (b AABB) Octant(p Vec3) int {
	center := b.Center()
	octant := 0
	if p.X > center.X {
		octant |= 1
	}
	if p.Y > center.Y {
		octant |= 2
	}
	if p.Z > center.Z {
		octant |= 4
	}
	return octant
}

// ChildBounds returns the sub-box covering the given octant.
func (b AABB) ChildBounds(octant int) AABB {
	center := b.Center()
	min := b.Min
	max := center
	if octant&1 != 0 {
		min.X = center.X
		max.X = b.Max.X
	}
	if octant&2 != 0 {
		min.Y = center.Y
		max.Y = b.Max.Y
	}
	if octant&4 != 0 {
		min.Z = center.Z
		max.Z = b.Max.Z
	}
	return AABB{Min: min, Max: max}
}
