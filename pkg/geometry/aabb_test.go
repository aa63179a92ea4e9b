package geometry

import "testing"

func TestAABB_CenterAndSize(t *testing.T) {
	b := NewAABB(NewVec3(0, 0, 0), NewVec3(2, 4, 6))
	if b.Center() != NewVec3(1, 2, 3) {
		t.Errorf("Center: got %+v", b.Center())
	}
	if b.Size() != 6 {
		t.Errorf("Size should be the longest edge, got %v", b.Size())
	}
}

func TestAABB_Contains(t *testing.T) {
	b := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	if !b.Contains(NewVec3(0.5, 0.5, 0.5)) {
		t.Error("Interior point should be contained")
	}
	if !b.Contains(NewVec3(0, 0, 0)) || !b.Contains(NewVec3(1, 1, 1)) {
		t.Error("Boundary points are inclusive")
	}
	if b.Contains(NewVec3(1.5, 0.5, 0.5)) {
		t.Error("Exterior point should not be contained")
	}
}

// TestAABB_Octant checks the bit packing and the strict-greater center
// rule: a point exactly at the center lands in octant 0.
func TestAABB_Octant(t *testing.T) {
	b := NewAABB(NewVec3(0, 0, 0), NewVec3(2, 2, 2))

	cases := []struct {
		p    Vec3
		want int
	}{
		{NewVec3(0.5, 0.5, 0.5), 0},
		{NewVec3(1.5, 0.5, 0.5), 1},
		{NewVec3(0.5, 1.5, 0.5), 2},
		{NewVec3(1.5, 1.5, 0.5), 3},
		{NewVec3(0.5, 0.5, 1.5), 4},
		{NewVec3(1.5, 1.5, 1.5), 7},
		{NewVec3(1, 1, 1), 0}, // exactly at the center
	}
	for _, tc := range cases {
		if got := b.Octant(tc.p); got != tc.want {
			t.Errorf("Octant(%+v): got %d, want %d", tc.p, got, tc.want)
		}
	}
}

// TestAABB_ChildBounds verifies the octant sub-boxes tile the parent and
// round-trip through Octant.
func TestAABB_ChildBounds(t *testing.T) {
	b := NewAABB(NewVec3(0, 0, 0), NewVec3(2, 2, 2))

	for octant := 0; octant < 8; octant++ {
		child := b.ChildBounds(octant)
		if child.Size() != 1 {
			t.Errorf("Octant %d: size %v, want 1", octant, child.Size())
		}
		center := child.Center()
		if got := b.Octant(center); got != octant {
			t.Errorf("Octant %d: child center %+v maps back to %d", octant, center, got)
		}
		if !b.Contains(child.Min) || !b.Contains(child.Max) {
			t.Errorf("Octant %d: child %+v escapes the parent", octant, child)
		}
	}
}
