package geometry

import "math"

// RegionKind tells which shape a Region holds.
type RegionKind uint8

const (
	// RegionNone is the zero Region; it intersects nothing.
	RegionNone RegionKind = iota
	// RegionSphere is a spherical search region.
	RegionSphere
	// RegionBox is an axis-aligned box search region.
	RegionBox
)

func (k RegionKind) String() string {
	switch k {
	case RegionSphere:
		return "sphere"
	case RegionBox:
		return "box"
	}
	return "none"
}

// Region is the area a spatial search traverses: either a Sphere or a Box.
type Region struct {
	kind   RegionKind
	sphere Sphere
	box    Box
}

// SphereRegion returns a spherical region.
func SphereRegion(s Sphere) Region {
	return Region{kind: RegionSphere, sphere: s}
}

// BoxRegion returns a box region.
func BoxRegion(b Box) Region {
	return Region{kind: RegionBox, box: b}
}

// Kind returns the shape of r.
func (r Region) Kind() RegionKind { return r.kind }

// Sphere returns the sphere of a spherical region.
func (r Region) Sphere() (Sphere, bool) {
	return r.sphere, r.kind == RegionSphere
}

// Box returns the box of a box region.
func (r Region) Box() (Box, bool) {
	return r.box, r.kind == RegionBox
}

// IsValid reports whether r can be traversed: a sphere with a finite center
// and non-negative radius, or a non-empty box with finite corners.
func (r Region) IsValid() bool {
	switch r.kind {
	case RegionSphere:
		return r.sphere.IsValid()
	case RegionBox:
		return !r.box.IsEmpty() && IsValid(r.box.Min()) && IsValid(r.box.Max())
	}
	return false
}

// Intersects reports whether r shares at least one point with b.
func (r Region) Intersects(b Box) bool {
	switch r.kind {
	case RegionSphere:
		return r.sphere.IntersectsBox(b)
	case RegionBox:
		return r.box.Intersects(b)
	}
	return false
}

// DistanceToPoint returns how far p lies outside r, zero when inside.
func (r Region) DistanceToPoint(p Point) float64 {
	switch r.kind {
	case RegionSphere:
		return math.Max(0, Distance(r.sphere.Center, p)-r.sphere.Radius)
	case RegionBox:
		return math.Sqrt(r.box.SquaredDistanceToPoint(p))
	}
	return math.Inf(1)
}

// Bounds returns the box enclosing r.
func (r Region) Bounds() Box {
	switch r.kind {
	case RegionSphere:
		return r.sphere.Bounds()
	case RegionBox:
		return r.box
	}
	return EmptyBox()
}
