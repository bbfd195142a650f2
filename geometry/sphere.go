package geometry

// Sphere is a ball given by its center and radius.
type Sphere struct {
	Center Point
	Radius float64
}

// NewSphere returns the sphere around center with the given radius.
func NewSphere(center Point, radius float64) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// IsValid reports whether s has a finite center and a finite, non-negative
// radius.
func (s Sphere) IsValid() bool {
	return IsValid(s.Center) && isFinite(s.Radius) && s.Radius >= 0
}

// IntersectsBox reports whether s and b share at least one point.
func (s Sphere) IntersectsBox(b Box) bool {
	if s.Radius < 0 {
		return false
	}
	return b.SquaredDistanceToPoint(s.Center) <= s.Radius*s.Radius
}

// ContainsPoint reports whether p lies in s, surface included.
func (s Sphere) ContainsPoint(p Point) bool {
	if s.Radius < 0 {
		return false
	}
	return SquaredDistance(s.Center, p) <= s.Radius*s.Radius
}

// Bounds returns the box enclosing s.
func (s Sphere) Bounds() Box {
	if s.Radius < 0 {
		return EmptyBox()
	}
	return BoxFromPoint(s.Center).Expanded(s.Radius)
}
