package geometry

import (
	"math"

	"github.com/golang/geo/r1"
)

// Box is an axis-aligned bounding box. A box whose intervals are all
// degenerate bounds exactly one point.
type Box struct {
	X, Y, Z r1.Interval
}

// EmptyBox returns a box containing nothing.
func EmptyBox() Box {
	return Box{X: r1.EmptyInterval(), Y: r1.EmptyInterval(), Z: r1.EmptyInterval()}
}

// NewBox returns the box spanning min and max. Corners given in the wrong
// order are swapped per axis.
func NewBox(min, max Point) Box {
	return Box{
		X: r1.IntervalFromPoint(min.X).AddPoint(max.X),
		Y: r1.IntervalFromPoint(min.Y).AddPoint(max.Y),
		Z: r1.IntervalFromPoint(min.Z).AddPoint(max.Z),
	}
}

// BoxFromPoint returns the degenerate box holding p.
func BoxFromPoint(p Point) Box {
	return Box{
		X: r1.IntervalFromPoint(p.X),
		Y: r1.IntervalFromPoint(p.Y),
		Z: r1.IntervalFromPoint(p.Z),
	}
}

// BoxFromPoints returns the smallest box holding all points, or an empty box.
func BoxFromPoints(points ...Point) Box {
	b := EmptyBox()
	for _, p := range points {
		b = b.AddPoint(p)
	}
	return b
}

// IsEmpty reports whether b contains no points.
func (b Box) IsEmpty() bool {
	return b.X.IsEmpty() || b.Y.IsEmpty() || b.Z.IsEmpty()
}

// Min returns the lower corner.
func (b Box) Min() Point { return Point{X: b.X.Lo, Y: b.Y.Lo, Z: b.Z.Lo} }

// Max returns the upper corner.
func (b Box) Max() Point { return Point{X: b.X.Hi, Y: b.Y.Hi, Z: b.Z.Hi} }

// Center returns the midpoint of b.
func (b Box) Center() Point {
	return Point{X: b.X.Center(), Y: b.Y.Center(), Z: b.Z.Center()}
}

// HalfDiagonal returns the distance from the center of b to any corner.
func (b Box) HalfDiagonal() float64 {
	if b.IsEmpty() {
		return 0
	}
	return 0.5 * b.Max().Distance(b.Min())
}

// AddPoint returns b expanded to hold p.
func (b Box) AddPoint(p Point) Box {
	return Box{X: b.X.AddPoint(p.X), Y: b.Y.AddPoint(p.Y), Z: b.Z.AddPoint(p.Z)}
}

// Union returns the smallest box holding both b and o.
func (b Box) Union(o Box) Box {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return Box{X: b.X.Union(o.X), Y: b.Y.Union(o.Y), Z: b.Z.Union(o.Z)}
}

// Expanded returns b grown by margin on every side.
func (b Box) Expanded(margin float64) Box {
	if b.IsEmpty() {
		return b
	}
	return Box{X: b.X.Expanded(margin), Y: b.Y.Expanded(margin), Z: b.Z.Expanded(margin)}
}

// Intersects reports whether b and o share at least one point. Touching
// boxes intersect.
func (b Box) Intersects(o Box) bool {
	return b.X.Intersects(o.X) && b.Y.Intersects(o.Y) && b.Z.Intersects(o.Z)
}

// ContainsPoint reports whether p lies in b, boundary included.
func (b Box) ContainsPoint(p Point) bool {
	return b.X.Contains(p.X) && b.Y.Contains(p.Y) && b.Z.Contains(p.Z)
}

// ContainsBox reports whether o lies entirely in b.
func (b Box) ContainsBox(o Box) bool {
	return b.X.ContainsInterval(o.X) && b.Y.ContainsInterval(o.Y) && b.Z.ContainsInterval(o.Z)
}

// ClampPoint returns the point of b closest to p.
func (b Box) ClampPoint(p Point) Point {
	return Point{X: b.X.ClampPoint(p.X), Y: b.Y.ClampPoint(p.Y), Z: b.Z.ClampPoint(p.Z)}
}

// SquaredDistanceToPoint returns the squared distance from p to the closest
// point of b, zero when p is inside. For a degenerate box it equals
// SquaredDistance between p and the bounded point.
func (b Box) SquaredDistanceToPoint(p Point) float64 {
	if b.IsEmpty() {
		return math.Inf(1)
	}
	return SquaredDistance(p, b.ClampPoint(p))
}

// SquaredDistanceToBox returns the squared gap between b and o, zero when they
// intersect.
func (b Box) SquaredDistanceToBox(o Box) float64 {
	if b.IsEmpty() || o.IsEmpty() {
		return math.Inf(1)
	}
	dx := gap(b.X, o.X)
	dy := gap(b.Y, o.Y)
	dz := gap(b.Z, o.Z)
	return dx*dx + dy*dy + dz*dz
}

func gap(a, b r1.Interval) float64 {
	switch {
	case a.Hi < b.Lo:
		return b.Lo - a.Hi
	case b.Hi < a.Lo:
		return a.Lo - b.Hi
	}
	return 0
}

// Volume returns the volume of b; zero for flat or empty boxes.
func (b Box) Volume() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.X.Length() * b.Y.Length() * b.Z.Length()
}

// Margin returns the sum of the edge lengths of b. It stays informative when
// the volume collapses to zero for planar data.
func (b Box) Margin() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.X.Length() + b.Y.Length() + b.Z.Length()
}
