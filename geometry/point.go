package geometry

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/viant/vec/search"
)

// Point is a location in 3D space.
type Point = r3.Vector

// NewPoint returns the point (x, y, z).
func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// IsValid reports whether all coordinates of p are finite.
func IsValid(p Point) bool {
	return isFinite(p.X) && isFinite(p.Y) && isFinite(p.Z)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SquaredDistance returns the squared Euclidean distance between a and b.
func SquaredDistance(a, b Point) float64 {
	return a.Sub(b).Norm2()
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return a.Distance(b)
}

// Point3f is a single-precision point, the storage format of float32 point
// clouds.
type Point3f [3]float32

// ToPoint3f narrows p to single precision.
func ToPoint3f(p Point) Point3f {
	return Point3f{float32(p.X), float32(p.Y), float32(p.Z)}
}

// Point widens p to double precision.
func (p Point3f) Point() Point {
	return Point{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}
}

// DistanceTo returns the Euclidean distance between p and q computed in
// single precision.
func (p Point3f) DistanceTo(q Point3f) float32 {
	return search.Float32s(p[:]).EuclideanDistance(q[:])
}
