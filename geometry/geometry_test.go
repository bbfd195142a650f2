package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquaredDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Point
		expected float64
	}{
		{"Identical", NewPoint(1, 2, 3), NewPoint(1, 2, 3), 0},
		{"Axis", NewPoint(0, 0, 0), NewPoint(2, 0, 0), 4},
		{"Pythagorean", NewPoint(0, 0, 0), NewPoint(3, 4, 0), 25},
		{"Negative", NewPoint(-1, -1, -1), NewPoint(1, 1, 1), 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SquaredDistance(tt.a, tt.b))
			assert.InDelta(t, math.Sqrt(tt.expected), Distance(tt.a, tt.b), 1e-12)
		})
	}
}

func TestPoint3f(t *testing.T) {
	a := ToPoint3f(NewPoint(0, 0, 0))
	b := ToPoint3f(NewPoint(3, 4, 0))
	assert.InDelta(t, 5, a.DistanceTo(b), 1e-6)
	assert.Equal(t, NewPoint(3, 4, 0), b.Point())
}

func TestBox(t *testing.T) {
	b := NewBox(NewPoint(2, 2, 2), NewPoint(0, 0, 0))
	assert.Equal(t, NewPoint(0, 0, 0), b.Min())
	assert.Equal(t, NewPoint(2, 2, 2), b.Max())
	assert.Equal(t, NewPoint(1, 1, 1), b.Center())
	assert.Equal(t, 8.0, b.Volume())
	assert.Equal(t, 6.0, b.Margin())
	assert.InDelta(t, math.Sqrt(3), b.HalfDiagonal(), 1e-12)

	assert.True(t, b.ContainsPoint(NewPoint(2, 0, 1)))
	assert.False(t, b.ContainsPoint(NewPoint(2.1, 0, 1)))
	assert.Equal(t, 0.0, b.SquaredDistanceToPoint(NewPoint(1, 1, 1)))
	assert.Equal(t, 4.0, b.SquaredDistanceToPoint(NewPoint(4, 1, 1)))

	touching := NewBox(NewPoint(2, 0, 0), NewPoint(3, 1, 1))
	assert.True(t, b.Intersects(touching))
	apart := NewBox(NewPoint(5, 0, 0), NewPoint(6, 1, 1))
	assert.False(t, b.Intersects(apart))
	assert.Equal(t, 9.0, b.SquaredDistanceToBox(apart))
	assert.Equal(t, 0.0, b.SquaredDistanceToBox(touching))
	assert.True(t, b.Union(apart).ContainsBox(apart))
}

func TestBox_Empty(t *testing.T) {
	e := EmptyBox()
	require.True(t, e.IsEmpty())
	assert.False(t, e.Intersects(BoxFromPoint(NewPoint(0, 0, 0))))
	assert.Equal(t, 0.0, e.Volume())

	b := BoxFromPoints(NewPoint(1, 2, 3), NewPoint(-1, 0, 5))
	assert.Equal(t, NewPoint(-1, 0, 3), b.Min())
	assert.Equal(t, NewPoint(1, 2, 5), b.Max())
	assert.Equal(t, b, e.Union(b))
}

func TestDegenerateBoxDistanceMatchesPointDistance(t *testing.T) {
	p := NewPoint(0.1, 0.7, -0.3)
	q := NewPoint(1.9, -2.2, 0.05)
	assert.Equal(t, SquaredDistance(q, p), BoxFromPoint(p).SquaredDistanceToPoint(q))
}

func TestSphere(t *testing.T) {
	s := NewSphere(NewPoint(0, 0, 0), 1.5)
	assert.True(t, s.IsValid())
	assert.True(t, s.ContainsPoint(NewPoint(1, 0, 0)))
	assert.False(t, s.ContainsPoint(NewPoint(2, 0, 0)))
	assert.True(t, s.IntersectsBox(BoxFromPoint(NewPoint(1.5, 0, 0))))
	assert.False(t, s.IntersectsBox(BoxFromPoint(NewPoint(1.5, 0.1, 0))))
	assert.True(t, s.Bounds().ContainsPoint(NewPoint(1.5, 1.5, 1.5)))

	assert.False(t, NewSphere(NewPoint(0, 0, 0), -1).IsValid())
	assert.False(t, NewSphere(NewPoint(0, 0, 0), -1).IntersectsBox(BoxFromPoint(NewPoint(0, 0, 0))))
	assert.False(t, NewSphere(NewPoint(math.NaN(), 0, 0), 1).IsValid())
}

func TestRegion(t *testing.T) {
	var none Region
	assert.Equal(t, RegionNone, none.Kind())
	assert.False(t, none.IsValid())
	assert.False(t, none.Intersects(BoxFromPoint(NewPoint(0, 0, 0))))

	sr := SphereRegion(NewSphere(NewPoint(0, 0, 0), 1))
	s, ok := sr.Sphere()
	require.True(t, ok)
	assert.Equal(t, 1.0, s.Radius)
	_, ok = sr.Box()
	assert.False(t, ok)
	assert.Equal(t, "sphere", sr.Kind().String())
	assert.Equal(t, 0.0, sr.DistanceToPoint(NewPoint(0.5, 0, 0)))
	assert.InDelta(t, 2.0, sr.DistanceToPoint(NewPoint(3, 0, 0)), 1e-12)

	br := BoxRegion(NewBox(NewPoint(0, 0, 0), NewPoint(1, 1, 1)))
	_, ok = br.Sphere()
	assert.False(t, ok)
	assert.True(t, br.IsValid())
	assert.True(t, br.Intersects(BoxFromPoint(NewPoint(1, 1, 1))))
	assert.InDelta(t, 1.0, br.DistanceToPoint(NewPoint(2, 1, 1)), 1e-12)
	assert.False(t, BoxRegion(EmptyBox()).IsValid())
}
