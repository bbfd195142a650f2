package cover

import (
	"context"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/proximity/geometry"
	"github.com/viant/proximity/index"
	"github.com/viant/proximity/index/bruteforce"
)

func randomPoints(r *rand.Rand, n int) []geometry.Point {
	points := make([]geometry.Point, n)
	for i := range points {
		points[i] = geometry.NewPoint(r.Float64()*10, r.Float64()*10, r.Float64()*10)
	}
	return points
}

func collect(t *testing.T, idx index.SpatialIndex, region geometry.Region) []int {
	t.Helper()
	var ids []int
	require.True(t, idx.Search(context.Background(), region, func(e *index.Event) {
		ids = append(ids, e.ID())
	}, nil))
	slices.Sort(ids)
	return ids
}

func TestIndex_MatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewPCG(31, 32))
	points := randomPoints(r, 400)
	idx, err := NewFromPoints(points, WithBase(2))
	require.NoError(t, err)
	assert.Equal(t, 2.0, idx.Base())
	oracle, err := bruteforce.NewFromPoints(points)
	require.NoError(t, err)

	for round := 0; round < 30; round++ {
		center := geometry.NewPoint(r.Float64()*10, r.Float64()*10, r.Float64()*10)
		sphere := geometry.SphereRegion(geometry.NewSphere(center, r.Float64()*3))
		assert.Equal(t, collect(t, oracle, sphere), collect(t, idx, sphere))
		box := geometry.BoxRegion(geometry.BoxFromPoint(center).Expanded(r.Float64() * 2))
		assert.Equal(t, collect(t, oracle, box), collect(t, idx, box))
	}
}

func TestIndex_DefaultBase(t *testing.T) {
	assert.Equal(t, 1.3, New().Base())
	assert.Equal(t, 1.3, New(WithBase(0.5)).Base())
}

func TestIndex_BoundaryPointsIncluded(t *testing.T) {
	idx := New()
	for id, p := range []geometry.Point{{X: 1}, {Y: -1}, {Z: 1.0000001}} {
		require.True(t, idx.Insert(geometry.BoxFromPoint(p), id))
	}
	assert.Equal(t, []int{0, 1}, collect(t, idx, geometry.SphereRegion(geometry.NewSphere(geometry.Point{}, 1))))
}

func TestIndex_RemoveAndClear(t *testing.T) {
	r := rand.New(rand.NewPCG(33, 34))
	points := randomPoints(r, 60)
	idx, err := NewFromPoints(points)
	require.NoError(t, err)

	for i := 0; i < 45; i++ {
		require.True(t, idx.Remove(geometry.BoxFromPoint(points[i]), i))
	}
	assert.False(t, idx.Remove(geometry.BoxFromPoint(points[0]), 0))
	assert.Equal(t, 15, idx.Count())

	var want []int
	for i := 45; i < 60; i++ {
		want = append(want, i)
	}
	everything := geometry.BoxRegion(geometry.NewBox(geometry.NewPoint(0, 0, 0), geometry.NewPoint(10, 10, 10)))
	assert.Equal(t, want, collect(t, idx, everything))

	idx.Clear()
	assert.Equal(t, 0, idx.Count())
	assert.Empty(t, collect(t, idx, everything))
	assert.False(t, idx.Insert(geometry.EmptyBox(), 1))
}

func TestIndex_KNearest(t *testing.T) {
	r := rand.New(rand.NewPCG(35, 36))
	points := randomPoints(r, 200)
	idx, err := NewFromPoints(points)
	require.NoError(t, err)

	q := geometry.NewPoint(5, 5, 5)
	seq, err := bruteforce.KNeighbors(points, slices.Values([]geometry.Point{q}), 7)
	require.NoError(t, err)
	for want := range seq {
		assert.Equal(t, want, idx.KNearest(q, 7))
	}
}

func TestIndex_MarshalBinary(t *testing.T) {
	points := randomPoints(rand.New(rand.NewPCG(37, 38)), 25)
	idx, err := NewFromPoints(points)
	require.NoError(t, err)
	require.True(t, idx.Remove(geometry.BoxFromPoint(points[3]), 3))

	data, err := idx.MarshalBinary()
	require.NoError(t, err)
	restored := New()
	require.NoError(t, restored.UnmarshalBinary(data))
	assert.Equal(t, 24, restored.Count())

	everything := geometry.BoxRegion(geometry.NewBox(geometry.NewPoint(0, 0, 0), geometry.NewPoint(10, 10, 10)))
	assert.Equal(t, collect(t, idx, everything), collect(t, restored, everything))
	assert.Error(t, restored.UnmarshalBinary([]byte{0, 1}))
}
