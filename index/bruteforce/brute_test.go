package bruteforce

import (
	"context"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/proximity/geometry"
	"github.com/viant/proximity/index"
)

func search(t *testing.T, idx *Index, region geometry.Region) []int {
	t.Helper()
	var ids []int
	require.True(t, idx.Search(context.Background(), region, func(e *index.Event) {
		ids = append(ids, e.ID())
	}, nil))
	return ids
}

func TestIndex_SpatialIndex(t *testing.T) {
	idx, err := NewFromPoints([]geometry.Point{
		geometry.NewPoint(0, 0, 0),
		geometry.NewPoint(1, 0, 0),
		geometry.NewPoint(5, 0, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Count())

	unit := geometry.SphereRegion(geometry.NewSphere(geometry.Point{}, 1))
	assert.Equal(t, []int{0, 1}, search(t, idx, unit))

	assert.True(t, idx.Insert(geometry.NewBox(geometry.NewPoint(-2, -2, -2), geometry.NewPoint(-0.5, 0, 0)), 9))
	assert.Equal(t, []int{0, 1, 9}, search(t, idx, unit))

	assert.False(t, idx.Remove(geometry.BoxFromPoint(geometry.NewPoint(1, 0, 0)), 0))
	assert.True(t, idx.Remove(geometry.BoxFromPoint(geometry.NewPoint(1, 0, 0)), 1))
	assert.Equal(t, []int{0, 9}, search(t, idx, unit))

	assert.False(t, idx.Insert(geometry.EmptyBox(), 3))
	assert.False(t, idx.Search(context.Background(), geometry.Region{}, func(*index.Event) {}, nil))

	idx.Clear()
	assert.Equal(t, 0, idx.Count())
	assert.Empty(t, search(t, idx, unit))
}

func TestNewFromPoints_Invalid(t *testing.T) {
	_, err := NewFromPoints([]geometry.Point{geometry.NewPoint(math.Inf(1), 0, 0)})
	assert.Error(t, err)
}

func TestIndex_SearchShrinksBox(t *testing.T) {
	var points []geometry.Point
	for i := 0; i < 10; i++ {
		points = append(points, geometry.NewPoint(float64(i), 0, 0))
	}
	idx, err := NewFromPoints(points)
	require.NoError(t, err)

	var ids []int
	ok := idx.Search(context.Background(), geometry.BoxRegion(geometry.NewBox(geometry.NewPoint(0, -1, -1), geometry.NewPoint(9, 1, 1))), func(e *index.Event) {
		ids = append(ids, e.ID())
		b, ok := e.SearchBox()
		require.True(t, ok)
		if e.ID() == 2 {
			b.X.Hi = 4
			require.True(t, e.SetSearchBox(b))
		}
	}, nil)
	assert.True(t, ok)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, ids)
}

func TestIndex_MarshalBinary(t *testing.T) {
	idx := New()
	require.True(t, idx.Insert(geometry.BoxFromPoint(geometry.NewPoint(1, 2, 3)), 4))
	require.True(t, idx.Insert(geometry.NewBox(geometry.NewPoint(-1, -2, -3), geometry.NewPoint(4, 5, 6)), -7))

	data, err := idx.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, data, 4+2*entrySize)

	restored := New()
	require.NoError(t, restored.UnmarshalBinary(data))
	assert.Equal(t, idx.entries, restored.entries)

	empty, err := New().MarshalBinary()
	require.NoError(t, err)
	require.NoError(t, restored.UnmarshalBinary(empty))
	assert.Equal(t, 0, restored.Count())

	assert.Error(t, restored.UnmarshalBinary([]byte{1}))
	assert.Error(t, restored.UnmarshalBinary(data[:len(data)-1]))
}

func TestKNeighbors(t *testing.T) {
	haystack := []geometry.Point{
		geometry.NewPoint(3, 0, 0),
		geometry.NewPoint(1, 0, 0),
		geometry.NewPoint(-1, 0, 0),
		geometry.NewPoint(2, 0, 0),
		geometry.NewPoint(1, 0, 0),
	}
	needles := slices.Values([]geometry.Point{{}, geometry.NewPoint(3, 0, 0)})

	seq, err := KNeighbors(haystack, needles, 3)
	require.NoError(t, err)
	var got [][]int
	for ids := range seq {
		got = append(got, ids)
	}
	assert.Equal(t, [][]int{{1, 2, 4}, {0, 3, 1}}, got)

	seq, err = KNeighbors(haystack[:2], slices.Values([]geometry.Point{{}}), 4)
	require.NoError(t, err)
	for ids := range seq {
		assert.Equal(t, []int{1, 0, -1, -1}, ids)
	}

	_, err = KNeighbors(haystack, needles, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = KNeighbors([]geometry.Point{geometry.NewPoint(math.NaN(), 0, 0)}, needles, 1)
	assert.Error(t, err)
}

func TestKNeighbors32(t *testing.T) {
	haystack := []geometry.Point3f{{0, 0, 0}, {4, 0, 0}, {1, 1, 0}, {0, 0, 2}}
	seq, err := KNeighbors32(haystack, slices.Values([]geometry.Point3f{{3, 0, 0}}), 2)
	require.NoError(t, err)
	for ids := range seq {
		assert.Equal(t, []int{1, 2}, ids)
	}
}
