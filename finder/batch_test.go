package finder

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/proximity/geometry"
	"github.com/viant/proximity/index/rtree"
)

func TestBatchKNearest(t *testing.T) {
	r := rand.New(rand.NewPCG(51, 52))
	points := gridPoints(r, 300)
	queries := gridPoints(r, 37)
	for name, idx := range indexes(t, points) {
		got, err := BatchKNearest(context.Background(), idx, points, queries, 5, 4)
		require.NoError(t, err, name)
		require.Len(t, got, len(queries))
		for i, q := range queries {
			assert.Equal(t, bruteKNearest(points, q, 5), got[i], "%s needle %d", name, i)
		}
	}
}

func TestBatchRange(t *testing.T) {
	r := rand.New(rand.NewPCG(53, 54))
	points := gridPoints(r, 300)
	queries := gridPoints(r, 23)
	idx, err := rtree.NewFromPoints(points)
	require.NoError(t, err)

	for _, workers := range []int{0, 1, 3, 100} {
		got, err := BatchRange(context.Background(), idx, points, queries, 2, workers)
		require.NoError(t, err)
		require.Len(t, got, len(queries))
		for i, q := range queries {
			assert.Equal(t, bruteRange(points, q, 2), got[i], "workers %d needle %d", workers, i)
		}
	}

	empty, err := BatchRange(context.Background(), idx, points, nil, 2, 2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestBatch_Errors(t *testing.T) {
	points := gridPoints(rand.New(rand.NewPCG(55, 56)), 50)
	queries := make([]geometry.Point, 10)
	for i := range queries {
		queries[i] = geometry.NewPoint(float64(i), 0, 0)
	}
	bad := queries[7]
	idx := &searchCounter{SpatialIndex: mustBruteForce(t, points), fail: func(region geometry.Region) bool {
		s, _ := region.Sphere()
		return s.Center == bad
	}}

	_, err := BatchKNearest(context.Background(), idx, points, queries, 3, 3)
	require.ErrorIs(t, err, ErrSearchIncomplete)
	var incomplete *SearchIncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, 7, incomplete.Needle, "needle positions are reported across chunks")

	_, err = BatchKNearest(context.Background(), idx, points, queries, 51, 2)
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	_, err = BatchRange(context.Background(), idx, points, queries, -1, 2)
	assert.ErrorIs(t, err, ErrNegativeDistance)
}
