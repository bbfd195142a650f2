package finder

import (
	"context"
	"iter"
	"math"
	"slices"

	"github.com/viant/proximity/geometry"
	"github.com/viant/proximity/index"
	"github.com/viant/proximity/internal/order"
	"github.com/viant/proximity/metrics"
)

// RangeFinder finds, for each needle, every haystack point within a fixed
// distance.
type RangeFinder struct {
	finder
	distance float64
}

// NewRangeFinder returns a finder over idx, whose element i must be stored at
// points[i]. The index is borrowed: Close never clears or closes it.
func NewRangeFinder(idx index.SpatialIndex, points []geometry.Point, distance float64, opts ...Option) (*RangeFinder, error) {
	const op = "NewRangeFinder"
	if err := checkDistance(op, distance); err != nil {
		return nil, err
	}
	base, err := newFinder(op, metrics.KindRange, idx, points, newOptions(opts))
	if err != nil {
		return nil, err
	}
	return &RangeFinder{finder: base, distance: distance}, nil
}

// NewRangeFinderFromPoints returns a finder over an R-tree it builds from
// points and releases on Close.
func NewRangeFinderFromPoints(points []geometry.Point, distance float64, opts ...Option) (*RangeFinder, error) {
	const op = "NewRangeFinderFromPoints"
	if err := checkDistance(op, distance); err != nil {
		return nil, err
	}
	o := newOptions(opts)
	tree, err := ownTree(op, points, o)
	if err != nil {
		return nil, err
	}
	base, err := newFinder(op, metrics.KindRange, tree, points, o)
	if err != nil {
		_ = tree.Close()
		return nil, err
	}
	base.owned = tree
	return &RangeFinder{finder: base, distance: distance}, nil
}

func checkDistance(op string, distance float64) error {
	if math.IsNaN(distance) || math.IsInf(distance, 0) || distance < 0 {
		return precondition(op, ErrNegativeDistance, "distance %v", distance)
	}
	return nil
}

// Distance returns the search distance.
func (f *RangeFinder) Distance() float64 { return f.distance }

// Neighbors yields, per needle, the ids of all points within the distance,
// sorted by distance, then id.
func (f *RangeFinder) Neighbors(ctx context.Context, needles iter.Seq[geometry.Point]) iter.Seq2[[]int, error] {
	return f.enumerate(ctx, needles, f.query)
}

func (f *RangeFinder) query() queryFunc {
	var scratch []int
	return func(ctx context.Context, n int, needle geometry.Point, st *stats) ([]int, error) {
		scratch = scratch[:0]
		sphere := geometry.NewSphere(needle, f.distance)
		ok := f.idx.Search(ctx, geometry.SphereRegion(sphere), func(e *index.Event) {
			scratch = append(scratch, e.ID())
		}, nil)
		st.candidates = len(scratch)
		if !ok {
			return nil, incomplete(ctx, n)
		}
		limit := f.distance * f.distance
		items := make([]order.Item, 0, len(scratch))
		for _, id := range scratch {
			if id < 0 || id >= len(f.points) {
				continue
			}
			d := geometry.SquaredDistance(needle, f.points[id])
			if d <= limit {
				items = append(items, order.Item{ID: id, Distance: d})
			}
		}
		order.Sort(items)
		items = slices.Compact(items)
		return order.IDs(items), nil
	}
}
