package finder

import (
	"context"
	"fmt"
	"iter"
	"math"

	"github.com/viant/proximity/geometry"
	"github.com/viant/proximity/index"
	"github.com/viant/proximity/internal/order"
	"github.com/viant/proximity/metrics"
)

// KNearestFinder finds, for each needle, the k nearest haystack points.
type KNearestFinder struct {
	finder
	k int
}

// NewKNearestFinder returns a finder over idx, whose element i must be stored
// at points[i]. The index is borrowed: Close never clears or closes it.
func NewKNearestFinder(idx index.SpatialIndex, points []geometry.Point, k int, opts ...Option) (*KNearestFinder, error) {
	const op = "NewKNearestFinder"
	if k < 0 {
		return nil, precondition(op, ErrInvalidK, "k %d", k)
	}
	if idx == nil {
		return nil, precondition(op, ErrNilIndex, "index is required")
	}
	if count := idx.Count(); count < k {
		return nil, precondition(op, ErrInsufficientPoints, "%d points, k %d", count, k)
	}
	base, err := newFinder(op, metrics.KindKNearest, idx, points, newOptions(opts))
	if err != nil {
		return nil, err
	}
	return &KNearestFinder{finder: base, k: k}, nil
}

// NewKNearestFinderFromPoints returns a finder over an R-tree it builds from
// points and releases on Close.
func NewKNearestFinderFromPoints(points []geometry.Point, k int, opts ...Option) (*KNearestFinder, error) {
	const op = "NewKNearestFinderFromPoints"
	if err := checkK(op, len(points), k); err != nil {
		return nil, err
	}
	o := newOptions(opts)
	tree, err := ownTree(op, points, o)
	if err != nil {
		return nil, err
	}
	base, err := newFinder(op, metrics.KindKNearest, tree, points, o)
	if err != nil {
		_ = tree.Close()
		return nil, err
	}
	base.owned = tree
	return &KNearestFinder{finder: base, k: k}, nil
}

func checkK(op string, count, k int) error {
	if k < 0 {
		return precondition(op, ErrInvalidK, "k %d", k)
	}
	if count < k {
		return precondition(op, ErrInsufficientPoints, "%d points, k %d", count, k)
	}
	return nil
}

// K returns the number of neighbors found per needle.
func (f *KNearestFinder) K() int { return f.k }

// Neighbors yields, per needle, the ids of the k nearest points sorted by
// distance, then id. For k = 0 it yields an empty slice per needle without
// searching.
func (f *KNearestFinder) Neighbors(ctx context.Context, needles iter.Seq[geometry.Point]) iter.Seq2[[]int, error] {
	return f.enumerate(ctx, needles, f.query)
}

func (f *KNearestFinder) query() queryFunc {
	set := order.NewBoundedSet(f.k)
	return func(ctx context.Context, n int, needle geometry.Point, st *stats) ([]int, error) {
		if f.k == 0 {
			return []int{}, nil
		}
		set.Reset()
		seed := 0.0
		for id := 0; id < f.k; id++ {
			seed = math.Max(seed, geometry.SquaredDistance(needle, f.points[id]))
		}
		eps := f.opts.epsilon
		sphere := geometry.NewSphere(needle, pad(math.Sqrt(seed), eps))
		ok := f.idx.Search(ctx, geometry.SphereRegion(sphere), func(e *index.Event) {
			st.candidates++
			id := e.ID()
			if id < 0 || id >= len(f.points) {
				return
			}
			item := order.Item{ID: id, Distance: geometry.SquaredDistance(needle, f.points[id])}
			if !set.Full() {
				set.Offer(item)
				return
			}
			if !set.Offer(item) {
				return
			}
			top, _ := set.Max()
			current, ok := e.SearchSphere()
			if !ok {
				return
			}
			if radius := pad(math.Sqrt(top.Distance), eps); radius < current.Radius {
				current.Radius = radius
				if e.SetSearchSphere(current) {
					st.shrinks++
				}
			}
		}, nil)
		if !ok {
			return nil, incomplete(ctx, n)
		}
		if set.Len() != f.k {
			return nil, &SearchIncompleteError{Needle: n, cause: fmt.Errorf("%w: found %d of %d", ErrShortResult, set.Len(), f.k)}
		}
		return order.IDs(set.Sorted()), nil
	}
}

// pad widens radius r by eps relative to its magnitude, so the sphere keeps
// every point at distance r once r is large enough for eps to fall below its
// precision.
func pad(r, eps float64) float64 {
	return r + eps*math.Max(1, r)
}
