package finder

import (
	"context"
	"io"
	"iter"
	"time"

	"github.com/viant/proximity/geometry"
	"github.com/viant/proximity/index"
	"github.com/viant/proximity/index/rtree"
	"github.com/viant/proximity/internal/session"
)

// newTree builds the R-tree owned by finders constructed from raw points.
var newTree = rtree.NewFromPoints

// stats describes the work done for one needle.
type stats struct {
	candidates int
	shrinks    int
}

// queryFunc answers a single needle, the n-th of the enumeration.
type queryFunc func(ctx context.Context, n int, needle geometry.Point, st *stats) ([]int, error)

// newQueryFunc returns a query with its own scratch state, one per
// enumeration.
type newQueryFunc func() queryFunc

// finder holds what both finders share: the index, the haystack, and an
// optionally owned index released by Close.
type finder struct {
	kind   string
	idx    index.SpatialIndex
	points []geometry.Point
	owned  io.Closer
	closed bool
	opts   options
}

func newFinder(op, kind string, idx index.SpatialIndex, points []geometry.Point, opts options) (finder, error) {
	if idx == nil {
		return finder{}, precondition(op, ErrNilIndex, "index is required")
	}
	if count := idx.Count(); len(points) < count {
		return finder{}, precondition(op, ErrPointsMismatch, "%d points for %d indexed elements", len(points), count)
	}
	return finder{kind: kind, idx: idx, points: points, opts: opts}, nil
}

// ownTree builds an R-tree over points for a finder to own.
func ownTree(op string, points []geometry.Point, opts options) (*rtree.Tree, error) {
	if err := checkPoints(op, points); err != nil {
		return nil, err
	}
	return newTree(points, opts.treeOptions...)
}

// Close releases the owned index, if any. Subsequent enumerations fail with
// ErrDisposed.
func (f *finder) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.points = nil
	if f.owned != nil {
		return f.owned.Close()
	}
	return nil
}

// enumerate runs query for each needle in order, yielding its result. The
// enumeration stops at the first error, after yielding it. Every enumeration
// searches with its own session registry unless ctx already carries one.
func (f *finder) enumerate(ctx context.Context, needles iter.Seq[geometry.Point], newQuery newQueryFunc) iter.Seq2[[]int, error] {
	return func(yield func([]int, error) bool) {
		if f.closed {
			yield(nil, ErrDisposed)
			return
		}
		if needles == nil {
			return
		}
		ctx, _ := session.Ensure(ctx)
		query := newQuery()
		logger := f.opts.logger
		n := 0
		for needle := range needles {
			if f.closed {
				yield(nil, ErrDisposed)
				return
			}
			var st stats
			start := time.Now()
			ids, err := query(ctx, n, needle, &st)
			f.opts.metrics.RecordQuery(f.kind, st.candidates, st.shrinks, len(ids), time.Since(start), err)
			if err != nil {
				logger.Error("search incomplete", "kind", f.kind, "needle", n, "error", err)
				yield(nil, err)
				return
			}
			logger.Debug("query", "kind", f.kind, "needle", n, "candidates", st.candidates, "shrinks", st.shrinks, "results", len(ids))
			if !yield(ids, nil) {
				return
			}
			n++
		}
	}
}

func incomplete(ctx context.Context, n int) error {
	return &SearchIncompleteError{Needle: n, cause: ctx.Err()}
}
