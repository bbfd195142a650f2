package finder

import (
	"context"
	"iter"

	"github.com/viant/proximity/geometry"
)

// ClosestPoints yields, per needle, the ids of all haystack points within
// distance. Each enumeration builds its own R-tree and releases it when the
// enumeration ends, however it ends. Invalid arguments are reported before
// anything is built.
func ClosestPoints(ctx context.Context, haystack []geometry.Point, needles iter.Seq[geometry.Point], distance float64, opts ...Option) (iter.Seq2[[]int, error], error) {
	const op = "ClosestPoints"
	if err := checkDistance(op, distance); err != nil {
		return nil, err
	}
	if err := checkPoints(op, haystack); err != nil {
		return nil, err
	}
	return func(yield func([]int, error) bool) {
		f, err := NewRangeFinderFromPoints(haystack, distance, opts...)
		if err != nil {
			yield(nil, err)
			return
		}
		defer f.Close()
		for ids, err := range f.Neighbors(ctx, needles) {
			if !yield(ids, err) {
				return
			}
		}
	}, nil
}

// KNeighbors yields, per needle, the ids of the k nearest haystack points.
// Each enumeration builds its own R-tree and releases it when the
// enumeration ends, however it ends. Invalid arguments, including a haystack
// smaller than k, are reported before anything is built.
func KNeighbors(ctx context.Context, haystack []geometry.Point, needles iter.Seq[geometry.Point], k int, opts ...Option) (iter.Seq2[[]int, error], error) {
	const op = "KNeighbors"
	if err := checkK(op, len(haystack), k); err != nil {
		return nil, err
	}
	if err := checkPoints(op, haystack); err != nil {
		return nil, err
	}
	return func(yield func([]int, error) bool) {
		f, err := NewKNearestFinderFromPoints(haystack, k, opts...)
		if err != nil {
			yield(nil, err)
			return
		}
		defer f.Close()
		for ids, err := range f.Neighbors(ctx, needles) {
			if !yield(ids, err) {
				return
			}
		}
	}, nil
}

func checkPoints(op string, points []geometry.Point) error {
	for i, p := range points {
		if !geometry.IsValid(p) {
			return precondition(op, ErrInvalidPoint, "point %d: %v", i, p)
		}
	}
	return nil
}
