package finder

import (
	"context"
	"errors"
	"iter"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/viant/proximity/geometry"
	"github.com/viant/proximity/index"
	"github.com/viant/proximity/internal/session"
)

// BatchKNearest answers k-nearest queries for all needles on up to workers
// goroutines (GOMAXPROCS when workers < 1). Results are in needle order. The
// index must not be modified while the batch runs.
func BatchKNearest(ctx context.Context, idx index.SpatialIndex, points []geometry.Point, needles []geometry.Point, k, workers int, opts ...Option) ([][]int, error) {
	f, err := NewKNearestFinder(idx, points, k, opts...)
	if err != nil {
		return nil, err
	}
	return batch(ctx, needles, workers, f.Neighbors)
}

// BatchRange answers range queries for all needles on up to workers
// goroutines (GOMAXPROCS when workers < 1). Results are in needle order. The
// index must not be modified while the batch runs.
func BatchRange(ctx context.Context, idx index.SpatialIndex, points []geometry.Point, needles []geometry.Point, distance float64, workers int, opts ...Option) ([][]int, error) {
	f, err := NewRangeFinder(idx, points, distance, opts...)
	if err != nil {
		return nil, err
	}
	return batch(ctx, needles, workers, f.Neighbors)
}

// batch splits needles into one contiguous chunk per worker. Each worker
// enumerates with its own session registry.
func batch(ctx context.Context, needles []geometry.Point, workers int,
	neighbors func(context.Context, iter.Seq[geometry.Point]) iter.Seq2[[]int, error]) ([][]int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([][]int, len(needles))
	if len(needles) == 0 {
		return results, nil
	}
	chunk := (len(needles) + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < len(needles); start += chunk {
		end := min(start+chunk, len(needles))
		g.Go(func() error {
			wctx := session.NewContext(gctx, session.New())
			n := start
			for ids, err := range neighbors(wctx, slices.Values(needles[start:end])) {
				if err != nil {
					var incomplete *SearchIncompleteError
					if errors.As(err, &incomplete) {
						incomplete.Needle += start
					}
					return err
				}
				results[n] = ids
				n++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
