package store

import (
	"github.com/viant/proximity/finder"
	"github.com/viant/proximity/geometry"
	"github.com/viant/proximity/index"
	"github.com/viant/proximity/index/rtree"
)

// DefaultName is the store name used when WithName is not given.
const DefaultName = "default"

// IndexBuilder builds a spatial index holding points[i] under id i.
type IndexBuilder func(points []geometry.Point) (index.SpatialIndex, error)

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithIndexBuilder sets how dataset indexes used by the proximity virtual
// table are built. The default builds an R-tree.
func WithIndexBuilder(builder IndexBuilder) Option {
	return func(s *SQLiteStore) {
		if builder != nil {
			s.builder = builder
		}
	}
}

// WithFinderOptions sets the options passed to finders created for virtual
// table queries.
func WithFinderOptions(opts ...finder.Option) Option {
	return func(s *SQLiteStore) {
		s.finderOptions = append(s.finderOptions, opts...)
	}
}

func buildRTree(points []geometry.Point) (index.SpatialIndex, error) {
	tree, err := rtree.NewFromPoints(points)
	if err != nil {
		return nil, err
	}
	return tree, nil
}

// WithName sets the name proximity virtual tables use to find the store. The
// last store created under a name serves it.
func WithName(name string) Option {
	return func(s *SQLiteStore) {
		if name != "" {
			s.name = name
		}
	}
}
