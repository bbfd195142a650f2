package cover

import (
	"context"

	"github.com/viant/proximity/geometry"
	"github.com/viant/proximity/index"
	"github.com/viant/proximity/index/bruteforce"
	covtree "github.com/viant/proximity/internal/cover/tree"
	"github.com/viant/proximity/internal/session"
)

var _ index.SpatialIndex = (*Index)(nil)

// DefaultBase is the level base used when none, or an invalid one, is given.
const DefaultBase = covtree.DefaultBase

// Index implements index.SpatialIndex with a cover tree.
type Index struct {
	tree *covtree.Tree
	base float64
}

// Option configures an Index.
type Option func(*Index)

// WithBase sets the cover tree level base (must be greater than 1).
func WithBase(base float64) Option {
	return func(i *Index) { i.base = base }
}

// New returns an empty index.
func New(opts ...Option) *Index {
	i := &Index{base: DefaultBase}
	for _, opt := range opts {
		opt(i)
	}
	i.tree = covtree.NewTree(i.base)
	i.base = i.tree.Base()
	return i
}

// NewFromPoints returns an index holding points[i] under id i.
func NewFromPoints(points []geometry.Point, opts ...Option) (*Index, error) {
	i := New(opts...)
	if err := i.Build(points); err != nil {
		return nil, err
	}
	return i, nil
}

// Build replaces the contents of the index with points[i] under id i.
func (i *Index) Build(points []geometry.Point) error {
	bf := &bruteforce.Index{}
	if err := bf.Build(points); err != nil {
		return err
	}
	i.load(bf)
	return nil
}

func (i *Index) load(bf *bruteforce.Index) {
	i.tree.Clear()
	bf.Entries(func(bounds geometry.Box, id int) {
		i.tree.Insert(covtree.NewItem(id, bounds))
	})
}

// Base returns the level base of the cover tree.
func (i *Index) Base() float64 { return i.base }

// Count returns the number of stored elements.
func (i *Index) Count() int { return i.tree.Len() }

// Insert stores id under bounds.
func (i *Index) Insert(bounds geometry.Box, id int) bool {
	if bounds.IsEmpty() || !geometry.IsValid(bounds.Min()) || !geometry.IsValid(bounds.Max()) {
		return false
	}
	i.tree.Insert(covtree.NewItem(id, bounds))
	return true
}

// Remove deletes one element stored under exactly bounds and id.
func (i *Index) Remove(bounds geometry.Box, id int) bool {
	return i.tree.Remove(func(item *covtree.Item) bool { return item.Bounds == bounds }, id)
}

// Clear removes all elements.
func (i *Index) Clear() { i.tree.Clear() }

// Search reports every element whose bounds intersect region.
func (i *Index) Search(ctx context.Context, region geometry.Region, callback index.Callback, tag any) bool {
	if !region.IsValid() {
		return false
	}
	return session.Search(ctx, region, callback, tag, i.Traverse)
}

// Traverse visits the elements intersecting the current region of sc,
// nearest subtrees first.
func (i *Index) Traverse(sc *index.SearchContext, proc index.SearchProc) bool {
	return i.tree.Search(sc.Region, func(item *covtree.Item) bool {
		return proc(sc.Serial(), index.Single(item.ID), sc)
	})
}

// KNearest returns the ids of the k elements whose bounds lie nearest to p,
// nearest first, ties by id. It walks the tree directly instead of shrinking
// a search sphere.
func (i *Index) KNearest(p geometry.Point, k int) []int {
	neighbors := i.tree.KNearestNeighbors(p, k)
	ids := make([]int, len(neighbors))
	for j, n := range neighbors {
		ids[j] = n.Item.ID
	}
	return ids
}

// MarshalBinary uses the brute-force format for persistence.
func (i *Index) MarshalBinary() ([]byte, error) {
	bf := &bruteforce.Index{}
	i.tree.Items(func(item *covtree.Item) {
		bf.Insert(item.Bounds, item.ID)
	})
	return bf.MarshalBinary()
}

// UnmarshalBinary loads brute-force format and rebuilds the cover tree.
func (i *Index) UnmarshalBinary(data []byte) error {
	bf := &bruteforce.Index{}
	if err := bf.UnmarshalBinary(data); err != nil {
		return err
	}
	i.load(bf)
	return nil
}
