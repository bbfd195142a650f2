package bruteforce

import (
	"context"
	"slices"

	"github.com/viant/proximity/geometry"
	"github.com/viant/proximity/index"
	"github.com/viant/proximity/internal/session"
)

var _ index.SpatialIndex = (*Index)(nil)

// Index is a brute-force spatial index. Elements are scanned in insertion
// order.
type Index struct {
	entries []entry
}

type entry struct {
	bounds geometry.Box
	id     int
}

// New returns an empty index.
func New() *Index {
	return &Index{}
}

// NewFromPoints returns an index holding points[i] under id i.
func NewFromPoints(points []geometry.Point) (*Index, error) {
	i := New()
	if err := i.Build(points); err != nil {
		return nil, err
	}
	return i, nil
}

// Build replaces the contents of the index with points[i] under id i.
func (i *Index) Build(points []geometry.Point) error {
	entries := make([]entry, len(points))
	for j, p := range points {
		if !geometry.IsValid(p) {
			return invalidPointError(j, p)
		}
		entries[j] = entry{bounds: geometry.BoxFromPoint(p), id: j}
	}
	i.entries = entries
	return nil
}

// Count returns the number of stored elements.
func (i *Index) Count() int { return len(i.entries) }

// Insert stores id under bounds.
func (i *Index) Insert(bounds geometry.Box, id int) bool {
	if bounds.IsEmpty() || !geometry.IsValid(bounds.Min()) || !geometry.IsValid(bounds.Max()) {
		return false
	}
	i.entries = append(i.entries, entry{bounds: bounds, id: id})
	return true
}

// Remove deletes the first element stored under exactly bounds and id.
func (i *Index) Remove(bounds geometry.Box, id int) bool {
	at := slices.IndexFunc(i.entries, func(e entry) bool {
		return e.id == id && e.bounds == bounds
	})
	if at < 0 {
		return false
	}
	i.entries = slices.Delete(i.entries, at, at+1)
	return true
}

// Clear removes all elements.
func (i *Index) Clear() {
	i.entries = nil
}

// Search reports every element whose bounds intersect region.
func (i *Index) Search(ctx context.Context, region geometry.Region, callback index.Callback, tag any) bool {
	if !region.IsValid() {
		return false
	}
	return session.Search(ctx, region, callback, tag, i.Traverse)
}

// Traverse scans every element against the current region of sc.
func (i *Index) Traverse(sc *index.SearchContext, proc index.SearchProc) bool {
	for j := range i.entries {
		e := &i.entries[j]
		if !sc.Region().Intersects(e.bounds) {
			continue
		}
		if !proc(sc.Serial(), index.Single(e.id), sc) {
			return false
		}
	}
	return true
}

// Entries calls fn with the bounds and id of every element, in insertion
// order.
func (i *Index) Entries(fn func(bounds geometry.Box, id int)) {
	for _, e := range i.entries {
		fn(e.bounds, e.id)
	}
}
