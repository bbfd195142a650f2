package rtree

import (
	"context"
	"math"

	"github.com/viant/proximity/geometry"
	"github.com/viant/proximity/index"
	"github.com/viant/proximity/internal/session"
)

// Search reports every element whose bounds intersect region.
func (t *Tree) Search(ctx context.Context, region geometry.Region, callback index.Callback, tag any) bool {
	if t.closed || !region.IsValid() {
		return false
	}
	return session.Search(ctx, region, callback, tag, t.Traverse)
}

// Traverse visits the elements intersecting the region of sc, passing each to
// proc. The region is re-read before every bounds test.
func (t *Tree) Traverse(sc *index.SearchContext, proc index.SearchProc) bool {
	if t.closed {
		return false
	}
	return t.traverse(t.root, sc, proc)
}

func (t *Tree) traverse(n *node, sc *index.SearchContext, proc index.SearchProc) bool {
	for i := range n.entries {
		e := &n.entries[i]
		if !sc.Region().Intersects(e.bounds) {
			continue
		}
		if n.leaf {
			if !proc(sc.Serial(), index.Single(e.id), sc) {
				return false
			}
			continue
		}
		if !t.traverse(e.child, sc, proc) {
			return false
		}
	}
	return true
}

// SearchOverlaps reports every pair of elements, one from a and one from b,
// whose bounds lie within tolerance of each other. Candidates are
// index.Pair(idA, idB); events carry no search region.
func SearchOverlaps(ctx context.Context, a, b *Tree, tolerance float64, callback index.Callback) bool {
	if a == nil || b == nil || a.closed || b.closed {
		return false
	}
	if !(tolerance >= 0) || math.IsInf(tolerance, 1) {
		return false
	}
	limit := tolerance * tolerance
	return session.Search(ctx, geometry.Region{}, callback, nil, func(sc *index.SearchContext, proc index.SearchProc) bool {
		if a.count == 0 || b.count == 0 {
			return true
		}
		rootA := entry{bounds: a.root.bounds(), child: a.root}
		rootB := entry{bounds: b.root.bounds(), child: b.root}
		return overlaps(&rootA, &rootB, limit, sc.Serial(), proc)
	})
}

func overlaps(ea, eb *entry, limit float64, serial uint64, proc index.SearchProc) bool {
	if ea.bounds.SquaredDistanceToBox(eb.bounds) > limit {
		return true
	}
	switch {
	case ea.child == nil && eb.child == nil:
		return proc(serial, index.Pair(ea.id, eb.id), nil)
	case ea.child != nil:
		for i := range ea.child.entries {
			if !overlaps(&ea.child.entries[i], eb, limit, serial, proc) {
				return false
			}
		}
	default:
		for i := range eb.child.entries {
			if !overlaps(ea, &eb.child.entries[i], limit, serial, proc) {
				return false
			}
		}
	}
	return true
}
