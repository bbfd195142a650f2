package index

import (
	"context"

	"github.com/viant/proximity/geometry"
)

// SpatialIndex is a bounding-volume index over element ids.
//
// Implementations are not safe for concurrent mutation. A Search must not
// run while Insert, Remove, or Clear is in progress.
type SpatialIndex interface {
	// Count returns the number of stored elements.
	Count() int

	// Insert stores id under bounds. It reports false when the element
	// cannot be stored (invalid bounds, closed index).
	Insert(bounds geometry.Box, id int) bool

	// Remove deletes one element stored under exactly bounds and id.
	Remove(bounds geometry.Box, id int) bool

	// Clear removes all elements.
	Clear()

	// Search invokes callback once per element whose bounds intersect
	// region. The callback may shrink the region, which takes effect for the
	// remainder of the traversal. tag is exposed as Event.Tag and carried
	// from one callback invocation to the next.
	//
	// Search returns true when the (possibly shrunk) region was traversed to
	// completion. It returns false when the callback cancelled, ctx is done,
	// or the region cannot be searched.
	Search(ctx context.Context, region geometry.Region, callback Callback, tag any) bool
}

// Callback receives search hits.
type Callback func(e *Event)

// SearchProc is the flat traversal callback of an index: a session serial,
// the candidate, and the mutable search context. It returns false to stop the
// traversal. Pair searches pass a nil context.
type SearchProc func(serial uint64, candidate Candidate, sc *SearchContext) bool
