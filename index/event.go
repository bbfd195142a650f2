package index

import (
	"context"

	"github.com/viant/proximity/geometry"
)

// Event is passed to a Callback for every element found by a search.
type Event struct {
	// Candidate is the element, or pair of elements, that was found.
	Candidate Candidate

	// Cancel stops the search when set by the callback.
	Cancel bool

	// Tag is caller state that sticks through a single search. Changes made
	// by the callback are seen by the next invocation.
	Tag any

	ctx context.Context
	sc  *SearchContext
}

// NewEvent returns an event for candidate, bound to the traversal state sc
// (nil for pair searches).
func NewEvent(ctx context.Context, candidate Candidate, tag any, sc *SearchContext) *Event {
	return &Event{Candidate: candidate, Tag: tag, ctx: ctx, sc: sc}
}

// ID returns the element id, or the first id of a pair.
func (e *Event) ID() int { return e.Candidate.ID() }

// Context returns the context of the search. Searches started from inside a
// callback should use it so they share the session registry of the outer
// search.
func (e *Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// SearchSphere returns the sphere being searched. It reports false for box
// and pair searches.
func (e *Event) SearchSphere() (geometry.Sphere, bool) {
	if e.sc == nil {
		return geometry.Sphere{}, false
	}
	return e.sc.Region().Sphere()
}

// SetSearchSphere narrows the sphere for the rest of the search. It reports
// false for box and pair searches.
func (e *Event) SetSearchSphere(s geometry.Sphere) bool {
	return e.sc.SetSphere(s)
}

// SearchBox returns the box being searched. It reports false for sphere and
// pair searches.
func (e *Event) SearchBox() (geometry.Box, bool) {
	if e.sc == nil {
		return geometry.Box{}, false
	}
	return e.sc.Region().Box()
}

// SetSearchBox narrows the box for the rest of the search. It reports false
// for sphere and pair searches.
func (e *Event) SetSearchBox(b geometry.Box) bool {
	return e.sc.SetBox(b)
}
