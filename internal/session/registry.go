// Package session bridges the flat SearchProc traversal primitive of the
// spatial indexes to caller closures.
//
// A search registers its callback and tag under a fresh serial, the index
// traverses with that serial, and every hit is dispatched back to the
// registered callback. Registries are confined to one goroutine and travel in
// the context, so a search started from inside a callback reuses the registry
// of the outer search and receives its own serial.
package session

import (
	"context"
	"errors"
	"math"

	"github.com/viant/proximity/index"
)

// ErrSerialExhausted is returned when a registry has handed out every serial.
var ErrSerialExhausted = errors.New("session: serial numbers exhausted")

type record struct {
	serial   uint64
	callback index.Callback
	tag      any
	ctx      context.Context
}

// Registry maps live search serials to their callbacks. It is not safe for
// concurrent use.
type Registry struct {
	last    uint64
	records map[uint64]*record
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{records: make(map[uint64]*record)}
}

// Begin registers callback and tag and returns the serial of the new session.
func (r *Registry) Begin(ctx context.Context, callback index.Callback, tag any) (uint64, error) {
	if r.last == math.MaxUint64 {
		return 0, ErrSerialExhausted
	}
	if ctx == nil {
		ctx = context.Background()
	}
	r.last++
	r.records[r.last] = &record{serial: r.last, callback: callback, tag: tag, ctx: ctx}
	return r.last, nil
}

// Dispatch delivers candidate to the session registered under serial and
// reports whether the traversal should continue. Unknown serials continue.
func (r *Registry) Dispatch(serial uint64, candidate index.Candidate, sc *index.SearchContext) bool {
	rec, ok := r.records[serial]
	if !ok || rec.callback == nil {
		return true
	}
	if rec.ctx.Err() != nil {
		return false
	}
	e := index.NewEvent(rec.ctx, candidate, rec.tag, sc)
	rec.callback(e)
	rec.tag = e.Tag
	if e.Cancel {
		return false
	}
	return rec.ctx.Err() == nil
}

// End removes the session registered under serial. Ending an unknown serial
// is a no-op.
func (r *Registry) End(serial uint64) {
	delete(r.records, serial)
}

// Run registers a session for the duration of traverse. The session is ended
// when traverse returns or panics.
func (r *Registry) Run(ctx context.Context, callback index.Callback, tag any, traverse func(serial uint64) bool) (bool, error) {
	serial, err := r.Begin(ctx, callback, tag)
	if err != nil {
		return false, err
	}
	defer r.End(serial)
	return traverse(serial), nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	return len(r.records)
}
