package session

import (
	"context"

	"github.com/viant/proximity/geometry"
	"github.com/viant/proximity/index"
)

type registryKey struct{}

// NewContext returns a copy of ctx carrying reg.
func NewContext(ctx context.Context, reg *Registry) context.Context {
	return context.WithValue(ctx, registryKey{}, reg)
}

// FromContext returns the registry carried by ctx, if any.
func FromContext(ctx context.Context) (*Registry, bool) {
	if ctx == nil {
		return nil, false
	}
	reg, ok := ctx.Value(registryKey{}).(*Registry)
	return reg, ok && reg != nil
}

// Ensure returns ctx and its registry, attaching a new registry when ctx
// carries none.
func Ensure(ctx context.Context) (context.Context, *Registry) {
	if ctx == nil {
		ctx = context.Background()
	}
	if reg, ok := FromContext(ctx); ok {
		return ctx, reg
	}
	reg := New()
	return NewContext(ctx, reg), reg
}

// Search runs one region search for an index: it registers callback and tag
// in the registry carried by ctx and hands traverse a search context and the
// dispatching SearchProc. It returns what traverse returns, or false when no
// session could be started or ctx is already done.
func Search(ctx context.Context, region geometry.Region, callback index.Callback, tag any,
	traverse func(sc *index.SearchContext, proc index.SearchProc) bool) bool {
	ctx, reg := Ensure(ctx)
	if ctx.Err() != nil {
		return false
	}
	ok, err := reg.Run(ctx, callback, tag, func(serial uint64) bool {
		return traverse(index.NewSearchContext(serial, region), reg.Dispatch)
	})
	return err == nil && ok
}
