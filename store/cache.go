package store

import (
	"context"
	"io"

	"github.com/viant/proximity/geometry"
	"github.com/viant/proximity/index"
)

// cached is a dataset index shared by proximity queries. refs and evicted are
// guarded by the store mutex; the index is closed once it is evicted and no
// query holds it.
type cached struct {
	idx     index.SpatialIndex
	points  []geometry.Point
	refs    int
	evicted bool
}

// dataset returns the index and points of name, building and caching them on
// first use, and holds the entry until release is called. A save or remove
// that lands while the index is built keeps the stale result out of the
// cache.
func (s *SQLiteStore) dataset(ctx context.Context, name string) (entry *cached, release func(), err error) {
	s.mu.Lock()
	entry = s.cache[name]
	generation := s.generation
	if entry != nil {
		entry.refs++
	}
	s.mu.Unlock()
	if entry != nil {
		return entry, func() { s.release(entry) }, nil
	}

	points, err := s.LoadPoints(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	idx, err := s.builder(points)
	if err != nil {
		return nil, nil, err
	}
	entry = &cached{idx: idx, points: points, refs: 1}

	s.mu.Lock()
	if s.generation == generation {
		if prev := s.cache[name]; prev != nil {
			s.evict(prev)
		}
		s.cache[name] = entry
	} else {
		entry.evicted = true
	}
	s.mu.Unlock()
	return entry, func() { s.release(entry) }, nil
}

func (s *SQLiteStore) release(entry *cached) {
	s.mu.Lock()
	entry.refs--
	closeNow := entry.evicted && entry.refs == 0
	s.mu.Unlock()
	if closeNow {
		closeIndex(entry.idx)
	}
}

// evict marks entry evicted, closing it when no query holds it. The caller
// holds s.mu.
func (s *SQLiteStore) evict(entry *cached) {
	entry.evicted = true
	if entry.refs == 0 {
		closeIndex(entry.idx)
	}
}

func closeIndex(idx index.SpatialIndex) {
	if closer, ok := idx.(io.Closer); ok {
		_ = closer.Close()
	}
}

// Invalidate drops the cached index of dataset name so the next proximity
// query rebuilds it. The evicted index is closed once no query uses it.
// Writes made through the store invalidate on their own; call it after
// changing the points table directly.
func (s *SQLiteStore) Invalidate(name string) {
	s.mu.Lock()
	if entry := s.cache[name]; entry != nil {
		delete(s.cache, name)
		s.evict(entry)
	}
	s.generation++
	s.mu.Unlock()
}
