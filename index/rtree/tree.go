package rtree

import (
	"fmt"

	"github.com/viant/proximity/geometry"
	"github.com/viant/proximity/index"
)

const (
	// DefaultMaxEntries is the default node fan-out.
	DefaultMaxEntries = 8
	// DefaultMinEntries is the default minimum fill of a non-root node.
	DefaultMinEntries = 3
)

var _ index.SpatialIndex = (*Tree)(nil)

// Tree is an in-memory R-tree mapping boxes to element ids.
type Tree struct {
	root       *node
	count      int
	height     int
	maxEntries int
	minEntries int
	closed     bool
}

type node struct {
	parent  *node
	leaf    bool
	entries []entry
}

// entry leads to a child node, or holds an element at the leaves.
type entry struct {
	bounds geometry.Box
	child  *node
	id     int
}

// Option configures a Tree.
type Option func(*Tree)

// WithMaxEntries sets the maximum number of entries per node (at least 4).
func WithMaxEntries(n int) Option {
	return func(t *Tree) { t.maxEntries = n }
}

// WithMinEntries sets the minimum number of entries per non-root node. It is
// capped at half the maximum.
func WithMinEntries(n int) Option {
	return func(t *Tree) { t.minEntries = n }
}

// New returns an empty tree.
func New(opts ...Option) *Tree {
	t := &Tree{maxEntries: DefaultMaxEntries, minEntries: DefaultMinEntries}
	for _, opt := range opts {
		opt(t)
	}
	if t.maxEntries < 4 {
		t.maxEntries = 4
	}
	if t.minEntries < 1 || t.minEntries > t.maxEntries/2 {
		t.minEntries = t.maxEntries / 2
	}
	t.reset()
	return t
}

// NewFromPoints returns a tree holding points[i] under id i.
func NewFromPoints(points []geometry.Point, opts ...Option) (*Tree, error) {
	t := New(opts...)
	for i, p := range points {
		if !t.Insert(geometry.BoxFromPoint(p), i) {
			return nil, fmt.Errorf("rtree: invalid point %d: %v", i, p)
		}
	}
	return t, nil
}

func (t *Tree) reset() {
	t.root = &node{leaf: true}
	t.count = 0
	t.height = 1
}

// Count returns the number of stored elements.
func (t *Tree) Count() int { return t.count }

// Height returns the number of node levels, 1 for a tree that is a single
// leaf.
func (t *Tree) Height() int {
	if t.closed {
		return 0
	}
	return t.height
}

// Bounds returns the box enclosing every stored element.
func (t *Tree) Bounds() geometry.Box {
	if t.closed {
		return geometry.EmptyBox()
	}
	return t.root.bounds()
}

// Clear removes all elements.
func (t *Tree) Clear() {
	if t.closed {
		return
	}
	t.reset()
}

// Close releases the tree. A closed tree is empty and rejects inserts and
// searches.
func (t *Tree) Close() error {
	t.closed = true
	t.root = nil
	t.count = 0
	t.height = 0
	return nil
}

func (n *node) bounds() geometry.Box {
	b := geometry.EmptyBox()
	for i := range n.entries {
		b = b.Union(n.entries[i].bounds)
	}
	return b
}

func (n *node) indexOf(child *node) int {
	for i := range n.entries {
		if n.entries[i].child == child {
			return i
		}
	}
	panic("rtree: child not found in parent")
}

func validBounds(b geometry.Box) bool {
	return !b.IsEmpty() && geometry.IsValid(b.Min()) && geometry.IsValid(b.Max())
}
