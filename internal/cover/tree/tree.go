package tree

// This implementation is adapted from github.com/viant/gds/tree/cover.

import (
	"math"
)

// DefaultBase is the level base used when none, or an invalid one, is given.
const DefaultBase = 1.3

// Tree is a cover tree over item centres. Cover radii are kept exact on
// insert, so searches never modify the tree.
type Tree struct {
	root       *Node
	base       float64
	items      map[int][]*Item
	live       int
	tombstones int
}

// NewTree constructs a cover tree with the provided base.
func NewTree(base float64) *Tree {
	if !(base > 1) || math.IsInf(base, 1) {
		base = DefaultBase
	}
	return &Tree{base: base, items: make(map[int][]*Item)}
}

// Base returns the level base of the tree.
func (t *Tree) Base() float64 { return t.base }

// Len returns the number of live items.
func (t *Tree) Len() int { return t.live }

// Tombstones returns the number of removed items still held by nodes.
func (t *Tree) Tombstones() int { return t.tombstones }

// Root returns the root node, nil for an empty tree.
func (t *Tree) Root() *Node { return t.root }

// Insert adds item to the tree.
func (t *Tree) Insert(item *Item) {
	t.items[item.ID] = append(t.items[item.ID], item)
	t.live++
	t.insert(item)
}

func (t *Tree) insert(item *Item) {
	if t.root == nil {
		node := NewNode(item, 0, t.base)
		t.root = &node
		return
	}
	distance := centerDistance(item, t.root.item)
	if distance >= t.root.baseLevel {
		level := t.root.level
		for distance >= math.Pow(t.base, float64(level)) {
			level++
		}
		newRoot := NewNode(item, level, t.base)
		newRoot.radius = math.Max(item.Extent, distance+t.root.radius)
		newRoot.children = append(newRoot.children, *t.root)
		t.root = &newRoot
		return
	}
	node := t.root
	for {
		node.radius = math.Max(node.radius, distance+item.Extent)
		var next *Node
		for i := range node.children {
			child := &node.children[i]
			childDistance := centerDistance(item, child.item)
			if childDistance < child.baseLevel {
				next, distance = child, childDistance
				break
			}
		}
		if next == nil {
			node.children = append(node.children, NewNode(item, node.level-1, t.base))
			return
		}
		node = next
	}
}

// Remove tombstones the first live item stored under id that match accepts.
// The tree is rebuilt once tombstones outnumber live items.
func (t *Tree) Remove(match func(*Item) bool, id int) bool {
	candidates := t.items[id]
	for i, item := range candidates {
		if !match(item) {
			continue
		}
		item.removed = true
		t.items[id] = append(candidates[:i], candidates[i+1:]...)
		if len(t.items[id]) == 0 {
			delete(t.items, id)
		}
		t.live--
		t.tombstones++
		if t.tombstones > t.live {
			t.rebuild()
		}
		return true
	}
	return false
}

// Clear removes all items.
func (t *Tree) Clear() {
	t.root = nil
	t.items = make(map[int][]*Item)
	t.live = 0
	t.tombstones = 0
}

// rebuild reinserts the live items into a fresh tree, dropping tombstones.
func (t *Tree) rebuild() {
	var live []*Item
	t.walk(t.root, func(n *Node) {
		if !n.item.removed {
			live = append(live, n.item)
		}
	})
	t.root = nil
	t.tombstones = 0
	for _, item := range live {
		t.insert(item)
	}
}

func (t *Tree) walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for i := range n.children {
		t.walk(&n.children[i], fn)
	}
}

// Items calls fn with every live item, in tree order.
func (t *Tree) Items(fn func(*Item)) {
	t.walk(t.root, func(n *Node) {
		if !n.item.removed {
			fn(n.item)
		}
	})
}
