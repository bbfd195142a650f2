package rtree

import "github.com/viant/proximity/geometry"

// Remove deletes the element stored under exactly bounds and id.
func (t *Tree) Remove(bounds geometry.Box, id int) bool {
	if t.closed || !validBounds(bounds) {
		return false
	}
	leaf, at := t.findLeaf(t.root, bounds, id)
	if leaf == nil {
		return false
	}
	leaf.entries = append(leaf.entries[:at], leaf.entries[at+1:]...)
	t.count--
	t.condense(leaf)
	return true
}

func (t *Tree) findLeaf(n *node, bounds geometry.Box, id int) (*node, int) {
	for i := range n.entries {
		e := &n.entries[i]
		if n.leaf {
			if e.id == id && e.bounds == bounds {
				return n, i
			}
			continue
		}
		if !e.bounds.ContainsBox(bounds) {
			continue
		}
		if leaf, at := t.findLeaf(e.child, bounds, id); leaf != nil {
			return leaf, at
		}
	}
	return nil, -1
}

// condense removes underfull nodes on the path from n to the root and
// reinserts the elements they held.
func (t *Tree) condense(n *node) {
	var orphans []entry
	for n.parent != nil {
		parent := n.parent
		if len(n.entries) < t.minEntries {
			at := parent.indexOf(n)
			parent.entries = append(parent.entries[:at], parent.entries[at+1:]...)
			orphans = collectElements(n, orphans)
		} else {
			parent.entries[parent.indexOf(n)].bounds = n.bounds()
		}
		n = parent
	}
	for !t.root.leaf && len(t.root.entries) == 1 {
		t.root = t.root.entries[0].child
		t.root.parent = nil
		t.height--
	}
	if !t.root.leaf && len(t.root.entries) == 0 {
		t.root = &node{leaf: true}
		t.height = 1
	}
	for _, e := range orphans {
		t.insertEntry(e)
	}
}

func collectElements(n *node, dest []entry) []entry {
	if n.leaf {
		return append(dest, n.entries...)
	}
	for i := range n.entries {
		dest = collectElements(n.entries[i].child, dest)
	}
	return dest
}
