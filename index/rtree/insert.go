package rtree

import (
	"math"

	"github.com/viant/proximity/geometry"
)

// Insert stores id under bounds.
func (t *Tree) Insert(bounds geometry.Box, id int) bool {
	if t.closed || !validBounds(bounds) {
		return false
	}
	t.insertEntry(entry{bounds: bounds, id: id})
	t.count++
	return true
}

func (t *Tree) insertEntry(e entry) {
	leaf := t.chooseLeaf(e.bounds)
	leaf.entries = append(leaf.entries, e)
	t.adjust(leaf)
}

// chooseLeaf descends into the child needing the least enlargement, ties
// going to the smaller child.
func (t *Tree) chooseLeaf(bounds geometry.Box) *node {
	n := t.root
	for !n.leaf {
		best := 0
		bestGrowth := enlargement(n.entries[0].bounds, bounds)
		bestSize := sizeOf(n.entries[0].bounds)
		for i := 1; i < len(n.entries); i++ {
			growth := enlargement(n.entries[i].bounds, bounds)
			size := sizeOf(n.entries[i].bounds)
			if growth.less(bestGrowth) || (!bestGrowth.less(growth) && size.less(bestSize)) {
				best, bestGrowth, bestSize = i, growth, size
			}
		}
		n = n.entries[best].child
	}
	return n
}

// adjust walks from n to the root, splitting overfull nodes and refreshing
// parent bounds.
func (t *Tree) adjust(n *node) {
	for n != nil {
		var sibling *node
		if len(n.entries) > t.maxEntries {
			sibling = t.split(n)
		}
		parent := n.parent
		if parent == nil {
			if sibling != nil {
				root := &node{entries: []entry{
					{bounds: n.bounds(), child: n},
					{bounds: sibling.bounds(), child: sibling},
				}}
				n.parent, sibling.parent = root, root
				t.root = root
				t.height++
			}
			return
		}
		parent.entries[parent.indexOf(n)].bounds = n.bounds()
		if sibling != nil {
			sibling.parent = parent
			parent.entries = append(parent.entries, entry{bounds: sibling.bounds(), child: sibling})
		}
		n = parent
	}
}

// split distributes the entries of n between n and a new sibling using
// Guttman's quadratic split.
func (t *Tree) split(n *node) *node {
	entries := n.entries
	s1, s2 := pickSeeds(entries)
	groupA := []entry{entries[s1]}
	groupB := []entry{entries[s2]}
	boxA, boxB := entries[s1].bounds, entries[s2].bounds

	rest := make([]entry, 0, len(entries)-2)
	for i := range entries {
		if i != s1 && i != s2 {
			rest = append(rest, entries[i])
		}
	}
	for len(rest) > 0 {
		if len(groupA)+len(rest) <= t.minEntries {
			groupA = append(groupA, rest...)
			break
		}
		if len(groupB)+len(rest) <= t.minEntries {
			groupB = append(groupB, rest...)
			break
		}
		next := pickNext(rest, boxA, boxB)
		e := rest[next]
		rest = append(rest[:next], rest[next+1:]...)

		growA, growB := enlargement(boxA, e.bounds), enlargement(boxB, e.bounds)
		sizeA, sizeB := sizeOf(boxA), sizeOf(boxB)
		toA := growA.less(growB)
		if !toA && !growB.less(growA) {
			toA = sizeA.less(sizeB) || (!sizeB.less(sizeA) && len(groupA) <= len(groupB))
		}
		if toA {
			groupA = append(groupA, e)
			boxA = boxA.Union(e.bounds)
		} else {
			groupB = append(groupB, e)
			boxB = boxB.Union(e.bounds)
		}
	}

	n.entries = groupA
	sibling := &node{parent: n.parent, leaf: n.leaf, entries: groupB}
	if !n.leaf {
		for i := range groupA {
			groupA[i].child.parent = n
		}
		for i := range groupB {
			groupB[i].child.parent = sibling
		}
	}
	return sibling
}

// pickSeeds returns the pair of entries that would waste the most space
// together.
func pickSeeds(entries []entry) (int, int) {
	s1, s2 := 0, 1
	worst := size{volume: math.Inf(-1), margin: math.Inf(-1)}
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i].bounds, entries[j].bounds
			waste := sizeOf(a.Union(b)).sub(sizeOf(a)).sub(sizeOf(b))
			if worst.less(waste) {
				s1, s2, worst = i, j, waste
			}
		}
	}
	return s1, s2
}

// pickNext returns the entry with the strongest preference for one group.
func pickNext(rest []entry, boxA, boxB geometry.Box) int {
	best := 0
	strongest := size{volume: -1, margin: -1}
	for i := range rest {
		preference := enlargement(boxA, rest[i].bounds).sub(enlargement(boxB, rest[i].bounds)).abs()
		if strongest.less(preference) {
			best, strongest = i, preference
		}
	}
	return best
}

// size orders boxes by volume, then by margin, so planar and point data still
// split on extent.
type size struct {
	volume float64
	margin float64
}

func sizeOf(b geometry.Box) size {
	return size{volume: b.Volume(), margin: b.Margin()}
}

func (s size) sub(o size) size {
	return size{volume: s.volume - o.volume, margin: s.margin - o.margin}
}

func (s size) abs() size {
	return size{volume: math.Abs(s.volume), margin: math.Abs(s.margin)}
}

func (s size) less(o size) bool {
	if s.volume != o.volume {
		return s.volume < o.volume
	}
	return s.margin < o.margin
}

func enlargement(existing, added geometry.Box) size {
	return sizeOf(existing.Union(added)).sub(sizeOf(existing))
}
