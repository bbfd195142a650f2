package tree

import (
	"container/heap"
	"math"
	"sort"

	"github.com/viant/proximity/geometry"
)

// Search visits every live item whose bounds intersect the region returned by
// region, until visit returns false. region is re-read before every test, so
// the caller may narrow it while the search runs. Children are visited
// nearest first.
func (t *Tree) Search(region func() geometry.Region, visit func(*Item) bool) bool {
	if t.root == nil {
		return true
	}
	return t.search(t.root, region, visit)
}

func (t *Tree) search(node *Node, region func() geometry.Region, visit func(*Item) bool) bool {
	if prunable(region().DistanceToPoint(node.item.Center), node.radius) {
		return true
	}
	if !node.item.removed && region().Intersects(node.item.Bounds) {
		if !visit(node.item) {
			return false
		}
	}
	if len(node.children) == 0 {
		return true
	}
	type childDist struct {
		child *Node
		dist  float64
	}
	current := region()
	cds := make([]childDist, 0, len(node.children))
	for i := range node.children {
		child := &node.children[i]
		cds = append(cds, childDist{child: child, dist: current.DistanceToPoint(child.item.Center)})
	}
	sort.SliceStable(cds, func(i, j int) bool { return cds[i].dist < cds[j].dist })
	for _, cd := range cds {
		if !t.search(cd.child, region, visit) {
			return false
		}
	}
	return true
}

// KNearestNeighbors runs a depth-first kNN search over the item bounds.
// Results are ordered by distance, then id.
func (t *Tree) KNearestNeighbors(point geometry.Point, k int) []Neighbor {
	if t.root == nil || k <= 0 {
		return nil
	}
	h := &Neighbors{}
	heap.Init(h)
	t.kNearestNeighbors(t.root, point, k, h)
	result := make([]Neighbor, h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		result[i] = heap.Pop(h).(Neighbor)
	}
	return result
}

func (t *Tree) kNearestNeighbors(node *Node, point geometry.Point, k int, h *Neighbors) {
	if !node.item.removed {
		candidate := Neighbor{Item: node.item, Distance: boundsDistance(node.item, point)}
		if h.Len() < k {
			heap.Push(h, candidate)
		} else if candidate.less((*h)[0]) {
			(*h)[0] = candidate
			heap.Fix(h, 0)
		}
	}
	if len(node.children) == 0 {
		return
	}
	type childDist struct {
		child *Node
		dist  float64
	}
	cds := make([]childDist, 0, len(node.children))
	for i := range node.children {
		child := &node.children[i]
		cds = append(cds, childDist{child: child, dist: geometry.Distance(point, child.item.Center)})
	}
	sort.Slice(cds, func(i, j int) bool { return cds[i].dist < cds[j].dist })
	for _, cd := range cds {
		if h.Len() == k {
			if prunable(cd.dist-math.Sqrt((*h)[0].Distance), cd.child.radius) {
				continue
			}
		}
		t.kNearestNeighbors(cd.child, point, k, h)
	}
}

const pruneSlack = 1e-9

// prunable reports whether a subtree with the given cover radius, whose
// centre lies gap beyond the query, can be skipped. The slack absorbs
// rounding accumulated in the radii.
func prunable(gap, radius float64) bool {
	return gap > radius+pruneSlack*(1+radius+math.Abs(gap))
}
