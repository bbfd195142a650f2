// Package order holds the (squared distance, id) ordering shared by the
// finders and the index implementations.
package order

import (
	"container/heap"
	"slices"
)

// Item is an element id with its squared distance to a query point.
type Item struct {
	ID       int
	Distance float64
}

// Less reports whether a orders before b: nearer first, lower id on ties.
func Less(a, b Item) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.ID < b.ID
}

func compare(a, b Item) int {
	switch {
	case Less(a, b):
		return -1
	case Less(b, a):
		return 1
	}
	return 0
}

// Sort orders items nearest first, ties by id.
func Sort(items []Item) {
	slices.SortFunc(items, compare)
}

// IDs returns the ids of items in their current order.
func IDs(items []Item) []int {
	ids := make([]int, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

// BoundedSet keeps the k smallest items seen so far.
type BoundedSet struct {
	k     int
	items maxHeap
}

// NewBoundedSet returns a set holding at most k items.
func NewBoundedSet(k int) *BoundedSet {
	if k < 0 {
		k = 0
	}
	return &BoundedSet{k: k, items: make(maxHeap, 0, k)}
}

// Len returns the number of items held.
func (s *BoundedSet) Len() int { return len(s.items) }

// Cap returns the maximum number of items held.
func (s *BoundedSet) Cap() int { return s.k }

// Full reports whether the set holds k items.
func (s *BoundedSet) Full() bool { return len(s.items) >= s.k }

// Max returns the largest item held.
func (s *BoundedSet) Max() (Item, bool) {
	if len(s.items) == 0 {
		return Item{}, false
	}
	return s.items[0], true
}

// Offer adds item when the set is not full, or replaces the current maximum
// when item orders before it. It reports whether the set changed.
func (s *BoundedSet) Offer(item Item) bool {
	if s.k == 0 {
		return false
	}
	if len(s.items) < s.k {
		heap.Push(&s.items, item)
		return true
	}
	if !Less(item, s.items[0]) {
		return false
	}
	s.items[0] = item
	heap.Fix(&s.items, 0)
	return true
}

// Contains reports whether id is held.
func (s *BoundedSet) Contains(id int) bool {
	for _, item := range s.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// Sorted returns the items held, nearest first.
func (s *BoundedSet) Sorted() []Item {
	out := slices.Clone([]Item(s.items))
	Sort(out)
	return out
}

// Reset empties the set, keeping its capacity.
func (s *BoundedSet) Reset() {
	s.items = s.items[:0]
}

type maxHeap []Item

func (h maxHeap) Len() int           { return len(h) }
func (h maxHeap) Less(i, j int) bool { return Less(h[j], h[i]) }
func (h maxHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *maxHeap) Push(x any)        { *h = append(*h, x.(Item)) }
func (h *maxHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
