package tree

// Neighbor describes a candidate returned by a kNN search.
type Neighbor struct {
	Item *Item
	// Distance is the squared distance from the query to the item bounds.
	Distance float64
}

func (n Neighbor) less(o Neighbor) bool {
	if n.Distance != o.Distance {
		return n.Distance < o.Distance
	}
	return n.Item.ID < o.Item.ID
}

// Neighbors implements heap.Interface ordered by descending distance, then
// descending id (max-heap).
type Neighbors []Neighbor

func (h Neighbors) Len() int           { return len(h) }
func (h Neighbors) Less(i, j int) bool { return h[j].less(h[i]) }
func (h Neighbors) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *Neighbors) Push(x interface{}) {
	*h = append(*h, x.(Neighbor))
}

func (h *Neighbors) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
