package tree

import "math"

// Node represents a cover-tree node.
type Node struct {
	level     int32
	baseLevel float64
	item      *Item
	children  []Node
	// radius bounds the distance from the node centre to any point of any
	// item in the subtree.
	radius float64
}

// NewNode constructs a node for the provided item and level.
func NewNode(item *Item, level int32, base float64) Node {
	return Node{
		level:     level,
		baseLevel: math.Pow(base, float64(level)),
		item:      item,
		radius:    item.Extent,
	}
}

// Radius returns the cover radius of the subtree rooted at n.
func (n *Node) Radius() float64 { return n.radius }
