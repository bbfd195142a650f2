package tree

import "github.com/viant/proximity/geometry"

// Item is an element stored in the tree: its bounds, and the ball around the
// bounds centre that encloses them.
type Item struct {
	ID      int
	Bounds  geometry.Box
	Center  geometry.Point
	Extent  float64
	removed bool
}

// NewItem returns the item for id stored under bounds.
func NewItem(id int, bounds geometry.Box) *Item {
	return &Item{
		ID:     id,
		Bounds: bounds,
		Center: bounds.Center(),
		Extent: bounds.HalfDiagonal(),
	}
}

// Removed reports whether the item has been tombstoned.
func (i *Item) Removed() bool { return i.removed }
