package tree

import "github.com/viant/proximity/geometry"

// centerDistance returns the Euclidean distance between two item centres.
func centerDistance(a, b *Item) float64 {
	return geometry.Distance(a.Center, b.Center)
}

// boundsDistance returns the squared distance from p to the bounds of item.
func boundsDistance(item *Item, p geometry.Point) float64 {
	return item.Bounds.SquaredDistanceToPoint(p)
}
