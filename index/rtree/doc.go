// Package rtree implements index.SpatialIndex as a Guttman R-tree over 3D
// boxes with quadratic node splitting.
//
// Searches never modify the tree, so an unmodified tree may be searched from
// several goroutines at once. Mutation during a search is not supported.
package rtree
