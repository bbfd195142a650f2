// Package index defines the spatial index abstraction the finders are built
// on: a structure mapping axis-aligned bounds to element ids that, given a
// Region, reports every element whose bounds intersect it. Implementations in
// this module are an R-tree (rtree), a cover tree (cover), and a linear
// baseline (bruteforce).
//
// Searches are reported to a Callback through an Event. A callback may cancel
// the search, or shrink the region for the remainder of the traversal.
package index
