// Package finder answers proximity queries over a haystack of 3D points
// stored in an index.SpatialIndex: every point within a distance of a needle
// (RangeFinder), and the k points nearest to a needle (KNearestFinder).
//
// Both finders enumerate lazily, yielding one id slice per needle, sorted by
// distance with ties broken by id. Ids are positions in the haystack slice,
// so an index handed to a finder must store points[i] under id i.
//
// k-nearest queries seed a search sphere from the first k haystack points and
// shrink it from inside the search callback each time a closer point
// displaces the current k-th best.
package finder
