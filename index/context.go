package index

import "github.com/viant/proximity/geometry"

// SearchContext is the mutable state of one traversal: the session serial and
// the region still being searched. Traversals re-read the region before every
// bounds test, so a narrowed region applies to the rest of the search.
type SearchContext struct {
	serial uint64
	region geometry.Region
}

// NewSearchContext returns the traversal state for a search of region on
// behalf of session serial.
func NewSearchContext(serial uint64, region geometry.Region) *SearchContext {
	return &SearchContext{serial: serial, region: region}
}

// Serial returns the session serial of the search.
func (sc *SearchContext) Serial() uint64 { return sc.serial }

// Region returns the region currently being searched.
func (sc *SearchContext) Region() geometry.Region { return sc.region }

// SetSphere replaces the sphere of a spherical search. It reports false and
// leaves the region untouched for box searches.
func (sc *SearchContext) SetSphere(s geometry.Sphere) bool {
	if sc == nil || sc.region.Kind() != geometry.RegionSphere {
		return false
	}
	sc.region = geometry.SphereRegion(s)
	return true
}

// SetBox replaces the box of a box search. It reports false and leaves the
// region untouched for sphere searches.
func (sc *SearchContext) SetBox(b geometry.Box) bool {
	if sc == nil || sc.region.Kind() != geometry.RegionBox {
		return false
	}
	sc.region = geometry.BoxRegion(b)
	return true
}
