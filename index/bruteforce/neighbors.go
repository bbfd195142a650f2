package bruteforce

import (
	"errors"
	"fmt"
	"iter"
	"sort"

	"github.com/viant/proximity/geometry"
)

// ErrInvalidAmount is returned when fewer than one neighbor is requested.
var ErrInvalidAmount = errors.New("bruteforce: amount must be a positive integer")

func invalidPointError(at int, p any) error {
	return fmt.Errorf("bruteforce: invalid point %d: %v", at, p)
}

// KNeighbors returns, per needle, the ids of the k haystack points nearest to
// it, nearest first, ties by id. It scans the haystack once per needle
// keeping a sorted short list, so no index is built. Slots past the end of a
// haystack smaller than k hold -1.
func KNeighbors(haystack []geometry.Point, needles iter.Seq[geometry.Point], k int) (iter.Seq[[]int], error) {
	if k < 1 {
		return nil, ErrInvalidAmount
	}
	for j, p := range haystack {
		if !geometry.IsValid(p) {
			return nil, invalidPointError(j, p)
		}
	}
	return func(yield func([]int) bool) {
		list := newShortList(k)
		for needle := range needles {
			list.reset()
			for j, p := range haystack {
				list.offer(j, geometry.SquaredDistance(needle, p))
			}
			if !yield(list.ids()) {
				return
			}
		}
	}, nil
}

// KNeighbors32 is KNeighbors over single-precision points.
func KNeighbors32(haystack []geometry.Point3f, needles iter.Seq[geometry.Point3f], k int) (iter.Seq[[]int], error) {
	if k < 1 {
		return nil, ErrInvalidAmount
	}
	for j, p := range haystack {
		if !geometry.IsValid(p.Point()) {
			return nil, invalidPointError(j, p)
		}
	}
	return func(yield func([]int) bool) {
		list := newShortList(k)
		for needle := range needles {
			list.reset()
			for j, p := range haystack {
				d := float64(needle.DistanceTo(p))
				list.offer(j, d*d)
			}
			if !yield(list.ids()) {
				return
			}
		}
	}, nil
}

// shortList keeps the k best (distance, id) pairs sorted ascending. Ids are
// offered in increasing order, so inserting after equal distances keeps ties
// ordered by id.
type shortList struct {
	idx []int
	dis []float64
	n   int
}

func newShortList(k int) *shortList {
	return &shortList{idx: make([]int, k), dis: make([]float64, k)}
}

func (s *shortList) reset() {
	s.n = 0
}

func (s *shortList) offer(id int, distance float64) {
	at := sort.Search(s.n, func(i int) bool { return s.dis[i] > distance })
	if at >= len(s.idx) {
		return
	}
	end := s.n
	if end == len(s.idx) {
		end--
	} else {
		s.n++
	}
	copy(s.idx[at+1:end+1], s.idx[at:end])
	copy(s.dis[at+1:end+1], s.dis[at:end])
	s.idx[at] = id
	s.dis[at] = distance
}

func (s *shortList) ids() []int {
	out := make([]int, len(s.idx))
	copy(out, s.idx[:s.n])
	for i := s.n; i < len(out); i++ {
		out[i] = -1
	}
	return out
}
