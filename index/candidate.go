package index

import "fmt"

// Candidate identifies a search hit: a single element id, or a pair of ids
// when two indexes are searched against each other.
type Candidate struct {
	a, b int
	pair bool
}

// Single returns the candidate for one element.
func Single(id int) Candidate {
	return Candidate{a: id}
}

// Pair returns the candidate for element a of the first index and element b
// of the second.
func Pair(a, b int) Candidate {
	return Candidate{a: a, b: b, pair: true}
}

// ID returns the element id, or the first id of a pair.
func (c Candidate) ID() int { return c.a }

// IsPair reports whether c holds two ids.
func (c Candidate) IsPair() bool { return c.pair }

// Pair returns both ids of a pair candidate.
func (c Candidate) Pair() (a, b int, ok bool) {
	return c.a, c.b, c.pair
}

func (c Candidate) String() string {
	if c.pair {
		return fmt.Sprintf("(%d, %d)", c.a, c.b)
	}
	return fmt.Sprintf("%d", c.a)
}
