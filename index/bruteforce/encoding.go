package bruteforce

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/viant/proximity/geometry"
)

const entrySize = 8 + 6*8

// MarshalBinary stores: n(uint32), then for each element:
// id(int64), min(float64[3]), max(float64[3]).
func (i *Index) MarshalBinary() ([]byte, error) {
	out := make([]byte, 4, 4+len(i.entries)*entrySize)
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(i.entries)))
	putF64 := func(v float64) { out = binary.LittleEndian.AppendUint64(out, math.Float64bits(v)) }
	for _, e := range i.entries {
		out = binary.LittleEndian.AppendUint64(out, uint64(int64(e.id)))
		lo, hi := e.bounds.Min(), e.bounds.Max()
		putF64(lo.X)
		putF64(lo.Y)
		putF64(lo.Z)
		putF64(hi.X)
		putF64(hi.Y)
		putF64(hi.Z)
	}
	return out, nil
}

// UnmarshalBinary restores the index from bytes.
func (i *Index) UnmarshalBinary(data []byte) error {
	if len(data) < 4 {
		return errors.New("bruteforce: invalid data")
	}
	n := int(binary.LittleEndian.Uint32(data[0:4]))
	if len(data) != 4+n*entrySize {
		return fmt.Errorf("bruteforce: truncated data: %d bytes for %d elements", len(data), n)
	}
	off := 4
	getF64 := func() float64 {
		v := math.Float64frombits(binary.LittleEndian.Uint64(data[off : off+8]))
		off += 8
		return v
	}
	entries := make([]entry, n)
	for j := range entries {
		id := int(int64(binary.LittleEndian.Uint64(data[off : off+8])))
		off += 8
		lo := geometry.NewPoint(getF64(), getF64(), getF64())
		hi := geometry.NewPoint(getF64(), getF64(), getF64())
		bounds := geometry.NewBox(lo, hi)
		if !geometry.IsValid(lo) || !geometry.IsValid(hi) {
			return fmt.Errorf("bruteforce: invalid bounds for element %d", id)
		}
		entries[j] = entry{bounds: bounds, id: id}
	}
	i.entries = entries
	return nil
}
