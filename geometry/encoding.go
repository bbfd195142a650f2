package geometry

import (
	"encoding/binary"
	"fmt"
	"math"
)

// PointSize is the encoded size of one point in bytes.
const PointSize = 24

// EncodePoint encodes p as three little-endian IEEE 754 float64 values.
func EncodePoint(p Point) []byte {
	b := make([]byte, PointSize)
	putPoint(b, p)
	return b
}

// DecodePoint decodes a BLOB produced by EncodePoint.
func DecodePoint(b []byte) (Point, error) {
	if len(b) != PointSize {
		return Point{}, fmt.Errorf("geometry: invalid point blob length %d, want %d", len(b), PointSize)
	}
	return getPoint(b), nil
}

// EncodePoints encodes a point set into a BLOB suitable for storage in
// SQLite. The encoding is a plain sequence of encoded points without a
// length prefix; the count is derived from the BLOB size on decode.
func EncodePoints(points []Point) []byte {
	if len(points) == 0 {
		return nil
	}
	b := make([]byte, len(points)*PointSize)
	for i, p := range points {
		putPoint(b[i*PointSize:], p)
	}
	return b
}

// DecodePoints decodes a BLOB produced by EncodePoints.
func DecodePoints(b []byte) ([]Point, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%PointSize != 0 {
		return nil, fmt.Errorf("geometry: invalid point set blob length %d (not multiple of %d)", len(b), PointSize)
	}
	n := len(b) / PointSize
	points := make([]Point, n)
	for i := 0; i < n; i++ {
		points[i] = getPoint(b[i*PointSize:])
	}
	return points, nil
}

func putPoint(b []byte, p Point) {
	binary.LittleEndian.PutUint64(b[0:], math.Float64bits(p.X))
	binary.LittleEndian.PutUint64(b[8:], math.Float64bits(p.Y))
	binary.LittleEndian.PutUint64(b[16:], math.Float64bits(p.Z))
}

func getPoint(b []byte) Point {
	return Point{
		X: math.Float64frombits(binary.LittleEndian.Uint64(b[0:])),
		Y: math.Float64frombits(binary.LittleEndian.Uint64(b[8:])),
		Z: math.Float64frombits(binary.LittleEndian.Uint64(b[16:])),
	}
}
