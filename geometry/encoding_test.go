package geometry

import "testing"

func TestEncodeDecodePoints_RoundTrip(t *testing.T) {
	orig := []Point{NewPoint(0, 1.5, -2.25), NewPoint(3.75, 0, 1e-300), NewPoint(-7, 8, 9)}

	b := EncodePoints(orig)
	if len(b) != len(orig)*PointSize {
		t.Fatalf("EncodePoints length = %d, want %d", len(b), len(orig)*PointSize)
	}

	decoded, err := DecodePoints(b)
	if err != nil {
		t.Fatalf("DecodePoints failed: %v", err)
	}
	if len(decoded) != len(orig) {
		t.Fatalf("decoded length = %d, want %d", len(decoded), len(orig))
	}
	for i := range orig {
		if got, want := decoded[i], orig[i]; got != want {
			t.Fatalf("decoded[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestEncodeDecodePoints_Empty(t *testing.T) {
	if b := EncodePoints(nil); len(b) != 0 {
		t.Fatalf("expected empty blob for nil slice, got len=%d", len(b))
	}
	points, err := DecodePoints(nil)
	if err != nil {
		t.Fatalf("DecodePoints(nil) failed: %v", err)
	}
	if len(points) != 0 {
		t.Fatalf("expected no points for nil blob, got %d", len(points))
	}
}

func TestDecodePoints_InvalidLength(t *testing.T) {
	if _, err := DecodePoints(make([]byte, PointSize+1)); err == nil {
		t.Fatalf("expected error for truncated blob")
	}
	if _, err := DecodePoint(make([]byte, 8)); err == nil {
		t.Fatalf("expected error for short point blob")
	}
}

func TestEncodeDecodePoint(t *testing.T) {
	p := NewPoint(1, -2, 3)
	got, err := DecodePoint(EncodePoint(p))
	if err != nil {
		t.Fatalf("DecodePoint failed: %v", err)
	}
	if got != p {
		t.Fatalf("DecodePoint = %v, want %v", got, p)
	}
}
