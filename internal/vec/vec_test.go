package vec

import (
	"math"
	"testing"
)

func TestNormalizeZero(t *testing.T) {
	if got := (Vec2{}).Normalize(); !got.IsZero() {
		t.Errorf("Normalize(0,0) = %v; want zero", got)
	}
}

func TestNormalizeUnitLength(t *testing.T) {
	got := New(3, 4).Normalize()
	if math.Abs(got.Len()-1) > 1e-9 {
		t.Errorf("len = %f; want 1", got.Len())
	}
	if math.Abs(got.X-0.6) > 1e-9 || math.Abs(got.Y-0.8) > 1e-9 {
		t.Errorf("Normalize(3,4) = %v; want (0.6,0.8)", got)
	}
}

func TestClampLen(t *testing.T) {
	if got := New(3, 4).ClampLen(10); got != New(3, 4) {
		t.Errorf("short vector changed: %v", got)
	}
	got := New(30, 40).ClampLen(5)
	if math.Abs(got.Len()-5) > 1e-9 {
		t.Errorf("clamped len = %f; want 5", got.Len())
	}
}

func TestSnap(t *testing.T) {
	cases := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"already on grid", New(64, 32), New(64, 32)},
		{"rounds down", New(47, 15), New(32, 0)},
		{"rounds up", New(49, 17), New(64, 32)},
		{"negative", New(-17, -40), New(-32, -32)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Snap(32); got != tc.want {
				t.Errorf("Snap(%v) = %v; want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestDistSq(t *testing.T) {
	if got := New(1, 1).DistSq(New(4, 5)); got != 25 {
		t.Errorf("DistSq = %f; want 25", got)
	}
}
