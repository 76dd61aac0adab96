package timeseries

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestEstimateRange(t *testing.T) {
	cases := []struct {
		name   string
		in     [][]Value
		lo, hi float64
		unset  bool
	}{
		{"flat non-zero pads 2%", [][]Value{{Some(5), Some(5)}}, 4.9, 5.1, false},
		{"flat zero pads one unit", [][]Value{{Some(0), Some(0)}}, -1, 1, false},
		{"span pads 5%", [][]Value{{Some(10), Some(20), Missing()}}, 9.5, 20.5, false},
		{"flat negative", [][]Value{{Some(-50)}}, -51, -49, false},
		{"across arrays", [][]Value{{Some(100)}, {Missing(), Some(200)}}, 95, 205, false},
		{"all missing", [][]Value{{Missing(), Missing()}}, 0, 0, true},
		{"no arrays", nil, 0, 0, true},
	}
	for _, c := range cases {
		r := EstimateRange(c.in...)
		if c.unset {
			if r.Set {
				t.Errorf("%s: expected unset, got %+v", c.name, r)
			}
			continue
		}
		if !r.Set || !approx(r.Low, c.lo) || !approx(r.High, c.hi) {
			t.Errorf("%s: got %+v want [%v,%v]", c.name, r, c.lo, c.hi)
		}
	}
}

func TestEstimateRangeIgnoresNonFinite(t *testing.T) {
	r := EstimateRange([]Value{{V: math.NaN(), Valid: true}, {V: math.Inf(1), Valid: true}, Some(3)})
	if !r.Set || !approx(r.Low, 3-0.06) || !approx(r.High, 3+0.06) {
		t.Fatalf("got %+v", r)
	}
}
