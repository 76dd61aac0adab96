package timeseries

import "math"

const (
	flatZeroPad = 1.0
	flatRelPad  = 0.02
	spanRelPad  = 0.05
)

// Range is a display range. Set is false when there was nothing to range
// over and the renderer should auto-scale.
type Range struct {
	Low  float64
	High float64
	Set  bool
}

// EstimateRange computes a padded range over every valid value in arrays.
// The range is not anchored at zero, so small fluctuations stay visible.
func EstimateRange(arrays ...[]Value) Range {
	lo, hi := math.Inf(1), math.Inf(-1)
	found := false
	for _, arr := range arrays {
		for _, v := range arr {
			if !v.Valid || math.IsNaN(v.V) || math.IsInf(v.V, 0) {
				continue
			}
			found = true
			lo = math.Min(lo, v.V)
			hi = math.Max(hi, v.V)
		}
	}
	if !found {
		return Range{}
	}
	if lo == hi {
		pad := flatZeroPad
		if lo != 0 {
			pad = math.Abs(lo) * flatRelPad
		}
		return Range{Low: lo - pad, High: hi + pad, Set: true}
	}
	pad := (hi - lo) * spanRelPad
	return Range{Low: lo - pad, High: hi + pad, Set: true}
}
