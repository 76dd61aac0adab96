package timeseries

import (
	"math"
	"strconv"
	"strings"
)

// Value is an observation that may be missing.
type Value struct {
	V     float64
	Valid bool
}

// Some returns a present value. Non-finite input is treated as missing.
func Some(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{V: v, Valid: true}
}

// Missing returns the absence marker.
func Missing() Value { return Value{} }

// ParseValue coerces raw text into a Value. Empty or non-numeric text is missing.
func ParseValue(raw string) Value {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Value{}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Value{}
	}
	return Some(f)
}

// Float returns the value, or NaN when missing. Renderers use NaN as a gap.
func (v Value) Float() float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.V
}

func (v Value) String() string {
	if !v.Valid {
		return "-"
	}
	return strconv.FormatFloat(v.V, 'f', -1, 64)
}

// Floats converts values to float64 with NaN gaps.
func Floats(vs []Value) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v.Float()
	}
	return out
}
