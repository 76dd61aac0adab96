package timeseries

// Lookup maps a period token to a region's value.
type Lookup map[string]Value

// NewLookup indexes points by period. Later duplicates win.
func NewLookup(points []Point) Lookup {
	l := make(Lookup, len(points))
	for _, p := range points {
		l[p.Period] = p.Value
	}
	return l
}

// Get returns the value for period, or missing.
func (l Lookup) Get(period string) Value {
	return l[period]
}

// At returns the value at periods[idx]. An index outside periods is missing.
func (l Lookup) At(periods []string, idx int) Value {
	if idx < 0 || idx >= len(periods) {
		return Value{}
	}
	return l[periods[idx]]
}

// Align returns the values for the given universe indices.
func (l Lookup) Align(periods []string, indices []int) []Value {
	out := make([]Value, len(indices))
	for i, idx := range indices {
		out[i] = l.At(periods, idx)
	}
	return out
}
