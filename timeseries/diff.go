package timeseries

// Difference returns b[i]-a[i] for each index. Where either side is missing
// the result is missing. The result has the length of the shorter input.
func Difference(a, b []Value) []Value {
	n := min(len(a), len(b))
	out := make([]Value, n)
	for i := 0; i < n; i++ {
		if !a[i].Valid || !b[i].Valid {
			continue
		}
		out[i] = Some(b[i].V - a[i].V)
	}
	return out
}
