package timeseries

// Frame is the aligned view of two regions over a window of periods, ready
// to hand to a renderer. Frames are rebuilt from scratch on every redraw.
type Frame struct {
	Periods []string // visible period tokens, ascending
	A       []Value
	B       []Value
	Diff    []Value // nil unless requested

	Range     Range // over A and B
	DiffRange Range // over Diff, for an independent axis
}

// Project aligns regions a and b of set over the window's trailing periods.
// When withDiff is set the B-A series and its range are computed too.
func Project(set *Set, a, b string, w Window, withDiff bool) Frame {
	indices := w.Indices(len(set.Periods))
	f := Frame{
		Periods: make([]string, len(indices)),
		A:       set.Lookup(a).Align(set.Periods, indices),
		B:       set.Lookup(b).Align(set.Periods, indices),
	}
	for i, idx := range indices {
		f.Periods[i] = set.Periods[idx]
	}
	f.Range = EstimateRange(f.A, f.B)
	if withDiff {
		f.Diff = Difference(f.A, f.B)
		f.DiffRange = EstimateRange(f.Diff)
	}
	return f
}

// Len is the number of visible periods.
func (f Frame) Len() int { return len(f.Periods) }

// Latest returns the index of the last period where both A and B are
// present, or -1.
func (f Frame) Latest() int {
	for i := len(f.Periods) - 1; i >= 0; i-- {
		if f.A[i].Valid && f.B[i].Valid {
			return i
		}
	}
	return -1
}
