package timeseries

import (
	"strconv"
	"strings"
)

// WindowAll is the token selecting every period.
const WindowAll = "all"

// Window is a requested trailing window size. Size <= 0 means all periods.
type Window struct {
	Size int
}

// ParseWindow accepts "all" or a positive integer. Anything else selects all
// periods.
func ParseWindow(s string) Window {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == WindowAll {
		return Window{}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return Window{}
	}
	return Window{Size: n}
}

// All reports whether the window covers every period.
func (w Window) All() bool { return w.Size <= 0 }

func (w Window) String() string {
	if w.All() {
		return WindowAll
	}
	return strconv.Itoa(w.Size)
}

// Indices returns the ascending contiguous trailing run of universe indices
// for a universe of n periods.
func (w Window) Indices(n int) []int {
	if n <= 0 {
		return []int{}
	}
	span := n
	if !w.All() && w.Size < n {
		span = w.Size
	}
	start := n - span
	out := make([]int, span)
	for i := range out {
		out[i] = start + i
	}
	return out
}
