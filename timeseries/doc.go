// Package timeseries turns flat (region, period, value) rows into aligned
// per-region monthly series and derives the views the chart needs: a
// trailing window of periods, per-period lookups, the B-A difference and
// padded axis ranges.
//
// Missing data is explicit. A Value that is not Valid is a gap, never zero.
package timeseries
