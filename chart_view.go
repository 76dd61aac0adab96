package main

import (
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/andareed/siftly-popchart/config"
	"github.com/andareed/siftly-popchart/timeseries"
)

// yLabelWidth is the room asciigraph takes for axis labels and the tick.
const yLabelWidth = 12

type chartLayout struct {
	Width      int
	Height     int
	DiffHeight int
}

// plotFrame draws A and B bounded by the frame's range and, when present,
// the difference series on its own smaller plot below. The chart is rebuilt
// from the frame on every call.
func plotFrame(f timeseries.Frame, theme config.Theme, layout chartLayout, caption string) string {
	if f.Len() == 0 {
		return "no periods to plot"
	}
	if !f.Range.Set {
		return "no values in the selected window"
	}

	opts := []asciigraph.Option{
		asciigraph.Height(max(layout.Height, 3)),
		asciigraph.LowerBound(f.Range.Low),
		asciigraph.UpperBound(f.Range.High),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(
			plotColor(theme, config.TokenSeriesA, asciigraph.Blue),
			plotColor(theme, config.TokenSeriesB, asciigraph.Red),
		),
		asciigraph.AxisColor(plotColor(theme, config.TokenAxis, asciigraph.Default)),
		asciigraph.LabelColor(plotColor(theme, config.TokenAxis, asciigraph.Default)),
	}
	if w := plotWidth(f.Len(), layout.Width); w > 0 {
		opts = append(opts, asciigraph.Width(w))
	}
	if caption != "" {
		opts = append(opts, asciigraph.Caption(caption))
	}
	out := asciigraph.PlotMany([][]float64{timeseries.Floats(f.A), timeseries.Floats(f.B)}, opts...)

	if f.Diff != nil {
		out += "\n\n" + plotDifference(f, theme, layout)
	}
	return out
}

func plotDifference(f timeseries.Frame, theme config.Theme, layout chartLayout) string {
	if !f.DiffRange.Set {
		return "difference: no overlapping values"
	}
	opts := []asciigraph.Option{
		asciigraph.Height(max(layout.DiffHeight, 2)),
		asciigraph.LowerBound(f.DiffRange.Low),
		asciigraph.UpperBound(f.DiffRange.High),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(plotColor(theme, config.TokenDifference, asciigraph.Green)),
		asciigraph.Caption("difference (B − A)"),
	}
	if w := plotWidth(len(f.Diff), layout.Width); w > 0 {
		opts = append(opts, asciigraph.Width(w))
	}
	return asciigraph.Plot(timeseries.Floats(f.Diff), opts...)
}

// plotWidth returns the width to squeeze n points into, or 0 when they fit
// as they are.
func plotWidth(n, avail int) int {
	w := avail - yLabelWidth
	if w <= 0 || n <= w {
		return 0
	}
	return w
}

// plotColor maps a theme token to an asciigraph colour. asciigraph only
// knows named colours, so hex tokens fall back to def.
func plotColor(theme config.Theme, token string, def asciigraph.AnsiColor) asciigraph.AnsiColor {
	v, ok := theme.Token(token)
	if !ok {
		return def
	}
	if c, ok := asciigraph.ColorNames[strings.ToLower(v)]; ok {
		return c
	}
	return def
}
