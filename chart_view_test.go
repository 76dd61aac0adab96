package main

import (
	"strings"
	"testing"

	"github.com/guptarohit/asciigraph"

	"github.com/andareed/siftly-popchart/config"
	"github.com/andareed/siftly-popchart/timeseries"
)

func TestPlotFrameGuards(t *testing.T) {
	layout := chartLayout{Width: 80, Height: 10, DiffHeight: 4}

	if got := plotFrame(timeseries.Frame{}, config.Theme{}, layout, ""); got != "no periods to plot" {
		t.Errorf("empty frame: %q", got)
	}

	allMissing := timeseries.Frame{
		Periods: []string{"2024M01"},
		A:       []timeseries.Value{timeseries.Missing()},
		B:       []timeseries.Value{timeseries.Missing()},
	}
	if got := plotFrame(allMissing, config.Theme{}, layout, ""); got != "no values in the selected window" {
		t.Errorf("all missing: %q", got)
	}
}

func TestPlotFrameDrawsCaptionAndDifference(t *testing.T) {
	layout := chartLayout{Width: 80, Height: 10, DiffHeight: 4}

	out := plotFrame(sampleFrame(false), config.Theme{}, layout, "2024-01-01 to 2024-02-01")
	if !strings.Contains(out, "2024-01-01 to 2024-02-01") {
		t.Errorf("caption missing:\n%s", out)
	}
	if strings.Contains(out, "difference") {
		t.Error("difference plotted while not requested")
	}

	out = plotFrame(sampleFrame(true), config.Theme{}, layout, "")
	if !strings.Contains(out, "difference (B − A)") {
		t.Errorf("difference plot missing:\n%s", out)
	}
}

func TestPlotWidth(t *testing.T) {
	cases := []struct{ n, avail, want int }{
		{10, 80, 0},
		{200, 80, 80 - yLabelWidth},
		{5, 0, 0},
	}
	for _, c := range cases {
		if got := plotWidth(c.n, c.avail); got != c.want {
			t.Errorf("plotWidth(%d, %d) = %d, want %d", c.n, c.avail, got, c.want)
		}
	}
}

func TestPlotColor(t *testing.T) {
	theme := config.Theme{config.TokenSeriesA: "Green", config.TokenSeriesB: "#ff0000"}
	if got := plotColor(theme, config.TokenSeriesA, asciigraph.Blue); got != asciigraph.Green {
		t.Errorf("named colour not used: %v", got)
	}
	if got := plotColor(theme, config.TokenSeriesB, asciigraph.Red); got != asciigraph.Red {
		t.Errorf("hex token should fall back: %v", got)
	}
	if got := plotColor(theme, config.TokenDifference, asciigraph.Yellow); got != asciigraph.Yellow {
		t.Errorf("unset token should fall back: %v", got)
	}
}
