// Package render draws a projected frame with go-chart. Every call builds
// the chart from scratch; nothing is patched incrementally.
package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/andareed/siftly-popchart/config"
	"github.com/andareed/siftly-popchart/logging"
	"github.com/andareed/siftly-popchart/timeseries"
)

// ErrNothingToDraw is returned when no series has a single present value.
var ErrNothingToDraw = errors.New("nothing to draw")

// Format selects the output encoding.
type Format int

const (
	FormatSVG Format = iota
	FormatPNG
)

// FormatFor picks a format from a file name.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return FormatSVG, nil
	case ".png":
		return FormatPNG, nil
	default:
		return 0, fmt.Errorf("unsupported chart format %q (want .svg or .png)", filepath.Ext(path))
	}
}

// Options describes the chart surroundings.
type Options struct {
	Title  string
	NameA  string
	NameB  string
	Width  int
	Height int
	Theme  config.Theme
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 1024
	}
	if h <= 0 {
		h = 480
	}
	return w, h
}

// Build converts a frame into a go-chart Chart. Missing values are not
// plotted. A and B share the primary axis; the difference series, when the
// frame carries one, gets the secondary axis and its own range.
func Build(f timeseries.Frame, opts Options) (chart.Chart, error) {
	// Periods that do not parse have no place on the time axis; their values
	// are left out rather than failing the whole chart.
	xs := make([]time.Time, len(f.Periods))
	placed := make([]bool, len(f.Periods))
	for i, p := range f.Periods {
		t, err := timeseries.ParsePeriod(p)
		if err != nil {
			logging.Debugf("render: skipping period %d %q: %v", i, p, err)
			continue
		}
		xs[i], placed[i] = t, true
	}

	plotted := make(map[time.Time]struct{})
	var series []chart.Series
	add := func(name string, vals []timeseries.Value, token string, axis chart.YAxisType) {
		// go-chart has no gap support, so missing points are left out
		var px []time.Time
		var py []float64
		for i, v := range vals {
			if v.Valid && i < len(placed) && placed[i] {
				px = append(px, xs[i])
				py = append(py, v.V)
				plotted[xs[i]] = struct{}{}
			}
		}
		if len(px) == 0 {
			logging.Debugf("render: skipping %s, no values", name)
			return
		}
		series = append(series, chart.TimeSeries{
			Name:    name,
			XValues: px,
			YValues: py,
			YAxis:   axis,
			Style:   lineStyle(opts.Theme, token),
		})
	}
	add(opts.NameA, f.A, config.TokenSeriesA, chart.YAxisPrimary)
	add(opts.NameB, f.B, config.TokenSeriesB, chart.YAxisPrimary)
	if f.Diff != nil && f.DiffRange.Set {
		add(fmt.Sprintf("%s − %s", opts.NameB, opts.NameA), f.Diff, config.TokenDifference, chart.YAxisSecondary)
	}
	if len(series) == 0 {
		return chart.Chart{}, ErrNothingToDraw
	}

	w, h := opts.size()
	ch := chart.Chart{
		Title:      opts.Title,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01"),
			Style:          axisStyle(opts.Theme),
		},
		YAxis: chart.YAxis{
			Name:           "Population",
			ValueFormatter: integerFormatter,
			Range:          continuousRange(f.Range),
			Style:          axisStyle(opts.Theme),
		},
		Series: series,
	}
	if f.Diff != nil && f.DiffRange.Set {
		ch.YAxisSecondary = chart.YAxis{
			Name:           "Difference",
			ValueFormatter: integerFormatter,
			Range:          continuousRange(f.DiffRange),
			Style:          axisStyle(opts.Theme),
		}
	}
	if len(plotted) < 2 {
		// one plotted period has no x extent; go-chart needs two values
		for x := range plotted {
			mid := chart.TimeToFloat64(x)
			pad := float64(15 * 24 * time.Hour)
			ch.XAxis.Range = &chart.ContinuousRange{Min: mid - pad, Max: mid + pad}
		}
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch, nil
}

// Render writes the chart for f to w.
func Render(w io.Writer, format Format, f timeseries.Frame, opts Options) error {
	ch, err := Build(f, opts)
	if err != nil {
		return err
	}
	provider := chart.SVG
	if format == FormatPNG {
		provider = chart.PNG
	}
	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// RenderFile renders to path, choosing the format from its extension.
func RenderFile(path string, f timeseries.Frame, opts Options) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Render(out, format, f, opts); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// continuousRange returns nil for an unset range so go-chart auto-scales.
func continuousRange(r timeseries.Range) chart.Range {
	if !r.Set {
		return nil
	}
	return &chart.ContinuousRange{Min: r.Low, Max: r.High}
}

func integerFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return ""
}

func lineStyle(theme config.Theme, token string) chart.Style {
	st := chart.Style{StrokeWidth: 2}
	if c, ok := themeColor(theme, token); ok {
		st.StrokeColor = c
	}
	if token == config.TokenDifference {
		st.StrokeDashArray = []float64{5, 3}
	}
	return st
}

func axisStyle(theme config.Theme) chart.Style {
	var st chart.Style
	if c, ok := themeColor(theme, config.TokenAxis); ok {
		st.StrokeColor = c
		st.FontColor = c
	}
	return st
}

// themeColor resolves a hex token. Tokens that are unset or not hex colours
// leave go-chart's defaults in place.
func themeColor(theme config.Theme, token string) (drawing.Color, bool) {
	v, ok := theme.Token(token)
	if !ok {
		return drawing.Color{}, false
	}
	hex := strings.TrimPrefix(v, "#")
	if len(hex) != 6 && len(hex) != 3 {
		return drawing.Color{}, false
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return drawing.Color{}, false
		}
	}
	return drawing.ColorFromHex(hex), true
}
