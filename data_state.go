package main

import (
	"github.com/andareed/siftly-popchart/config"
	"github.com/andareed/siftly-popchart/logging"
	"github.com/andareed/siftly-popchart/regions"
	"github.com/andareed/siftly-popchart/timeseries"
)

// dataState is the in-memory model for one session. Rows are set once after
// the load; the frame is reprojected whenever a control changes.
type dataState struct {
	loaded    bool
	loadErr   error
	rows      []timeseries.Row
	set       *timeseries.Set
	primaries regions.Primaries

	windows   []timeseries.Window
	windowIdx int
	showDiff  bool

	frame timeseries.Frame
}

func newDataState(cfg *config.Config) dataState {
	d := dataState{
		showDiff: cfg.View.ShowDifference,
		set:      timeseries.Build(nil),
	}
	for _, w := range cfg.View.Windows {
		d.windows = append(d.windows, timeseries.ParseWindow(w))
	}
	if len(d.windows) == 0 {
		d.windows = []timeseries.Window{{}}
	}
	d.windowIdx = len(d.windows) - 1
	def := timeseries.ParseWindow(cfg.View.DefaultWindow)
	for i, w := range d.windows {
		if w == def {
			d.windowIdx = i
			break
		}
	}
	return d
}

// setRows derives the series and resolves the primary regions.
func (d *dataState) setRows(rows []timeseries.Row, cfg *config.Config) {
	d.loaded = true
	d.loadErr = nil
	d.rows = rows
	d.set = timeseries.Build(rows)

	a, b := cfg.Regions.PrimaryA, cfg.Regions.PrimaryB
	d.primaries = regions.Resolve(
		d.set.RegionIDs(),
		regions.Rule{Fragment: a.Fragment, Code: a.Code},
		regions.Rule{Fragment: b.Fragment, Code: b.Code},
		cfg.Placeholders(),
	)
	logging.Infof("primaries: A=%s (%s) B=%s (%s), %d periods",
		d.primaries.A.ID, d.primaries.A.Confidence, d.primaries.B.ID, d.primaries.B.Confidence, len(d.set.Periods))
	d.reproject()
}

func (d *dataState) failLoad(err error) {
	d.loaded = true
	d.loadErr = err
}

func (d *dataState) window() timeseries.Window {
	return d.windows[d.windowIdx]
}

// stepWindow moves the selector by delta, clamped to the options.
func (d *dataState) stepWindow(delta int) bool {
	next := clamp(d.windowIdx+delta, 0, len(d.windows)-1)
	if next == d.windowIdx {
		return false
	}
	d.windowIdx = next
	d.reproject()
	return true
}

func (d *dataState) selectWindow(i int) bool {
	if i < 0 || i >= len(d.windows) || i == d.windowIdx {
		return false
	}
	d.windowIdx = i
	d.reproject()
	return true
}

func (d *dataState) toggleDiff() {
	d.showDiff = !d.showDiff
	d.reproject()
}

func (d *dataState) reproject() {
	d.frame = timeseries.Project(d.set, d.primaries.A.ID, d.primaries.B.ID, d.window(), d.showDiff)
	logging.Debugf("reproject window=%s diff=%v periods=%d range=%+v", d.window(), d.showDiff, d.frame.Len(), d.frame.Range)
}
