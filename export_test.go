package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andareed/siftly-popchart/render"
	"github.com/andareed/siftly-popchart/timeseries"
)

func sampleFrame(withDiff bool) timeseries.Frame {
	set := timeseries.Build([]timeseries.Row{
		{Region: "A", Period: "2024M01", Value: timeseries.Some(100)},
		{Region: "B", Period: "2024M01", Value: timeseries.Some(150)},
		{Region: "A", Period: "2024M02", Value: timeseries.Missing()},
		{Region: "B", Period: "2024M02", Value: timeseries.Some(160)},
	})
	return timeseries.Project(set, "A", "B", timeseries.Window{}, withDiff)
}

func TestWriteFrameCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := writeFrameCSV(&buf, sampleFrame(true), "North", "South"); err != nil {
		t.Fatalf("writeFrameCSV: %v", err)
	}
	want := "period,date,North,South,difference\n" +
		"2024M01,2024-01-01,100,150,50\n" +
		"2024M02,2024-02-01,,160,\n"
	if buf.String() != want {
		t.Errorf("csv =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestFrameTSVWithoutDifference(t *testing.T) {
	got := frameTSV(sampleFrame(false), "North", "South")
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), got)
	}
	if lines[0] != "period\tdate\tNorth\tSouth" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[2] != "2024M02\t2024-02-01\t\t160" {
		t.Errorf("row = %q", lines[2])
	}
}

func TestExportFrame(t *testing.T) {
	dir := t.TempDir()
	opts := render.Options{NameA: "North", NameB: "South"}

	csvPath := filepath.Join(dir, "table.csv")
	if err := exportFrame(csvPath, sampleFrame(false), opts); err != nil {
		t.Fatalf("export csv: %v", err)
	}
	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if !strings.HasPrefix(string(data), "period,date,North,South\n") {
		t.Errorf("unexpected csv:\n%s", data)
	}

	svgPath := filepath.Join(dir, "chart.svg")
	if err := exportFrame(svgPath, sampleFrame(true), opts); err != nil {
		t.Fatalf("export svg: %v", err)
	}
	data, err = os.ReadFile(svgPath)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("svg export has no <svg element")
	}

	if err := exportFrame(filepath.Join(dir, "chart.txt"), sampleFrame(false), opts); err == nil {
		t.Error("expected an error for an unknown extension")
	}
}
