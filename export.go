package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andareed/siftly-popchart/render"
	"github.com/andareed/siftly-popchart/timeseries"
)

// frameRecords lays the frame out as rows: a header, then one row per
// period with A, B and (when requested) the difference. Missing values are
// empty cells.
func frameRecords(f timeseries.Frame, nameA, nameB string) [][]string {
	header := []string{"period", "date", nameA, nameB}
	if f.Diff != nil {
		header = append(header, "difference")
	}
	out := make([][]string, 0, f.Len()+1)
	out = append(out, header)
	for i, p := range f.Periods {
		row := []string{p, timeseries.PeriodDate(p), cellValue(f.A[i]), cellValue(f.B[i])}
		if f.Diff != nil {
			row = append(row, cellValue(f.Diff[i]))
		}
		out = append(out, row)
	}
	return out
}

func cellValue(v timeseries.Value) string {
	if !v.Valid {
		return ""
	}
	return v.String()
}

// writeFrameCSV writes the visible window as CSV.
func writeFrameCSV(w io.Writer, f timeseries.Frame, nameA, nameB string) error {
	cw := csv.NewWriter(w)
	for i, rec := range frameRecords(f, nameA, nameB) {
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// frameTSV is the clipboard form of the visible window; spreadsheets paste
// tab separated text into cells.
func frameTSV(f timeseries.Frame, nameA, nameB string) string {
	var b strings.Builder
	for _, rec := range frameRecords(f, nameA, nameB) {
		b.WriteString(strings.Join(rec, "\t"))
		b.WriteByte('\n')
	}
	return b.String()
}

// exportFrame writes the frame to path. The extension picks the output:
// .csv for the table, .svg or .png for the chart.
func exportFrame(path string, f timeseries.Frame, opts render.Options) error {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		out, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("open export file: %w", err)
		}
		if err := writeFrameCSV(out, f, opts.NameA, opts.NameB); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	}
	return render.RenderFile(path, f, opts)
}
