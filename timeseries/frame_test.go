package timeseries

import (
	"reflect"
	"testing"
)

func TestProjectTrailingWindowWithDifference(t *testing.T) {
	rows := []Row{
		{Region: "A", Period: "2024M01", Value: Some(100)},
		{Region: "A", Period: "2024M02", Value: Some(101)},
		{Region: "A", Period: "2024M03", Value: Some(103)},
		{Region: "B", Period: "2024M01", Value: Some(90)},
		{Region: "B", Period: "2024M03", Value: Some(95)},
	}
	f := Project(Build(rows), "A", "B", ParseWindow("2"), true)
	if !reflect.DeepEqual(f.Periods, []string{"2024M02", "2024M03"}) {
		t.Fatalf("periods = %v", f.Periods)
	}
	if f.B[0].Valid {
		t.Fatalf("B has no 2024M02 row, expected missing")
	}
	if f.Diff[0].Valid || !f.Diff[1].Valid || f.Diff[1].V != -8 {
		t.Fatalf("diff = %v", f.Diff)
	}
	if !f.Range.Set || f.Range.Low >= 95 || f.Range.High <= 103 {
		t.Fatalf("range = %+v", f.Range)
	}
	if !f.DiffRange.Set {
		t.Fatalf("diff range should be set")
	}
	if f.Latest() != 1 {
		t.Fatalf("latest = %d", f.Latest())
	}
}

func TestProjectWithoutDifference(t *testing.T) {
	f := Project(Build(nil), "A", "B", ParseWindow("all"), false)
	if f.Len() != 0 || f.Diff != nil || f.Range.Set {
		t.Fatalf("unexpected frame %+v", f)
	}
	if f.Latest() != -1 {
		t.Fatalf("latest = %d", f.Latest())
	}
}
