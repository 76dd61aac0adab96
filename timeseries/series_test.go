package timeseries

import (
	"reflect"
	"testing"
)

func sampleRows() []Row {
	return []Row{
		{Region: "Norrköping", Period: "2024M03", Value: Some(145000)},
		{Region: "Jönköping", Period: "2024M02", Value: Some(144800)},
		{Region: "Norrköping", Period: "2024M01", Value: Some(144900)},
		{Region: "Jönköping", Period: "2024M01", Value: Some(144700)},
		{Region: "Norrköping", Period: "2024M02", Value: ParseValue("n/a")},
	}
}

func TestBuildPeriodUniverseIsSortedUnion(t *testing.T) {
	set := Build(sampleRows())
	want := []string{"2024M01", "2024M02", "2024M03"}
	if !reflect.DeepEqual(set.Periods, want) {
		t.Fatalf("periods = %v, want %v", set.Periods, want)
	}
	if ids := set.RegionIDs(); !reflect.DeepEqual(ids, []string{"Jönköping", "Norrköping"}) {
		t.Fatalf("region ids = %v", ids)
	}
}

func TestBuildSortsEachRegionAndKeepsMissingSlots(t *testing.T) {
	set := Build(sampleRows())
	pts := set.Regions["Norrköping"]
	if len(pts) != 3 {
		t.Fatalf("expected 3 points, got %d", len(pts))
	}
	for i, want := range []string{"2024M01", "2024M02", "2024M03"} {
		if pts[i].Period != want {
			t.Fatalf("point %d period = %s, want %s", i, pts[i].Period, want)
		}
	}
	if pts[1].Value.Valid {
		t.Fatalf("non-numeric value should be kept as missing, got %v", pts[1].Value)
	}
}

func TestBuildEmpty(t *testing.T) {
	set := Build(nil)
	if len(set.Periods) != 0 || len(set.Regions) != 0 {
		t.Fatalf("expected empty set, got %+v", set)
	}
}

func TestLookupRoundTrip(t *testing.T) {
	set := Build(sampleRows())
	for id, pts := range set.Regions {
		l := set.Lookup(id)
		for _, p := range pts {
			idx := -1
			for i, period := range set.Periods {
				if period == p.Period {
					idx = i
				}
			}
			if got := l.At(set.Periods, idx); got != p.Value {
				t.Fatalf("%s %s: got %v want %v", id, p.Period, got, p.Value)
			}
		}
	}
}

func TestLookupMissingAndOutOfRange(t *testing.T) {
	set := Build(sampleRows())
	l := set.Lookup("Jönköping")
	if v := l.At(set.Periods, 2); v.Valid {
		t.Fatalf("expected missing for absent period, got %v", v)
	}
	if v := l.At(set.Periods, -1); v.Valid {
		t.Fatalf("expected missing for negative index")
	}
	if v := l.At(set.Periods, len(set.Periods)); v.Valid {
		t.Fatalf("expected missing for index past end")
	}
	if v := set.Lookup("nowhere").Get("2024M01"); v.Valid {
		t.Fatalf("unknown region must be missing")
	}
}

func TestLookupDuplicatePeriodLastWins(t *testing.T) {
	set := Build([]Row{
		{Region: "x", Period: "2024M01", Value: Some(1)},
		{Region: "x", Period: "2024M01", Value: Some(2)},
	})
	if got := set.Lookup("x").Get("2024M01"); got.V != 2 {
		t.Fatalf("expected last duplicate to win, got %v", got)
	}
}
