package timeseries

import (
	"testing"
	"time"
)

func TestPeriodDate(t *testing.T) {
	cases := map[string]string{
		"2024M05": "2024-05-01",
		"1999M12": "1999-12-01",
		"2024-03": "2024-03-01",
		"2024M7":  "2024-07-01",
		"2024":    "2024-01-01",
		"2024M":   "2024-01-01",
	}
	for in, want := range cases {
		if got := PeriodDate(in); got != want {
			t.Errorf("PeriodDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseAndFormatPeriod(t *testing.T) {
	ts, err := ParsePeriod("2025M02")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ts != time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected time %v", ts)
	}
	if got := FormatPeriod(ts); got != "2025M02" {
		t.Fatalf("format round trip got %q", got)
	}
	for _, bad := range []string{"", "20x4M01", "2024M13", "2024M00", "abc"} {
		if _, err := ParsePeriod(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestMonthsBetween(t *testing.T) {
	after := time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC)
	through := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	got := MonthsBetween(after, through)
	want := []string{"2024M12", "2025M01", "2025M02"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
	if n := len(MonthsBetween(through, through)); n != 0 {
		t.Fatalf("expected empty range, got %d months", n)
	}
}

func TestAddMonthsWrapsYears(t *testing.T) {
	d := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if got := FormatPeriod(AddMonths(d, -1)); got != "2023M12" {
		t.Fatalf("got %s", got)
	}
	if got := FormatPeriod(AddMonths(d, 25)); got != "2026M02" {
		t.Fatalf("got %s", got)
	}
}
