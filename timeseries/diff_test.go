package timeseries

import "testing"

func TestDifferenceNeverCoercesMissingToZero(t *testing.T) {
	a := []Value{Some(100), Missing(), Some(120)}
	b := []Value{Some(110), Some(90), Missing()}
	got := Difference(a, b)
	if len(got) != 3 {
		t.Fatalf("len = %d", len(got))
	}
	if !got[0].Valid || got[0].V != 10 {
		t.Fatalf("got[0] = %v, want 10", got[0])
	}
	if got[1].Valid || got[2].Valid {
		t.Fatalf("expected missing at 1 and 2, got %v %v", got[1], got[2])
	}
}

func TestDifferenceUnequalLengths(t *testing.T) {
	got := Difference([]Value{Some(1), Some(2)}, []Value{Some(5)})
	if len(got) != 1 || got[0].V != 4 {
		t.Fatalf("got %v", got)
	}
}
