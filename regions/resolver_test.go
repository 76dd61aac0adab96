package regions

import "testing"

var (
	ruleA        = Rule{Fragment: "norrk", Code: "0581"}
	ruleB        = Rule{Fragment: "jönk", Code: "0680"}
	placeholders = [2]string{"Norrköping", "Jönköping"}
)

func TestResolveByCodeWithFallbackFill(t *testing.T) {
	p := Resolve([]string{"9999", "0581"}, ruleA, ruleB, placeholders)
	if p.A != (Resolution{ID: "0581", Confidence: Matched}) {
		t.Fatalf("A = %+v", p.A)
	}
	if p.B != (Resolution{ID: "9999", Confidence: Fallback}) {
		t.Fatalf("B = %+v", p.B)
	}
}

func TestResolveEmptyUsesPlaceholders(t *testing.T) {
	p := Resolve(nil, ruleA, ruleB, placeholders)
	if p.A.ID != "Norrköping" || p.B.ID != "Jönköping" {
		t.Fatalf("got %+v", p)
	}
	if p.A.Confidence != Placeholder || p.B.Confidence != Placeholder {
		t.Fatalf("expected placeholder tags, got %v %v", p.A.Confidence, p.B.Confidence)
	}
}

func TestResolveByNameIsCaseInsensitive(t *testing.T) {
	p := Resolve([]string{"JÖNKÖPING", "Linköping", "NORRKÖPING kommun"}, ruleA, ruleB, placeholders)
	if p.A.ID != "NORRKÖPING kommun" || p.A.Confidence != Matched {
		t.Fatalf("A = %+v", p.A)
	}
	if p.B.ID != "JÖNKÖPING" || p.B.Confidence != Matched {
		t.Fatalf("B = %+v", p.B)
	}
}

func TestResolveNameBeatsCode(t *testing.T) {
	p := Resolve([]string{"0581", "Norrköping", "Jönköping"}, ruleA, ruleB, placeholders)
	if p.A.ID != "Norrköping" {
		t.Fatalf("A = %+v", p.A)
	}
}

func TestResolveNoMatchesFillsSortedDistinct(t *testing.T) {
	p := Resolve([]string{"c", "a", "b"}, ruleA, ruleB, placeholders)
	if p.A != (Resolution{ID: "a", Confidence: Fallback}) || p.B != (Resolution{ID: "b", Confidence: Fallback}) {
		t.Fatalf("got %+v", p)
	}
}

func TestResolveSingleIdentifierFillsBothSlots(t *testing.T) {
	p := Resolve([]string{"0680"}, ruleA, ruleB, placeholders)
	if p.B != (Resolution{ID: "0680", Confidence: Matched}) {
		t.Fatalf("B = %+v", p.B)
	}
	if p.A != (Resolution{ID: "0680", Confidence: Fallback}) {
		t.Fatalf("A = %+v", p.A)
	}
}

func TestResolveIsOrderIndependent(t *testing.T) {
	x := Resolve([]string{"q", "p", "r"}, Rule{}, Rule{}, placeholders)
	y := Resolve([]string{"r", "q", "p", "q"}, Rule{}, Rule{}, placeholders)
	if x != y {
		t.Fatalf("results differ: %+v vs %+v", x, y)
	}
}

func TestResolveIgnoresEmptyIdentifiers(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want Primaries
	}{
		{
			name: "empty beside a coded id",
			ids:  []string{"", "0581"},
			want: Primaries{
				A: Resolution{ID: "0581", Confidence: Matched},
				B: Resolution{ID: "0581", Confidence: Fallback},
			},
		},
		{
			name: "empty beside unmatched ids",
			ids:  []string{"b", "", "a"},
			want: Primaries{
				A: Resolution{ID: "a", Confidence: Fallback},
				B: Resolution{ID: "b", Confidence: Fallback},
			},
		},
		{
			name: "only empty ids",
			ids:  []string{"", ""},
			want: Primaries{
				A: Resolution{ID: "Norrköping", Confidence: Placeholder},
				B: Resolution{ID: "Jönköping", Confidence: Placeholder},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.ids, ruleA, ruleB, placeholders); got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}
