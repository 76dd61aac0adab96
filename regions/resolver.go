// Package regions picks the two primary regions to chart out of the
// identifiers present in a dataset.
//
// The matcher is a best-effort heuristic, not a guaranteed-correct resolver:
// a name fragment match wins, then an exact code match, then a deterministic
// fill from the sorted identifiers. Every result is tagged so callers can tell
// a confident match from a guess.
package regions

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Confidence tags how a primary slot was filled.
type Confidence int

const (
	Matched     Confidence = iota // name fragment or code matched
	Fallback                      // filled from the remaining identifiers
	Placeholder                   // no data at all; fixed label
)

func (c Confidence) String() string {
	switch c {
	case Matched:
		return "matched"
	case Fallback:
		return "fallback"
	case Placeholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// Rule describes how to recognise one primary region.
type Rule struct {
	Fragment string // case-insensitive substring of the display name
	Code     string // exact identifier, e.g. "0581"
}

// Resolution is one resolved slot.
type Resolution struct {
	ID         string
	Confidence Confidence
}

// Primaries is the resolved pair.
type Primaries struct {
	A Resolution
	B Resolution
}

// Resolve picks primary A and primary B from ids. Input order does not
// matter; ids are considered in sorted order so the result is reproducible.
// With no ids at all the placeholder labels are returned.
func Resolve(ids []string, a, b Rule, placeholders [2]string) Primaries {
	sorted := uniqueSorted(ids)
	if len(sorted) == 0 {
		return Primaries{
			A: Resolution{ID: placeholders[0], Confidence: Placeholder},
			B: Resolution{ID: placeholders[1], Confidence: Placeholder},
		}
	}

	var p Primaries
	p.A, _ = match(sorted, a)
	p.B, _ = match(sorted, b)

	if p.A.ID == "" {
		p.A = fill(sorted, p.B.ID)
	}
	if p.B.ID == "" {
		p.B = fill(sorted, p.A.ID)
	}
	return p
}

func match(sorted []string, r Rule) (Resolution, bool) {
	fold := cases.Fold()
	if frag := fold.String(strings.TrimSpace(r.Fragment)); frag != "" {
		for _, id := range sorted {
			if strings.Contains(fold.String(id), frag) {
				return Resolution{ID: id, Confidence: Matched}, true
			}
		}
	}
	if r.Code != "" {
		for _, id := range sorted {
			if id == r.Code {
				return Resolution{ID: id, Confidence: Matched}, true
			}
		}
	}
	return Resolution{}, false
}

// fill takes the first sorted id that is not taken by the other slot. With a
// single id available it is reused.
func fill(sorted []string, taken string) Resolution {
	for _, id := range sorted {
		if id != taken {
			return Resolution{ID: id, Confidence: Fallback}
		}
	}
	return Resolution{ID: sorted[0], Confidence: Fallback}
}

// uniqueSorted drops duplicates and empty ids, which no slot may take.
func uniqueSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
