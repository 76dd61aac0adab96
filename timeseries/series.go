package timeseries

import (
	"sort"
)

// Row is one flat input record.
type Row struct {
	Region string
	Period string
	Value  Value
}

// Point is one observation of a region's series.
type Point struct {
	Period string
	Value  Value
}

// Set is the output of Build: every region's chronologically sorted points and
// the sorted universe of distinct periods. An index into Periods is the
// canonical time axis.
type Set struct {
	Regions map[string][]Point
	Periods []string
}

// Build groups rows by region and derives the period universe. Rows whose
// value is missing keep their slot. Duplicate periods within a region are kept
// in input order; Lookup resolves them last-wins.
func Build(rows []Row) *Set {
	seen := make(map[string]struct{})
	regions := make(map[string][]Point)

	for _, r := range rows {
		seen[r.Period] = struct{}{}
		regions[r.Region] = append(regions[r.Region], Point{Period: r.Period, Value: r.Value})
	}

	periods := make([]string, 0, len(seen))
	for p := range seen {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	for id, pts := range regions {
		sort.SliceStable(pts, func(i, j int) bool { return pts[i].Period < pts[j].Period })
		regions[id] = pts
	}

	return &Set{Regions: regions, Periods: periods}
}

// RegionIDs returns the region identifiers in sorted order.
func (s *Set) RegionIDs() []string {
	ids := make([]string, 0, len(s.Regions))
	for id := range s.Regions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Lookup returns a lookup for region id. Unknown regions yield an empty lookup.
func (s *Set) Lookup(id string) Lookup {
	return NewLookup(s.Regions[id])
}
