package scb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/tidwall/jsonc"

	"github.com/andareed/siftly-popchart/dataset"
	"github.com/andareed/siftly-popchart/logging"
	"github.com/andareed/siftly-popchart/timeseries"
)

// ErrNoExistingData is returned when the dataset file is missing or empty.
// The updater never creates a dataset from scratch.
var ErrNoExistingData = errors.New("no existing data; refusing to create dataset")

// Result summarises an update run.
type Result struct {
	Latest  string   // latest complete month before the update
	Fetched []string // months requested
	Added   int      // rows written
}

// Updater appends newly published months to a dataset file.
type Updater struct {
	Client *Client
	// Fields names the record keys; the zero value means
	// dataset.DefaultFields. New records are written with these keys.
	Fields dataset.Fields
	Now    func() time.Time
}

func (u *Updater) fields() dataset.Fields {
	if u.Fields == (dataset.Fields{}) {
		return dataset.DefaultFields
	}
	return u.Fields
}

// Update brings the dataset at path up to the last full month before now.
// Rows after the latest month that has every configured region are dropped
// and fetched again.
func (u *Updater) Update(ctx context.Context, path string) (Result, error) {
	var res Result

	fields := u.fields()
	rows, err := readExisting(path, fields)
	if err != nil {
		return res, err
	}
	names := make(map[string]struct{}, len(u.Client.Codes))
	for _, code := range u.Client.Codes {
		name := code
		if n, ok := u.Client.Names[code]; ok {
			name = n
		}
		names[name] = struct{}{}
	}

	latest, ok := latestCompleteMonth(rows, names)
	if !ok {
		return res, ErrNoExistingData
	}
	res.Latest = timeseries.FormatPeriod(latest)
	rows = truncateAfter(rows, res.Latest)

	now := time.Now
	if u.Now != nil {
		now = u.Now
	}
	today := now()
	end := timeseries.AddMonths(time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), -1)
	if !latest.Before(end) {
		logging.Infof("scb: no new months to fetch (latest %s)", res.Latest)
		return res, nil
	}

	res.Fetched = timeseries.MonthsBetween(latest, end)
	logging.Infof("scb: fetching months %v", res.Fetched)
	fresh, err := u.Client.Fetch(ctx, res.Fetched)
	if err != nil {
		return res, err
	}

	seen := make(map[[2]string]struct{}, len(rows))
	for _, r := range rows {
		seen[[2]string{r.Region, r.Month}] = struct{}{}
	}
	for _, r := range fresh {
		key := [2]string{r.Region, r.Month}
		if _, dup := seen[key]; dup {
			continue
		}
		rows = append(rows, r)
		seen[key] = struct{}{}
		res.Added++
	}
	if res.Added == 0 {
		return res, nil
	}

	sortRecords(rows)
	if err := writeRecords(path, rows, fields); err != nil {
		return res, err
	}
	logging.Infof("scb: wrote %d new rows to %s", res.Added, path)
	return res, nil
}

// readExisting decodes the dataset the way the loader does: comments are
// allowed, values are not interpreted and malformed elements are kept.
func readExisting(path string, f dataset.Fields) ([]Record, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) || (err == nil && len(bytes.TrimSpace(data)) == 0) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &elems); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	rows := make([]Record, 0, len(elems))
	for i, elem := range elems {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(elem, &obj); err != nil || obj == nil {
			logging.Debugf("scb: record %d is not an object, kept as is", i)
			rows = append(rows, Record{opaque: elem})
			continue
		}
		rows = append(rows, Record{
			Region:     dataset.TextField(obj[f.Region]),
			Month:      dataset.TextField(obj[f.Period]),
			Population: obj[f.Value],
			raw:        obj,
		})
	}
	return rows, nil
}

// latestCompleteMonth finds the newest month whose set of regions equals names.
func latestCompleteMonth(rows []Record, names map[string]struct{}) (time.Time, bool) {
	byMonth := make(map[string]map[string]struct{})
	for _, r := range rows {
		if byMonth[r.Month] == nil {
			byMonth[r.Month] = make(map[string]struct{})
		}
		byMonth[r.Month][r.Region] = struct{}{}
	}

	var latest time.Time
	found := false
	for month, regions := range byMonth {
		if !sameSet(regions, names) {
			continue
		}
		d, err := timeseries.ParsePeriod(month)
		if err != nil {
			continue
		}
		if !found || d.After(latest) {
			latest, found = d, true
		}
	}
	return latest, found
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func truncateAfter(rows []Record, latest string) []Record {
	out := rows[:0]
	for _, r := range rows {
		if r.Month <= latest {
			out = append(out, r)
		}
	}
	return out
}

// sortRecords orders by month then region. Unparsable months sort first.
func sortRecords(rows []Record) {
	key := func(r Record) time.Time {
		d, err := timeseries.ParsePeriod(r.Month)
		if err != nil {
			return time.Time{}
		}
		return d
	}
	sort.SliceStable(rows, func(i, j int) bool {
		di, dj := key(rows[i]), key(rows[j])
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return rows[i].Region < rows[j].Region
	})
}

func writeRecords(path string, rows []Record, f dataset.Fields) error {
	elems := make([]json.RawMessage, len(rows))
	for i, r := range rows {
		elem, err := r.encode(f)
		if err != nil {
			return fmt.Errorf("encode record %d: %w", i, err)
		}
		elems[i] = elem
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(elems); err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}

// encode writes the record as an object with the configured keys first and
// any other keys of an existing record after them, sorted.
func (r Record) encode(f dataset.Fields) (json.RawMessage, error) {
	if r.opaque != nil {
		return r.opaque, nil
	}
	obj := r.raw
	if obj == nil {
		region, err := marshalText(r.Region)
		if err != nil {
			return nil, err
		}
		month, err := marshalText(r.Month)
		if err != nil {
			return nil, err
		}
		pop := r.Population
		if len(pop) == 0 {
			pop = json.RawMessage("null")
		}
		obj = map[string]json.RawMessage{f.Region: region, f.Period: month, f.Value: pop}
	}

	keys := make([]string, 0, len(obj))
	for _, k := range []string{f.Region, f.Period, f.Value} {
		if _, ok := obj[k]; ok {
			keys = append(keys, k)
		}
	}
	var rest []string
	for k := range obj {
		if k != f.Region && k != f.Period && k != f.Value {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	keys = append(keys, rest...)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := marshalText(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(obj[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalText(s string) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
