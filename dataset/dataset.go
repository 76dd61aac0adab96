// Package dataset loads the flat population dataset: an array of records
// each carrying a region identifier, a period token and a value.
//
// Records are coerced one by one and never rejected. A missing field becomes
// an empty string, and a missing or non-numeric value becomes a missing
// Value. Only a failure to fetch or parse the document as a whole is an error.
package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"

	"github.com/andareed/siftly-popchart/logging"
	"github.com/andareed/siftly-popchart/timeseries"
)

// ErrUnsupportedFormat is returned for sources that are neither JSON nor CSV.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Fields names the three record fields.
type Fields struct {
	Region string
	Period string
	Value  string
}

// DefaultFields matches the dataset written by the SCB updater.
var DefaultFields = Fields{Region: "region", Period: "month", Value: "population"}

// Options configures Load.
type Options struct {
	Fields  Fields
	Client  *http.Client  // nil uses http.DefaultClient
	Timeout time.Duration // applies to URL sources; 0 means no extra timeout
}

// Load reads the dataset at source, a file path or an http(s) URL.
func Load(ctx context.Context, source string, opts Options) ([]timeseries.Row, error) {
	if opts.Fields == (Fields{}) {
		opts.Fields = DefaultFields
	}
	if source == "" {
		return nil, errors.New("no dataset source configured")
	}

	var (
		data []byte
		err  error
		name = source
	)
	if isURL(source) {
		data, err = fetch(ctx, source, opts)
		if u, perr := url.Parse(source); perr == nil {
			name = u.Path
		}
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", source, err)
	}

	rows, err := Decode(data, formatOf(name), opts.Fields)
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", source, err)
	}
	logging.Infof("dataset: loaded %d rows from %s", len(rows), source)
	return rows, nil
}

// Format is a dataset encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatCSV
	FormatUnknown
)

func formatOf(name string) Format {
	switch strings.ToLower(path.Ext(filepath.ToSlash(name))) {
	case ".json", ".jsonc", "":
		return FormatJSON
	case ".csv":
		return FormatCSV
	default:
		return FormatUnknown
	}
}

// Decode parses data in the given format.
func Decode(data []byte, f Format, fields Fields) ([]timeseries.Row, error) {
	switch f {
	case FormatJSON:
		return decodeJSON(data, fields)
	case FormatCSV:
		return decodeCSV(data, fields)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func fetch(ctx context.Context, source string, opts Options) ([]byte, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, text/csv, */*")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func decodeJSON(data []byte, fields Fields) ([]timeseries.Row, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &records); err != nil {
		return nil, err
	}

	rows := make([]timeseries.Row, 0, len(records))
	for i, raw := range records {
		var rec map[string]json.RawMessage
		if err := json.Unmarshal(raw, &rec); err != nil {
			logging.Debugf("dataset: record %d is not an object: %v", i, err)
		}
		rows = append(rows, timeseries.Row{
			Region: TextField(rec[fields.Region]),
			Period: TextField(rec[fields.Period]),
			Value:  valueField(rec[fields.Value]),
		})
	}
	return rows, nil
}

// TextField reads a JSON value as text. Strings are unquoted, null and
// absent values are empty.
func TextField(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	// numbers and anything else keep their literal text
	return string(raw)
}

func valueField(raw json.RawMessage) timeseries.Value {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return timeseries.Missing()
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return timeseries.Some(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return timeseries.ParseValue(s)
	}
	return timeseries.Missing()
}

func decodeCSV(data []byte, fields Fields) ([]timeseries.Row, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("CSV has no header")
	}

	col := map[string]int{}
	for i, name := range records[0] {
		name = strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")
		col[strings.ToLower(name)] = i
	}
	get := func(rec []string, field string) (string, bool) {
		i, ok := col[strings.ToLower(field)]
		if !ok || i >= len(rec) {
			return "", false
		}
		return rec[i], true
	}

	rows := make([]timeseries.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		region, _ := get(rec, fields.Region)
		period, _ := get(rec, fields.Period)
		value, _ := get(rec, fields.Value)
		rows = append(rows, timeseries.Row{
			Region: strings.TrimSpace(region),
			Period: strings.TrimSpace(period),
			Value:  timeseries.ParseValue(value),
		})
	}
	return rows, nil
}
