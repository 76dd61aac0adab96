// Package scb keeps the local population dataset current by fetching newly
// published months from Statistics Sweden's table API.
//
// The API answers with PC-Axis text in Latin-1. Region codes come from the
// CODES("region") line and values from the DATA block, laid out region-major
// then month.
package scb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/andareed/siftly-popchart/config"
	"github.com/andareed/siftly-popchart/logging"
)

// Record is one dataset entry. Population holds the raw JSON value, so a
// null or a string in an existing file is written back as it was read.
type Record struct {
	Region     string
	Month      string
	Population json.RawMessage

	// raw is the whole object read from disk, nil for fetched records.
	// opaque is an element that was not an object at all.
	raw    map[string]json.RawMessage
	opaque json.RawMessage
}

// Client fetches monthly population figures.
type Client struct {
	HTTP   *http.Client
	Config config.SCBConfig
	Codes  []string          // region codes in request order
	Names  map[string]string // code -> display name written to the dataset
}

// NewClient builds a client from cfg.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		HTTP:   &http.Client{Timeout: cfg.SCB.Timeout},
		Config: cfg.SCB,
		Codes:  cfg.RegionCodes(),
		Names:  cfg.RegionNames(),
	}
}

// Fetch downloads the given months. A 400 response means the months are not
// published yet and yields no records and no error.
func (c *Client) Fetch(ctx context.Context, months []string) ([]Record, error) {
	if len(months) == 0 {
		return nil, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(months), nil)
	if err != nil {
		return nil, err
	}
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scb request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		logging.Warnf("scb: 400 for months %v, assuming not yet published", months)
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("scb request: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("scb read: %w", err)
	}
	text, err := charmap.ISO8859_1.NewDecoder().Bytes(body)
	if err != nil {
		return nil, fmt.Errorf("scb decode: %w", err)
	}
	return Parse(string(text), c.Codes, months, c.Names)
}

func (c *Client) requestURL(months []string) string {
	params := [][2]string{
		{"lang", "sv"},
		{"valueCodes[ContentsCode]", c.Config.ContentsCode},
		{"valueCodes[Region]", strings.Join(c.Codes, ",")},
		{"valueCodes[Alder]", c.Config.Age},
		{"valueCodes[Kon]", c.Config.Sex},
		{"codelist[Region]", c.Config.RegionCodelist},
		{"codelist[Alder]", c.Config.AgeCodelist},
		{"valueCodes[Tid]", strings.Join(months, ",")},
	}
	// the API wants brackets and commas unescaped
	keep := strings.NewReplacer("%2C", ",", "%5B", "[", "%5D", "]")
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, keep.Replace(url.QueryEscape(p[0]))+"="+keep.Replace(url.QueryEscape(p[1])))
	}
	return c.Config.BaseURL + "?" + strings.Join(parts, "&")
}

var (
	codesLine  = regexp.MustCompile(`(?i)CODES\("region"\)=((?:\s*"[^"]*"\s*,?)+);`)
	quoted     = regexp.MustCompile(`"([^"]*)"`)
	dataBlock  = regexp.MustCompile(`DATA=\s*([^;]+);`)
	errNoBlock = errors.New("scb response missing DATA block")
)

// Parse extracts records from a PC-Axis payload. codes is the request order,
// used when the payload has no CODES("region") line. Cells that are not
// integers (".." for suppressed values) produce no record.
func Parse(text string, codes, months []string, names map[string]string) ([]Record, error) {
	regionCodes := codes
	if m := codesLine.FindStringSubmatch(text); m != nil {
		regionCodes = nil
		for _, q := range quoted.FindAllStringSubmatch(m[1], -1) {
			regionCodes = append(regionCodes, q[1])
		}
	}

	m := dataBlock.FindStringSubmatch(text)
	if m == nil {
		return nil, errNoBlock
	}
	cells := strings.Fields(m[1])
	if want := len(regionCodes) * len(months); len(cells) != want {
		logging.Warnf("scb: expected %d cells, got %d", want, len(cells))
	}

	var out []Record
	idx := 0
	for _, code := range regionCodes {
		for _, month := range months {
			if idx >= len(cells) {
				return out, nil
			}
			cell := strings.Trim(cells[idx], `"`)
			idx++
			v, err := strconv.Atoi(cell)
			if err != nil {
				continue
			}
			name := code
			if n, ok := names[code]; ok {
				name = n
			}
			out = append(out, Record{Region: name, Month: month, Population: json.RawMessage(strconv.Itoa(v))})
		}
	}
	return out, nil
}
