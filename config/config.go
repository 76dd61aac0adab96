// Package config loads sfpop configuration.
//
// Configuration comes from a single YAML file named by the --config flag or
// the SFPOP_CONFIG environment variable. There is no automatic discovery.
// Without a file the built-in defaults are used as-is; they describe the
// Norrköping/Jönköping comparison the tool was written for.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "SFPOP_CONFIG"

// Config is the complete sfpop configuration.
type Config struct {
	// Data configures where the dataset comes from and how its records look.
	Data DataConfig `yaml:"data"`

	// Regions configures which two regions are charted.
	Regions RegionsConfig `yaml:"regions"`

	// View configures the window selector and the difference toggle.
	View ViewConfig `yaml:"view"`

	// Theme holds named colour tokens. A token that is absent is unset and
	// the renderer falls back to its own default.
	Theme Theme `yaml:"theme"`

	// SCB configures the dataset updater.
	SCB SCBConfig `yaml:"scb"`
}

// DataConfig configures the input dataset.
type DataConfig struct {
	// Source is a file path or an http(s) URL. ${HOME} style variables are
	// expanded.
	Source string `yaml:"source"`

	// Field names in each record.
	RegionField string `yaml:"region_field"`
	PeriodField string `yaml:"period_field"`
	ValueField  string `yaml:"value_field"`

	// LoadTimeout bounds URL loads.
	LoadTimeout time.Duration `yaml:"load_timeout"`
}

// RegionRule identifies one primary region.
type RegionRule struct {
	// Name is the display name, also used as the placeholder label when the
	// dataset is empty.
	Name string `yaml:"name"`
	// Fragment is matched case-insensitively against region identifiers.
	Fragment string `yaml:"fragment"`
	// Code is the exact municipality code.
	Code string `yaml:"code"`
}

// RegionsConfig configures the two primary regions.
type RegionsConfig struct {
	PrimaryA RegionRule `yaml:"primary_a"`
	PrimaryB RegionRule `yaml:"primary_b"`
}

// ViewConfig configures the interactive controls.
type ViewConfig struct {
	// Windows lists the selectable window sizes in months, plus "all".
	Windows []string `yaml:"windows"`
	// DefaultWindow is the initial selection.
	DefaultWindow string `yaml:"default_window"`
	// ShowDifference is the initial state of the difference toggle.
	ShowDifference bool `yaml:"show_difference"`
}

// SCBConfig configures fetching new months from Statistics Sweden.
type SCBConfig struct {
	BaseURL        string        `yaml:"base_url"`
	ContentsCode   string        `yaml:"contents_code"`
	Age            string        `yaml:"age"`
	Sex            string        `yaml:"sex"`
	RegionCodelist string        `yaml:"region_codelist"`
	AgeCodelist    string        `yaml:"age_codelist"`
	Timeout        time.Duration `yaml:"timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Source:      "norrkoping_jonkoping_manad.json",
			RegionField: "region",
			PeriodField: "month",
			ValueField:  "population",
			LoadTimeout: 30 * time.Second,
		},
		Regions: RegionsConfig{
			PrimaryA: RegionRule{Name: "Norrköping", Fragment: "norrk", Code: "0581"},
			PrimaryB: RegionRule{Name: "Jönköping", Fragment: "jönk", Code: "0680"},
		},
		View: ViewConfig{
			Windows:       []string{"12", "24", "36", "60", "all"},
			DefaultWindow: "24",
		},
		Theme: Theme{},
		SCB: SCBConfig{
			BaseURL:        "https://api.scb.se/ov0104/v2beta/api/v2/tables/TAB6471/data",
			ContentsCode:   "000007SF",
			Age:            "TotSA",
			Sex:            "TotSa",
			RegionCodelist: "vs_CKM03Kommun",
			AgeCodelist:    "vs_CKM01AlderTot",
			Timeout:        45 * time.Second,
		},
	}
}

// Resolve loads the config file named by flagPath, or by SFPOP_CONFIG when
// flagPath is empty. With neither set the defaults are returned.
func Resolve(flagPath string) (*Config, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		cfg := Default()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from path on top of the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if len(c.View.Windows) == 0 {
		errs = append(errs, errors.New("view.windows must list at least one option"))
	}
	if c.Data.RegionField == "" || c.Data.PeriodField == "" || c.Data.ValueField == "" {
		errs = append(errs, errors.New("data field names must not be empty"))
	}
	a, b := c.Regions.PrimaryA, c.Regions.PrimaryB
	if a.Code != "" && a.Code == b.Code {
		errs = append(errs, fmt.Errorf("regions.primary_a and primary_b share code %q", a.Code))
	}
	if c.Data.LoadTimeout < 0 || c.SCB.Timeout < 0 {
		errs = append(errs, errors.New("timeouts must not be negative"))
	}

	return errors.Join(errs...)
}

// RegionNames maps configured region codes to display names.
func (c *Config) RegionNames() map[string]string {
	out := make(map[string]string, 2)
	for _, r := range []RegionRule{c.Regions.PrimaryA, c.Regions.PrimaryB} {
		if r.Code != "" {
			out[r.Code] = r.Name
		}
	}
	return out
}

// RegionCodes returns the configured codes in primary order.
func (c *Config) RegionCodes() []string {
	var out []string
	for _, r := range []RegionRule{c.Regions.PrimaryA, c.Regions.PrimaryB} {
		if r.Code != "" {
			out = append(out, r.Code)
		}
	}
	return out
}

// Placeholders returns the labels used when the dataset has no regions.
func (c *Config) Placeholders() [2]string {
	return [2]string{c.Regions.PrimaryA.Name, c.Regions.PrimaryB.Name}
}

func (c *Config) expandVariables() {
	c.Data.Source = expandVars(c.Data.Source)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} from the environment.
func expandVars(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) >= 3 {
			return parts[2]
		}
		return ""
	})
}
