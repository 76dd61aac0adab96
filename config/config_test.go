package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Regions.PrimaryA.Code != "0581" || cfg.Regions.PrimaryB.Code != "0680" {
		t.Errorf("unexpected default codes %+v", cfg.Regions)
	}
	if cfg.View.DefaultWindow != "24" {
		t.Errorf("expected default_window=24, got %s", cfg.View.DefaultWindow)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if names := cfg.RegionNames(); names["0581"] != "Norrköping" {
		t.Errorf("region names = %v", names)
	}
}

func TestResolve_DefaultsWithoutFile(t *testing.T) {
	t.Setenv(EnvVar, "")

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if cfg.Data.PeriodField != "month" {
		t.Errorf("expected period_field=month, got %s", cfg.Data.PeriodField)
	}
}

func TestResolve_FromEnvironment(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "sfpop.yaml")

	configContent := `
data:
  source: ${SFPOP_TEST_ROOT}/pop.json
  load_timeout: 5s
view:
  windows: ["6", "all"]
  default_window: all
  show_difference: true
theme:
  series_a: "#ff0000"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv(EnvVar, configPath)
	t.Setenv("SFPOP_TEST_ROOT", "/srv/data")

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if cfg.Data.Source != "/srv/data/pop.json" {
		t.Errorf("source not expanded: %s", cfg.Data.Source)
	}
	if cfg.Data.LoadTimeout != 5*time.Second {
		t.Errorf("load_timeout = %v", cfg.Data.LoadTimeout)
	}
	if !cfg.View.ShowDifference || len(cfg.View.Windows) != 2 {
		t.Errorf("view = %+v", cfg.View)
	}
	// untouched sections keep their defaults
	if cfg.Data.RegionField != "region" {
		t.Errorf("region_field = %s", cfg.Data.RegionField)
	}
	if c, ok := cfg.Theme.Token(TokenSeriesA); !ok || c != "#ff0000" {
		t.Errorf("series_a token = %q %v", c, ok)
	}
	if _, ok := cfg.Theme.Token(TokenSeriesB); ok {
		t.Errorf("series_b should be unset")
	}
}

func TestLoadFile_Validation(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	content := `
regions:
  primary_a: {code: "0581"}
  primary_b: {code: "0581"}
view:
  windows: []
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := LoadFile(configPath)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "share code") || !strings.Contains(err.Error(), "view.windows") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestThemeWith(t *testing.T) {
	th := Theme{TokenSeriesA: "1", TokenAxis: ""}.With(Theme{TokenSeriesA: "2", TokenAxis: "3", TokenBorder: "4"})
	if th[TokenSeriesA] != "1" || th[TokenAxis] != "3" || th[TokenBorder] != "4" {
		t.Fatalf("merged theme = %v", th)
	}
}
