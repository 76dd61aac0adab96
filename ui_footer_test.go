package main

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderFooterFillsWidth(t *testing.T) {
	st := footerState{
		Window:        "24",
		Source:        "norrkoping_jonkoping_manad.json",
		ShowDiff:      true,
		Latest:        "2025M08",
		Periods:       24,
		TotalPeriods:  104,
		StatusMessage: "loaded 208 rows",
	}
	for _, width := range []int{120, 80, 40, 12} {
		out := renderFooter(width, st, defaultFooterStyles())
		lines := strings.Split(out, "\n")
		if len(lines) != 2 {
			t.Fatalf("width %d: got %d lines, want 2", width, len(lines))
		}
		for i, line := range lines {
			if got := ansi.StringWidth(line); got != width {
				t.Errorf("width %d: line %d is %d cells wide", width, i, got)
			}
		}
	}
}

func TestRenderFooterContent(t *testing.T) {
	st := footerState{Window: "all", Source: "data.csv", Periods: 5, TotalPeriods: 5}
	plain := ansi.Strip(renderFooter(160, st, defaultFooterStyles()))

	for _, want := range []string{"WINDOW ALL", "▸ data.csv", "[DIFF: off]", "[LATEST: none]", "Periods 5/5", "? help"} {
		if !strings.Contains(plain, want) {
			t.Errorf("footer missing %q:\n%s", want, plain)
		}
	}
}

func TestRenderFooterZeroWidth(t *testing.T) {
	if out := renderFooter(0, footerState{}, defaultFooterStyles()); out != "" {
		t.Errorf("got %q, want empty", out)
	}
}

func TestTruncatePlainCountsCells(t *testing.T) {
	if got := truncatePlain("Jönköping", 4); got != "Jönk" {
		t.Errorf("truncatePlain = %q, want Jönk", got)
	}
	if got := textWidth("日本"); got != 2*2 {
		t.Errorf("textWidth = %d, want 4", got)
	}
}
