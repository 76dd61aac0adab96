package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type footerState struct {
	Window string
	Source string

	ShowDiff bool
	Latest   string

	Periods      int
	TotalPeriods int

	StatusMessage string
	Legend        string
}

type footerStyles struct {
	BarBG    lipgloss.Color
	StatusBG lipgloss.Color
	PillBG   lipgloss.Color
	PillFG   lipgloss.Color
	SourceFG lipgloss.Color
	TextFG   lipgloss.Color
	DimFG    lipgloss.Color
	StatusFG lipgloss.Color
	LegendFG lipgloss.Color
}

func defaultFooterStyles() footerStyles {
	return footerStyles{
		BarBG:    lipgloss.Color("#2b2b2b"),
		StatusBG: lipgloss.Color("#000000"),
		PillBG:   lipgloss.Color("#5fafff"),
		PillFG:   lipgloss.Color("#000000"),
		SourceFG: lipgloss.Color("#e0e0e0"),
		TextFG:   lipgloss.Color("#cfcfcf"),
		DimFG:    lipgloss.Color("#a0a0a0"),
		StatusFG: lipgloss.Color("#9a9a9a"),
		LegendFG: lipgloss.Color("#b0b0b0"),
	}
}

// renderFooter draws the two footer lines: the control bar (window, source,
// toggles, period count) and the status bar (notice, key legend).
func renderFooter(width int, st footerState, styles footerStyles) string {
	if width <= 0 {
		return ""
	}
	if st.Legend == "" {
		st.Legend = "(? help · [ ] window · d difference · x export)"
	}
	st.Periods = max(st.Periods, 0)
	st.TotalPeriods = max(st.TotalPeriods, 0)

	return renderControlBar(width, st, styles) + "\n" + renderStatusBar(width, st, styles)
}

func renderControlBar(width int, st footerState, styles footerStyles) string {
	gap := " "
	rightPlain := truncatePlain(fmt.Sprintf(" Periods %d/%d", st.Periods, st.TotalPeriods), width)
	leftW := max(width-textWidth(rightPlain), 0)

	pill := " WINDOW " + strings.ToUpper(st.Window) + " "
	pill = truncatePlain(pill, leftW)
	pillW := textWidth(pill)

	togglesPlain := fmt.Sprintf("[DIFF: %s] · [LATEST: %s]", onOff(st.ShowDiff), orNone(st.Latest))
	togglesW := min(textWidth(togglesPlain), max(leftW-pillW-2, 0))
	togglesPlain = padRightPlain(truncatePlain(togglesPlain, togglesW), togglesW)

	sourceW := max(leftW-pillW-togglesW-2*len(gap), 0)
	sourcePlain := strings.TrimSpace(st.Source)
	if sourcePlain == "" {
		sourcePlain = "(no source)"
	}
	sourcePlain = padRightPlain(truncatePlain("▸ "+sourcePlain, sourceW), sourceW)

	left := ansiBg(styles.PillBG) + ansiFg(styles.PillFG) + pill +
		ansiBg(styles.BarBG) + ansiFg(styles.TextFG)
	if sourceW > 0 {
		left += gap + applyFG(sourcePlain, styles.SourceFG, styles.TextFG)
	}
	if togglesW > 0 {
		left += gap + applyFG(togglesPlain, styles.DimFG, styles.TextFG)
	}
	used := pillW + togglesW + sourceW
	if sourceW > 0 {
		used += len(gap)
	}
	if togglesW > 0 {
		used += len(gap)
	}
	if used < leftW {
		left += strings.Repeat(" ", leftW-used)
	}
	return applyBar(left+rightPlain, styles.BarBG, styles.TextFG)
}

func renderStatusBar(width int, st footerState, styles footerStyles) string {
	legendPlain := truncatePlain(st.Legend, width)
	leftW := max(width-textWidth(legendPlain), 0)
	msgPlain := padRightPlain(truncatePlain(st.StatusMessage, leftW), leftW)

	line := applyFG(msgPlain, styles.StatusFG, styles.StatusFG) + applyFG(legendPlain, styles.LegendFG, styles.StatusFG)
	return applyBar(line, styles.StatusBG, styles.StatusFG)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func applyBar(s string, bg lipgloss.Color, baseFG lipgloss.Color) string {
	return ansiBg(bg) + ansiFg(baseFG) + s + "\x1b[0m"
}

func applyFG(s string, fg lipgloss.Color, resetFG lipgloss.Color) string {
	return ansiFg(fg) + s + ansiFg(resetFG)
}

func ansiFg(c lipgloss.Color) string { return ansiColor(false, c) }
func ansiBg(c lipgloss.Color) string { return ansiColor(true, c) }

func ansiColor(isBg bool, c lipgloss.Color) string {
	s := string(c)
	if s == "" {
		if isBg {
			return "\x1b[49m"
		}
		return "\x1b[39m"
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		r, _ := strconv.ParseInt(s[1:3], 16, 0)
		g, _ := strconv.ParseInt(s[3:5], 16, 0)
		b, _ := strconv.ParseInt(s[5:7], 16, 0)
		code := 38
		if isBg {
			code = 48
		}
		return fmt.Sprintf("\x1b[%d;2;%d;%d;%dm", code, r, g, b)
	}
	return ""
}

func padRightPlain(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if cur := textWidth(s); cur < w {
		return s + strings.Repeat(" ", w-cur)
	}
	return s
}

// truncatePlain cuts s to w terminal cells. Wide runes count double.
func truncatePlain(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return ansi.Truncate(s, w, "")
}

func textWidth(s string) int {
	return ansi.StringWidth(s)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
