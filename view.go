package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/andareed/siftly-popchart/logging"
	"github.com/andareed/siftly-popchart/regions"
	"github.com/andareed/siftly-popchart/timeseries"
)

func (m *model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.activeDialog != nil && m.activeDialog.IsVisible() {
		return lipgloss.Place(
			m.terminalWidth, m.terminalHeight,
			lipgloss.Center, lipgloss.Center,
			m.activeDialog.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceBackground(lipgloss.Color("236")),
		)
	}

	chartArea := m.chartView()
	bordered := m.styles.frame.Render(chartArea)
	contentW := max(lipgloss.Width(bordered), m.viewport.Width+2)

	parts := []string{m.headerView(), bordered}
	if m.data.loaded && m.data.loadErr == nil {
		parts = append(parts, m.styles.frame.Render(m.viewport.View()))
	}
	parts = append(parts, m.footerView(contentW))
	return m.styles.app.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// headerView shows the title and one legend entry per primary region. A
// region that was not matched by its rule is flagged.
func (m *model) headerView() string {
	title := m.styles.title.Render("Population by month")
	if !m.data.loaded || m.data.loadErr != nil {
		return title + "\n"
	}
	nameA, nameB := m.regionNames()
	legend := []string{
		m.styles.seriesA.Render("━━ ") + nameA + confidenceMarker(m.data.primaries.A),
		m.styles.seriesB.Render("━━ ") + nameB + confidenceMarker(m.data.primaries.B),
	}
	if m.data.showDiff {
		legend = append(legend, m.styles.difference.Render("━━ ")+"B − A")
	}
	return title + "\n" + strings.Join(legend, "   ")
}

func confidenceMarker(r regions.Resolution) string {
	switch r.Confidence {
	case regions.Fallback:
		return " ≈"
	case regions.Placeholder:
		return " ?"
	}
	return ""
}

// chartView is the chart area: the plot, or a diagnostic when the load is
// pending or failed.
func (m *model) chartView() string {
	l := m.chartLayout()
	switch {
	case !m.data.loaded:
		return lipgloss.NewStyle().Width(l.Width).Render("loading " + m.source + "...")
	case m.data.loadErr != nil:
		msg := fmt.Sprintf("Could not load %s\n\n%v", m.source, m.data.loadErr)
		return m.styles.errorBox.Width(max(l.Width-4, 20)).Render(msg)
	}
	caption := fmt.Sprintf("%s to %s", periodLabel(m.data.frame, 0), periodLabel(m.data.frame, m.data.frame.Len()-1))
	return plotFrame(m.data.frame, m.theme, l, caption)
}

func periodLabel(f timeseries.Frame, i int) string {
	if i < 0 || i >= f.Len() {
		return "-"
	}
	return timeseries.PeriodDate(f.Periods[i])
}

// renderTable lays the visible window out as a table, oldest first. The
// latest period with both values is highlighted.
func (m *model) renderTable() string {
	f := m.data.frame
	nameA, nameB := m.regionNames()
	headers := []string{"Period", nameA, nameB}
	if f.Diff != nil {
		headers = append(headers, "B − A")
	}

	rows := make([][]string, 0, f.Len())
	for i, p := range f.Periods {
		row := []string{p, formatCount(f.A[i]), formatCount(f.B[i])}
		if f.Diff != nil {
			row = append(row, formatSigned(f.Diff[i]))
		}
		rows = append(rows, row)
	}

	latest := f.Latest()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(m.styles.axis).
		BorderRow(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return m.styles.title.Padding(0, 1)
			case row == latest:
				return m.styles.latest
			case col > 0 && row < len(rows) && rows[row][col] == "-":
				return m.styles.missing
			}
			return m.styles.cell
		})
	logging.Debugf("renderTable periods=%d latest=%d", len(rows), latest)
	return t.Render()
}

// formatCount renders a population with thousands separators.
func formatCount(v timeseries.Value) string {
	if !v.Valid {
		return "-"
	}
	if v.V == math.Trunc(v.V) && math.Abs(v.V) < 1e15 {
		return humanize.Comma(int64(v.V))
	}
	return humanize.Commaf(v.V)
}

func formatSigned(v timeseries.Value) string {
	s := formatCount(v)
	if v.Valid && v.V > 0 {
		return "+" + s
	}
	return s
}

// footerView renders the two footer lines for the given width.
func (m *model) footerView(width int) string {
	st := footerState{
		Window:       m.data.window().String(),
		Source:       m.source,
		ShowDiff:     m.data.showDiff,
		Periods:      m.data.frame.Len(),
		TotalPeriods: len(m.data.set.Periods),
		Legend:       "(? help · [ ] window · a all · d difference · x export · y copy)",
	}
	if i := m.data.frame.Latest(); i >= 0 {
		st.Latest = m.data.frame.Periods[i]
	}
	switch {
	case m.ui.noticeMsg != "":
		st.StatusMessage = noticeText(m.ui.noticeMsg, m.ui.noticeType)
	case m.data.loadErr != nil:
		st.StatusMessage = noticeText("load failed", "error")
	case !m.data.loaded:
		st.StatusMessage = "loading..."
	}

	if logging.IsDebugMode() {
		st.Legend += fmt.Sprintf(" | dbg term=%dx%d vp=%dx%d", m.terminalWidth, m.terminalHeight, m.viewport.Width, m.viewport.Height)
	}
	return renderFooter(width, st, defaultFooterStyles())
}
