package main

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-popchart/clipboard"
	"github.com/andareed/siftly-popchart/config"
	"github.com/andareed/siftly-popchart/dialogs"
	"github.com/andareed/siftly-popchart/logging"
	"github.com/andareed/siftly-popchart/regions"
	"github.com/andareed/siftly-popchart/render"
	"github.com/andareed/siftly-popchart/timeseries"
)

// loadFunc fetches the dataset rows. It runs once, off the event loop.
type loadFunc func(ctx context.Context) ([]timeseries.Row, error)

type (
	dataLoadedMsg     struct{ rows []timeseries.Row }
	dataLoadFailedMsg struct{ err error }
)

type model struct {
	cfg    *config.Config
	source string
	load   loadFunc

	data dataState
	ui   uiState

	viewport       viewport.Model
	ready          bool
	terminalWidth  int
	terminalHeight int

	activeDialog dialogs.Dialog

	theme  config.Theme
	styles styles
}

func newModel(cfg *config.Config, load loadFunc) *model {
	theme := terminalTheme(cfg.Theme)
	return &model{
		cfg:    cfg,
		source: cfg.Data.Source,
		load:   load,
		data:   newDataState(cfg),
		ui:     uiState{mode: modeView, lastDir: exportDir(cfg.Data.Source)},
		theme:  theme,
		styles: newStyles(theme),
	}
}

// exportDir is where bare export names land: next to a local dataset, or
// the working directory for a URL source.
func exportDir(source string) string {
	if strings.Contains(source, "://") {
		return ""
	}
	return filepath.Dir(source)
}

func (m *model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m *model) loadCmd() tea.Cmd {
	load, timeout := m.load, m.cfg.Data.LoadTimeout
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()
		rows, err := load(ctx)
		if err != nil {
			return dataLoadFailedMsg{err: err}
		}
		return dataLoadedMsg{rows: rows}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.terminalWidth, m.terminalHeight = msg.Width, msg.Height
		m.layout()
		m.ready = true
		m.refreshTable()
		return m, nil

	case dataLoadedMsg:
		m.data.setRows(msg.rows, m.cfg)
		m.refreshTable()
		return m, m.startNotice("loaded "+strconv.Itoa(len(msg.rows))+" rows", "info", noticeDuration)

	case dataLoadFailedMsg:
		logging.Errorf("load %s: %v", m.source, msg.err)
		m.data.failLoad(msg.err)
		return m, nil

	case clearNoticeMsg:
		if msg.id == m.ui.noticeSeq {
			m.ui.noticeMsg = ""
			m.ui.noticeType = ""
		}
		return m, nil

	case dialogs.ExportConfirmedMsg:
		m.closeDialog()
		m.ui.lastDir = filepath.Dir(msg.Path)
		if err := exportFrame(msg.Path, m.data.frame, m.renderOptions()); err != nil {
			logging.Errorf("export %s: %v", msg.Path, err)
			return m, m.startNotice("export failed: "+err.Error(), "error", 2*noticeDuration)
		}
		return m, m.startNotice("exported "+msg.Path, "success", noticeDuration)

	case dialogs.ExportCanceledMsg:
		m.closeDialog()
		return m, nil

	case tea.KeyMsg:
		if m.ui.mode == modeDialog && m.activeDialog != nil {
			var cmd tea.Cmd
			m.activeDialog, cmd = m.activeDialog.Update(msg)
			if !m.activeDialog.IsVisible() {
				m.closeDialog()
			}
			return m, cmd
		}
		return m.handleViewKey(msg)
	}
	return m, nil
}

func (m *model) handleViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.OpenHelp):
		return m, m.openDialog(dialogs.NewHelpDialog(Keys.Legend(), m.windowLabels()))
	}

	// Controls are inert until the data is in, and stay inert after a
	// failed load.
	if !m.data.loaded || m.data.loadErr != nil {
		return m, nil
	}

	changed := false
	switch {
	case key.Matches(msg, Keys.WiderWindow):
		changed = m.data.stepWindow(1)
	case key.Matches(msg, Keys.NarrowWindow):
		changed = m.data.stepWindow(-1)
	case key.Matches(msg, Keys.AllPeriods):
		for i, w := range m.data.windows {
			if w.All() {
				changed = m.data.selectWindow(i)
				break
			}
		}
	case key.Matches(msg, Keys.PickWindow):
		if n, err := strconv.Atoi(msg.String()); err == nil {
			changed = m.data.selectWindow(n - 1)
		}
	case key.Matches(msg, Keys.ToggleDiff):
		m.data.toggleDiff()
		changed = true
	case key.Matches(msg, Keys.RowDown):
		m.scrollTable(1)
	case key.Matches(msg, Keys.RowUp):
		m.scrollTable(-1)
	case key.Matches(msg, Keys.PageDown):
		m.scrollTable(m.viewport.Height)
	case key.Matches(msg, Keys.PageUp):
		m.scrollTable(-m.viewport.Height)
	case key.Matches(msg, Keys.ExportToFile):
		return m, m.openDialog(dialogs.NewExportDialog("popchart.svg", m.ui.lastDir))
	case key.Matches(msg, Keys.CopyTable):
		return m, m.copyTable()
	}
	if changed {
		m.layout()
		m.refreshTable()
	}
	return m, nil
}

func (m *model) copyTable() tea.Cmd {
	nameA, nameB := m.regionNames()
	if err := clipboard.Copy(frameTSV(m.data.frame, nameA, nameB)); err != nil {
		logging.Warnf("copy table: %v", err)
		return m.startNotice("copy failed: "+err.Error(), "error", 2*noticeDuration)
	}
	return m.startNotice("copied "+strconv.Itoa(m.data.frame.Len())+" periods", "success", noticeDuration)
}

// scrollTable moves the table by n lines; SetYOffset clamps.
func (m *model) scrollTable(n int) {
	m.viewport.SetYOffset(m.viewport.YOffset + n)
}

func (m *model) openDialog(d dialogs.Dialog) tea.Cmd {
	m.activeDialog = d
	m.ui.mode = modeDialog
	d.Show()
	return d.Focus()
}

func (m *model) closeDialog() {
	if m.activeDialog != nil {
		m.activeDialog.Hide()
	}
	m.activeDialog = nil
	m.ui.mode = modeView
}

func (m *model) windowLabels() []string {
	out := make([]string, len(m.data.windows))
	for i, w := range m.data.windows {
		out[i] = w.String()
	}
	return out
}

// regionLabel names a resolved region for display: the configured name for
// a known code, the identifier otherwise.
func (m *model) regionLabel(r regions.Resolution) string {
	if name, ok := m.cfg.RegionNames()[r.ID]; ok && name != r.ID {
		return name + " (" + r.ID + ")"
	}
	return r.ID
}

func (m *model) regionNames() (string, string) {
	return m.regionLabel(m.data.primaries.A), m.regionLabel(m.data.primaries.B)
}

func (m *model) renderOptions() render.Options {
	nameA, nameB := m.regionNames()
	return render.Options{
		Title: "Population by month, " + m.data.window().String(),
		NameA: nameA,
		NameB: nameB,
		Theme: m.cfg.Theme,
	}
}

// Vertical space taken by everything except the chart and the table.
const (
	appMarginRows = 2
	headerRows    = 2
	footerRows    = 2
	borderRows    = 2
	captionRows   = 2
)

// layout sizes the table viewport and the chart from the terminal size.
func (m *model) layout() {
	contentW := max(m.terminalWidth-4-2, 10)
	free := m.terminalHeight - appMarginRows - headerRows - footerRows - borderRows
	tableH := clamp(free/3, 3, 14)

	if !m.ready {
		m.viewport = viewport.New(contentW, tableH)
	} else {
		m.viewport.Width = contentW
		m.viewport.Height = tableH
	}
}

func (m *model) chartLayout() chartLayout {
	free := m.terminalHeight - appMarginRows - headerRows - footerRows - 2*borderRows - m.viewport.Height
	l := chartLayout{Width: m.viewport.Width, Height: free - captionRows}
	if m.data.showDiff {
		l.DiffHeight = max(l.Height/3, 2)
		l.Height -= l.DiffHeight + captionRows + 1
	}
	return l
}

func (m *model) refreshTable() {
	if !m.ready || !m.data.loaded || m.data.loadErr != nil {
		return
	}
	m.viewport.SetContent(m.renderTable())
	m.viewport.GotoBottom()
}
