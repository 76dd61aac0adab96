package dialogs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-popchart/logging"
)

type (
	ExportConfirmedMsg struct{ Path string }
	ExportCanceledMsg  struct{}
)

// ExportExtensions are the accepted output types: chart images and the
// visible table as CSV.
var ExportExtensions = []string{".svg", ".png", ".csv"}

type Export struct {
	input   textinput.Model
	visible bool
	lastDir string
	err     string
}

func (d Export) Init() tea.Cmd { return d.input.Focus() }

func NewExportDialog(defaultName, lastDir string) *Export {
	ti := textinput.New()
	ti.Placeholder = defaultName
	ti.Prompt = "Export as: "
	ti.CharLimit = 256
	ti.Width = 50
	if defaultName != "" {
		ti.SetValue(defaultName)
	}
	return &Export{input: ti, visible: true, lastDir: lastDir}
}

func (d *Export) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.visible {
		return d, nil
	}
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "enter":
			path, err := d.resolvePath()
			if err != nil {
				d.err = err.Error()
				return d, nil
			}
			logging.Debugf("ExportDialog: confirmed %s", path)
			return d, func() tea.Msg { return ExportConfirmedMsg{Path: path} }
		case "esc":
			logging.Debug("ExportDialog: canceled")
			return d, func() tea.Msg { return ExportCanceledMsg{} }
		}
	}
	d.err = ""
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

// resolvePath validates the typed name and places a bare file name in the
// last used directory.
func (d *Export) resolvePath() (string, error) {
	path := strings.TrimSpace(d.input.Value())
	if path == "" {
		path = d.input.Placeholder
	}
	if path == "" {
		return "", fmt.Errorf("enter a file name")
	}
	ext := strings.ToLower(filepath.Ext(path))
	known := false
	for _, e := range ExportExtensions {
		if ext == e {
			known = true
			break
		}
	}
	if !known {
		return "", fmt.Errorf("unsupported extension %q (want %s)", ext, strings.Join(ExportExtensions, ", "))
	}
	if d.lastDir != "" && !filepath.IsAbs(path) && filepath.Dir(path) == "." {
		path = filepath.Join(d.lastDir, filepath.Base(path))
	}
	return path, nil
}

func (d Export) View() string {
	if !d.visible {
		return ""
	}
	content := d.input.View() + "\n\n"
	if d.err != "" {
		content += d.err + "\n\n"
	}
	content += hint("enter to export (" + strings.Join(ExportExtensions, " ") + ") • esc to cancel")
	return boxStyle().Render(content)
}

func (d *Export) Show() {
	d.visible = true
	d.input.Focus()
}

func (d *Export) Hide() {
	d.visible = false
	d.input.Blur()
}

func (d *Export) Focus() tea.Cmd { return d.input.Focus() }
func (d *Export) Blur()          { d.input.Blur() }
func (d Export) IsVisible() bool { return d.visible }
