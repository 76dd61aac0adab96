package dialogs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Help lists the key bindings and the configured window options.
type Help struct {
	visible  bool
	bindings []key.Binding
	windows  []string
}

func (d Help) Init() tea.Cmd { return nil }

func NewHelpDialog(bindings []key.Binding, windows []string) *Help {
	return &Help{
		visible:  true,
		bindings: bindings,
		windows:  windows,
	}
}

func (d *Help) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "enter", "esc", "?", "q":
			d.visible = false
		}
	}
	return d, nil
}

func (d Help) View() string {
	if !d.visible {
		return ""
	}
	lines := make([]string, 0, len(d.bindings)+2)
	for _, b := range d.bindings {
		h := b.Help()
		lines = append(lines, fmt.Sprintf("%-12s %s", h.Key, h.Desc))
	}
	if len(d.windows) > 0 {
		opts := make([]string, len(d.windows))
		for i, w := range d.windows {
			opts[i] = fmt.Sprintf("%d:%s", i+1, w)
		}
		lines = append(lines, "", "windows      "+strings.Join(opts, "  "))
	}
	content := strings.Join(lines, "\n") + "\n\n" + hint("enter/esc to return")
	return boxStyle().Render(content)
}

func (d *Help) Show()          { d.visible = true }
func (d *Help) Hide()          { d.visible = false }
func (d *Help) Focus() tea.Cmd { return nil }
func (d *Help) Blur()          {}
func (d Help) IsVisible() bool { return d.visible }
