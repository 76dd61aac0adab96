package main

import (
	"github.com/charmbracelet/bubbles/key"
)

type Keymap struct {
	Quit         key.Binding
	WiderWindow  key.Binding
	NarrowWindow key.Binding
	AllPeriods   key.Binding
	PickWindow   key.Binding
	ToggleDiff   key.Binding
	RowDown      key.Binding
	RowUp        key.Binding
	PageDown     key.Binding
	PageUp       key.Binding
	OpenHelp     key.Binding
	ExportToFile key.Binding
	CopyTable    key.Binding
}

var Keys = Keymap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	WiderWindow: key.NewBinding(
		key.WithKeys("]", "+", "right", "l"),
		key.WithHelp("]/l/→", "next window size"),
	),
	NarrowWindow: key.NewBinding(
		key.WithKeys("[", "-", "left", "h"),
		key.WithHelp("[/h/←", "previous window size"),
	),
	AllPeriods: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "show all periods"),
	),
	PickWindow: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "pick window option"),
	),
	ToggleDiff: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "toggle difference series"),
	),
	RowDown: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "scroll table down"),
	),
	RowUp: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "scroll table up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdown", "page down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "page up"),
	),
	OpenHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help / keys"),
	),
	ExportToFile: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "export chart (.svg/.png) or table (.csv)"),
	),
	CopyTable: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy visible table to clipboard"),
	),
}

func (k Keymap) Legend() []key.Binding {
	return []key.Binding{
		k.Quit,
		k.WiderWindow,
		k.NarrowWindow,
		k.AllPeriods,
		k.PickWindow,
		k.ToggleDiff,
		k.RowDown,
		k.RowUp,
		k.PageDown,
		k.PageUp,
		k.ExportToFile,
		k.CopyTable,
	}
}
