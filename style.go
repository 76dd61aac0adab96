package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/andareed/siftly-popchart/config"
)

const (
	cellTextFGColor = "#c0c0c0"
	latestRowBG     = "#3a3a3a"
	missingFGColor  = "#6c6c6c"
)

// darkTheme and lightTheme are the token defaults for the terminal. A
// config theme overrides them token by token.
var (
	darkTheme = config.Theme{
		config.TokenSeriesA:    "#5fafff",
		config.TokenSeriesB:    "#ff875f",
		config.TokenDifference: "#87d787",
		config.TokenAxis:       "#8a8a8a",
		config.TokenBorder:     "240",
		config.TokenTitle:      "#e0e0e0",
	}
	lightTheme = config.Theme{
		config.TokenSeriesA:    "#005faf",
		config.TokenSeriesB:    "#af3a00",
		config.TokenDifference: "#008700",
		config.TokenAxis:       "#585858",
		config.TokenBorder:     "245",
		config.TokenTitle:      "#1c1c1c",
	}
)

// terminalTheme fills the unset tokens of t from the defaults matching the
// terminal background.
func terminalTheme(t config.Theme) config.Theme {
	if termenv.HasDarkBackground() {
		return t.With(darkTheme)
	}
	return t.With(lightTheme)
}

type styles struct {
	app        lipgloss.Style
	title      lipgloss.Style
	seriesA    lipgloss.Style
	seriesB    lipgloss.Style
	difference lipgloss.Style
	axis       lipgloss.Style
	frame      lipgloss.Style
	cell       lipgloss.Style
	latest     lipgloss.Style
	missing    lipgloss.Style
	errorBox   lipgloss.Style
}

func newStyles(theme config.Theme) styles {
	color := func(token string) lipgloss.TerminalColor {
		if v, ok := theme.Token(token); ok {
			return lipgloss.Color(v)
		}
		return lipgloss.NoColor{}
	}
	return styles{
		app:        lipgloss.NewStyle().Margin(1, 2),
		title:      lipgloss.NewStyle().Bold(true).Foreground(color(config.TokenTitle)),
		seriesA:    lipgloss.NewStyle().Foreground(color(config.TokenSeriesA)),
		seriesB:    lipgloss.NewStyle().Foreground(color(config.TokenSeriesB)),
		difference: lipgloss.NewStyle().Foreground(color(config.TokenDifference)),
		axis:       lipgloss.NewStyle().Foreground(color(config.TokenAxis)),
		frame: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(color(config.TokenBorder)),
		cell:    lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color(cellTextFGColor)),
		latest:  lipgloss.NewStyle().Padding(0, 1).Bold(true).Background(lipgloss.Color(latestRowBG)),
		missing: lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color(missingFGColor)),
		errorBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("1")).
			Padding(1, 2),
	}
}
