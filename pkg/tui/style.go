package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	help    lipgloss.Style
	err     lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style

	heading lipgloss.Style
	quote   lipgloss.Style
	code    lipgloss.Style
	bold    lipgloss.Style
	italic  lipgloss.Style

	selected lipgloss.Style
}

func stylesFor(dark bool) styles {
	s := styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		help:    lipgloss.NewStyle().Faint(true),
		err:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),

		heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		quote:   lipgloss.NewStyle().Faint(true).Italic(true),
		code:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		bold:    lipgloss.NewStyle().Bold(true),
		italic:  lipgloss.NewStyle().Italic(true),

		selected: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	}

	if !dark {
		s.title = s.title.Foreground(lipgloss.Color("4"))
		s.heading = s.heading.Foreground(lipgloss.Color("6"))
		s.code = s.code.Foreground(lipgloss.Color("2"))
		s.selected = s.selected.Foreground(lipgloss.Color("4"))
	}

	return s
}
