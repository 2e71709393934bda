package tui

import "github.com/charmbracelet/lipgloss"

var (
	// HeaderStyle styles the browser title line.
	HeaderStyle = lipgloss.NewStyle().Bold(true)

	helpStyle = lipgloss.NewStyle().Faint(true)
)
