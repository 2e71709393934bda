package render

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the text renderer.
type Styles struct {
	Title      lipgloss.Style
	Badge      lipgloss.Style
	Label      lipgloss.Style
	Faint      lipgloss.Style
	Valid      lipgloss.Style
	Invalid    lipgloss.Style
	Header     lipgloss.Style
	Cell       lipgloss.Style
	ErrorCell  lipgloss.Style
	Suggestion lipgloss.Style
	Border     lipgloss.Style
}

// DefaultStyles returns the colored style set.
func DefaultStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true),
		Badge:      lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Label:      lipgloss.NewStyle().Bold(true),
		Faint:      lipgloss.NewStyle().Faint(true),
		Valid:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Invalid:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Header:     lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:       lipgloss.NewStyle().Padding(0, 1),
		ErrorCell:  lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("1")).Bold(true),
		Suggestion: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Border:     lipgloss.NewStyle().Faint(true),
	}
}

// PlainStyles returns a style set without colors or text attributes.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	padded := lipgloss.NewStyle().Padding(0, 1)
	return Styles{
		Title:      plain,
		Badge:      plain,
		Label:      plain,
		Faint:      plain,
		Valid:      plain,
		Invalid:    plain,
		Header:     padded,
		Cell:       padded,
		ErrorCell:  padded,
		Suggestion: plain,
		Border:     plain,
	}
}
