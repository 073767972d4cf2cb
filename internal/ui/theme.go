// Package ui implements the terminal chat widget: the message list, the
// input line, and the PDF upload view.
package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds the color scheme for the chat widget.
type Theme struct {
	User    lipgloss.Color
	Bot     lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
	Time    lipgloss.Color
	Accent  lipgloss.Color
	Success lipgloss.Color
}

// DefaultTheme provides default colors.
var DefaultTheme = Theme{
	User:    lipgloss.Color("#5FAFD7"), // light blue
	Bot:     lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
	Time:    lipgloss.Color("#8A8A8A"), // mid gray
	Accent:  lipgloss.Color("#AF87FF"), // purple
	Success: lipgloss.Color("#00D787"), // green
}

// Style functions for dynamic theming

func (t Theme) userStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.User).Bold(true)
}

func (t Theme) botStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Bot).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

func (t Theme) timeStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Time)
}

func (t Theme) accentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent)
}

func (t Theme) successStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}
