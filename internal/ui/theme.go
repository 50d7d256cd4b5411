package ui

import "github.com/charmbracelet/lipgloss"

var (
	brandGreen = lipgloss.Color("#2E8B57")

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(brandGreen).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#828282"))

	RedirectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true).
			Padding(1, 2)
)
