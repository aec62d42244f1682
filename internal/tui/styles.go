package tui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	bodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("27"))

	buttonDisabledStyle = buttonStyle.
				Background(lipgloss.Color("238")).
				Foreground(lipgloss.Color("245"))

	formStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)
