package ui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle ANSI 6 (Cyan), readable on dark and light terminals
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	// UsageStyle ANSI 2 (Green)
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle ANSI 8 (Gray)
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// FlagStyle ANSI 3 (Yellow)
	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// PreviewStyle renders streamed chunks before the final reply.
	PreviewStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	// CardStyle frames a booking summary in the console.
	CardStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("5")).Padding(0, 1)

	// SystemStyle marks console notices that are not bot replies.
	SystemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Italic(true)
)
