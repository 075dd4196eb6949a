package ui

import "github.com/charmbracelet/lipgloss"

// ANSI 16-color Dracula palette. Terminal themes remap these slots, so the
// light and dark variants share a value.
var (
	DraculaForeground = lipgloss.AdaptiveColor{Light: "255", Dark: "255"}
	DraculaPurple     = lipgloss.AdaptiveColor{Light: "5", Dark: "5"}
	DraculaPink       = lipgloss.AdaptiveColor{Light: "13", Dark: "13"}
	DraculaCyan       = lipgloss.AdaptiveColor{Light: "14", Dark: "14"}
	DraculaGreen      = lipgloss.AdaptiveColor{Light: "10", Dark: "10"}
	DraculaComment    = lipgloss.AdaptiveColor{Light: "7", Dark: "7"}
	DraculaRed        = lipgloss.AdaptiveColor{Light: "1", Dark: "1"}
)

func tabStyle(fg lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(fg).Padding(0, 1)
}

var (
	// Category tabs
	ActiveTabStyle   = tabStyle(DraculaPink).Bold(true).Underline(true)
	InactiveTabStyle = tabStyle(DraculaComment)

	// Role tabs
	ActiveInnerTabStyle   = tabStyle(DraculaCyan).Bold(true)
	InactiveInnerTabStyle = tabStyle(DraculaComment)
	TabSeparatorStyle     = lipgloss.NewStyle().Foreground(DraculaPurple)

	TitleStyle = tabStyle(DraculaPink).Bold(true)

	DetailTitleStyle = lipgloss.NewStyle().Foreground(DraculaPink).Bold(true)
	DetailPostStyle  = lipgloss.NewStyle().Foreground(DraculaCyan).Italic(true)
	DetailLabelStyle = lipgloss.NewStyle().Foreground(DraculaComment)
	ElectedStyle     = lipgloss.NewStyle().Foreground(DraculaGreen).Bold(true)

	StatusBarStyle = lipgloss.NewStyle().Foreground(DraculaComment)
	ErrorStyle     = lipgloss.NewStyle().Foreground(DraculaRed)
)
