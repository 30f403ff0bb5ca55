package main

import "github.com/charmbracelet/lipgloss"

// Styles for the stderr side channel. Pipeline output goes through a
// stream.Formatter; these only dress up diagnostics and the watch banner.
var (
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	noticeStyle = lipgloss.NewStyle().Faint(true)
)
