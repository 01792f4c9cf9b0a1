package tui

import "github.com/charmbracelet/lipgloss"

var (
	tomatoColor  = lipgloss.Color("203")
	leafColor    = lipgloss.Color("71")
	amberColor   = lipgloss.Color("214")
	alertColor   = lipgloss.Color("196")
	dimColor     = lipgloss.Color("244")
	frameColor   = lipgloss.Color("60")
	keyHintColor = lipgloss.Color("117")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(tomatoColor)
	subtitleStyle = lipgloss.NewStyle().Foreground(dimColor).Italic(true)
	helpStyle     = lipgloss.NewStyle().Foreground(keyHintColor)
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	statusStyle   = lipgloss.NewStyle().Foreground(leafColor)
	errorStyle    = lipgloss.NewStyle().Foreground(alertColor)

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(frameColor).
			Padding(1, 2)
	tabStyle       = lipgloss.NewStyle().Foreground(dimColor).Padding(0, 1)
	activeTabStyle = tabStyle.Foreground(tomatoColor).Bold(true).Underline(true)

	// Countdown
	clockStyle   = lipgloss.NewStyle().Bold(true).Foreground(tomatoColor).Padding(0, 1)
	overrunStyle = lipgloss.NewStyle().Bold(true).Foreground(alertColor)
	runningStyle = lipgloss.NewStyle().Bold(true).Foreground(leafColor)
	pausedStyle  = lipgloss.NewStyle().Bold(true).Foreground(amberColor)

	// Tasks
	activeTaskStyle = lipgloss.NewStyle().Foreground(leafColor)
	doneTaskStyle   = lipgloss.NewStyle().Foreground(dimColor).Strikethrough(true)
)
