package tui

import (
	"github.com/andy/pomodolist/internal/app"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenTimer Screen = iota
	ScreenTasks
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenTimer:
		return "Timer"
	case ScreenTasks:
		return "Tasks"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model
type Model struct {
	app           *app.App
	currentScreen Screen
	width         int
	height        int

	timer *TimerModel
	tasks *TasksModel
}

// New creates a new root model
func New(a *app.App) Model {
	return Model{
		app:           a,
		currentScreen: ScreenTimer,
		timer:         NewTimerModel(a),
		tasks:         NewTasksModel(a),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.timer.Init(), m.tasks.Init(), tick())
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, global navigation keys are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

func (m *Model) screen() tea.Model {
	if m.currentScreen == ScreenTasks {
		return m.tasks
	}
	return m.timer
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	if ic, ok := m.screen().(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

func (m *Model) switchTo(s Screen) tea.Cmd {
	m.currentScreen = s
	return func() tea.Msg { return RefreshDataMsg{} }
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		// Both screens stay current so switching never shows stale values
		m.timer.Update(msg)
		m.tasks.Update(msg)
		return m, tick()

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		// Skip global navigation when a screen is capturing text input
		if !m.activeScreenCapturingInput() {
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				return m, tea.Quit

			case key.Matches(msg, DefaultKeyMap.Timer):
				return m, m.switchTo(ScreenTimer)

			case key.Matches(msg, DefaultKeyMap.Tasks):
				return m, m.switchTo(ScreenTasks)

			case key.Matches(msg, DefaultKeyMap.Next):
				return m, m.switchTo((m.currentScreen + 1) % 2)
			}
		}

	}

	// Route message to current screen
	_, cmd := m.screen().Update(msg)
	return m, cmd
}

// View implements tea.Model - tab bar, current screen, key hints
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var tabs []string
	for _, s := range []Screen{ScreenTimer, ScreenTasks} {
		style := tabStyle
		if s == m.currentScreen {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(s.String()))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	sections := []string{
		header,
		"",
		m.screen().View(),
		helpStyle.Render("t timer · l tasks · tab switch · q quit"),
	}

	width := m.width - 6 // border (2) + padding (4)
	if width < 20 {
		width = 20
	}
	frame := frameStyle.Width(width).Height(m.height - 4)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		frame.Render(lipgloss.JoinVertical(lipgloss.Left, sections...)))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
