package tui

import (
	"fmt"
	"strings"

	"github.com/andy/pomodolist/internal/app"
	"github.com/andy/pomodolist/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// maxPresets is how many presets get a number key
const maxPresets = 9

// TimerModel shows the countdown with its progress bar and preset shortcuts
type TimerModel struct {
	app       *app.App
	presets   []domain.Preset
	snapshot  domain.Countdown
	bar       progress.Model
	statusMsg string
}

// NewTimerModel creates a new TimerModel
func NewTimerModel(a *app.App) *TimerModel {
	presets := a.Config.Presets()
	if len(presets) > maxPresets {
		presets = presets[:maxPresets]
	}
	return &TimerModel{
		app:      a,
		presets:  presets,
		snapshot: a.Countdown.Snapshot(),
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (m *TimerModel) Init() tea.Cmd {
	return nil
}

// Update handles key events and refreshes
func (m *TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg, RefreshDataMsg:
		m.snapshot = m.app.Countdown.Snapshot()
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""

		switch {
		case key.Matches(msg, DefaultKeyMap.Toggle):
			m.app.Countdown.Toggle()

		case key.Matches(msg, DefaultKeyMap.Reset):
			m.app.Countdown.Reset()
			m.statusMsg = "Timer reset"

		default:
			if i, ok := presetIndex(msg.String()); ok && i < len(m.presets) {
				m.selectPreset(m.presets[i])
			}
		}
		m.snapshot = m.app.Countdown.Snapshot()
	}

	return m, nil
}

// selectPreset configures the countdown and starts it straight away
func (m *TimerModel) selectPreset(p domain.Preset) {
	m.app.Countdown.Configure(p.Duration)
	m.app.Countdown.Toggle()
	m.statusMsg = fmt.Sprintf("Started %s", p.Label)
}

// presetIndex maps the keys 1-9 to preset positions
func presetIndex(s string) (int, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '1'), true
}

// View renders the timer screen
func (m *TimerModel) View() string {
	var b strings.Builder
	snap := m.snapshot

	b.WriteString(titleStyle.Render("Countdown") + "\n\n")

	clock := clockStyle.Render(snap.Remaining())
	if over := snap.Overrun(); over != "" {
		clock = lipgloss.JoinHorizontal(lipgloss.Top, clock, "  ", overrunStyle.Render(over))
	}
	b.WriteString(clock + "\n\n")

	b.WriteString(m.bar.ViewAs(snap.Progress()) + "\n\n")

	var state string
	switch snap.Phase {
	case domain.CountdownRunning:
		state = runningStyle.Render("RUNNING")
	case domain.CountdownOverrun:
		state = overrunStyle.Render("OVERRUN")
	default:
		state = pausedStyle.Render("PAUSED")
	}
	b.WriteString(fmt.Sprintf("State: %s  of %s\n", state, domain.FormatClock(snap.TotalSeconds)))

	if m.statusMsg != "" {
		b.WriteString("\n" + statusStyle.Render("  "+m.statusMsg) + "\n")
	}

	if len(m.presets) > 0 {
		b.WriteString("\n" + subtitleStyle.Render("Presets") + "\n")
		for i, p := range m.presets {
			b.WriteString(fmt.Sprintf("[%d] %s\n", i+1, p.Label))
		}
	}

	b.WriteString(helpStyle.Render("\nKeys: space=start/pause, r=reset, 1-9=start preset") + "\n")
	return b.String()
}
