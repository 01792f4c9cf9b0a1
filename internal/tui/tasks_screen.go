package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/pomodolist/internal/app"
	"github.com/andy/pomodolist/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TasksModel lists active tasks followed by completed ones. The cursor walks
// both lists; actions apply to whichever list the cursor is in.
type TasksModel struct {
	app       *app.App
	active    []domain.Task
	completed []domain.CompletedTask
	cursor    int
	input     textinput.Model
	adding    bool
	err       error
	statusMsg string
}

// NewTasksModel creates a new tasks screen model
func NewTasksModel(a *app.App) *TasksModel {
	ti := textinput.New()
	ti.Placeholder = "What are you working on?"
	ti.CharLimit = 200
	ti.Width = 50

	m := &TasksModel{app: a, input: ti}
	m.reload()
	return m
}

// IsCapturingInput returns true while the new task field has focus
func (m *TasksModel) IsCapturingInput() bool {
	return m.adding
}

func (m *TasksModel) Init() tea.Cmd {
	return nil
}

func (m *TasksModel) reload() {
	m.active = m.app.Tasks.ActiveTasks()
	m.completed = m.app.Tasks.CompletedTasks()
	m.cursor = clamp(m.cursor, len(m.active)+len(m.completed))
}

// Update handles key events and refreshes
func (m *TasksModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg, RefreshDataMsg:
		m.reload()
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateInput(msg)
		}
		m.err = nil
		m.statusMsg = ""
		m.handleKey(msg)
		m.reload()
		if m.adding {
			return m, m.input.Focus()
		}
		return m, nil
	}

	return m, nil
}

func (m *TasksModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Back):
		m.closeInput()
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Submit):
		text := strings.TrimSpace(m.input.Value())
		m.closeInput()
		if text == "" {
			return m, nil
		}
		if err := m.app.Tasks.AddTask(context.Background(), text); err != nil {
			m.err = err
		} else {
			m.statusMsg = fmt.Sprintf("Added %q", text)
		}
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *TasksModel) closeInput() {
	m.adding = false
	m.input.Blur()
	m.input.Reset()
}

func (m *TasksModel) handleKey(msg tea.KeyMsg) {
	ctx := context.Background()
	n := len(m.active)

	switch {
	case key.Matches(msg, DefaultKeyMap.New):
		m.adding = true

	case key.Matches(msg, DefaultKeyMap.MoveUp):
		if m.cursor > 0 && m.cursor < n {
			m.err = m.app.Tasks.Reorder(ctx, m.cursor, m.cursor-1)
			if m.err == nil {
				m.cursor--
			}
		}

	case key.Matches(msg, DefaultKeyMap.MoveDown):
		if m.cursor < n-1 {
			m.err = m.app.Tasks.Reorder(ctx, m.cursor, m.cursor+1)
			if m.err == nil {
				m.cursor++
			}
		}

	case key.Matches(msg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, DefaultKeyMap.Down):
		if m.cursor < n+len(m.completed)-1 {
			m.cursor++
		}

	case key.Matches(msg, DefaultKeyMap.Start):
		if m.cursor < n {
			m.err = m.app.Tasks.StartTask(ctx, m.cursor)
		}

	case key.Matches(msg, DefaultKeyMap.Stop):
		if m.cursor < n {
			m.err = m.app.Tasks.StopTask(ctx, m.cursor)
		}

	case key.Matches(msg, DefaultKeyMap.Complete):
		if m.cursor < n {
			text := m.active[m.cursor].Text
			if m.err = m.app.Tasks.CompleteTask(ctx, m.cursor); m.err == nil {
				m.statusMsg = fmt.Sprintf("Completed %q", text)
			}
		}

	case key.Matches(msg, DefaultKeyMap.Delete):
		if m.cursor < n {
			m.err = m.app.Tasks.RemoveTask(ctx, m.cursor)
		} else if i := m.cursor - n; i < len(m.completed) {
			m.err = m.app.Tasks.RemoveCompletedTask(ctx, m.completed[i].ID)
		}
	}
}

// View renders the tasks screen
func (m *TasksModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Tasks") + "\n\n")

	if m.adding {
		b.WriteString("New task: " + m.input.View() + "\n")
		b.WriteString(subtitleStyle.Render("enter=save, esc=cancel") + "\n\n")
	}

	if len(m.active) == 0 {
		b.WriteString(subtitleStyle.Render("No active tasks. Press a to add one.") + "\n")
	}
	for i, t := range m.active {
		marker := "  "
		if t.IsActive {
			marker = "▶ "
		}
		line := fmt.Sprintf("%s%-40s %s", marker, truncateStr(t.Text, 40), t.Elapsed())
		switch {
		case i == m.cursor && !m.adding:
			line = selectedStyle.Render(line)
		case t.IsActive:
			line = activeTaskStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if len(m.completed) > 0 {
		b.WriteString("\n" + subtitleStyle.Render("Completed") + "\n")
		for i, t := range m.completed {
			line := fmt.Sprintf("✓ %-40s %s", truncateStr(t.Text, 40), t.Elapsed())
			if len(m.active)+i == m.cursor && !m.adding {
				line = selectedStyle.Render(line)
			} else {
				line = doneTaskStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n")
	} else if m.statusMsg != "" {
		b.WriteString("\n" + statusStyle.Render("  "+m.statusMsg) + "\n")
	}

	b.WriteString(helpStyle.Render("\nKeys: a=add, s=start, x=stop, c=complete, d=delete, shift+↑/↓=move") + "\n")
	return b.String()
}
