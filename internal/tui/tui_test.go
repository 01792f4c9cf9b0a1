package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/andy/pomodolist/internal/app"
	"github.com/andy/pomodolist/internal/clock"
	"github.com/andy/pomodolist/internal/config"
	"github.com/andy/pomodolist/internal/domain"
	"github.com/andy/pomodolist/internal/repository"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestApp(t *testing.T) (*app.App, *clock.Fake) {
	t.Helper()
	fake := clock.NewFake(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	a := app.NewWithStore(config.DefaultConfig(), fake, repository.NewMemoryStore())
	t.Cleanup(func() { a.Close() })
	return a, fake
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTimerScreenPresetStartsCountdown(t *testing.T) {
	a, fake := newTestApp(t)
	m := NewTimerModel(a)

	// Preset 1 is "5 Minutes" in the default config
	m.Update(runes("1"))
	fake.Advance(30 * time.Second)
	m.Update(TickMsg{})

	if m.snapshot.Phase != domain.CountdownRunning || m.snapshot.RemainingSeconds != 270 {
		t.Fatalf("expected running 270s, got %+v", m.snapshot)
	}
	if !strings.Contains(m.View(), "04:30") {
		t.Fatalf("expected 04:30 in view:\n%s", m.View())
	}

	m.Update(runes("r"))
	if !m.snapshot.IsPaused() || m.snapshot.RemainingSeconds != 300 {
		t.Fatalf("expected reset to 300s, got %+v", m.snapshot)
	}
}

func TestTimerScreenToggleAndOverrun(t *testing.T) {
	a, fake := newTestApp(t)
	a.Countdown.Configure(10 * time.Second)
	m := NewTimerModel(a)

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	fake.Advance(12 * time.Second)
	m.Update(TickMsg{})

	view := m.View()
	if !strings.Contains(view, "OVERRUN") || !strings.Contains(view, "-00:02") {
		t.Fatalf("expected overrun in view:\n%s", view)
	}
}

func TestPresetIndex(t *testing.T) {
	for in, want := range map[string]int{"1": 0, "9": 8} {
		if got, ok := presetIndex(in); !ok || got != want {
			t.Fatalf("presetIndex(%q) = %d, %v", in, got, ok)
		}
	}
	for _, in := range []string{"0", "a", "10", ""} {
		if _, ok := presetIndex(in); ok {
			t.Fatalf("presetIndex(%q) should not match", in)
		}
	}
}

func TestTasksScreenAddStartComplete(t *testing.T) {
	a, fake := newTestApp(t)
	m := NewTasksModel(a)

	m.Update(runes("a"))
	if !m.IsCapturingInput() {
		t.Fatalf("expected input to capture keys")
	}
	m.Update(runes("Write docs"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.IsCapturingInput() {
		t.Fatalf("expected input closed after enter")
	}
	if len(m.active) != 1 || m.active[0].Text != "Write docs" {
		t.Fatalf("expected one task, got %+v", m.active)
	}

	m.Update(runes("s"))
	fake.Advance(65 * time.Second)
	m.Update(TickMsg{})
	if !strings.Contains(m.View(), "00:01:05") {
		t.Fatalf("expected 00:01:05 in view:\n%s", m.View())
	}

	m.Update(runes("c"))
	if len(m.active) != 0 || len(m.completed) != 1 {
		t.Fatalf("expected task completed, got %d active %d completed", len(m.active), len(m.completed))
	}
	if m.completed[0].TimeSpent != 65 {
		t.Fatalf("expected 65s spent, got %d", m.completed[0].TimeSpent)
	}

	// Cursor now sits on the completed entry
	m.Update(runes("d"))
	if len(m.completed) != 0 {
		t.Fatalf("expected completed task deleted")
	}
}

func TestTasksScreenEscapeDiscardsInput(t *testing.T) {
	a, _ := newTestApp(t)
	m := NewTasksModel(a)

	m.Update(runes("a"))
	m.Update(runes("draft"))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.IsCapturingInput() || len(a.Tasks.ActiveTasks()) != 0 {
		t.Fatalf("escape must not add a task")
	}
}

func TestTasksScreenReorder(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()
	for _, text := range []string{"one", "two", "three"} {
		if err := a.Tasks.AddTask(ctx, text); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	m := NewTasksModel(a)

	m.Update(tea.KeyMsg{Type: tea.KeyShiftDown})
	m.Update(tea.KeyMsg{Type: tea.KeyShiftDown})

	var got []string
	for _, task := range a.Tasks.ActiveTasks() {
		got = append(got, task.Text)
	}
	if strings.Join(got, ",") != "two,three,one" || m.cursor != 2 {
		t.Fatalf("unexpected order %v cursor %d", got, m.cursor)
	}
}

func TestRootModelNavigation(t *testing.T) {
	a, _ := newTestApp(t)
	var model tea.Model = New(a)

	model, _ = model.Update(runes("l"))
	if got := model.(Model).currentScreen; got != ScreenTasks {
		t.Fatalf("expected tasks screen, got %s", got)
	}

	// Global keys are ignored while typing a task
	model, _ = model.Update(runes("a"))
	model, _ = model.Update(runes("t"))
	if got := model.(Model).currentScreen; got != ScreenTasks {
		t.Fatalf("expected to stay on tasks while typing, got %s", got)
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := model.(Model).currentScreen; got != ScreenTimer {
		t.Fatalf("expected timer screen, got %s", got)
	}

	_, cmd := model.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}
}
