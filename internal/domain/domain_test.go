package domain

import "testing"

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{25 * 60, "25:00"},
		{3599, "59:59"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{-5, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.seconds); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatHMS(t *testing.T) {
	if got := FormatHMS(5); got != "00:00:05" {
		t.Fatalf("expected 00:00:05, got %q", got)
	}
	if got := FormatHMS(36000 + 61); got != "10:01:01" {
		t.Fatalf("expected 10:01:01, got %q", got)
	}
}

func TestCountdownOverrunDisplay(t *testing.T) {
	c := Countdown{Phase: CountdownOverrun, TotalSeconds: 300}
	if got := c.Overrun(); got != "" {
		t.Fatalf("expected no overrun text at zero, got %q", got)
	}
	c.OverrunSeconds = 75
	if got := c.Overrun(); got != "-01:15" {
		t.Fatalf("expected -01:15, got %q", got)
	}
	c.OverrunSeconds = 3600
	if got := c.Overrun(); got != "-01:00:00" {
		t.Fatalf("expected -01:00:00, got %q", got)
	}
}

func TestCountdownProgress(t *testing.T) {
	c := Countdown{TotalSeconds: 100, RemainingSeconds: 25}
	if got := c.Progress(); got != 0.75 {
		t.Fatalf("expected 0.75, got %v", got)
	}
	zero := Countdown{}
	if got := zero.Progress(); got != 1 {
		t.Fatalf("expected a zero-length cycle to report full progress, got %v", got)
	}
}

func TestNewTask(t *testing.T) {
	task, err := NewTask("  Draft outline  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Text != "Draft outline" || task.IsActive || task.TimeSpent != 0 {
		t.Fatalf("unexpected task: %+v", task)
	}
	if task.ID == "" {
		t.Fatalf("expected an ID")
	}

	if _, err := NewTask("   "); err != ErrEmptyTaskText {
		t.Fatalf("expected ErrEmptyTaskText, got %v", err)
	}
}

func TestTaskComplete(t *testing.T) {
	task := &Task{ID: "x", Text: "Review", IsActive: true, TimeSpent: 42}
	done := task.Complete()
	if done.ID != "x" || done.Text != "Review" || done.TimeSpent != 42 {
		t.Fatalf("unexpected completed task: %+v", done)
	}
	if done.Elapsed() != "00:00:42" {
		t.Fatalf("unexpected elapsed: %q", done.Elapsed())
	}
}
