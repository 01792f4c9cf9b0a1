package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrEmptyTaskText = errors.New("task text cannot be empty")

// Task is an entry in the active list. ID is an in-memory identity and is
// never persisted.
type Task struct {
	ID        string
	Text      string
	IsActive  bool
	TimeSpent int64 // seconds
}

// CompletedTask is a task moved off the active list; TimeSpent is frozen
type CompletedTask struct {
	ID        string
	Text      string
	TimeSpent int64
}

// NewTask creates an inactive task with the trimmed text
func NewTask(text string) (*Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyTaskText
	}
	return &Task{
		ID:   uuid.NewString(),
		Text: text,
	}, nil
}

// Complete converts the task into its completed form, keeping its identity
func (t *Task) Complete() *CompletedTask {
	return &CompletedTask{
		ID:        t.ID,
		Text:      t.Text,
		TimeSpent: t.TimeSpent,
	}
}

// Elapsed formats TimeSpent as HH:MM:SS
func (t Task) Elapsed() string {
	return FormatHMS(t.TimeSpent)
}

// Elapsed formats TimeSpent as HH:MM:SS
func (t CompletedTask) Elapsed() string {
	return FormatHMS(t.TimeSpent)
}
