package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/andy/pomodolist/internal/clock"
	"github.com/andy/pomodolist/internal/domain"
	"github.com/andy/pomodolist/internal/repository"
	"github.com/rs/zerolog/log"
)

var (
	ErrIndexOutOfRange = errors.New("task index out of range")
)

// TaskService tracks time spent on an ordered list of tasks.
//
// The in-memory lists are authoritative. A mutation is applied before it is
// saved, so when the save fails the method returns the error but the change
// stays in place and goes out with the next successful save.
type TaskService interface {
	// Restore loads persisted tasks and resumes tracking for active ones
	Restore(ctx context.Context) error

	// AddTask appends an inactive task; blank text is ignored
	AddTask(ctx context.Context, text string) error

	// RemoveTask drops the active-list task at index
	RemoveTask(ctx context.Context, index int) error

	// StartTask begins accumulating time for the task at index
	StartTask(ctx context.Context, index int) error

	// StopTask stops accumulating time; a no-op for inactive tasks
	StopTask(ctx context.Context, index int) error

	// CompleteTask moves the task at index to the end of the completed list
	CompleteTask(ctx context.Context, index int) error

	// RemoveCompletedTask drops a completed task by ID; unknown IDs are ignored
	RemoveCompletedTask(ctx context.Context, id string) error

	// ClearCompleted empties the completed list
	ClearCompleted(ctx context.Context) error

	// Reorder moves the active task at from to position to
	Reorder(ctx context.Context, from, to int) error

	// ActiveTasks returns a copy of the active list
	ActiveTasks() []domain.Task

	// CompletedTasks returns a copy of the completed list
	CompletedTasks() []domain.CompletedTask

	// Close cancels every running task tick
	Close()
}

// TaskServiceOptions tunes tracker behaviour
type TaskServiceOptions struct {
	// Exclusive stops all other active tasks when one is started
	Exclusive bool
}

// run is the accumulation state of one active task
type run struct {
	base   int64     // TimeSpent when tracking started
	since  time.Time // wall-clock start of tracking
	handle clock.Handle
	gen    uint64
}

type taskService struct {
	mu        sync.Mutex
	clock     clock.Clock
	repo      repository.TaskRepository
	opts      TaskServiceOptions
	active    []*domain.Task
	completed []*domain.CompletedTask
	runs      map[string]*run // keyed by task ID
	gen       uint64
}

// NewTaskService creates an empty tracker. Call Restore to load persisted tasks.
func NewTaskService(c clock.Clock, repo repository.TaskRepository, opts TaskServiceOptions) TaskService {
	return &taskService{
		clock:     c,
		repo:      repo,
		opts:      opts,
		active:    []*domain.Task{},
		completed: []*domain.CompletedTask{},
		runs:      make(map[string]*run),
	}
}

func (s *taskService) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopAllLocked()

	active, completed, err := s.repo.Load(ctx)
	if err != nil {
		// Fail soft: start from empty collections
		log.Warn().Err(err).Msg("failed to load tasks, starting empty")
		active, completed = []*domain.Task{}, []*domain.CompletedTask{}
	}
	s.active = active
	s.completed = completed

	resumed := 0
	for _, t := range s.active {
		if t.IsActive {
			// Tracking restarts from the persisted value; downtime is not backdated
			s.startLocked(t)
			resumed++
		}
	}

	log.Info().
		Int("active", len(s.active)).
		Int("completed", len(s.completed)).
		Int("resumed", resumed).
		Msg("tasks restored")

	return nil
}

func (s *taskService) AddTask(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	task, err := domain.NewTask(text)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = append(s.active, task)
	return s.saveLocked(ctx)
}

func (s *taskService) RemoveTask(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.validLocked(index) {
		return ErrIndexOutOfRange
	}

	task := s.active[index]
	if task.IsActive {
		s.stopLocked(task)
	}
	s.active = append(s.active[:index], s.active[index+1:]...)
	return s.saveLocked(ctx)
}

func (s *taskService) StartTask(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.validLocked(index) {
		return ErrIndexOutOfRange
	}

	task := s.active[index]

	if s.opts.Exclusive {
		for _, other := range s.active {
			if other != task && other.IsActive {
				s.stopLocked(other)
			}
		}
	}

	// Already tracking: keep the run so no partial second is dropped
	if _, running := s.runs[task.ID]; !running {
		s.startLocked(task)
	}
	return s.saveLocked(ctx)
}

func (s *taskService) StopTask(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.validLocked(index) {
		return ErrIndexOutOfRange
	}

	task := s.active[index]
	if !task.IsActive {
		return nil
	}
	s.stopLocked(task)
	return s.saveLocked(ctx)
}

func (s *taskService) CompleteTask(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.validLocked(index) {
		return ErrIndexOutOfRange
	}

	task := s.active[index]
	if task.IsActive {
		s.stopLocked(task)
	}
	s.completed = append(s.completed, task.Complete())
	s.active = append(s.active[:index], s.active[index+1:]...)
	return s.saveLocked(ctx)
}

func (s *taskService) RemoveCompletedTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.completed {
		if t.ID == id {
			s.completed = append(s.completed[:i], s.completed[i+1:]...)
			return s.saveLocked(ctx)
		}
	}
	return nil
}

func (s *taskService) ClearCompleted(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.completed = []*domain.CompletedTask{}
	return s.saveLocked(ctx)
}

func (s *taskService) Reorder(ctx context.Context, from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.validLocked(from) || !s.validLocked(to) {
		return ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}

	task := s.active[from]
	s.active = append(s.active[:from], s.active[from+1:]...)
	s.active = append(s.active[:to], append([]*domain.Task{task}, s.active[to:]...)...)
	return s.saveLocked(ctx)
}

func (s *taskService) ActiveTasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Task, len(s.active))
	for i, t := range s.active {
		out[i] = *t
	}
	return out
}

func (s *taskService) CompletedTasks() []domain.CompletedTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CompletedTask, len(s.completed))
	for i, t := range s.completed {
		out[i] = *t
	}
	return out
}

func (s *taskService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Handles only; IsActive stays set so the next Restore resumes tracking
	for id, r := range s.runs {
		r.handle.Cancel()
		delete(s.runs, id)
	}
	s.gen++
}

func (s *taskService) validLocked(index int) bool {
	return index >= 0 && index < len(s.active)
}

func (s *taskService) startLocked(task *domain.Task) {
	s.gen++
	r := &run{
		base:  task.TimeSpent,
		since: s.clock.Now(),
		gen:   s.gen,
	}
	id, gen := task.ID, r.gen
	r.handle = s.clock.Every(tickInterval, func() { s.tick(id, gen) })

	s.runs[task.ID] = r
	task.IsActive = true
	log.Debug().Str("task", task.Text).Int64("time_spent", task.TimeSpent).Msg("task started")
}

func (s *taskService) stopLocked(task *domain.Task) {
	if r, ok := s.runs[task.ID]; ok {
		s.accumulate(task, r, s.clock.Now())
		r.handle.Cancel()
		delete(s.runs, task.ID)
	}
	if task.IsActive {
		log.Debug().Str("task", task.Text).Int64("time_spent", task.TimeSpent).Msg("task stopped")
	}
	task.IsActive = false
}

func (s *taskService) stopAllLocked() {
	for _, t := range s.active {
		s.stopLocked(t)
	}
}

// accumulate sets TimeSpent from the wall-clock delta since tracking began;
// it never moves backwards
func (s *taskService) accumulate(task *domain.Task, r *run, now time.Time) {
	spent := r.base + int64(now.Sub(r.since)/time.Second)
	if spent > task.TimeSpent {
		task.TimeSpent = spent
	}
}

func (s *taskService) tick(id string, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.runs[id]
	if !ok || r.gen != gen {
		return
	}

	var task *domain.Task
	for _, t := range s.active {
		if t.ID == id {
			task = t
			break
		}
	}
	if task == nil {
		return
	}

	s.accumulate(task, r, s.clock.Now())

	if err := s.saveLocked(context.Background()); err != nil {
		log.Warn().Err(err).Str("task", task.Text).Msg("failed to persist task tick")
	}
}

func (s *taskService) saveLocked(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.active, s.completed); err != nil {
		return fmt.Errorf("failed to persist tasks: %w", err)
	}
	return nil
}
