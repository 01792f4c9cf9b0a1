package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/andy/pomodolist/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// activeRecord is the persisted shape of an active task
type activeRecord struct {
	Text      string `json:"text"`
	IsActive  bool   `json:"isActive"`
	TimeSpent int64  `json:"timeSpent"`
}

// completedRecord is the persisted shape of a completed task
type completedRecord struct {
	Text      string `json:"text"`
	TimeSpent int64  `json:"timeSpent"`
}

// TaskRepo stores the task collections as two JSON arrays in a KVStore
type TaskRepo struct {
	store KVStore
}

// NewTaskRepo creates a TaskRepo over the given store
func NewTaskRepo(store KVStore) *TaskRepo {
	return &TaskRepo{store: store}
}

// Load reads both collections. Absent or malformed values load as empty
// collections; only a failing store is reported.
func (r *TaskRepo) Load(ctx context.Context) ([]*domain.Task, []*domain.CompletedTask, error) {
	rawActive, okActive, err := r.store.Get(ctx, KeyActiveTasks)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read active tasks: %w", err)
	}
	rawCompleted, okCompleted, err := r.store.Get(ctx, KeyCompletedTasks)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read completed tasks: %w", err)
	}

	active := []*domain.Task{}
	if okActive {
		active = DecodeActive([]byte(rawActive))
	}

	completed := []*domain.CompletedTask{}
	if okCompleted {
		completed = DecodeCompleted([]byte(rawCompleted))
	}

	return active, completed, nil
}

// Save writes both collections
func (r *TaskRepo) Save(ctx context.Context, active []*domain.Task, completed []*domain.CompletedTask) error {
	a, err := EncodeActive(active)
	if err != nil {
		return err
	}
	c, err := EncodeCompleted(completed)
	if err != nil {
		return err
	}

	if err := r.store.Put(ctx, map[string]string{
		KeyActiveTasks:    string(a),
		KeyCompletedTasks: string(c),
	}); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}

// Clear removes both collections from the store
func (r *TaskRepo) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, KeyActiveTasks, KeyCompletedTasks)
}

// EncodeActive renders active tasks in their persisted JSON form
func EncodeActive(tasks []*domain.Task) ([]byte, error) {
	records := make([]activeRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, activeRecord{Text: t.Text, IsActive: t.IsActive, TimeSpent: t.TimeSpent})
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode active tasks: %w", err)
	}
	return data, nil
}

// EncodeCompleted renders completed tasks in their persisted JSON form
func EncodeCompleted(tasks []*domain.CompletedTask) ([]byte, error) {
	records := make([]completedRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, completedRecord{Text: t.Text, TimeSpent: t.TimeSpent})
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode completed tasks: %w", err)
	}
	return data, nil
}

// DecodeActive parses persisted active tasks, assigning fresh IDs.
// Invalid input yields an empty slice.
func DecodeActive(data []byte) []*domain.Task {
	if err := validate(activeSchemaName, data); err != nil {
		log.Warn().Err(err).Str("key", KeyActiveTasks).Msg("discarding malformed persisted tasks")
		return []*domain.Task{}
	}

	var records []activeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Warn().Err(err).Str("key", KeyActiveTasks).Msg("discarding malformed persisted tasks")
		return []*domain.Task{}
	}

	tasks := make([]*domain.Task, 0, len(records))
	for _, rec := range records {
		tasks = append(tasks, &domain.Task{
			ID:        uuid.NewString(),
			Text:      rec.Text,
			IsActive:  rec.IsActive,
			TimeSpent: rec.TimeSpent,
		})
	}
	return tasks
}

// DecodeCompleted parses persisted completed tasks, assigning fresh IDs.
// Invalid input yields an empty slice.
func DecodeCompleted(data []byte) []*domain.CompletedTask {
	if err := validate(completedSchemaName, data); err != nil {
		log.Warn().Err(err).Str("key", KeyCompletedTasks).Msg("discarding malformed persisted tasks")
		return []*domain.CompletedTask{}
	}

	var records []completedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Warn().Err(err).Str("key", KeyCompletedTasks).Msg("discarding malformed persisted tasks")
		return []*domain.CompletedTask{}
	}

	tasks := make([]*domain.CompletedTask, 0, len(records))
	for _, rec := range records {
		tasks = append(tasks, &domain.CompletedTask{
			ID:        uuid.NewString(),
			Text:      rec.Text,
			TimeSpent: rec.TimeSpent,
		})
	}
	return tasks
}
