package repository

import (
	"context"

	"github.com/andy/pomodolist/internal/domain"
)

// Storage keys for the two task collections
const (
	KeyActiveTasks    = "activeTasks"
	KeyCompletedTasks = "completedTasks"
)

// KVStore is the client-local key-value store the task collections live in
type KVStore interface {
	// Get returns the value for key; ok is false when the key is absent
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Put writes every entry; last write wins
	Put(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}

// TaskRepository persists the active and completed task collections
type TaskRepository interface {
	// Load never fails on absent or malformed data; such collections load empty
	Load(ctx context.Context) (active []*domain.Task, completed []*domain.CompletedTask, err error)
	Save(ctx context.Context, active []*domain.Task, completed []*domain.CompletedTask) error
	Clear(ctx context.Context) error
}
