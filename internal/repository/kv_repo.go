package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/andy/pomodolist/internal/db"
)

// KVRepo is a SQLite implementation of KVStore
type KVRepo struct {
	db *db.DB
}

// NewKVRepo creates a new KVRepo
func NewKVRepo(database *db.DB) *KVRepo {
	return &KVRepo{db: database}
}

// Get retrieves a value by key
func (r *KVRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return value, true, nil
}

// Put writes all values in a single transaction (insert or replace)
func (r *KVRepo) Put(ctx context.Context, values map[string]string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT OR REPLACE INTO kv_store (key, value, updated_at)
		VALUES (?, ?, ?)
	`
	now := formatTime()

	// Stable write order keeps the statement sequence deterministic
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, query, k, values[k], now); err != nil {
			return fmt.Errorf("failed to put %q: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Delete removes the given keys; absent keys are ignored
func (r *KVRepo) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		if _, err := r.db.ExecContext(ctx, "DELETE FROM kv_store WHERE key = ?", k); err != nil {
			return fmt.Errorf("failed to delete %q: %w", k, err)
		}
	}
	return nil
}
