package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/andy/pomodolist/internal/db"
	"github.com/andy/pomodolist/internal/domain"
)

func newSQLiteStore(t *testing.T) *KVRepo {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"), "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	if err := database.RunMigrations(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewKVRepo(database)
}

func sampleTasks() ([]*domain.Task, []*domain.CompletedTask) {
	active := []*domain.Task{
		{ID: "a", Text: "Draft outline", IsActive: true, TimeSpent: 5},
		{ID: "b", Text: "Review", IsActive: false, TimeSpent: 0},
	}
	completed := []*domain.CompletedTask{
		{ID: "c", Text: "Plan", TimeSpent: 1500},
	}
	return active, completed
}

func assertSameTasks(t *testing.T, wantA []*domain.Task, wantC []*domain.CompletedTask, gotA []*domain.Task, gotC []*domain.CompletedTask) {
	t.Helper()
	if len(gotA) != len(wantA) || len(gotC) != len(wantC) {
		t.Fatalf("length mismatch: active %d/%d completed %d/%d", len(gotA), len(wantA), len(gotC), len(wantC))
	}
	for i := range wantA {
		w, g := wantA[i], gotA[i]
		if w.Text != g.Text || w.IsActive != g.IsActive || w.TimeSpent != g.TimeSpent {
			t.Fatalf("active[%d]: expected %+v, got %+v", i, w, g)
		}
	}
	for i := range wantC {
		w, g := wantC[i], gotC[i]
		if w.Text != g.Text || w.TimeSpent != g.TimeSpent {
			t.Fatalf("completed[%d]: expected %+v, got %+v", i, w, g)
		}
	}
}

func TestTaskRepoRoundTrip(t *testing.T) {
	stores := map[string]KVStore{
		"memory": NewMemoryStore(),
		"sqlite": newSQLiteStore(t),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := NewTaskRepo(store)
			active, completed := sampleTasks()

			if err := repo.Save(ctx, active, completed); err != nil {
				t.Fatalf("save: %v", err)
			}
			gotA, gotC, err := repo.Load(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			assertSameTasks(t, active, completed, gotA, gotC)

			for _, task := range gotA {
				if task.ID == "" {
					t.Fatalf("expected loaded tasks to get an identity")
				}
			}
		})
	}
}

func TestTaskRepoPersistedLayout(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	repo := NewTaskRepo(store)
	active, completed := sampleTasks()

	if err := repo.Save(ctx, active, completed); err != nil {
		t.Fatalf("save: %v", err)
	}

	rawA, _, _ := store.Get(ctx, KeyActiveTasks)
	wantA := `[{"text":"Draft outline","isActive":true,"timeSpent":5},{"text":"Review","isActive":false,"timeSpent":0}]`
	if rawA != wantA {
		t.Fatalf("unexpected active layout:\n got %s\nwant %s", rawA, wantA)
	}

	rawC, _, _ := store.Get(ctx, KeyCompletedTasks)
	wantC := `[{"text":"Plan","timeSpent":1500}]`
	if rawC != wantC {
		t.Fatalf("unexpected completed layout:\n got %s\nwant %s", rawC, wantC)
	}
}

func TestTaskRepoLoadAbsent(t *testing.T) {
	repo := NewTaskRepo(NewMemoryStore())
	active, completed, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if active == nil || completed == nil || len(active) != 0 || len(completed) != 0 {
		t.Fatalf("expected empty non-nil collections, got %v %v", active, completed)
	}
}

func TestTaskRepoLoadMalformed(t *testing.T) {
	tests := []struct {
		name      string
		active    string
		completed string
		wantA     int
		wantC     int
	}{
		{"not json", "{oops", "[", 0, 0},
		{"wrong type", `{"text":"x"}`, `"str"`, 0, 0},
		{"null", "null", "null", 0, 0},
		{"negative time", `[{"text":"x","isActive":false,"timeSpent":-1}]`, `[]`, 0, 0},
		{"blank text", `[{"text":"  ","isActive":false,"timeSpent":1}]`, `[]`, 0, 0},
		{"missing field", `[{"isActive":true}]`, `[{"text":"done","timeSpent":3}]`, 0, 1},
		{"one key valid", `[{"text":"ok","isActive":true,"timeSpent":2}]`, `[{"text":1}]`, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := NewMemoryStore()
			_ = store.Put(ctx, map[string]string{KeyActiveTasks: tt.active, KeyCompletedTasks: tt.completed})

			active, completed, err := NewTaskRepo(store).Load(ctx)
			if err != nil {
				t.Fatalf("malformed data must not fail: %v", err)
			}
			if len(active) != tt.wantA || len(completed) != tt.wantC {
				t.Fatalf("expected %d/%d, got %d/%d", tt.wantA, tt.wantC, len(active), len(completed))
			}
		})
	}
}

type brokenStore struct{ err error }

func (b brokenStore) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, b.err
}
func (b brokenStore) Put(ctx context.Context, values map[string]string) error { return b.err }
func (b brokenStore) Delete(ctx context.Context, keys ...string) error        { return b.err }

func TestTaskRepoStoreErrors(t *testing.T) {
	boom := errors.New("disk full")
	repo := NewTaskRepo(brokenStore{err: boom})

	if _, _, err := repo.Load(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error on load, got %v", err)
	}
	if err := repo.Save(context.Background(), nil, nil); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error on save, got %v", err)
	}
}

func TestTaskRepoClear(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)
	repo := NewTaskRepo(store)
	active, completed := sampleTasks()
	if err := repo.Save(ctx, active, completed); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := store.Get(ctx, KeyActiveTasks); ok {
		t.Fatalf("expected active key removed")
	}
	a, c, err := repo.Load(ctx)
	if err != nil || len(a) != 0 || len(c) != 0 {
		t.Fatalf("expected empty after clear, got %v %v %v", a, c, err)
	}
}

func TestKVRepoOverwrite(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	if err := store.Put(ctx, map[string]string{"k": "one"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, map[string]string{"k": "two"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	v, ok, err := store.Get(ctx, "k")
	if err != nil || !ok || v != "two" {
		t.Fatalf("expected last write to win, got %q %v %v", v, ok, err)
	}
	if err := store.Delete(ctx, "k", "missing"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Fatalf("expected key deleted")
	}
}
