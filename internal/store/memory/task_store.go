package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"task-tracker-api/internal/domain"
	"task-tracker-api/internal/store"
)

type entry struct {
	seq  int64
	task domain.Task
}

// TaskStore keeps tasks in a map. The zero value is ready to use.
type TaskStore struct {
	mu      sync.RWMutex
	nextSeq int64
	tasks   map[string]entry
}

func New() *TaskStore {
	return &TaskStore{
		tasks: make(map[string]entry),
	}
}

func (ts *TaskStore) FindAll(ctx context.Context) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ts.mu.RLock()
	defer ts.mu.RUnlock()

	entries := make([]entry, 0, len(ts.tasks))
	for _, e := range ts.tasks {
		entries = append(entries, e)
	}

	// newest first; insertion order breaks timestamp ties
	slices.SortFunc(entries, func(a, b entry) int {
		if c := b.task.CreatedAt.Compare(a.task.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.seq, a.seq)
	})

	tasks := make([]domain.Task, 0, len(entries))
	for _, e := range entries {
		tasks = append(tasks, e.task)
	}

	return tasks, nil
}

func (ts *TaskStore) FindByID(ctx context.Context, id string) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}

	ts.mu.RLock()
	e, ok := ts.tasks[id]
	ts.mu.RUnlock()

	if !ok {
		return domain.Task{}, store.ErrNotFound
	}

	return e.task, nil
}

func (ts *TaskStore) Insert(ctx context.Context, task domain.Task) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return domain.Task{}, err
	}
	task.ID = id.String()

	seq := atomic.AddInt64(&ts.nextSeq, 1)

	ts.mu.Lock()
	if ts.tasks == nil {
		ts.tasks = make(map[string]entry)
	}
	ts.tasks[task.ID] = entry{seq: seq, task: task}
	ts.mu.Unlock()

	return task, nil
}

func (ts *TaskStore) UpdateByID(ctx context.Context, id string, task domain.Task) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	e, ok := ts.tasks[id]
	if !ok {
		return domain.Task{}, store.ErrNotFound
	}

	// id and creation time are immutable
	task.ID = e.task.ID
	task.CreatedAt = e.task.CreatedAt
	e.task = task
	ts.tasks[id] = e

	return task, nil
}

func (ts *TaskStore) DeleteByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, ok := ts.tasks[id]; !ok {
		return store.ErrNotFound
	}
	delete(ts.tasks, id)

	return nil
}
