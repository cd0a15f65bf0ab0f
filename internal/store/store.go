package store

import (
	"context"
	"errors"

	"task-tracker-api/internal/domain"
)

// ErrNotFound is the not-found indicator every backend returns when no task
// matches an id, including ids the backend cannot parse.
var ErrNotFound = errors.New("task not found")

type TaskStore interface {
	// FindAll returns every task, most recently created first.
	FindAll(ctx context.Context) ([]domain.Task, error)
	FindByID(ctx context.Context, id string) (domain.Task, error)
	// Insert assigns the task an id and persists it.
	Insert(ctx context.Context, t domain.Task) (domain.Task, error)
	// UpdateByID replaces the mutable fields of the stored task.
	UpdateByID(ctx context.Context, id string, t domain.Task) (domain.Task, error)
	DeleteByID(ctx context.Context, id string) error
}
