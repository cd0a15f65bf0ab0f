package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"task-tracker-api/internal/domain"
	"task-tracker-api/internal/store"
)

const MsgTaskDeleted = "Task deleted successfully"

type DeleteResult struct {
	ID      string
	Message string
}

type Option func(*TaskService)

// WithClock replaces time.Now as the source of task timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *TaskService) {
		s.now = now
	}
}

type TaskService struct {
	store store.TaskStore
	now   func() time.Time
}

func New(store store.TaskStore, opts ...Option) (*TaskService, error) {
	if store == nil {
		return nil, ErrStoreNil
	}

	s := &TaskService{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// timestamp is truncated to milliseconds, the precision of the document store.
func (s *TaskService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *TaskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) CreateTask(ctx context.Context, in domain.NewTask) (domain.Task, error) {
	// input is validated upstream; an empty title here is a caller bug
	if strings.TrimSpace(in.Title) == "" {
		return domain.Task{}, ErrInvalidInput
	}

	now := s.timestamp()
	task := domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.store.Insert(ctx, task)
	if err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}
	return created, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	return s.mutate(ctx, "update task", id, patch.Apply)
}

func (s *TaskService) ToggleTask(ctx context.Context, id string) (domain.Task, error) {
	return s.mutate(ctx, "toggle task", id, func(t domain.Task) domain.Task {
		t.Completed = !t.Completed
		return t
	})
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) (DeleteResult, error) {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return DeleteResult{}, storeError("delete task", id, err)
	}

	if err := s.store.DeleteByID(ctx, id); err != nil {
		return DeleteResult{}, storeError("delete task", id, err)
	}

	return DeleteResult{ID: id, Message: MsgTaskDeleted}, nil
}

// mutate resolves the task first so nothing is written for a missing id.
func (s *TaskService) mutate(ctx context.Context, op, id string, change func(domain.Task) domain.Task) (domain.Task, error) {
	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		return domain.Task{}, storeError(op, id, err)
	}

	next := change(current)
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = s.timestamp()

	updated, err := s.store.UpdateByID(ctx, id, next)
	if err != nil {
		return domain.Task{}, storeError(op, id, err)
	}
	return updated, nil
}

func storeError(op, id string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s %s: %w", op, id, err)
}
