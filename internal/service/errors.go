// Package service holds the task use cases on top of a store.TaskStore.
package service

import "errors"

var (
	// ErrNotFound is returned when no task has the requested id.
	ErrNotFound = errors.New("task not found")
	// ErrInvalidInput means a caller skipped validation.
	ErrInvalidInput = errors.New("invalid task input")
	ErrStoreNil     = errors.New("task store is nil")
)
