package domain

import "time"

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

type Task struct {
	ID          string
	Title       string
	Description string
	Completed   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTask is the sanitized input of a create operation.
type NewTask struct {
	Title       string
	Description string
}

// TaskPatch is a partial update. A nil field is absent and must be left
// untouched; a non-nil field is written, even when it points to "".
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

func (p TaskPatch) Apply(task Task) Task {
	if p.Title != nil {
		task.Title = *p.Title
	}
	if p.Description != nil {
		task.Description = *p.Description
	}
	if p.Completed != nil {
		task.Completed = *p.Completed
	}

	return task
}

func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}
