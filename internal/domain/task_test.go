package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskPatch_Apply_OnlyProvidedFields(t *testing.T) {
	done := true
	task := Task{ID: "1", Title: "Buy milk", Description: "2 liters"}

	got := TaskPatch{Completed: &done}.Apply(task)

	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "2 liters", got.Description)
	assert.True(t, got.Completed)
}

func TestTaskPatch_Apply_ExplicitEmptyDescription(t *testing.T) {
	empty := ""
	task := Task{ID: "1", Title: "Buy milk", Description: "2 liters"}

	got := TaskPatch{Description: &empty}.Apply(task)

	assert.Equal(t, "", got.Description)
	assert.Equal(t, "Buy milk", got.Title)
}

func TestTaskPatch_IsEmpty(t *testing.T) {
	title := "x"

	assert.True(t, TaskPatch{}.IsEmpty())
	assert.False(t, TaskPatch{Title: &title}.IsEmpty())
}
