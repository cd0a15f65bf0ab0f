// Package storetest holds the behavior every store.TaskStore backend must share.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker-api/internal/domain"
	"task-tracker-api/internal/store"
)

// MissingID is well formed for every backend but never issued by a store.
const MissingID = "507f1f77bcf86cd799439011"

var base = time.Date(2025, 8, 23, 17, 49, 44, 0, time.UTC)

// Run executes the conformance suite. open must return an empty store.
func Run(t *testing.T, open func(t *testing.T) store.TaskStore) {
	t.Helper()

	t.Run("InsertAndFind", func(t *testing.T) { testInsertAndFind(t, open(t)) })
	t.Run("FindByID_NotFound", func(t *testing.T) { testFindByIDNotFound(t, open(t)) })
	t.Run("FindAll_Empty", func(t *testing.T) { testFindAllEmpty(t, open(t)) })
	t.Run("FindAll_NewestFirst", func(t *testing.T) { testFindAllNewestFirst(t, open(t)) })
	t.Run("FindAll_TieBreaksByInsertion", func(t *testing.T) { testFindAllTies(t, open(t)) })
	t.Run("UpdateByID", func(t *testing.T) { testUpdateByID(t, open(t)) })
	t.Run("UpdateByID_NotFound", func(t *testing.T) { testUpdateByIDNotFound(t, open(t)) })
	t.Run("DeleteByID", func(t *testing.T) { testDeleteByID(t, open(t)) })
}

func newTask(title string, createdAt time.Time) domain.Task {
	return domain.Task{
		Title:       title,
		Description: "",
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func titles(tasks []domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.Title)
	}
	return out
}

func testInsertAndFind(t *testing.T, s store.TaskStore) {
	ctx := context.Background()

	in := newTask("Buy milk", base)
	in.Description = "2 liters"

	a, err := s.Insert(ctx, in)
	require.NoError(t, err)
	b, err := s.Insert(ctx, newTask("Walk dog", base))
	require.NoError(t, err)

	require.NotEmpty(t, a.ID)
	require.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)

	got, err := s.FindByID(ctx, a.ID)
	require.NoError(t, err)

	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "2 liters", got.Description)
	assert.False(t, got.Completed)
	assert.True(t, base.Equal(got.CreatedAt), "CreatedAt=%v, want %v", got.CreatedAt, base)
	assert.True(t, base.Equal(got.UpdatedAt), "UpdatedAt=%v, want %v", got.UpdatedAt, base)
}

func testFindByIDNotFound(t *testing.T, s store.TaskStore) {
	ctx := context.Background()

	_, err := s.FindByID(ctx, MissingID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.FindByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testFindAllEmpty(t *testing.T, s store.TaskStore) {
	tasks, err := s.FindAll(context.Background())
	require.NoError(t, err)

	assert.Len(t, tasks, 0)
}

func testFindAllNewestFirst(t *testing.T, s store.TaskStore) {
	ctx := context.Background()

	// inserted out of chronological order on purpose
	_, err := s.Insert(ctx, newTask("B", base.Add(time.Minute)))
	require.NoError(t, err)
	_, err = s.Insert(ctx, newTask("A", base))
	require.NoError(t, err)
	_, err = s.Insert(ctx, newTask("C", base.Add(2*time.Minute)))
	require.NoError(t, err)

	tasks, err := s.FindAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"C", "B", "A"}, titles(tasks))
}

func testFindAllTies(t *testing.T, s store.TaskStore) {
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C"} {
		_, err := s.Insert(ctx, newTask(title, base))
		require.NoError(t, err)
	}

	tasks, err := s.FindAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"C", "B", "A"}, titles(tasks))
}

func testUpdateByID(t *testing.T, s store.TaskStore) {
	ctx := context.Background()

	created, err := s.Insert(ctx, newTask("Buy milk", base))
	require.NoError(t, err)

	later := base.Add(time.Hour)
	changed := created
	changed.Title = "Buy oat milk"
	changed.Description = "unsweetened"
	changed.Completed = true
	changed.UpdatedAt = later

	updated, err := s.UpdateByID(ctx, created.ID, changed)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Buy oat milk", updated.Title)
	assert.True(t, updated.Completed)

	got, err := s.FindByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Buy oat milk", got.Title)
	assert.Equal(t, "unsweetened", got.Description)
	assert.True(t, got.Completed)
	assert.True(t, base.Equal(got.CreatedAt), "CreatedAt=%v, want %v", got.CreatedAt, base)
	assert.True(t, later.Equal(got.UpdatedAt), "UpdatedAt=%v, want %v", got.UpdatedAt, later)
}

func testUpdateByIDNotFound(t *testing.T, s store.TaskStore) {
	ctx := context.Background()

	_, err := s.UpdateByID(ctx, MissingID, newTask("x", base))
	assert.ErrorIs(t, err, store.ErrNotFound)

	tasks, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 0)
}

func testDeleteByID(t *testing.T, s store.TaskStore) {
	ctx := context.Background()

	keep, err := s.Insert(ctx, newTask("keep", base))
	require.NoError(t, err)
	gone, err := s.Insert(ctx, newTask("gone", base.Add(time.Second)))
	require.NoError(t, err)

	require.NoError(t, s.DeleteByID(ctx, gone.ID))

	_, err = s.FindByID(ctx, gone.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.DeleteByID(ctx, gone.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.DeleteByID(ctx, MissingID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	tasks, err := s.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, keep.ID, tasks[0].ID)
}
