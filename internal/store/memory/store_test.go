package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker-api/internal/domain"
	"task-tracker-api/internal/store"
	"task-tracker-api/internal/store/storetest"
)

func TestTaskStore_Conformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.TaskStore {
		return New()
	})
}

func TestTaskStore_IssuesUUIDv7(t *testing.T) {
	ts := New()

	created, err := ts.Insert(context.Background(), domain.Task{Title: "t"})
	require.NoError(t, err)

	parsed, err := uuid.Parse(created.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestTaskStore_UpdateKeepsCreatedAt(t *testing.T) {
	ts := New()
	ctx := context.Background()
	createdAt := time.Date(2025, 8, 31, 18, 41, 26, 0, time.UTC)

	created, err := ts.Insert(ctx, domain.Task{Title: "t", CreatedAt: createdAt})
	require.NoError(t, err)

	updated, err := ts.UpdateByID(ctx, created.ID, domain.Task{ID: "other", Title: "u"})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, createdAt.Equal(updated.CreatedAt))
}

func TestTaskStore_CanceledContext(t *testing.T) {
	ts := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ts.Insert(ctx, domain.Task{Title: "t"})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = ts.FindAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTaskStore_ConcurrentInsert(t *testing.T) {
	ts := New()

	const n = 200
	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, _ = ts.Insert(context.Background(), domain.Task{Title: "x"})
		}()
	}

	wg.Wait()

	list, err := ts.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, n)
}

func TestTaskStore_ZeroValue(t *testing.T) {
	var ts TaskStore
	ctx := context.Background()

	tasks, err := ts.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	_, err = ts.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	created, err := ts.Insert(ctx, domain.Task{Title: "t"})
	require.NoError(t, err)

	found, err := ts.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)
}
