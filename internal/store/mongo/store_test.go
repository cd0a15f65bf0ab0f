package mongo

import (
	"context"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker-api/internal/store"
	"task-tracker-api/internal/store/storetest"
)

// uriEnv points the suite at a disposable server, e.g. mongodb://localhost:27017.
const uriEnv = "TASKTRACKER_TEST_MONGODB_URI"

func openTemp(t *testing.T, uri string) *Store {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := Connect(ctx, Options{
		URI:      uri,
		Database: fmt.Sprintf("tasktracker_test_%d", time.Now().UnixNano()),
	}, log.New(io.Discard))
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Drop(ctx)
		_ = s.Close(ctx)
	})

	return s
}

func TestStore_Conformance(t *testing.T) {
	uri := os.Getenv(uriEnv)
	if uri == "" {
		t.Skipf("%s not set", uriEnv)
	}

	storetest.Run(t, func(t *testing.T) store.TaskStore {
		return openTemp(t, uri)
	})
}

func TestConnect_EmptyURI(t *testing.T) {
	_, err := Connect(context.Background(), Options{}, log.New(io.Discard))

	assert.ErrorIs(t, err, ErrNoURI)
}

func TestConnect_GivesUpAfterRetries(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// nothing listens on port 1; server selection fails after its timeout
	start := time.Now()
	_, err := Connect(ctx, Options{
		URI:        "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=100&connectTimeoutMS=100",
		Database:   "unused",
		Retries:    1,
		RetryDelay: 10 * time.Millisecond,
	}, log.New(io.Discard))

	require.Error(t, err)
	assert.Less(t, time.Since(start), 25*time.Second)
}

func TestTaskDocument_ToDomain(t *testing.T) {
	at := time.Date(2025, 8, 31, 18, 41, 26, 0, time.FixedZone("CEST", 2*3600))
	doc := taskDocument{Title: "t", CreatedAt: at, UpdatedAt: at}

	got := doc.toDomain()

	assert.Equal(t, doc.ID.Hex(), got.ID)
	assert.Equal(t, time.UTC, got.CreatedAt.Location())
	assert.True(t, at.Equal(got.CreatedAt))
}
