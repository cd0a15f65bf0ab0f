// Package sqlite persists tasks in an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"task-tracker-api/internal/domain"
	"task-tracker-api/internal/store"
)

//go:embed schema.sql
var schemaSQL string

const currentSchemaVersion = 1

// Store is a store.TaskStore backed by SQLite in WAL mode.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path and applies pragmas and schema.
// Safe to call on an existing database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

const selectColumns = `SELECT id, title, description, completed, created_at, updated_at FROM tasks`

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (domain.Task, error) {
	var (
		task                 domain.Task
		completed            int
		createdAt, updatedAt int64
	)

	if err := row.Scan(&task.ID, &task.Title, &task.Description, &completed, &createdAt, &updatedAt); err != nil {
		return domain.Task{}, err
	}

	task.Completed = completed == 1
	task.CreatedAt = time.Unix(0, createdAt).UTC()
	task.UpdatedAt = time.Unix(0, updatedAt).UTC()

	return task, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (s *Store) FindAll(ctx context.Context) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC, seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("find all: %w", err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("find all: scan: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find all: %w", err)
	}

	return tasks, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (domain.Task, error) {
	return findByID(ctx, s.db, id)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func findByID(ctx context.Context, q queryer, id string) (domain.Task, error) {
	task, err := scanTask(q.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Task{}, fmt.Errorf("find by id: %w", err)
	}

	return task, nil
}

func (s *Store) Insert(ctx context.Context, task domain.Task) (domain.Task, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return domain.Task{}, fmt.Errorf("insert: %w", err)
	}
	task.ID = id.String()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, description, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		task.ID,
		task.Title,
		task.Description,
		boolToInt(task.Completed),
		task.CreatedAt.UnixNano(),
		task.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return domain.Task{}, fmt.Errorf("insert: %w", err)
	}

	return task, nil
}

func (s *Store) UpdateByID(ctx context.Context, id string, task domain.Task) (domain.Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Task{}, fmt.Errorf("update: begin tx: %w", err)
	}
	defer tx.Rollback() // no-op after commit

	res, err := tx.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, completed = ?, updated_at = ?
		WHERE id = ?
	`,
		task.Title,
		task.Description,
		boolToInt(task.Completed),
		task.UpdatedAt.UnixNano(),
		id,
	)
	if err != nil {
		return domain.Task{}, fmt.Errorf("update: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return domain.Task{}, fmt.Errorf("update: rows affected: %w", err)
	}
	if n == 0 {
		return domain.Task{}, store.ErrNotFound
	}

	updated, err := findByID(ctx, tx, id)
	if err != nil {
		return domain.Task{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Task{}, fmt.Errorf("update: commit: %w", err)
	}

	return updated, nil
}

func (s *Store) DeleteByID(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete: rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}

	return nil
}
