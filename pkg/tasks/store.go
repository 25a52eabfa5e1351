package tasks

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// DBFileName is the task database created inside the data directory. It is
// local to each machine and kept out of git sync.
const DBFileName = "tasks.db"

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id             TEXT PRIMARY KEY,
	title          TEXT NOT NULL,
	linked_goal_id TEXT NOT NULL DEFAULT '',
	status         TEXT NOT NULL,
	time_estimate  INTEGER NOT NULL DEFAULT 0,
	time_spent     INTEGER NOT NULL DEFAULT 0,
	created_at     DATETIME NOT NULL,
	updated_at     DATETIME NOT NULL,
	completed_at   DATETIME
);
CREATE INDEX IF NOT EXISTS idx_tasks_linked_goal ON tasks(linked_goal_id);
`

const columns = `id, title, linked_goal_id, status, time_estimate, time_spent, created_at, updated_at, completed_at`

// SQLiteStore persists tasks in a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the tasks table exists. The caller is responsible for calling Close.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	db.SetMaxOpenConns(1) // prevent SQLITE_BUSY
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Close releases the underlying database connection.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Create persists a new task and sets its ID, CreatedAt and UpdatedAt.
func (s *SQLiteStore) Create(t *Task) (string, error) {
	t.ID = uuid.NewString()
	now := s.now()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = StatusTodo
	}

	_, err := s.db.Exec(`INSERT INTO tasks (`+columns+`) VALUES (?,?,?,?,?,?,?,?,?)`,
		t.ID, t.Title, t.LinkedGoalID, string(t.Status),
		t.TimeEstimate, t.TimeSpent,
		t.CreatedAt, t.UpdatedAt, nullTime(t.CompletedAt),
	)
	if err != nil {
		return "", fmt.Errorf("insert task: %w", err)
	}
	return t.ID, nil
}

// Get retrieves a task by ID.
func (s *SQLiteStore) Get(id string) (*Task, error) {
	row := s.db.QueryRow(`SELECT `+columns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, ErrTaskNotFound)
	}
	return t, err
}

// Update saves changes to an existing task, updating UpdatedAt automatically.
func (s *SQLiteStore) Update(t *Task) error {
	t.UpdatedAt = s.now()
	res, err := s.db.Exec(`
		UPDATE tasks SET
			title=?, linked_goal_id=?, status=?, time_estimate=?, time_spent=?,
			updated_at=?, completed_at=?
		WHERE id=?`,
		t.Title, t.LinkedGoalID, string(t.Status), t.TimeEstimate, t.TimeSpent,
		t.UpdatedAt, nullTime(t.CompletedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return expectOneRow(res, t.ID)
}

// List returns tasks matching the filter, oldest first.
func (s *SQLiteStore) List(filter Filter) ([]*Task, error) {
	q := strings.Builder{}
	q.WriteString("SELECT " + columns + " FROM tasks WHERE 1=1")
	args := []any{}

	if filter.LinkedGoalID != "" {
		q.WriteString(" AND linked_goal_id=?")
		args = append(args, filter.LinkedGoalID)
	}
	if filter.Status != nil {
		q.WriteString(" AND status=?")
		args = append(args, string(*filter.Status))
	}
	q.WriteString(" ORDER BY created_at ASC, id ASC")
	if filter.Limit > 0 {
		q.WriteString(fmt.Sprintf(" LIMIT %d", filter.Limit))
	}

	rows, err := s.db.Query(q.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Linked returns the tasks linked to goalID as values, ready for health analysis.
func (s *SQLiteStore) Linked(goalID string) ([]Task, error) {
	ptrs, err := s.List(Filter{LinkedGoalID: goalID})
	if err != nil {
		return nil, err
	}
	linked := make([]Task, 0, len(ptrs))
	for _, t := range ptrs {
		linked = append(linked, *t)
	}
	return linked, nil
}

// LogTime adds minutes to a task's time spent.
func (s *SQLiteStore) LogTime(id string, minutes int) (*Task, error) {
	if minutes <= 0 {
		return nil, fmt.Errorf("logged time must be positive, got %d minutes", minutes)
	}
	t, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	t.TimeSpent += minutes
	if t.Status == StatusTodo {
		t.Status = StatusInProgress
	}
	if err := s.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Complete marks a task done and stamps its completion time.
func (s *SQLiteStore) Complete(id string) (*Task, error) {
	t, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	t.Status = StatusDone
	t.CompletedAt = &now
	if err := s.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a task by ID.
func (s *SQLiteStore) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM tasks WHERE id=?", id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return expectOneRow(res, id)
}

// DeleteLinked removes every task linked to goalID.
func (s *SQLiteStore) DeleteLinked(goalID string) error {
	if _, err := s.db.Exec("DELETE FROM tasks WHERE linked_goal_id=?", goalID); err != nil {
		return fmt.Errorf("delete linked tasks: %w", err)
	}
	return nil
}

func expectOneRow(res sql.Result, id string) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("task %s: %w", id, ErrTaskNotFound)
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for scanTask.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*Task, error) {
	var t Task
	var status string
	var completedAt sql.NullTime

	err := s.Scan(
		&t.ID, &t.Title, &t.LinkedGoalID, &status,
		&t.TimeEstimate, &t.TimeSpent,
		&t.CreatedAt, &t.UpdatedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Status = Status(status)
	if completedAt.Valid {
		t.CompletedAt = &completedAt.Time
	}
	return &t, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
