package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/habitual/internal/day"
	"github.com/dukerupert/habitual/internal/model"
)

type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

const taskCols = `id, user_id, due_date, title, detail, priority, is_completed, color, is_notify, notify_days_before, created_at`

func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	var due string
	var completed, notify int
	err := scanner.Scan(&t.ID, &t.UserID, &due, &t.Title, &t.Detail, &t.Priority, &completed, &t.Color, &notify, &t.NotifyDaysBefore, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.DueDate, err = parseDate(due)
	if err != nil {
		return nil, err
	}
	t.IsCompleted = completed != 0
	t.IsNotify = notify != 0
	return &t, nil
}

func (s *TaskStore) Create(t model.Task) (*model.Task, error) {
	result, err := s.db.Exec(
		`INSERT INTO tasks (user_id, due_date, title, detail, priority, color, is_notify, notify_days_before)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, day.Format(t.DueDate), t.Title, t.Detail, t.Priority, t.Color, boolToInt(t.IsNotify), t.NotifyDaysBefore,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(t.UserID, id)
}

func (s *TaskStore) GetByID(userID, id int64) (*model.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskCols+` FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// ListByUser returns all of a user's tasks ordered by due date.
func (s *TaskStore) ListByUser(userID int64) ([]model.Task, error) {
	return s.list(
		`SELECT `+taskCols+` FROM tasks WHERE user_id = ? ORDER BY due_date ASC, id ASC`,
		userID,
	)
}

// ListByDateRange returns tasks due within [start, end] inclusive.
func (s *TaskStore) ListByDateRange(userID int64, start, end time.Time) ([]model.Task, error) {
	return s.list(
		`SELECT `+taskCols+` FROM tasks
		 WHERE user_id = ? AND due_date >= ? AND due_date <= ?
		 ORDER BY due_date ASC, id ASC`,
		userID, day.Format(start), day.Format(end),
	)
}

// ListOpen returns incomplete tasks with notifications enabled.
func (s *TaskStore) ListOpen(userID int64) ([]model.Task, error) {
	return s.list(
		`SELECT `+taskCols+` FROM tasks
		 WHERE user_id = ? AND is_completed = 0 AND is_notify = 1
		 ORDER BY due_date ASC, id ASC`,
		userID,
	)
}

func (s *TaskStore) list(query string, args ...any) ([]model.Task, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// ToggleCompleted flips the completion flag and returns the updated task.
func (s *TaskStore) ToggleCompleted(userID, id int64) (*model.Task, error) {
	result, err := s.db.Exec(
		`UPDATE tasks SET is_completed = 1 - is_completed WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("toggle task: %w", err)
	}
	if err := checkAffected(result); err != nil {
		return nil, err
	}
	task, err := s.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		// deleted between the update and the read
		return nil, ErrNotFound
	}
	return task, nil
}

func (s *TaskStore) Delete(userID, id int64) error {
	result, err := s.db.Exec(`DELETE FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return checkAffected(result)
}
