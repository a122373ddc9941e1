package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"taskboard/internal/model"
)

const taskColumns = "id, description, details, status, due_date, created_at, archived, archived_at, time_spent, steps, comments, labels"

// TaskRepository persists tasks as document-style rows: scalar columns
// plus JSON text columns for the steps, comments and labels sequences.
type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// List retrieves all tasks ordered by id, archived included.
func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+taskColumns+" FROM tasks ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetByID retrieves a task by its ID.
func (r *TaskRepository) GetByID(ctx context.Context, id int) (*model.Task, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new task and fills in its server-assigned id.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	steps, comments, labels, err := marshalDocs(task)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (description, details, status, due_date, created_at, archived, archived_at, time_spent, steps, comments, labels)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.Description, task.Details, string(task.Status), task.DueDate,
		task.CreatedAt.UTC().Format(time.RFC3339), task.Archived, archivedAtString(task),
		task.TimeSpent, steps, comments, labels,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	task.ID = int(id)
	return nil
}

// Update rewrites every mutable column of the task's row.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	steps, comments, labels, err := marshalDocs(task)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET description = ?, details = ?, status = ?, due_date = ?, archived = ?, archived_at = ?, time_spent = ?, steps = ?, comments = ?, labels = ?
		WHERE id = ?`,
		task.Description, task.Details, string(task.Status), task.DueDate,
		task.Archived, archivedAtString(task), task.TimeSpent,
		steps, comments, labels, task.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// SetStatus updates only the status column.
func (r *TaskRepository) SetStatus(ctx context.Context, id int, status model.Status) error {
	res, err := r.db.ExecContext(ctx, "UPDATE tasks SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// SetArchived sets or clears the archived flag and its timestamp.
func (r *TaskRepository) SetArchived(ctx context.Context, id int, archived bool, archivedAt *time.Time) error {
	var at any
	if archivedAt != nil {
		at = archivedAt.UTC().Format(time.RFC3339)
	}
	res, err := r.db.ExecContext(ctx, "UPDATE tasks SET archived = ?, archived_at = ? WHERE id = ?", archived, at, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// SetTimeSpent overwrites the committed duration.
func (r *TaskRepository) SetTimeSpent(ctx context.Context, id int, seconds int64) error {
	res, err := r.db.ExecContext(ctx, "UPDATE tasks SET time_spent = ? WHERE id = ?", seconds, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a task by its ID.
func (r *TaskRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func marshalDocs(task *model.Task) (steps, comments, labels string, err error) {
	b, err := json.Marshal(orEmptySteps(task.Steps))
	if err != nil {
		return "", "", "", fmt.Errorf("marshalling steps: %w", err)
	}
	steps = string(b)
	b, err = json.Marshal(orEmptyComments(task.Comments))
	if err != nil {
		return "", "", "", fmt.Errorf("marshalling comments: %w", err)
	}
	comments = string(b)
	b, err = json.Marshal(orEmptyLabels(task.Labels))
	if err != nil {
		return "", "", "", fmt.Errorf("marshalling labels: %w", err)
	}
	labels = string(b)
	return steps, comments, labels, nil
}

func orEmptySteps(s []model.Step) []model.Step {
	if s == nil {
		return []model.Step{}
	}
	return s
}

func orEmptyComments(s []model.Comment) []model.Comment {
	if s == nil {
		return []model.Comment{}
	}
	return s
}

func orEmptyLabels(s []model.Label) []model.Label {
	if s == nil {
		return []model.Label{}
	}
	return s
}

func archivedAtString(task *model.Task) any {
	if task.ArchivedAt == nil {
		return nil
	}
	return task.ArchivedAt.UTC().Format(time.RFC3339)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (model.Task, error) {
	var (
		t          model.Task
		status     string
		createdAt  string
		archivedAt sql.NullString
		steps      string
		comments   string
		labels     string
	)
	err := row.Scan(&t.ID, &t.Description, &t.Details, &status, &t.DueDate, &createdAt,
		&t.Archived, &archivedAt, &t.TimeSpent, &steps, &comments, &labels)
	if err != nil {
		return model.Task{}, err
	}
	t.Status = model.Status(status)
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return model.Task{}, fmt.Errorf("parsing created_at for task %d: %w", t.ID, err)
	}
	if archivedAt.Valid {
		at, err := time.Parse(time.RFC3339, archivedAt.String)
		if err != nil {
			return model.Task{}, fmt.Errorf("parsing archived_at for task %d: %w", t.ID, err)
		}
		t.ArchivedAt = &at
	}
	if err := json.Unmarshal([]byte(steps), &t.Steps); err != nil {
		return model.Task{}, fmt.Errorf("parsing steps for task %d: %w", t.ID, err)
	}
	if err := json.Unmarshal([]byte(comments), &t.Comments); err != nil {
		return model.Task{}, fmt.Errorf("parsing comments for task %d: %w", t.ID, err)
	}
	if err := json.Unmarshal([]byte(labels), &t.Labels); err != nil {
		return model.Task{}, fmt.Errorf("parsing labels for task %d: %w", t.ID, err)
	}
	return t, nil
}
