package repository_test

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

var taskCols = []string{"id", "description", "details", "status", "due_date", "created_at", "archived", "archived_at", "time_spent", "steps", "comments", "labels"}

func taskRow(id int, description, status string) []driver.Value {
	return []driver.Value{id, description, nil, status, nil, "2026-08-30T10:00:00Z", false, nil, int64(0), "[]", "[]", "[]"}
}

func TestTaskRepository_List(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := repository.NewTaskRepository(db)

	rows := sqlmock.NewRows(taskCols).
		AddRow(taskRow(1, "first", "not_started")...).
		AddRow(taskRow(2, "second", "complete")...)
	mock.ExpectQuery(`SELECT (.+) FROM tasks ORDER BY id`).WillReturnRows(rows)

	// Act
	tasks, err := repo.List(context.Background())

	// Assert
	assert.NoError(t, err)
	assert.Len(t, tasks, 2)
	assert.Equal(t, "first", tasks[0].Description)
	assert.Equal(t, model.StatusComplete, tasks[1].Status)
	assert.NotNil(t, tasks[0].Steps)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_ListDecodesDocumentColumns(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := repository.NewTaskRepository(db)

	rows := sqlmock.NewRows(taskCols).AddRow(
		1, "task", "some details", "in_progress", "2026-09-15", "2026-08-30T10:00:00Z",
		true, "2026-08-30T11:00:00Z", int64(90),
		`[{"text":"a","completed":true}]`,
		`[{"text":"hi","created_at":"2026-08-30T10:30:00Z"}]`,
		`[{"name":"work","color":"blue"}]`,
	)
	mock.ExpectQuery(`SELECT (.+) FROM tasks ORDER BY id`).WillReturnRows(rows)

	// Act
	tasks, err := repo.List(context.Background())

	// Assert
	assert.NoError(t, err)
	task := tasks[0]
	assert.Equal(t, "some details", *task.Details)
	assert.Equal(t, "2026-09-15", *task.DueDate)
	assert.True(t, task.Archived)
	assert.NotNil(t, task.ArchivedAt)
	assert.Equal(t, int64(90), task.TimeSpent)
	assert.Equal(t, []model.Step{{Text: "a", Completed: true}}, task.Steps)
	assert.Len(t, task.Comments, 1)
	assert.Equal(t, []model.Label{{Name: "work", Color: "blue"}}, task.Labels)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_GetByID_NotFound(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := repository.NewTaskRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM tasks WHERE id = \?`).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows(taskCols))

	// Act
	task, err := repo.GetByID(context.Background(), 42)

	// Assert
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.Nil(t, task)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Create(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := repository.NewTaskRepository(db)

	task := &model.Task{
		Description: "new task",
		Status:      model.StatusNotStarted,
		CreatedAt:   time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}
	mock.ExpectExec(`INSERT INTO tasks`).
		WithArgs("new task", nil, "not_started", nil, "2026-08-30T10:00:00Z", false, nil,
			int64(0), "[]", "[]", "[]").
		WillReturnResult(sqlmock.NewResult(7, 1))

	// Act
	err = repo.Create(context.Background(), task)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 7, task.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_SetStatus_NotFound(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := repository.NewTaskRepository(db)

	mock.ExpectExec(`UPDATE tasks SET status = \? WHERE id = \?`).
		WithArgs("blocked", 42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	// Act
	err = repo.SetStatus(context.Background(), 42, model.StatusBlocked)

	// Assert
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_SetTimeSpent(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := repository.NewTaskRepository(db)

	mock.ExpectExec(`UPDATE tasks SET time_spent = \? WHERE id = \?`).
		WithArgs(int64(3600), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Act
	err = repo.SetTimeSpent(context.Background(), 1, 3600)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Delete(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := repository.NewTaskRepository(db)

	mock.ExpectExec(`DELETE FROM tasks WHERE id = \?`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Act
	err = repo.Delete(context.Background(), 3)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLabelRepository_GetOrCreate_ExistingKeepsColor(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := repository.NewLabelRepository(db)

	mock.ExpectQuery(`SELECT name, color FROM labels WHERE name = \?`).
		WithArgs("urgent").
		WillReturnRows(sqlmock.NewRows([]string{"name", "color"}).AddRow("urgent", "red"))

	// Act
	label, err := repo.GetOrCreate(context.Background(), model.Label{Name: "urgent", Color: "blue"})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "red", label.Color)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLabelRepository_GetOrCreate_NewLabel(t *testing.T) {
	// Arrange
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	repo := repository.NewLabelRepository(db)

	mock.ExpectQuery(`SELECT name, color FROM labels WHERE name = \?`).
		WithArgs("home").
		WillReturnRows(sqlmock.NewRows([]string{"name", "color"}))
	mock.ExpectExec(`INSERT INTO labels`).
		WithArgs("home", "green").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT name, color FROM labels WHERE name = \?`).
		WithArgs("home").
		WillReturnRows(sqlmock.NewRows([]string{"name", "color"}).AddRow("home", "green"))

	// Act
	label, err := repo.GetOrCreate(context.Background(), model.Label{Name: "home", Color: "green"})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, model.Label{Name: "home", Color: "green"}, label)
	assert.NoError(t, mock.ExpectationsWereMet())
}
