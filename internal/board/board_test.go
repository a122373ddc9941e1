package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskboard/internal/board"
	"taskboard/internal/model"
)

func taskIn(id int, status model.Status, archived bool) model.Task {
	return model.Task{ID: id, Description: "t", Status: status, Archived: archived}
}

func TestColumns_GroupsByStatusInBoardOrder(t *testing.T) {
	tasks := []model.Task{
		taskIn(1, model.StatusComplete, false),
		taskIn(2, model.StatusNotStarted, false),
		taskIn(3, model.StatusNotStarted, false),
		taskIn(4, model.StatusBlocked, false),
	}

	cols := board.Columns(tasks, board.Options{})

	assert.Len(t, cols, 5)
	assert.Equal(t, model.StatusNotStarted, cols[0].Status)
	assert.Len(t, cols[0].Tasks, 2)
	assert.Equal(t, 2, cols[0].Tasks[0].ID) // input order preserved
	assert.Empty(t, cols[1].Tasks)
	assert.Empty(t, cols[2].Tasks)
	assert.Len(t, cols[3].Tasks, 1)
	assert.Len(t, cols[4].Tasks, 1)
}

func TestColumns_ArchivedExcludedRegardlessOfStatus(t *testing.T) {
	// One archived task per status: none may appear in any column.
	var tasks []model.Task
	for i, s := range model.Statuses() {
		tasks = append(tasks, taskIn(i+1, s, true))
	}

	for _, col := range board.Columns(tasks, board.Options{}) {
		assert.Empty(t, col.Tasks, "archived task appeared in column %s", col.Status)
	}
}

func TestColumns_HideCompleted(t *testing.T) {
	tasks := []model.Task{
		taskIn(1, model.StatusComplete, false),
		taskIn(2, model.StatusInProgress, false),
	}

	cols := board.Columns(tasks, board.Options{HideCompleted: true})

	assert.Empty(t, cols[4].Tasks)
	assert.Len(t, cols[1].Tasks, 1)
}

func TestArchived(t *testing.T) {
	tasks := []model.Task{
		taskIn(1, model.StatusComplete, false),
		taskIn(2, model.StatusBlocked, true),
	}

	archived := board.Archived(tasks)

	assert.Len(t, archived, 1)
	assert.Equal(t, 2, archived[0].ID)
}
