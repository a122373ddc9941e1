// Package board derives the kanban column view from the session store.
// It is pure read-side grouping; archived tasks never appear in any
// column regardless of their status.
package board

import (
	"taskboard/internal/model"
)

// Column is one status bucket in board order.
type Column struct {
	Status model.Status
	Tasks  []model.Task
}

// Options filter the board view.
type Options struct {
	// HideCompleted drops the complete column's tasks from the view.
	HideCompleted bool
}

// Columns groups unarchived tasks into the five status columns, in
// board order, preserving store order within each column.
func Columns(tasks []model.Task, opts Options) []Column {
	byStatus := make(map[model.Status][]model.Task, 5)
	for _, t := range tasks {
		if t.Archived {
			continue
		}
		if opts.HideCompleted && t.Status == model.StatusComplete {
			continue
		}
		byStatus[t.Status] = append(byStatus[t.Status], t)
	}
	cols := make([]Column, 0, 5)
	for _, s := range model.Statuses() {
		cols = append(cols, Column{Status: s, Tasks: byStatus[s]})
	}
	return cols
}

// Archived returns the archived tasks in store order.
func Archived(tasks []model.Task) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.Archived {
			out = append(out, t)
		}
	}
	return out
}
