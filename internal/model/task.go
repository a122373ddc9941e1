package model

import (
	"time"
)

// Status is one of the five kanban columns a task can sit in. Any status
// can move to any other status; the board is a labeling system, not a
// workflow gate.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusInReview   Status = "in_review"
	StatusBlocked    Status = "blocked"
	StatusComplete   Status = "complete"
)

// Statuses lists every status in board column order.
func Statuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusInReview, StatusBlocked, StatusComplete}
}

// Valid reports whether s is one of the five defined statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusInReview, StatusBlocked, StatusComplete:
		return true
	}
	return false
}

type Step struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Comment is append-only; there is no edit or delete operation.
// CreatedAt is always server-assigned.
type Comment struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type Task struct {
	ID          int        `json:"id"`
	Description string     `json:"description"`
	Details     *string    `json:"details"`
	Steps       []Step     `json:"steps"`
	Comments    []Comment  `json:"comments"`
	Status      Status     `json:"status"`
	Labels      []Label    `json:"labels"`
	DueDate     *string    `json:"due_date"` // YYYY-MM-DD
	CreatedAt   time.Time  `json:"created_at"`
	Archived    bool       `json:"archived"`
	ArchivedAt  *time.Time `json:"archived_at"`
	TimeSpent   int64      `json:"time_spent"` // committed seconds, excludes any running timer
}

// StepProgress returns completed and total step counts.
func (t *Task) StepProgress() (done, total int) {
	for _, s := range t.Steps {
		if s.Completed {
			done++
		}
	}
	return done, len(t.Steps)
}

// Clone returns a deep copy so callers can hand tasks out of the store
// without aliasing its slices.
func (t Task) Clone() Task {
	c := t
	if t.Details != nil {
		d := *t.Details
		c.Details = &d
	}
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.ArchivedAt != nil {
		at := *t.ArchivedAt
		c.ArchivedAt = &at
	}
	c.Steps = append([]Step(nil), t.Steps...)
	c.Comments = append([]Comment(nil), t.Comments...)
	c.Labels = append([]Label(nil), t.Labels...)
	return c
}

// TaskDraft is the payload for creating a task. Steps arrive as bare
// strings and become uncompleted Step records server-side.
type TaskDraft struct {
	Description string   `json:"description"`
	Details     *string  `json:"details,omitempty"`
	Steps       []string `json:"steps,omitempty"`
	DueDate     *string  `json:"due_date,omitempty"`
	Labels      []Label  `json:"labels,omitempty"`
}

// TaskPatch carries a partial update; nil fields are left untouched.
type TaskPatch struct {
	Description *string  `json:"description,omitempty"`
	Details     *string  `json:"details,omitempty"`
	DueDate     *string  `json:"due_date,omitempty"`
	Labels      *[]Label `json:"labels,omitempty"`
	Steps       *[]Step  `json:"steps,omitempty"`
}
