// Package lifecycle implements the task state machine: status moves,
// step and comment mutation, labels, archive, delete, and timer
// start/stop commits. Every mutating operation calls the gateway first
// and touches local state only after the remote call succeeded, so a
// sync failure leaves the store exactly as it was.
package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"taskboard/internal/model"
	"taskboard/internal/store"
	"taskboard/internal/timer"
	"taskboard/internal/timeutil"
)

// Gateway is the persistence boundary the controller drives. It is the
// wire contract of the remote task API; implementations must apply each
// call fully or fail without partial effect.
type Gateway interface {
	FetchAll(ctx context.Context) ([]model.Task, error)
	FetchLabels(ctx context.Context) ([]model.Label, error)
	Create(ctx context.Context, draft model.TaskDraft) (model.Task, error)
	Update(ctx context.Context, id int, patch model.TaskPatch) (model.Task, error)
	UpdateStatus(ctx context.Context, id int, status model.Status) error
	UpdateArchived(ctx context.Context, id int, archived bool) error
	UpdateTimeSpent(ctx context.Context, id int, seconds int64) error
	AddComment(ctx context.Context, id int, text string) error
	ToggleStep(ctx context.Context, id, stepIndex int) error
	Delete(ctx context.Context, id int) error
}

// Transition is one status change. Presentation watches for To ==
// StatusComplete to fire celebratory feedback; leaving complete carries
// no special meaning.
type Transition struct {
	TaskID int
	From   model.Status
	To     model.Status
}

// Controller coordinates the store, the timer registry and the gateway.
type Controller struct {
	store    *store.Store
	registry *timer.Registry
	rec      *timer.Reconciler
	gateway  Gateway

	mu          sync.Mutex
	transitions []func(Transition)
}

func NewController(st *store.Store, reg *timer.Registry, gw Gateway) *Controller {
	return &Controller{
		store:    st,
		registry: reg,
		rec:      timer.NewReconciler(reg),
		gateway:  gw,
	}
}

// Store exposes the session store for read-side consumers.
func (c *Controller) Store() *store.Store { return c.store }

// Registry exposes the timer registry.
func (c *Controller) Registry() *timer.Registry { return c.registry }

// Reconciler exposes the elapsed-time join.
func (c *Controller) Reconciler() *timer.Reconciler { return c.rec }

// OnTransition registers an observer for status transitions.
func (c *Controller) OnTransition(fn func(Transition)) {
	c.mu.Lock()
	c.transitions = append(c.transitions, fn)
	c.mu.Unlock()
}

func (c *Controller) emitTransition(tr Transition) {
	c.mu.Lock()
	fns := append(([]func(Transition))(nil), c.transitions...)
	c.mu.Unlock()
	for _, fn := range fns {
		fn(tr)
	}
}

// Refresh replaces the session store from the server. Mutations that
// depend on server-assigned fields (comment timestamps, archive
// timestamps) call this after their write so local state never carries
// fabricated values.
func (c *Controller) Refresh(ctx context.Context) error {
	tasks, err := c.gateway.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("refreshing tasks: %w", err)
	}
	labels, err := c.gateway.FetchLabels(ctx)
	if err != nil {
		return fmt.Errorf("refreshing labels: %w", err)
	}
	c.store.ReplaceAll(tasks)
	c.store.RememberLabels(labels)
	return nil
}

// Create validates a draft locally, creates the task remotely and
// inserts the server's version (with its assigned id) into the store.
func (c *Controller) Create(ctx context.Context, draft model.TaskDraft) (model.Task, error) {
	draft.Description = strings.TrimSpace(draft.Description)
	if draft.Description == "" {
		return model.Task{}, fmt.Errorf("%w: description must not be empty", ErrInvalidArgument)
	}
	for _, s := range draft.Steps {
		if strings.TrimSpace(s) == "" {
			return model.Task{}, fmt.Errorf("%w: step text must not be empty", ErrInvalidArgument)
		}
	}
	if draft.DueDate != nil && !timeutil.ValidDate(*draft.DueDate) {
		return model.Task{}, fmt.Errorf("%w: due date must be YYYY-MM-DD", ErrInvalidArgument)
	}
	if err := validateLabels(draft.Labels); err != nil {
		return model.Task{}, err
	}

	task, err := c.gateway.Create(ctx, draft)
	if err != nil {
		return model.Task{}, err
	}
	c.store.Upsert(task)
	return task, nil
}

// SetStatus moves a task to a new column. Setting the current status is
// a no-op and emits no transition event. Any status may move to any
// other status.
func (c *Controller) SetStatus(ctx context.Context, taskID int, status model.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, status)
	}
	task, ok := c.store.Get(taskID)
	if !ok {
		return ErrNotFound
	}
	if task.Status == status {
		return nil
	}
	if err := c.gateway.UpdateStatus(ctx, taskID, status); err != nil {
		return err
	}
	old := task.Status
	task.Status = status
	c.store.Upsert(task)
	c.emitTransition(Transition{TaskID: taskID, From: old, To: status})
	return nil
}

// Archive soft-deletes a task from board views. A running timer is
// deliberately left running; archive state and timer lifecycle are
// independent. The local archived_at is provisional until the next
// refresh replaces it with the server's.
func (c *Controller) Archive(ctx context.Context, taskID int) error {
	return c.setArchived(ctx, taskID, true)
}

// Unarchive returns a task to its status column unchanged.
func (c *Controller) Unarchive(ctx context.Context, taskID int) error {
	return c.setArchived(ctx, taskID, false)
}

func (c *Controller) setArchived(ctx context.Context, taskID int, archived bool) error {
	task, ok := c.store.Get(taskID)
	if !ok {
		return ErrNotFound
	}
	if task.Archived == archived {
		return nil
	}
	if err := c.gateway.UpdateArchived(ctx, taskID, archived); err != nil {
		return err
	}
	task.Archived = archived
	if archived {
		now := c.registry.Clock()
		task.ArchivedAt = &now
	} else {
		task.ArchivedAt = nil
	}
	c.store.Upsert(task)
	return nil
}

// Delete irreversibly removes a task. A running timer for the task is
// discarded, never committed, so no registry entry outlives its task.
// The registry is only touched once the remote delete succeeded.
func (c *Controller) Delete(ctx context.Context, taskID int) error {
	if _, ok := c.store.Get(taskID); !ok {
		return ErrNotFound
	}
	if err := c.gateway.Delete(ctx, taskID); err != nil {
		return err
	}
	if err := c.registry.Discard(taskID); err != nil {
		return fmt.Errorf("discarding timer for deleted task %d: %w", taskID, err)
	}
	c.store.Remove(taskID)
	return nil
}

// AddStep appends a step to the task's sequence.
func (c *Controller) AddStep(ctx context.Context, taskID int, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: step text must not be empty", ErrInvalidArgument)
	}
	task, ok := c.store.Get(taskID)
	if !ok {
		return ErrNotFound
	}
	steps := append(task.Steps, model.Step{Text: text})
	return c.putSteps(ctx, taskID, steps)
}

// ToggleStep flips the completed flag of the step at index. Steps are
// addressed by position in the freshest local copy; two clients editing
// the same task concurrently can shift indexes under each other, which
// is a known limitation of index addressing.
func (c *Controller) ToggleStep(ctx context.Context, taskID, index int) error {
	task, ok := c.store.Get(taskID)
	if !ok {
		return ErrNotFound
	}
	if index < 0 || index >= len(task.Steps) {
		return fmt.Errorf("%w: step index %d out of range", ErrInvalidArgument, index)
	}
	if err := c.gateway.ToggleStep(ctx, taskID, index); err != nil {
		return err
	}
	task.Steps[index].Completed = !task.Steps[index].Completed
	c.store.Upsert(task)
	return nil
}

// UpdateStepText replaces the text of the step at index.
func (c *Controller) UpdateStepText(ctx context.Context, taskID, index int, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: step text must not be empty", ErrInvalidArgument)
	}
	task, ok := c.store.Get(taskID)
	if !ok {
		return ErrNotFound
	}
	if index < 0 || index >= len(task.Steps) {
		return fmt.Errorf("%w: step index %d out of range", ErrInvalidArgument, index)
	}
	steps := append([]model.Step(nil), task.Steps...)
	steps[index].Text = text
	return c.putSteps(ctx, taskID, steps)
}

// DeleteStep removes the step at index; later steps shift down.
func (c *Controller) DeleteStep(ctx context.Context, taskID, index int) error {
	task, ok := c.store.Get(taskID)
	if !ok {
		return ErrNotFound
	}
	if index < 0 || index >= len(task.Steps) {
		return fmt.Errorf("%w: step index %d out of range", ErrInvalidArgument, index)
	}
	steps := append([]model.Step(nil), task.Steps...)
	steps = append(steps[:index], steps[index+1:]...)
	return c.putSteps(ctx, taskID, steps)
}

// putSteps writes the full step sequence and upserts the server's view.
func (c *Controller) putSteps(ctx context.Context, taskID int, steps []model.Step) error {
	updated, err := c.gateway.Update(ctx, taskID, model.TaskPatch{Steps: &steps})
	if err != nil {
		return err
	}
	c.store.Upsert(updated)
	return nil
}

// AddComment appends a comment. The created_at is server-assigned, so
// the write is followed by an awaited refresh rather than fabricating a
// timestamp locally.
func (c *Controller) AddComment(ctx context.Context, taskID int, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: comment text must not be empty", ErrInvalidArgument)
	}
	if _, ok := c.store.Get(taskID); !ok {
		return ErrNotFound
	}
	if err := c.gateway.AddComment(ctx, taskID, text); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// SetLabels replaces a task's label set wholesale. Names not yet in the
// shared namespace are created by the server; an existing name keeps
// its original color.
func (c *Controller) SetLabels(ctx context.Context, taskID int, labels []model.Label) error {
	if err := validateLabels(labels); err != nil {
		return err
	}
	if _, ok := c.store.Get(taskID); !ok {
		return ErrNotFound
	}
	updated, err := c.gateway.Update(ctx, taskID, model.TaskPatch{Labels: &labels})
	if err != nil {
		return err
	}
	c.store.Upsert(updated)
	return nil
}

// SetDescription replaces the task's description.
func (c *Controller) SetDescription(ctx context.Context, taskID int, description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return fmt.Errorf("%w: description must not be empty", ErrInvalidArgument)
	}
	return c.patch(ctx, taskID, model.TaskPatch{Description: &description})
}

// SetDetails replaces the task's free-form details text.
func (c *Controller) SetDetails(ctx context.Context, taskID int, details string) error {
	return c.patch(ctx, taskID, model.TaskPatch{Details: &details})
}

// SetDueDate sets the task's due date (YYYY-MM-DD).
func (c *Controller) SetDueDate(ctx context.Context, taskID int, due string) error {
	if !timeutil.ValidDate(due) {
		return fmt.Errorf("%w: due date must be YYYY-MM-DD", ErrInvalidArgument)
	}
	return c.patch(ctx, taskID, model.TaskPatch{DueDate: &due})
}

func (c *Controller) patch(ctx context.Context, taskID int, patch model.TaskPatch) error {
	if _, ok := c.store.Get(taskID); !ok {
		return ErrNotFound
	}
	updated, err := c.gateway.Update(ctx, taskID, patch)
	if err != nil {
		return err
	}
	c.store.Upsert(updated)
	return nil
}

// StartTimer begins timing the task. Starting an already-timed task
// returns timer.ErrAlreadyRunning.
func (c *Controller) StartTimer(taskID int) error {
	if _, ok := c.store.Get(taskID); !ok {
		return ErrNotFound
	}
	return c.registry.Start(taskID)
}

// StopTimer stops the task's timer and commits committed+delta to the
// server. If the commit fails the registry entry is reinstated with its
// original start instant, leaving local state exactly as before the
// call. Returns the committed delta in seconds.
func (c *Controller) StopTimer(ctx context.Context, taskID int) (int64, error) {
	task, ok := c.store.Get(taskID)
	if !ok {
		return 0, ErrNotFound
	}
	entry, running := c.registry.Snapshot(taskID)
	if !running {
		return 0, timer.ErrNotRunning
	}
	delta, err := c.registry.Stop(taskID)
	if err != nil {
		return 0, err
	}
	total := task.TimeSpent + delta
	if err := c.gateway.UpdateTimeSpent(ctx, taskID, total); err != nil {
		if rerr := c.registry.Resume(taskID, entry); rerr != nil {
			return 0, fmt.Errorf("commit failed (%v) and timer could not be reinstated: %w", err, rerr)
		}
		return 0, err
	}
	task.TimeSpent = total
	c.store.Upsert(task)
	return delta, nil
}

// Elapsed returns the task's committed seconds plus any running timer's
// live delta. Unknown ids report zero.
func (c *Controller) Elapsed(taskID int) int64 {
	task, ok := c.store.Get(taskID)
	if !ok {
		return 0
	}
	return c.rec.Elapsed(taskID, task.TimeSpent)
}

func validateLabels(labels []model.Label) error {
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		if strings.TrimSpace(l.Name) == "" {
			return fmt.Errorf("%w: label name must not be empty", ErrInvalidArgument)
		}
		if !model.ValidLabelColor(l.Color) {
			return fmt.Errorf("%w: unknown label color %q", ErrInvalidArgument, l.Color)
		}
		if seen[l.Name] {
			return fmt.Errorf("%w: duplicate label %q", ErrInvalidArgument, l.Name)
		}
		seen[l.Name] = true
	}
	return nil
}
