package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/timeutil"

	"github.com/gin-gonic/gin"
)

// TaskRepositoryInterface is the task persistence surface the handler
// drives; declared here so tests can substitute a mock.
type TaskRepositoryInterface interface {
	List(ctx context.Context) ([]model.Task, error)
	GetByID(ctx context.Context, id int) (*model.Task, error)
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	SetStatus(ctx context.Context, id int, status model.Status) error
	SetArchived(ctx context.Context, id int, archived bool, archivedAt *time.Time) error
	SetTimeSpent(ctx context.Context, id int, seconds int64) error
	Delete(ctx context.Context, id int) error
}

// LabelRepositoryInterface is the label namespace surface.
type LabelRepositoryInterface interface {
	List(ctx context.Context) ([]model.Label, error)
	GetOrCreate(ctx context.Context, label model.Label) (model.Label, error)
}

var _ TaskRepositoryInterface = (*repository.TaskRepository)(nil)
var _ LabelRepositoryInterface = (*repository.LabelRepository)(nil)

type TaskHandler struct {
	taskRepo  TaskRepositoryInterface
	labelRepo LabelRepositoryInterface
}

func NewTaskHandler(taskRepo TaskRepositoryInterface, labelRepo LabelRepositoryInterface) *TaskHandler {
	return &TaskHandler{taskRepo: taskRepo, labelRepo: labelRepo}
}

// CreateTaskRequest is the payload for creating a task
type CreateTaskRequest struct {
	Description string        `json:"description" binding:"required"`
	Details     *string       `json:"details"`
	Steps       []string      `json:"steps"`
	DueDate     *string       `json:"due_date"`
	Labels      []model.Label `json:"labels"`
}

// UpdateTaskRequest is a partial update; absent fields stay untouched
type UpdateTaskRequest struct {
	Description *string        `json:"description"`
	Details     *string        `json:"details"`
	DueDate     *string        `json:"due_date"`
	Labels      *[]model.Label `json:"labels"`
	Steps       *[]model.Step  `json:"steps"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ArchiveTaskRequest struct {
	Archived *bool `json:"archived" binding:"required"`
}

type UpdateTimeRequest struct {
	TimeSpent *int64 `json:"time_spent" binding:"required"`
}

type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type ToggleStepRequest struct {
	StepIndex *int `json:"step_index" binding:"required"`
}

// List returns every task, archived included
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.taskRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// Create makes a new task with server-assigned id and created_at
func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Description must not be empty"})
		return
	}
	if req.DueDate != nil && !timeutil.ValidDate(*req.DueDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Due date must be YYYY-MM-DD"})
		return
	}

	// Resolve labels through the shared namespace; an existing name
	// keeps its original color.
	labels, ok := h.resolveLabels(c, req.Labels)
	if !ok {
		return
	}

	steps := make([]model.Step, 0, len(req.Steps))
	for _, text := range req.Steps {
		if strings.TrimSpace(text) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Step text must not be empty"})
			return
		}
		steps = append(steps, model.Step{Text: text})
	}

	task := &model.Task{
		Description: req.Description,
		Details:     req.Details,
		Steps:       steps,
		Comments:    []model.Comment{},
		Status:      model.StatusNotStarted,
		Labels:      labels,
		DueDate:     req.DueDate,
		CreatedAt:   time.Now().UTC(),
	}

	if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, task)
}

// Update applies a partial update and returns the updated task
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		if desc == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Description must not be empty"})
			return
		}
		task.Description = desc
	}
	if req.Details != nil {
		task.Details = req.Details
	}
	if req.DueDate != nil {
		if !timeutil.ValidDate(*req.DueDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Due date must be YYYY-MM-DD"})
			return
		}
		task.DueDate = req.DueDate
	}
	if req.Labels != nil {
		labels, ok := h.resolveLabels(c, *req.Labels)
		if !ok {
			return
		}
		task.Labels = labels
	}
	if req.Steps != nil {
		task.Steps = *req.Steps
	}

	if err := h.taskRepo.Update(c.Request.Context(), task); err != nil {
		respondRepoError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// SetStatus moves a task between columns; any status may move to any other
func (h *TaskHandler) SetStatus(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	status := model.Status(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	if err := h.taskRepo.SetStatus(c.Request.Context(), id, status); err != nil {
		respondRepoError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// SetArchived sets or clears the archive flag; archived_at is assigned here
func (h *TaskHandler) SetArchived(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req ArchiveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var archivedAt *time.Time
	if *req.Archived {
		now := time.Now().UTC()
		archivedAt = &now
	}

	if err := h.taskRepo.SetArchived(c.Request.Context(), id, *req.Archived, archivedAt); err != nil {
		respondRepoError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// SetTime overwrites the committed time_spent
func (h *TaskHandler) SetTime(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req UpdateTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if *req.TimeSpent < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "time_spent must not be negative"})
		return
	}

	if err := h.taskRepo.SetTimeSpent(c.Request.Context(), id, *req.TimeSpent); err != nil {
		respondRepoError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// AddComment appends a comment with a server-assigned timestamp
func (h *TaskHandler) AddComment(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment text must not be empty"})
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	task.Comments = append(task.Comments, model.Comment{
		Text:      req.Text,
		CreatedAt: time.Now().UTC(),
	})

	if err := h.taskRepo.Update(c.Request.Context(), task); err != nil {
		respondRepoError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// ToggleStep flips the completed flag of the step at step_index
func (h *TaskHandler) ToggleStep(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req ToggleStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepoError(c, err)
		return
	}

	idx := *req.StepIndex
	if idx < 0 || idx >= len(task.Steps) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Step index out of range"})
		return
	}
	task.Steps[idx].Completed = !task.Steps[idx].Completed

	if err := h.taskRepo.Update(c.Request.Context(), task); err != nil {
		respondRepoError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// Delete removes a task permanently
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	if err := h.taskRepo.Delete(c.Request.Context(), id); err != nil {
		respondRepoError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) resolveLabels(c *gin.Context, labels []model.Label) ([]model.Label, bool) {
	resolved := make([]model.Label, 0, len(labels))
	for _, l := range labels {
		if strings.TrimSpace(l.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Label name must not be empty"})
			return nil, false
		}
		if !model.ValidLabelColor(l.Color) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown label color"})
			return nil, false
		}
		saved, err := h.labelRepo.GetOrCreate(c.Request.Context(), l)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save label"})
			return nil, false
		}
		resolved = append(resolved, saved)
	}
	return resolved, true
}

func taskID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return 0, false
	}
	return id, true
}

func respondRepoError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrTaskNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage error"})
}
