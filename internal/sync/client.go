// Package sync is the boundary between the task engine and the remote
// CRUD API. Every call either succeeds fully or reports an error with
// no local side effect; retry policy belongs to the caller.
package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"taskboard/internal/model"
)

// APIError is a non-2xx response from the task API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("task API error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the task API over JSON/HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// do issues one request and decodes the response body into out when out
// is non-nil. Non-2xx responses become *APIError carrying the server's
// error message when one is present.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("task API request failed: %w", err)
	}
	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(respBody))
		var errBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errBody) == nil && errBody.Error != "" {
			msg = errBody.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// FetchAll retrieves every task, archived included.
func (c *Client) FetchAll(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// FetchLabels retrieves the shared label namespace.
func (c *Client) FetchLabels(ctx context.Context) ([]model.Label, error) {
	var labels []model.Label
	if err := c.do(ctx, http.MethodGet, "/api/labels", nil, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

// Create makes a new task; the server assigns its id and created_at.
func (c *Client) Create(ctx context.Context, draft model.TaskDraft) (model.Task, error) {
	var task model.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", draft, &task); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// Update applies a partial update and returns the updated task.
func (c *Client) Update(ctx context.Context, id int, patch model.TaskPatch) (model.Task, error) {
	var task model.Task
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/tasks/%d", id), patch, &task); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

func (c *Client) UpdateStatus(ctx context.Context, id int, status model.Status) error {
	body := struct {
		Status model.Status `json:"status"`
	}{status}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/tasks/%d/status", id), body, nil)
}

func (c *Client) UpdateArchived(ctx context.Context, id int, archived bool) error {
	body := struct {
		Archived bool `json:"archived"`
	}{archived}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/tasks/%d/archive", id), body, nil)
}

func (c *Client) UpdateTimeSpent(ctx context.Context, id int, seconds int64) error {
	body := struct {
		TimeSpent int64 `json:"time_spent"`
	}{seconds}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/tasks/%d/time", id), body, nil)
}

func (c *Client) AddComment(ctx context.Context, id int, text string) error {
	body := struct {
		Text string `json:"text"`
	}{text}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/tasks/%d/comments", id), body, nil)
}

func (c *Client) ToggleStep(ctx context.Context, id, stepIndex int) error {
	body := struct {
		StepIndex int `json:"step_index"`
	}{stepIndex}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/tasks/%d/toggle-step", id), body, nil)
}

func (c *Client) Delete(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", id), nil, nil)
}
