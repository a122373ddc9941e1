package sync_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskboard/internal/model"
	syncapi "taskboard/internal/sync"
)

type recordedRequest struct {
	method string
	path   string
	body   map[string]any
}

// newTestServer records each request and answers with the given status
// and body.
func newTestServer(t *testing.T, status int, responseBody any) (*syncapi.Client, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&rec.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if responseBody != nil {
			_ = json.NewEncoder(w).Encode(responseBody)
		}
	}))
	t.Cleanup(srv.Close)
	return syncapi.NewClient(srv.URL), rec
}

func TestClient_FetchAll(t *testing.T) {
	client, rec := newTestServer(t, http.StatusOK, []model.Task{
		{ID: 1, Description: "a", Status: model.StatusNotStarted},
		{ID: 2, Description: "b", Status: model.StatusComplete},
	})

	tasks, err := client.FetchAll(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/tasks", rec.path)
	assert.Len(t, tasks, 2)
	assert.Equal(t, model.StatusComplete, tasks[1].Status)
}

func TestClient_FetchLabels(t *testing.T) {
	client, rec := newTestServer(t, http.StatusOK, []model.Label{{Name: "work", Color: "blue"}})

	labels, err := client.FetchLabels(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "/api/labels", rec.path)
	assert.Equal(t, "work", labels[0].Name)
}

func TestClient_Create(t *testing.T) {
	client, rec := newTestServer(t, http.StatusCreated, model.Task{ID: 7, Description: "new", Status: model.StatusNotStarted})

	task, err := client.Create(context.Background(), model.TaskDraft{Description: "new", Steps: []string{"one"}})

	assert.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/tasks", rec.path)
	assert.Equal(t, "new", rec.body["description"])
	assert.Equal(t, 7, task.ID)
}

func TestClient_Update(t *testing.T) {
	desc := "renamed"
	client, rec := newTestServer(t, http.StatusOK, model.Task{ID: 3, Description: desc, Status: model.StatusNotStarted})

	task, err := client.Update(context.Background(), 3, model.TaskPatch{Description: &desc})

	assert.NoError(t, err)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/api/tasks/3", rec.path)
	assert.Equal(t, "renamed", rec.body["description"])
	// Absent patch fields must not appear in the body at all.
	_, hasSteps := rec.body["steps"]
	assert.False(t, hasSteps)
	assert.Equal(t, "renamed", task.Description)
}

func TestClient_UpdateStatus(t *testing.T) {
	client, rec := newTestServer(t, http.StatusOK, nil)

	err := client.UpdateStatus(context.Background(), 3, model.StatusBlocked)

	assert.NoError(t, err)
	assert.Equal(t, "/api/tasks/3/status", rec.path)
	assert.Equal(t, "blocked", rec.body["status"])
}

func TestClient_UpdateArchived(t *testing.T) {
	client, rec := newTestServer(t, http.StatusOK, nil)

	err := client.UpdateArchived(context.Background(), 4, true)

	assert.NoError(t, err)
	assert.Equal(t, "/api/tasks/4/archive", rec.path)
	assert.Equal(t, true, rec.body["archived"])
}

func TestClient_UpdateTimeSpent(t *testing.T) {
	client, rec := newTestServer(t, http.StatusOK, nil)

	err := client.UpdateTimeSpent(context.Background(), 4, 3600)

	assert.NoError(t, err)
	assert.Equal(t, "/api/tasks/4/time", rec.path)
	assert.Equal(t, float64(3600), rec.body["time_spent"])
}

func TestClient_AddComment(t *testing.T) {
	client, rec := newTestServer(t, http.StatusOK, nil)

	err := client.AddComment(context.Background(), 5, "hello")

	assert.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/tasks/5/comments", rec.path)
	assert.Equal(t, "hello", rec.body["text"])
}

func TestClient_ToggleStep(t *testing.T) {
	client, rec := newTestServer(t, http.StatusOK, nil)

	err := client.ToggleStep(context.Background(), 5, 2)

	assert.NoError(t, err)
	assert.Equal(t, "/api/tasks/5/toggle-step", rec.path)
	assert.Equal(t, float64(2), rec.body["step_index"])
}

func TestClient_Delete(t *testing.T) {
	client, rec := newTestServer(t, http.StatusNoContent, nil)

	err := client.Delete(context.Background(), 9)

	assert.NoError(t, err)
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/api/tasks/9", rec.path)
}

func TestClient_ErrorMapsToAPIError(t *testing.T) {
	client, _ := newTestServer(t, http.StatusNotFound, map[string]string{"error": "Task not found"})

	err := client.UpdateStatus(context.Background(), 42, model.StatusComplete)

	var apiErr *syncapi.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Task not found", apiErr.Message)
}

func TestClient_ServerUnreachable(t *testing.T) {
	client := syncapi.NewClient("http://127.0.0.1:1")

	_, err := client.FetchAll(context.Background())

	assert.Error(t, err)
	var apiErr *syncapi.APIError
	assert.False(t, errors.As(err, &apiErr))
}
