package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdimko/claude-api-controller/internal/config"
	"github.com/vdimko/claude-api-controller/internal/models"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(&config.Config{
		BaseURL:           srv.URL,
		APIKey:            "test-key",
		RequestTimeoutSec: 5,
	})
	return client, srv
}

func TestCreateTaskOmitsAbsentOptions(t *testing.T) {
	var body map[string]json.RawMessage
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &body))
		_ = json.NewEncoder(w).Encode(map[string]string{"task_id": "t-1"})
	}))

	taskID, err := client.CreateTask(context.Background(), "reviewer", "fix the bug", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "t-1", taskID)

	_, hasOptions := body["options"]
	assert.False(t, hasOptions, "no options override must mean no options key, not {}")
	_, hasTimeout := body["timeout"]
	assert.False(t, hasTimeout, "unset timeout stays off the wire")
}

func TestCreateTaskSendsOptionsAndTimeout(t *testing.T) {
	var body map[string]json.RawMessage
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &body))
		_ = json.NewEncoder(w).Encode(map[string]string{"task_id": "t-2"})
	}))

	opts := &models.ClaudeOptions{Model: "opus"}
	_, err := client.CreateTask(context.Background(), "reviewer", "do it", 300, opts)
	require.NoError(t, err)

	assert.JSONEq(t, `{"model":"opus"}`, string(body["options"]))
	assert.JSONEq(t, `300`, string(body["timeout"]))
}

func TestCreateTaskValidatesBeforeNetwork(t *testing.T) {
	var calls atomic.Int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	tests := []struct {
		name   string
		agent  string
		prompt string
	}{
		{"empty agent", "", "prompt"},
		{"empty prompt", "reviewer", ""},
		{"whitespace prompt", "reviewer", "   \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.CreateTask(context.Background(), tt.agent, tt.prompt, 0, nil)
			assert.True(t, IsValidation(err), "want local validation error, got %v", err)
		})
	}
	assert.Zero(t, calls.Load(), "validation failures must not reach the wire")
}

func TestRequestHeaders(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_ = json.NewEncoder(w).Encode(models.AgentsResponse{})
	}))

	_, err := client.ListAgents(context.Background())
	require.NoError(t, err)
}

func TestErrorNormalization(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
		wantMsg    string
	}{
		{
			name:       "structured detail surfaced verbatim",
			status:     http.StatusNotFound,
			body:       `{"detail":"Task not found"}`,
			wantDetail: "Task not found",
			wantMsg:    "Task not found",
		},
		{
			name:    "unparseable body degrades to generic message",
			status:  http.StatusBadGateway,
			body:    `<html>upstream exploded</html>`,
			wantMsg: "request failed with status 502",
		},
		{
			name:    "empty detail degrades too",
			status:  http.StatusInternalServerError,
			body:    `{"detail":""}`,
			wantMsg: "request failed with status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			_, err := client.GetTask(context.Background(), "t-404")
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantDetail, apiErr.Detail)
			assert.Equal(t, tt.wantMsg, apiErr.Error())
			assert.Equal(t, tt.status, StatusCode(err))
		})
	}
}

func TestListTasksFilter(t *testing.T) {
	var gotQuery string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(models.TaskListResponse{Count: 0})
	}))

	_, err := client.ListTasks(context.Background(), "reviewer")
	require.NoError(t, err)
	assert.Equal(t, "agent_name=reviewer", gotQuery)

	_, err = client.ListTasks(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, gotQuery, "no filter means no query string")
}

func TestListLogsDefaultLimit(t *testing.T) {
	var got string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("limit")
		_ = json.NewEncoder(w).Encode(models.LogListResponse{})
	}))

	_, err := client.ListLogs(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Equal(t, "50", got)
}

func TestStopAndDeletePaths(t *testing.T) {
	var method, path string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))

	require.NoError(t, client.StopTask(context.Background(), "t-9"))
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/tasks/t-9/stop", path)

	require.NoError(t, client.DeleteTask(context.Background(), "t-9"))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/tasks/t-9", path)
}
