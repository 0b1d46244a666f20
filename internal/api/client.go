// Package api is the single chokepoint for calls to the remote agent
// execution service. It attaches auth, serializes bodies, and normalizes
// error shapes; nothing else in the client touches the wire.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/vdimko/claude-api-controller/internal/config"
	"github.com/vdimko/claude-api-controller/internal/models"
)

// DefaultLogLimit bounds the log feed when the caller doesn't specify one.
const DefaultLogLimit = 50

// Client talks to the remote service. It is safe for concurrent use; the
// three polling loops share one instance.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient constructs a gateway from an explicit config value. The config
// is read once here; per-test overrides go through a different Config, not
// through process-wide state.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.RequestTimeout()},
	}
}

// SetHTTPClient swaps the underlying transport, for tests.
func (c *Client) SetHTTPClient(h *http.Client) { c.http = h }

type createTaskRequest struct {
	AgentName string                `json:"agent_name"`
	Prompt    string                `json:"prompt"`
	Timeout   int                   `json:"timeout,omitempty"`
	Options   *models.ClaudeOptions `json:"options,omitempty"`
}

type createTaskResponse struct {
	TaskID string `json:"task_id"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// CreateTask submits a prompt for execution and returns the server-assigned
// task id. Agent and prompt are validated locally before any network call;
// opts must already be sanitized (nil means no options override at all).
func (c *Client) CreateTask(ctx context.Context, agentName, prompt string, timeoutSec int, opts *models.ClaudeOptions) (string, error) {
	if strings.TrimSpace(agentName) == "" {
		return "", &ValidationError{Field: "agent_name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(prompt) == "" {
		return "", &ValidationError{Field: "prompt", Reason: "must not be empty"}
	}

	req := createTaskRequest{
		AgentName: agentName,
		Prompt:    prompt,
		Timeout:   timeoutSec,
		Options:   opts,
	}

	var resp createTaskResponse
	if err := c.do(ctx, http.MethodPost, "/run", nil, req, &resp); err != nil {
		return "", err
	}
	return resp.TaskID, nil
}

// GetTask fetches the full detail of one task.
func (c *Client) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodGet, "/status/"+url.PathEscape(taskID), nil, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasks fetches task summaries, optionally filtered by agent name.
func (c *Client) ListTasks(ctx context.Context, agentName string) ([]models.TaskListItem, error) {
	var q url.Values
	if agentName != "" {
		q = url.Values{"agent_name": {agentName}}
	}
	var resp models.TaskListResponse
	if err := c.do(ctx, http.MethodGet, "/tasks", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// DeleteTask removes a task record on the server.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	var resp messageResponse
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(taskID), nil, nil, &resp)
}

// StopTask asks the server to stop a running task. The caller's view is
// updated by the next poll, not by this call.
func (c *Client) StopTask(ctx context.Context, taskID string) error {
	var resp messageResponse
	return c.do(ctx, http.MethodPost, "/tasks/"+url.PathEscape(taskID)+"/stop", nil, nil, &resp)
}

// ListAgents fetches the available agent definitions.
func (c *Client) ListAgents(ctx context.Context) ([]models.Agent, error) {
	var resp models.AgentsResponse
	if err := c.do(ctx, http.MethodGet, "/agents", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Agents, nil
}

// ListLogs fetches the most recent log records, newest first, optionally
// filtered by agent. A non-positive limit falls back to DefaultLogLimit.
func (c *Client) ListLogs(ctx context.Context, agentName string, limit int) ([]models.Log, error) {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	if agentName != "" {
		q.Set("agent_name", agentName)
	}
	var resp models.LogListResponse
	if err := c.do(ctx, http.MethodGet, "/logs", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Logs, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return normalizeError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}
	return nil
}

// normalizeError folds every non-2xx response into *Error. A parseable
// {"detail": "..."} body is surfaced verbatim; anything else degrades to a
// generic message carrying the status code.
func normalizeError(status int, body []byte) error {
	var structured struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &structured); err == nil && structured.Detail != "" {
		return &Error{StatusCode: status, Detail: structured.Detail}
	}
	return &Error{StatusCode: status}
}
