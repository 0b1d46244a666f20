package models

import "time"

// TaskStatus represents the lifecycle status of a remote task.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
	TaskStatusTimeout   TaskStatus = "timeout"
	TaskStatusCancelled TaskStatus = "cancelled"
)

// IsTerminal reports whether the status is one the server never moves away from.
func (s TaskStatus) IsTerminal() bool {
	switch s {
	case TaskStatusCompleted, TaskStatusFailed, TaskStatusTimeout, TaskStatusCancelled:
		return true
	}
	return false
}

// Task is the full record of one remote agent job execution.
// All fields are owned by the server; the client only caches them.
type Task struct {
	TaskID        string     `json:"task_id"`
	AgentName     string     `json:"agent_name"`
	Status        TaskStatus `json:"status"`
	Prompt        string     `json:"prompt,omitempty"`
	Result        string     `json:"result,omitempty"`
	Error         string     `json:"error,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DurationSec   *float64   `json:"duration_sec,omitempty"`
	PromptPreview string     `json:"prompt_preview,omitempty"`
}

// ListItem returns the reduced list projection of the task.
func (t *Task) ListItem() TaskListItem {
	return TaskListItem{
		TaskID:        t.TaskID,
		AgentName:     t.AgentName,
		Status:        t.Status,
		CreatedAt:     t.CreatedAt,
		DurationSec:   t.DurationSec,
		PromptPreview: t.PromptPreview,
	}
}

// TaskListItem is the reduced projection used by the collection view.
// Full prompt/result/error require a separate detail fetch.
type TaskListItem struct {
	TaskID        string     `json:"task_id"`
	AgentName     string     `json:"agent_name"`
	Status        TaskStatus `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	DurationSec   *float64   `json:"duration_sec,omitempty"`
	PromptPreview string     `json:"prompt_preview,omitempty"`
}

// TaskListResponse is the wire shape of GET /tasks.
type TaskListResponse struct {
	Count int            `json:"count"`
	Tasks []TaskListItem `json:"tasks"`
}
