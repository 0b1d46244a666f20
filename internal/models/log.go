package models

import "time"

// LogLevel is the severity of a server-side log record.
type LogLevel string

const (
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warning"
	LogLevelError   LogLevel = "error"
)

// Log is one append-only server log record.
type Log struct {
	LogID     string    `json:"log_id"`
	TaskID    string    `json:"task_id,omitempty"`
	AgentName string    `json:"agent_name"`
	Level     LogLevel  `json:"level"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// LogListResponse is the wire shape of GET /logs.
type LogListResponse struct {
	Count int   `json:"count"`
	Logs  []Log `json:"logs"`
}
