package tui

import "github.com/vdimko/claude-api-controller/internal/models"

// ListUpdatedMsg signals the task list synchronizer applied a new snapshot.
type ListUpdatedMsg struct{}

// DetailUpdatedMsg signals the detail synchronizer applied a new snapshot.
type DetailUpdatedMsg struct{}

// LogsUpdatedMsg signals the log synchronizer applied a new snapshot.
type LogsUpdatedMsg struct{}

// AgentsLoadedMsg carries the available agent definitions.
type AgentsLoadedMsg struct {
	Agents []models.Agent
}

// OptionsChangedMsg signals an options file changed on disk outside the TUI.
type OptionsChangedMsg struct{}

// TaskCreatedMsg signals a task was submitted successfully.
type TaskCreatedMsg struct {
	TaskID string
}

// TaskStoppedMsg signals a stop request was accepted.
type TaskStoppedMsg struct {
	TaskID string
}

// TaskDeletedMsg signals a task record was deleted.
type TaskDeletedMsg struct {
	TaskID string
}

// ErrorMsg carries an error to display.
type ErrorMsg struct {
	Err error
}

// ClearErrorMsg clears the error display.
type ClearErrorMsg struct{}

// ClearSavedMsg clears the "Saved" indicator.
type ClearSavedMsg struct{}

// spinnerTickMsg advances the animated spinner for active tasks.
type spinnerTickMsg struct{}
