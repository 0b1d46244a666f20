package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vdimko/claude-api-controller/internal/models"
)

func TestStoppableOnlyForRunningTasks(t *testing.T) {
	tests := []struct {
		status models.TaskStatus
		want   bool
	}{
		{models.TaskStatusPending, false},
		{models.TaskStatusRunning, true},
		{models.TaskStatusCompleted, false},
		{models.TaskStatusFailed, false},
		{models.TaskStatusTimeout, false},
		{models.TaskStatusCancelled, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stoppable(tt.status), "status %s", tt.status)
	}
}

func TestSetItemsKeepsCursorOnSameTask(t *testing.T) {
	tl := NewTaskList()
	tl.SetItems([]models.TaskListItem{
		{TaskID: "t-1", Status: models.TaskStatusRunning},
		{TaskID: "t-2", Status: models.TaskStatusPending},
	}, false)
	tl.MoveDown()

	// A refresh that reorders the list keeps the selection on t-2.
	tl.SetItems([]models.TaskListItem{
		{TaskID: "t-2", Status: models.TaskStatusRunning},
		{TaskID: "t-1", Status: models.TaskStatusCompleted},
	}, false)

	sel := tl.Selected()
	if assert.NotNil(t, sel) {
		assert.Equal(t, "t-2", sel.TaskID)
	}
}
