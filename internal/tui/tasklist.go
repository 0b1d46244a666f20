package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/vdimko/claude-api-controller/internal/models"
)

// Spinner frames for running task animation.
var spinnerFrames = []string{"●", "○"}

// TaskList is the task collection component for the left panel.
type TaskList struct {
	items        []models.TaskListItem
	cursor       int
	scrollOffset int
	height       int
	spinnerFrame int
	loading      bool
}

// NewTaskList creates a new task list.
func NewTaskList() *TaskList {
	return &TaskList{loading: true}
}

// SetItems replaces the list data, keeping the cursor on the same task when
// it survives the refresh.
func (tl *TaskList) SetItems(items []models.TaskListItem, loading bool) {
	selected := ""
	if t := tl.Selected(); t != nil {
		selected = t.TaskID
	}

	tl.items = items
	tl.loading = loading

	if selected != "" {
		for i, it := range items {
			if it.TaskID == selected {
				tl.cursor = i
				tl.ensureVisible()
				return
			}
		}
	}
	if tl.cursor >= len(items) {
		tl.cursor = len(items) - 1
	}
	if tl.cursor < 0 {
		tl.cursor = 0
	}
	tl.ensureVisible()
}

// SetHeight sets the visible height.
func (tl *TaskList) SetHeight(h int) {
	tl.height = h
}

// Selected returns the task under the cursor, or nil.
func (tl *TaskList) Selected() *models.TaskListItem {
	if tl.cursor < 0 || tl.cursor >= len(tl.items) {
		return nil
	}
	return &tl.items[tl.cursor]
}

// MoveUp moves the cursor up.
func (tl *TaskList) MoveUp() {
	if tl.cursor > 0 {
		tl.cursor--
		tl.ensureVisible()
	}
}

// MoveDown moves the cursor down.
func (tl *TaskList) MoveDown() {
	if tl.cursor < len(tl.items)-1 {
		tl.cursor++
		tl.ensureVisible()
	}
}

func (tl *TaskList) ensureVisible() {
	if tl.cursor < tl.scrollOffset {
		tl.scrollOffset = tl.cursor
	}
	if tl.height > 0 && tl.cursor >= tl.scrollOffset+tl.height {
		tl.scrollOffset = tl.cursor - tl.height + 1
	}
}

// Tick advances the spinner frame.
func (tl *TaskList) Tick() {
	tl.spinnerFrame = (tl.spinnerFrame + 1) % len(spinnerFrames)
}

// HasActive reports whether any visible task is pending or running.
func (tl *TaskList) HasActive() bool {
	for _, it := range tl.items {
		if !it.Status.IsTerminal() {
			return true
		}
	}
	return false
}

// View renders the task list.
func (tl *TaskList) View(width int) string {
	if tl.loading && len(tl.items) == 0 {
		return lipgloss.NewStyle().Foreground(colorDim).Render("Loading tasks...")
	}
	if len(tl.items) == 0 {
		return lipgloss.NewStyle().Foreground(colorDim).Render("No tasks. Press 'n' to submit one.")
	}

	var lines []string
	end := tl.scrollOffset + tl.height
	if end > len(tl.items) {
		end = len(tl.items)
	}

	for i := tl.scrollOffset; i < end; i++ {
		it := tl.items[i]

		badge := tl.statusBadge(it.Status)
		preview := it.PromptPreview
		if preview == "" {
			preview = it.TaskID
		}
		line := fmt.Sprintf("%s %s  %s %s",
			badge,
			statusStyle(it.Status).Render(string(it.Status)),
			lipgloss.NewStyle().Foreground(colorDim).Render(it.AgentName),
			preview,
		)
		line += tl.durationSuffix(it)

		maxWidth := width - 2
		if maxWidth > 0 {
			line = ansi.Truncate(line, maxWidth, "…")
		}

		if i == tl.cursor {
			line = selectedItemStyle.Width(width).Render(line)
		}
		lines = append(lines, "  "+line)
	}

	// Scroll indicators
	if tl.scrollOffset > 0 {
		lines = append([]string{lipgloss.NewStyle().Foreground(colorDim).Render("  ▲ more")}, lines...)
	}
	if end < len(tl.items) {
		lines = append(lines, lipgloss.NewStyle().Foreground(colorDim).Render("  ▼ more"))
	}

	return strings.Join(lines, "\n")
}

func (tl *TaskList) statusBadge(s models.TaskStatus) string {
	switch s {
	case models.TaskStatusPending:
		return statusPendingStyle.Render("[·]")
	case models.TaskStatusRunning:
		frame := spinnerFrames[tl.spinnerFrame%len(spinnerFrames)]
		return statusRunningStyle.Render("[" + frame + "]")
	case models.TaskStatusCompleted:
		return statusCompletedStyle.Render("[✓]")
	case models.TaskStatusFailed:
		return statusFailedStyle.Render("[✗]")
	case models.TaskStatusTimeout:
		return statusTimeoutStyle.Render("[⏱]")
	case models.TaskStatusCancelled:
		return statusCancelledStyle.Render("[−]")
	}
	return "[ ]"
}

// stoppable reports whether the stop action applies. Only a running task
// can be interrupted; a pending one has no execution yet and the server
// rejects the request.
func stoppable(status models.TaskStatus) bool {
	return status == models.TaskStatusRunning
}

func (tl *TaskList) durationSuffix(it models.TaskListItem) string {
	if it.DurationSec == nil {
		return ""
	}
	d := time.Duration(*it.DurationSec * float64(time.Second)).Round(100 * time.Millisecond)
	return lipgloss.NewStyle().Foreground(colorDim).Render(fmt.Sprintf("  %s", d))
}
