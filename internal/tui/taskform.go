package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/vdimko/claude-api-controller/internal/models"
)

// TaskForm is the new-task overlay: pick an agent, write a prompt, and
// optionally cap the execution time. The agent's saved options ride along at
// submit time; the form itself never shows them.
type TaskForm struct {
	agents     []models.Agent
	agentIndex int

	promptArea   textarea.Model
	timeoutInput textinput.Model

	focusIndex int // 0=agent, 1=prompt, 2=timeout
	width      int
}

// NewTaskForm creates a new task form over the known agents.
func NewTaskForm(agents []models.Agent, width int) *TaskForm {
	pa := textarea.New()
	pa.Placeholder = "Prompt for the agent"
	pa.SetWidth(width - 8)
	pa.SetHeight(6)

	ti := textinput.New()
	ti.Placeholder = "seconds (optional)"
	ti.CharLimit = 6
	ti.Width = width - 8

	tf := &TaskForm{
		agents:       agents,
		promptArea:   pa,
		timeoutInput: ti,
		width:        width,
	}
	// Agent field first; prompt gets focus once an agent is chosen.
	return tf
}

// FocusNext moves to the next field.
func (tf *TaskForm) FocusNext() {
	tf.blurAll()
	tf.focusIndex = (tf.focusIndex + 1) % 3
	tf.focusCurrent()
}

func (tf *TaskForm) blurAll() {
	tf.promptArea.Blur()
	tf.timeoutInput.Blur()
}

func (tf *TaskForm) focusCurrent() {
	switch tf.focusIndex {
	case 1:
		tf.promptArea.Focus()
	case 2:
		tf.timeoutInput.Focus()
	}
}

// CycleAgent advances the agent selector.
func (tf *TaskForm) CycleAgent(delta int) {
	if len(tf.agents) == 0 {
		return
	}
	tf.agentIndex = (tf.agentIndex + delta + len(tf.agents)) % len(tf.agents)
}

// AgentName returns the selected agent name, or "".
func (tf *TaskForm) AgentName() string {
	if tf.agentIndex < 0 || tf.agentIndex >= len(tf.agents) {
		return ""
	}
	return tf.agents[tf.agentIndex].Name
}

// Prompt returns the current prompt value.
func (tf *TaskForm) Prompt() string {
	return tf.promptArea.Value()
}

// TimeoutSec returns the parsed timeout, 0 when unset, -1 when invalid.
func (tf *TaskForm) TimeoutSec() int {
	raw := strings.TrimSpace(tf.timeoutInput.Value())
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return -1
	}
	return n
}

// FocusIndex returns the currently focused field index.
func (tf *TaskForm) FocusIndex() int {
	return tf.focusIndex
}

// PromptArea returns the prompt textarea model for update forwarding.
func (tf *TaskForm) PromptArea() *textarea.Model {
	return &tf.promptArea
}

// TimeoutInput returns the timeout input model for update forwarding.
func (tf *TaskForm) TimeoutInput() *textinput.Model {
	return &tf.timeoutInput
}

// View renders the task form.
func (tf *TaskForm) View() string {
	formWidth := tf.width
	if formWidth > 70 {
		formWidth = 70
	}
	if formWidth < 30 {
		formWidth = 30
	}

	parts := make([]string, 0, 12)
	parts = append(parts, overlayTitleStyle.Render("New Task"))

	// Agent selector
	label := lipgloss.NewStyle().Bold(true).Render("Agent:")
	var agentDisplay string
	switch {
	case len(tf.agents) == 0:
		agentDisplay = statusFailedStyle.Render("no agents available")
	default:
		agent := tf.agents[tf.agentIndex]
		agentDisplay = lipgloss.NewStyle().Foreground(colorCyan).Bold(true).Render(agent.Name)
		if agent.HasClaudeMD {
			agentDisplay += lipgloss.NewStyle().Foreground(colorDim).Render("  (has CLAUDE.md)")
		}
		if tf.focusIndex == 0 {
			agentDisplay += lipgloss.NewStyle().Foreground(colorDim).Render("  ←/→ to change")
		}
	}
	parts = append(parts, label+" "+agentDisplay, "")

	// Prompt field
	label = lipgloss.NewStyle().Bold(true).Render("Prompt:")
	parts = append(parts, label, tf.promptArea.View(), "")

	// Timeout field
	label = lipgloss.NewStyle().Bold(true).Render("Timeout:")
	parts = append(parts, label, tf.timeoutInput.View(), "")

	footer := lipgloss.NewStyle().Foreground(colorDim).Render("Ctrl+s submit  |  Tab next field  |  Esc cancel")
	parts = append(parts, footer)

	content := strings.Join(parts, "\n")
	return overlayStyle.Width(formWidth).Render(content)
}
