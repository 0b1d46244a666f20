package tui

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vdimko/claude-api-controller/internal/api"
	"github.com/vdimko/claude-api-controller/internal/models"
	"github.com/vdimko/claude-api-controller/internal/options"
	"github.com/vdimko/claude-api-controller/internal/poll"
)

// Model is the root Bubbletea model for the TUI.
type Model struct {
	client *api.Client
	store  *options.Store
	logger *log.Logger

	// Synchronizers. The list and log loops run for the whole session;
	// a detail synchronizer exists only while a task is expanded.
	list   *poll.ListSync
	logs   *poll.LogSync
	detail *poll.DetailSync

	// Agent data
	agents      []models.Agent
	filterIndex int // 0 = all agents, i>0 = agents[i-1]

	// UI state
	leftTab       int     // 0=Tasks, 1=Options
	rightTab      int     // 0=Detail, 1=Logs
	focusedPanel  int     // 0=left, 1=right
	activeOverlay int     // overlayNone, overlayHelp, overlayNewTask
	splitRatio    float64 // Default 0.45
	width         int
	height        int

	// Confirm mode
	confirmMode   int
	confirmTaskID string

	// Status display
	err       error
	showSaved bool

	// Child components
	taskList    *TaskList
	detailView  *DetailView
	logViewer   *LogViewer
	taskForm    *TaskForm
	optionsForm *OptionsForm

	// Program reference for goroutine Send()
	program *programRef

	// Spinner state
	spinnerRunning bool

	// Dragging state
	dragging bool
}

// NewModel creates the initial TUI model and its synchronizers. The loops
// start in Init, not here.
func NewModel(client *api.Client, store *options.Store, logger *log.Logger, program *programRef) Model {
	list := poll.NewListSync(client, poll.ListConfig{
		Logger: logger,
		Notify: func() { program.Send(ListUpdatedMsg{}) },
	})
	logs := poll.NewLogSync(client, poll.LogConfig{
		Logger: logger,
		Notify: func() { program.Send(LogsUpdatedMsg{}) },
	})

	return Model{
		client:      client,
		store:       store,
		logger:      logger,
		list:        list,
		logs:        logs,
		splitRatio:  0.45,
		taskList:    NewTaskList(),
		detailView:  NewDetailView(),
		logViewer:   NewLogViewer(),
		optionsForm: NewOptionsForm(),
		program:     program,
	}
}

// Init starts the polling loops and the initial agent fetch.
func (m Model) Init() tea.Cmd {
	m.list.Start()
	m.logs.Start()
	return tea.Batch(
		loadAgentsCmd(m.client),
		tea.EnableMouseAllMotion,
	)
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	// ── Window resize ──────────────────────────────────────────────
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateDimensions()
		return m, nil

	// ── Key events ─────────────────────────────────────────────────
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	// ── Mouse events ───────────────────────────────────────────────
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	// ── Synchronizer snapshots ─────────────────────────────────────
	case ListUpdatedMsg:
		snap := m.list.Snapshot()
		m.taskList.SetItems(snap.Items, snap.Loading)
		if m.taskList.HasActive() && !m.spinnerRunning {
			m.spinnerRunning = true
			cmds = append(cmds, spinnerTick())
		}
		return m, tea.Batch(cmds...)

	case DetailUpdatedMsg:
		if m.detail == nil {
			return m, nil
		}
		snap := m.detail.Snapshot()
		m.detailView.SetSnapshot(snap)
		if snap.State == poll.StateCollapsed && snap.Err != nil {
			// The expand fetch failed; surface it and drop the dead
			// synchronizer so Enter retries from scratch.
			m.err = snap.Err
			m.detail = nil
			cmds = append(cmds, clearErrorAfter(5*time.Second))
		}
		return m, tea.Batch(cmds...)

	case LogsUpdatedMsg:
		snap := m.logs.Snapshot()
		m.logViewer.SetLogs(snap.Logs, snap.Loading)
		return m, nil

	// ── Agent data ─────────────────────────────────────────────────
	case AgentsLoadedMsg:
		m.agents = msg.Agents
		if m.filterIndex > len(m.agents) {
			m.filterIndex = 0
		}
		if m.optionsForm.AgentName() == "" && len(m.agents) > 0 {
			name := m.agents[0].Name
			m.optionsForm.LoadAgent(name, m.store.Load(name))
		}
		return m, nil

	case OptionsChangedMsg:
		// An options file changed on disk; re-read unless the user is
		// mid-edit in this instance.
		if name := m.optionsForm.AgentName(); name != "" && !m.optionsForm.IsEditing() {
			m.optionsForm.LoadAgent(name, m.store.Load(name))
		}
		return m, nil

	// ── Task actions ───────────────────────────────────────────────
	case TaskCreatedMsg:
		m.activeOverlay = overlayNone
		m.taskForm = nil
		m.showSaved = true
		m.list.Refresh()
		cmds = append(cmds, clearSavedAfter(3*time.Second))
		return m, tea.Batch(cmds...)

	case TaskStoppedMsg:
		// The stop is asynchronous server-side; the next poll reflects it.
		m.list.Refresh()
		return m, nil

	case TaskDeletedMsg:
		if m.detail != nil && m.detail.TaskID() == msg.TaskID {
			m.collapseDetail()
		}
		m.list.Refresh()
		return m, nil

	// ── Error handling ─────────────────────────────────────────────
	case ErrorMsg:
		m.err = msg.Err
		cmds = append(cmds, clearErrorAfter(5*time.Second))
		return m, tea.Batch(cmds...)

	case ClearErrorMsg:
		m.err = nil
		return m, nil

	case ClearSavedMsg:
		m.showSaved = false
		return m, nil

	// ── Spinner tick ──────────────────────────────────────────────
	case spinnerTickMsg:
		if m.taskList.HasActive() {
			m.taskList.Tick()
			cmds = append(cmds, spinnerTick())
		} else {
			m.spinnerRunning = false
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// handleKey processes key events.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Confirm mode captures everything
	if m.confirmMode != confirmNone {
		return m.handleConfirmKey(msg)
	}

	// Overlay captures everything except global shortcuts
	if m.activeOverlay != overlayNone {
		return m.handleOverlayKey(msg)
	}

	// Global shortcuts (always work)
	switch {
	case key.Matches(msg, globalKeys.Quit), msg.Type == tea.KeyCtrlC:
		if m.taskList.HasActive() {
			m.confirmMode = confirmQuit
			return nil
		}
		return m.doQuit()

	case key.Matches(msg, globalKeys.Help):
		if m.activeOverlay == overlayHelp {
			m.activeOverlay = overlayNone
		} else {
			m.activeOverlay = overlayHelp
		}
		return nil

	case key.Matches(msg, globalKeys.Tab):
		m.focusedPanel = 1 - m.focusedPanel
		return nil
	}

	// Tab switching (only when left panel focused and not editing)
	if m.focusedPanel == 0 && !m.optionsForm.IsEditing() {
		switch {
		case key.Matches(msg, tabSwitchKeys.Tab1):
			m.leftTab = 0
			return nil
		case key.Matches(msg, tabSwitchKeys.Tab2):
			m.leftTab = 1
			return nil
		}
	}

	// Route to focused panel
	if m.focusedPanel == 0 {
		if m.leftTab == 0 {
			return m.handleTaskListKey(msg)
		}
		return m.handleOptionsKey(msg)
	}
	if m.rightTab == 0 {
		return m.handleDetailKey(msg)
	}
	return m.handleLogKey(msg)
}

func (m *Model) handleTaskListKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, taskListKeys.Up):
		m.taskList.MoveUp()
	case key.Matches(msg, taskListKeys.Down):
		m.taskList.MoveDown()
	case key.Matches(msg, taskListKeys.New):
		m.openTaskForm()
	case key.Matches(msg, taskListKeys.Enter):
		m.toggleDetail()
	case key.Matches(msg, taskListKeys.Stop):
		if t := m.taskList.Selected(); t != nil && stoppable(t.Status) {
			m.confirmMode = confirmStop
			m.confirmTaskID = t.TaskID
		}
	case key.Matches(msg, taskListKeys.Delete):
		if t := m.taskList.Selected(); t != nil {
			m.confirmMode = confirmDelete
			m.confirmTaskID = t.TaskID
		}
	case key.Matches(msg, taskListKeys.Refresh):
		m.list.Refresh()
		m.logs.Refresh()
	case key.Matches(msg, taskListKeys.Filter):
		m.cycleFilter()
	}
	return nil
}

func (m *Model) handleOptionsKey(msg tea.KeyMsg) tea.Cmd {
	if m.optionsForm.IsEditing() {
		switch msg.Type {
		case tea.KeyEnter:
			if m.optionsForm.FinishEdit() {
				m.saveOptions()
			}
			return nil
		case tea.KeyEscape:
			m.optionsForm.CancelEdit()
			return nil
		default:
			ti := m.optionsForm.InputModel()
			newTI, _ := ti.Update(msg)
			*ti = newTI
			return nil
		}
	}

	switch {
	case key.Matches(msg, optionsKeys.Agent):
		m.cycleOptionsAgent()
	case key.Matches(msg, optionsKeys.Up):
		m.optionsForm.MoveUp()
	case key.Matches(msg, optionsKeys.Down):
		m.optionsForm.MoveDown()
	case key.Matches(msg, optionsKeys.Toggle):
		if m.optionsForm.Toggle() {
			m.saveOptions()
		}
	case key.Matches(msg, optionsKeys.Enter):
		if m.optionsForm.StartEdit() {
			return nil
		}
		if m.optionsForm.Toggle() {
			m.saveOptions()
		}
	}
	return nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyPgUp:
		m.detailView.PageUp()
	case tea.KeyPgDown:
		m.detailView.PageDown()
	case tea.KeyUp:
		m.detailView.ScrollUp(1)
	case tea.KeyDown:
		m.detailView.ScrollDown(1)
	case tea.KeyEscape:
		m.collapseDetail()
	}

	switch msg.String() {
	case "k":
		m.detailView.ScrollUp(1)
	case "j":
		m.detailView.ScrollDown(1)
	}
	return nil
}

func (m *Model) handleLogKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyUp:
		m.logViewer.ScrollUp(1)
	case tea.KeyDown:
		m.logViewer.ScrollDown(1)
	case tea.KeyPgUp:
		m.logViewer.ScrollUp(10)
	case tea.KeyPgDown:
		m.logViewer.ScrollDown(10)
	}

	switch msg.String() {
	case "k":
		m.logViewer.ScrollUp(1)
	case "j":
		m.logViewer.ScrollDown(1)
	case "f":
		m.cycleFilter()
	}
	return nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, confirmKeys.Yes):
		mode := m.confirmMode
		taskID := m.confirmTaskID
		m.confirmMode = confirmNone
		m.confirmTaskID = ""
		switch mode {
		case confirmDelete:
			return deleteTaskCmd(m.client, taskID)
		case confirmStop:
			return stopTaskCmd(m.client, taskID)
		case confirmQuit:
			return m.doQuit()
		}
	case key.Matches(msg, confirmKeys.No), key.Matches(msg, confirmKeys.Cancel):
		m.confirmMode = confirmNone
		m.confirmTaskID = ""
	}
	return nil
}

func (m *Model) handleOverlayKey(msg tea.KeyMsg) tea.Cmd {
	switch m.activeOverlay {
	case overlayHelp:
		if key.Matches(msg, overlayKeys.Cancel) || key.Matches(msg, globalKeys.Help) {
			m.activeOverlay = overlayNone
		}
		return nil

	case overlayNewTask:
		return m.handleTaskFormKey(msg)
	}
	return nil
}

func (m *Model) handleTaskFormKey(msg tea.KeyMsg) tea.Cmd {
	if m.taskForm == nil {
		return nil
	}

	switch {
	case key.Matches(msg, overlayKeys.Save):
		return m.submitTaskForm()
	case key.Matches(msg, overlayKeys.Cancel):
		m.activeOverlay = overlayNone
		m.taskForm = nil
		return nil
	case key.Matches(msg, overlayKeys.Tab):
		m.taskForm.FocusNext()
		return nil
	}

	// Agent field: arrows cycle the selector
	if m.taskForm.FocusIndex() == 0 {
		switch msg.Type {
		case tea.KeyLeft:
			m.taskForm.CycleAgent(-1)
		case tea.KeyRight, tea.KeySpace, tea.KeyEnter:
			m.taskForm.CycleAgent(1)
		}
		return nil
	}

	// Forward to active input
	switch m.taskForm.FocusIndex() {
	case 1:
		ta := m.taskForm.PromptArea()
		newTA, _ := ta.Update(msg)
		*ta = newTA
	case 2:
		ti := m.taskForm.TimeoutInput()
		newTI, _ := ti.Update(msg)
		*ti = newTI
	}

	return nil
}

// ── Actions ──────────────────────────────────────────────────────

func (m *Model) openTaskForm() {
	formWidth := m.width - 10
	if formWidth > 70 {
		formWidth = 70
	}
	m.taskForm = NewTaskForm(m.agents, formWidth)
	m.activeOverlay = overlayNewTask
}

func (m *Model) submitTaskForm() tea.Cmd {
	agent := m.taskForm.AgentName()
	prompt := m.taskForm.Prompt()
	timeout := m.taskForm.TimeoutSec()

	if agent == "" {
		m.err = errAgentRequired
		return clearErrorAfter(3 * time.Second)
	}
	if prompt == "" {
		m.err = errPromptRequired
		return clearErrorAfter(3 * time.Second)
	}
	if timeout < 0 {
		m.err = errBadTimeout
		return clearErrorAfter(3 * time.Second)
	}

	// The agent's saved options ride along, sanitized: UI-only fields and
	// empty values never reach the wire.
	saved := m.store.Load(agent)
	opts := options.Sanitize(&saved)

	return createTaskCmd(m.client, agent, prompt, timeout, opts)
}

// toggleDetail expands the selected task, or collapses it when it is the
// one already expanded.
func (m *Model) toggleDetail() {
	t := m.taskList.Selected()
	if t == nil {
		return
	}

	if m.detail != nil && m.detail.TaskID() == t.TaskID {
		m.collapseDetail()
		return
	}

	// Expanding a different task replaces the old synchronizer wholesale;
	// its late responses die on the generation check.
	m.collapseDetail()
	m.detail = poll.NewDetailSync(m.client, t.TaskID, poll.DetailConfig{
		Logger: m.logger,
		Notify: func() { m.program.Send(DetailUpdatedMsg{}) },
	})
	m.detail.Expand()
	m.detailView.SetSnapshot(m.detail.Snapshot())
	m.rightTab = 0
}

func (m *Model) collapseDetail() {
	if m.detail == nil {
		return
	}
	m.detail.Collapse()
	m.detailView.SetSnapshot(poll.DetailSnapshot{State: poll.StateCollapsed})
	m.detail = nil
}

// cycleFilter steps the agent filter through all agents and back to "all",
// retargeting both the task list and the log feed.
func (m *Model) cycleFilter() {
	if len(m.agents) == 0 {
		return
	}
	m.filterIndex = (m.filterIndex + 1) % (len(m.agents) + 1)
	m.list.SetFilter(m.currentFilter())
	m.logs.SetFilter(m.currentFilter())
}

func (m *Model) currentFilter() string {
	if m.filterIndex == 0 || m.filterIndex > len(m.agents) {
		return ""
	}
	return m.agents[m.filterIndex-1].Name
}

func (m *Model) cycleOptionsAgent() {
	if len(m.agents) == 0 {
		return
	}
	current := m.optionsForm.AgentName()
	next := 0
	for i, a := range m.agents {
		if a.Name == current {
			next = (i + 1) % len(m.agents)
			break
		}
	}
	name := m.agents[next].Name
	m.optionsForm.LoadAgent(name, m.store.Load(name))
}

func (m *Model) saveOptions() {
	name := m.optionsForm.AgentName()
	if name == "" {
		return
	}
	m.store.Save(name, m.optionsForm.Options())
	m.showSaved = true
	// The options form owns the canonical in-memory copy; reload keeps the
	// gated system prompt row in sync with the toggle.
	m.optionsForm.LoadAgent(name, m.optionsForm.Options())
}

// doQuit performs clean shutdown: stop the loops, clear the program ref, quit.
func (m *Model) doQuit() tea.Cmd {
	m.list.Stop()
	m.logs.Stop()
	m.collapseDetail()
	m.program.Clear()
	return tea.Quit
}

// ── Mouse handling ───────────────────────────────────────────────

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		geo := splitPanes(m.width, m.height, m.splitRatio)
		x := msg.X

		// A press on or next to the divider starts a drag.
		if x >= geo.divider-1 && x <= geo.divider+1 {
			m.dragging = true
			return
		}

		if x < geo.divider {
			m.focusedPanel = 0
		} else {
			m.focusedPanel = 1
		}

		if msg.Y == 0 {
			m.handleHeaderClick(msg.X)
		}

	case tea.MouseActionRelease:
		m.dragging = false

	case tea.MouseActionMotion:
		if m.dragging {
			ratio := float64(msg.X) / float64(m.width)
			if ratio < 0.2 {
				ratio = 0.2
			}
			if ratio > 0.8 {
				ratio = 0.8
			}
			m.splitRatio = ratio
			m.updateDimensions()
		}
	}

	// Scroll in focused panel
	if msg.Action == tea.MouseActionPress {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if m.focusedPanel == 0 {
				if m.leftTab == 0 {
					m.taskList.MoveUp()
				} else {
					m.optionsForm.MoveUp()
				}
			} else if m.rightTab == 0 {
				m.detailView.ScrollUp(3)
			} else {
				m.logViewer.ScrollUp(3)
			}
		case tea.MouseButtonWheelDown:
			if m.focusedPanel == 0 {
				if m.leftTab == 0 {
					m.taskList.MoveDown()
				} else {
					m.optionsForm.MoveDown()
				}
			} else if m.rightTab == 0 {
				m.detailView.ScrollDown(3)
			} else {
				m.logViewer.ScrollDown(3)
			}
		}
	}
}

func (m *Model) handleHeaderClick(x int) {
	geo := splitPanes(m.width, m.height, m.splitRatio)
	if x < geo.divider {
		// Left tabs: "Tasks | Options" starts after the app name
		offset := 12
		tabWidth := 10
		tabIdx := (x - offset) / tabWidth
		if tabIdx >= 0 && tabIdx <= 1 {
			m.leftTab = tabIdx
			m.focusedPanel = 0
		}
	} else {
		rightOffset := x - geo.divider
		if rightOffset < 10 {
			m.rightTab = 0
		} else {
			m.rightTab = 1
		}
		m.focusedPanel = 1
	}
}

// ── Dimension helpers ────────────────────────────────────────────

func (m *Model) updateDimensions() {
	geo := splitPanes(m.width, m.height, m.splitRatio)
	leftCols, rightCols, rows := geo.interior()

	m.taskList.SetHeight(rows)
	m.detailView.SetSize(rightCols, rows)
	m.logViewer.SetSize(rightCols, rows)
	m.optionsForm.SetSize(leftCols, rows)
}

// ── View ─────────────────────────────────────────────────────────

// View renders the TUI.
func (m Model) View() string {
	// Minimum size check
	if m.width < 80 || m.height < 24 {
		sizeStr := fmt.Sprintf("%dx%d", m.width, m.height)
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(colorYellow).
			Render(lipgloss.JoinVertical(lipgloss.Center,
				"Terminal too small",
				lipgloss.NewStyle().Foreground(colorDim).Render(
					"Need 80x24, have "+lipgloss.NewStyle().Bold(true).Render(sizeStr),
				),
			))
	}

	geo := splitPanes(m.width, m.height, m.splitRatio)
	leftCols, _, _ := geo.interior()

	header := renderHeader(m.leftTab, m.rightTab, m.currentFilter(), m.activeTaskCount(), m.width)

	leftContent := m.renderLeftPanel(leftCols)
	rightContent := m.renderRightPanel()

	panels := renderPanes(leftContent, rightContent, geo, m.focusedPanel)

	statusBar := renderStatusBar(&m, m.width)

	view := lipgloss.JoinVertical(lipgloss.Left, header, panels, statusBar)

	// Overlay
	if m.activeOverlay != overlayNone {
		var overlayContent string
		switch m.activeOverlay {
		case overlayHelp:
			overlayContent = renderHelp(m.width)
		case overlayNewTask:
			if m.taskForm != nil {
				overlayContent = m.taskForm.View()
			}
		}
		if overlayContent != "" {
			view = renderOverlay(view, overlayContent, m.width, m.height)
		}
	}

	return view
}

func (m Model) renderLeftPanel(width int) string {
	if m.leftTab == 0 {
		return m.taskList.View(width)
	}
	return m.optionsForm.View()
}

func (m Model) renderRightPanel() string {
	if m.rightTab == 0 {
		return m.detailView.View()
	}
	return m.logViewer.View()
}

func (m Model) activeTaskCount() int {
	n := 0
	for _, it := range m.list.Snapshot().Items {
		if !it.Status.IsTerminal() {
			n++
		}
	}
	return n
}

// sentinel errors
var (
	errAgentRequired  = errString("an agent must be selected")
	errPromptRequired = errString("prompt is required")
	errBadTimeout     = errString("timeout must be a non-negative number of seconds")
)

type errString string

func (e errString) Error() string { return string(e) }
