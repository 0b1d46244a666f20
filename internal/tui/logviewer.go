package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/vdimko/claude-api-controller/internal/models"
)

// LogViewer displays the live server log feed: newest records first, colored
// by severity. The feed refreshes from the log synchronizer; scrolling stays
// put across refreshes unless pinned to the top.
type LogViewer struct {
	logs         []models.Log
	loading      bool
	scrollOffset int
	width        int
	height       int
}

// NewLogViewer creates an empty log viewer.
func NewLogViewer() *LogViewer {
	return &LogViewer{loading: true}
}

// SetSize updates dimensions.
func (l *LogViewer) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// SetLogs replaces the feed content.
func (l *LogViewer) SetLogs(logs []models.Log, loading bool) {
	l.logs = logs
	l.loading = loading
	if l.scrollOffset > len(logs)-1 {
		l.scrollOffset = 0
	}
}

// ScrollUp moves the window toward newer records.
func (l *LogViewer) ScrollUp(n int) {
	l.scrollOffset -= n
	if l.scrollOffset < 0 {
		l.scrollOffset = 0
	}
}

// ScrollDown moves the window toward older records.
func (l *LogViewer) ScrollDown(n int) {
	maxOffset := len(l.logs) - l.height
	if maxOffset < 0 {
		maxOffset = 0
	}
	l.scrollOffset += n
	if l.scrollOffset > maxOffset {
		l.scrollOffset = maxOffset
	}
}

// View renders the log feed.
func (l *LogViewer) View() string {
	if l.loading && len(l.logs) == 0 {
		return lipgloss.NewStyle().Foreground(colorDim).Width(l.width).Align(lipgloss.Center).
			Render("\nLoading logs...")
	}
	if len(l.logs) == 0 {
		return lipgloss.NewStyle().Foreground(colorDim).Width(l.width).Align(lipgloss.Center).
			Render("\nNo log records yet.")
	}

	var lines []string
	end := l.scrollOffset + l.height
	if end > len(l.logs) {
		end = len(l.logs)
	}

	for i := l.scrollOffset; i < end; i++ {
		lines = append(lines, l.formatLine(l.logs[i]))
	}

	if l.scrollOffset > 0 {
		lines = append([]string{lipgloss.NewStyle().Foreground(colorDim).Render("▲ newer")}, lines...)
	}
	if end < len(l.logs) {
		lines = append(lines, lipgloss.NewStyle().Foreground(colorDim).Render("▼ older"))
	}

	return strings.Join(lines, "\n")
}

func (l *LogViewer) formatLine(rec models.Log) string {
	ts := rec.Timestamp.Local().Format("15:04:05")
	level := logLevelStyle(rec.Level).Render(fmt.Sprintf("%-7s", strings.ToUpper(string(rec.Level))))
	agent := lipgloss.NewStyle().Foreground(colorDim).Render(rec.AgentName)

	line := fmt.Sprintf("%s %s %s  %s",
		lipgloss.NewStyle().Foreground(colorDim).Render(ts),
		level,
		agent,
		rec.Message,
	)
	if l.width > 0 {
		line = ansi.Truncate(line, l.width, "…")
	}
	return line
}
