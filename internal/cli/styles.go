package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vdimko/claude-api-controller/internal/models"
)

// Adaptive colors matching the TUI palette.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorOrange = lipgloss.AdaptiveColor{Light: "166", Dark: "208"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

// Semantic styles for CLI output.
var (
	styleBrand   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleVersion = lipgloss.NewStyle().Foreground(colorGreen)
	styleLabel   = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleHint    = lipgloss.NewStyle().Foreground(colorDim)
)

// Task status badge styles.
var (
	badgePending   = lipgloss.NewStyle().Foreground(colorDim)
	badgeRunning   = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	badgeCompleted = lipgloss.NewStyle().Foreground(colorGreen)
	badgeFailed    = lipgloss.NewStyle().Foreground(colorRed)
	badgeTimeout   = lipgloss.NewStyle().Foreground(colorOrange)
	badgeCancelled = lipgloss.NewStyle().Foreground(colorYellow)
)

func statusBadge(s models.TaskStatus) string {
	switch s {
	case models.TaskStatusPending:
		return badgePending.Render(string(s))
	case models.TaskStatusRunning:
		return badgeRunning.Render(string(s))
	case models.TaskStatusCompleted:
		return badgeCompleted.Render(string(s))
	case models.TaskStatusFailed:
		return badgeFailed.Render(string(s))
	case models.TaskStatusTimeout:
		return badgeTimeout.Render(string(s))
	case models.TaskStatusCancelled:
		return badgeCancelled.Render(string(s))
	}
	return string(s)
}

// Log level styles.
var (
	levelDebug   = lipgloss.NewStyle().Foreground(colorDim)
	levelInfo    = lipgloss.NewStyle().Foreground(colorCyan)
	levelWarning = lipgloss.NewStyle().Foreground(colorYellow)
	levelError   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
)

func levelBadge(l models.LogLevel) string {
	switch l {
	case models.LogLevelDebug:
		return levelDebug.Render("DEBUG")
	case models.LogLevelInfo:
		return levelInfo.Render("INFO ")
	case models.LogLevelWarning:
		return levelWarning.Render("WARN ")
	case models.LogLevelError:
		return levelError.Render("ERROR")
	}
	return string(l)
}
