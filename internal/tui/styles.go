package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vdimko/claude-api-controller/internal/models"
)

// Colors using AdaptiveColor for light/dark terminal support.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorOrange = lipgloss.AdaptiveColor{Light: "166", Dark: "208"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

// Layout styles.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.AdaptiveColor{Light: "235", Dark: "236"})

	focusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorWhite)

	unfocusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim)
)

// Tab styles.
var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(colorWhite)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorDim)

	tabSepStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// Task status styles.
var (
	statusPendingStyle   = lipgloss.NewStyle().Foreground(colorDim)
	statusRunningStyle   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	statusCompletedStyle = lipgloss.NewStyle().Foreground(colorGreen)
	statusFailedStyle    = lipgloss.NewStyle().Foreground(colorRed)
	statusTimeoutStyle   = lipgloss.NewStyle().Foreground(colorOrange)
	statusCancelledStyle = lipgloss.NewStyle().Foreground(colorYellow)

	selectedItemStyle = lipgloss.NewStyle().
				Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"})
)

func statusStyle(s models.TaskStatus) lipgloss.Style {
	switch s {
	case models.TaskStatusPending:
		return statusPendingStyle
	case models.TaskStatusRunning:
		return statusRunningStyle
	case models.TaskStatusCompleted:
		return statusCompletedStyle
	case models.TaskStatusFailed:
		return statusFailedStyle
	case models.TaskStatusTimeout:
		return statusTimeoutStyle
	case models.TaskStatusCancelled:
		return statusCancelledStyle
	}
	return statusPendingStyle
}

// Log level styles.
var (
	logDebugStyle   = lipgloss.NewStyle().Foreground(colorDim)
	logInfoStyle    = lipgloss.NewStyle().Foreground(colorCyan)
	logWarningStyle = lipgloss.NewStyle().Foreground(colorYellow)
	logErrorStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

func logLevelStyle(level models.LogLevel) lipgloss.Style {
	switch level {
	case models.LogLevelDebug:
		return logDebugStyle
	case models.LogLevelInfo:
		return logInfoStyle
	case models.LogLevelWarning:
		return logWarningStyle
	case models.LogLevelError:
		return logErrorStyle
	}
	return logInfoStyle
}

// Overlay styles.
var (
	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWhite).
			Padding(1, 2)

	overlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite).
				MarginBottom(1)

	overlayDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// Key hint styles for status bar.
var (
	keyStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	hintStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// Options form styles.
var (
	optionsLabelStyle = lipgloss.NewStyle().
				Width(24).
				Foreground(colorDim)

	optionsValueStyle = lipgloss.NewStyle().
				Foreground(colorWhite)

	optionsToggleOn = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	optionsToggleOff = lipgloss.NewStyle().
				Foreground(colorDim)

	optionsCursorStyle = lipgloss.NewStyle().
				Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"})

	optionsGroupStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorCyan)
)
