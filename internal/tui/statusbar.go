package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/charmbracelet/x/ansi"
)

// confirmMode values.
const (
	confirmNone   = 0
	confirmDelete = 1
	confirmStop   = 2
	confirmQuit   = 3
)

func renderStatusBar(m *Model, width int) string {
	// Handle confirm mode
	switch m.confirmMode {
	case confirmDelete:
		return renderConfirmBar("Delete task "+m.confirmTaskID+"? (y/n)", width)
	case confirmStop:
		return renderConfirmBar("Stop task "+m.confirmTaskID+"? (y/n)", width)
	case confirmQuit:
		return renderConfirmBar("Tasks still active. Quit anyway? (y/n)", width)
	}

	// Error display
	if m.err != nil {
		return renderErrorBar(m.err.Error(), width)
	}

	// Saved indicator
	if m.showSaved {
		return renderSavedBar(width)
	}

	// Context-sensitive key hints
	hints := getKeyHints(m)
	left := " " + hints

	// Poll health: the list synchronizer's last error doubles as the
	// connectivity signal.
	right := ""
	if m.list != nil {
		if m.list.Snapshot().Err != nil {
			right = lipgloss.NewStyle().Foreground(colorYellow).Bold(true).Render("⚠ Unreachable") + " "
		} else {
			right = lipgloss.NewStyle().Foreground(colorGreen).Render("Connected") + " "
		}
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		left = ansi.Truncate(left, width-lipgloss.Width(right)-1, "…")
		gap = 1
	}

	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func getKeyHints(m *Model) string {
	if m.activeOverlay == overlayNewTask {
		return keyHint("Ctrl+s", "submit") + "  " + keyHint("Esc", "cancel")
	}
	if m.activeOverlay != overlayNone {
		return keyHint("Esc", "close")
	}

	base := keyHint("Ctrl+q", "quit") + "  " + keyHint("Ctrl+h", "help") + "  " + keyHint("Tab", "switch")

	if m.focusedPanel == 0 {
		switch m.leftTab {
		case 0: // Tasks
			hints := base + "  " + keyHint("n", "new") + "  " + keyHint("Enter", "expand") + "  " +
				keyHint("f", "filter") + "  " + keyHint("r", "refresh")
			if t := m.taskList.Selected(); t != nil {
				if stoppable(t.Status) {
					hints += "  " + keyHint("s", "stop")
				}
				hints += "  " + keyHint("x", "delete")
			}
			return hints
		case 1: // Options
			return base + "  " + keyHint("a", "agent") + "  " + keyHint("j/k", "navigate") + "  " +
				keyHint("Enter", "edit") + "  " + keyHint("Space", "toggle")
		}
	} else {
		switch m.rightTab {
		case 0: // Detail
			return base + "  " + keyHint("PgUp/PgDn", "scroll") + "  " + keyHint("Esc", "collapse")
		case 1: // Logs
			return base + "  " + keyHint("j/k", "scroll") + "  " + keyHint("f", "filter")
		}
	}

	return base
}

func keyHint(k, desc string) string {
	if k == "" {
		return hintStyle.Render(desc)
	}
	return keyStyle.Render(k) + " " + hintStyle.Render(desc)
}

func renderConfirmBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorYellow).
		Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "0"}).
		Width(width).
		Render(" " + msg)
}

func renderErrorBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorRed).
		Width(width).
		Render(" " + msg)
}

func renderSavedBar(width int) string {
	return statusBarStyle.
		Width(width).
		Render(" " + lipgloss.NewStyle().Foreground(colorGreen).Render("Saved"))
}
