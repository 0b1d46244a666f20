package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// The screen is one header row, two bordered panes split by a draggable
// divider, and one status-bar row. paneGeometry is recomputed from the
// terminal size and split ratio on every use; it is never cached.
const (
	chromeRows   = 2  // header + status bar
	minPaneWidth = 10 // keeps both panes usable while the divider is dragged
)

type paneGeometry struct {
	left    int // left pane width, borders included
	right   int // right pane width, borders included
	rows    int // rows available to the bordered panes
	divider int // divider column, for mouse hit testing
}

func splitPanes(width, height int, ratio float64) paneGeometry {
	rows := height - chromeRows
	if rows < 1 {
		rows = 1
	}

	// The divider column belongs to neither pane.
	usable := width - 1
	left := int(float64(usable) * ratio)
	if left < minPaneWidth {
		left = minPaneWidth
	}
	right := usable - left
	if right < minPaneWidth {
		right = minPaneWidth
	}

	return paneGeometry{left: left, right: right, rows: rows, divider: left}
}

// interior returns the usable content area inside a pane's borders.
func (g paneGeometry) interior() (leftCols, rightCols, rows int) {
	leftCols = g.left - 2
	rightCols = g.right - 2
	rows = g.rows - 2
	if leftCols < 1 {
		leftCols = 1
	}
	if rightCols < 1 {
		rightCols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return leftCols, rightCols, rows
}

func renderPanes(tasksPane, detailPane string, geo paneGeometry, focusedPanel int) string {
	tasksBorder := unfocusedBorderStyle
	detailBorder := unfocusedBorderStyle
	if focusedPanel == 0 {
		tasksBorder = focusedBorderStyle
	} else {
		detailBorder = focusedBorderStyle
	}

	leftCols, rightCols, rows := geo.interior()

	left := tasksBorder.
		Width(leftCols).
		Height(rows).
		Render(clipPane(tasksPane, leftCols, rows))

	right := detailBorder.
		Width(rightCols).
		Height(rows).
		Render(clipPane(detailPane, rightCols, rows))

	glyph := lipgloss.NewStyle().Foreground(colorDim).Render("│")
	ticks := make([]string, lipgloss.Height(left))
	for i := range ticks {
		ticks[i] = glyph
	}
	divider := strings.Join(ticks, "\n")

	return lipgloss.JoinHorizontal(lipgloss.Top, left, divider, right)
}

// clipPane hard-clips pane content so a long log line or a tall prompt
// cannot push the borders out of shape.
func clipPane(content string, width, height int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}
	return strings.Join(lines, "\n")
}
