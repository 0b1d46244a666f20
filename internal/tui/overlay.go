package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Overlay modes. The help sheet and the new-task form float over a dimmed
// base view; the panes underneath keep their geometry, so closing an
// overlay is a pure repaint.
const (
	overlayNone = iota
	overlayHelp
	overlayNewTask
)

// renderOverlay centers content over the base view, dimming whatever it
// does not cover.
func renderOverlay(base, content string, width, height int) string {
	box := strings.Split(content, "\n")
	boxWidth := 0
	for _, l := range box {
		if w := lipgloss.Width(l); w > boxWidth {
			boxWidth = w
		}
	}

	top := (height - len(box)) / 2
	col := (width - boxWidth) / 2
	// Row 0 is the header; keep it visible behind a too-tall overlay.
	if top < 1 {
		top = 1
	}
	if col < 1 {
		col = 1
	}

	rows := strings.Split(base, "\n")
	for i := range rows {
		rows[i] = overlayDimStyle.Render(rows[i])
	}
	for i, line := range box {
		r := top + i
		if r >= len(rows) {
			break
		}
		rows[r] = spliceRow(rows[r], line, col)
	}
	return strings.Join(rows, "\n")
}

// spliceRow overwrites one row of the base view with an overlay line
// starting at col, keeping the uncovered tail. Slicing is ANSI-aware;
// the bare resets stop the dim sequence from bleeding into the overlay
// and the overlay's styling from bleeding back out.
func spliceRow(bg, line string, col int) string {
	head := ansi.Truncate(bg, col, "")
	tail := ""
	if end := col + lipgloss.Width(line); end < lipgloss.Width(bg) {
		tail = ansi.Cut(bg, end, lipgloss.Width(bg))
	}
	return head + "\033[0m" + line + "\033[0m" + tail
}
