package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/vdimko/claude-api-controller/internal/poll"
)

// DetailView renders the expanded task detail in the right panel: the full
// prompt and, once the task settles, its result or error. Content comes from
// a detail synchronizer snapshot; the view itself holds no fetch logic.
type DetailView struct {
	viewport viewport.Model
	snapshot poll.DetailSnapshot
	width    int
	height   int
}

// NewDetailView creates an empty detail view.
func NewDetailView() *DetailView {
	return &DetailView{viewport: viewport.New(80, 24)}
}

// SetSize updates dimensions.
func (d *DetailView) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.viewport.Width = width
	d.rebuild()
}

// SetSnapshot applies the latest synchronizer state.
func (d *DetailView) SetSnapshot(snap poll.DetailSnapshot) {
	d.snapshot = snap
	d.rebuild()
}

// ScrollUp scrolls the detail content.
func (d *DetailView) ScrollUp(n int) { d.viewport.LineUp(n) }

// ScrollDown scrolls the detail content.
func (d *DetailView) ScrollDown(n int) { d.viewport.LineDown(n) }

// PageUp scrolls half a page up.
func (d *DetailView) PageUp() { d.viewport.HalfViewUp() }

// PageDown scrolls half a page down.
func (d *DetailView) PageDown() { d.viewport.HalfViewDown() }

func (d *DetailView) rebuild() {
	t := d.snapshot.Task
	if t == nil {
		return
	}

	var parts []string

	label := func(s string) string {
		return lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Render(s)
	}
	dim := lipgloss.NewStyle().Foreground(colorDim)

	parts = append(parts, label("Prompt"), t.Prompt, "")

	if t.Result != "" {
		parts = append(parts, label("Result"), t.Result, "")
	}
	if t.Error != "" {
		parts = append(parts, label("Error"), statusFailedStyle.Render(t.Error), "")
	}

	meta := []string{
		fmt.Sprintf("created  %s", t.CreatedAt.Local().Format("2006-01-02 15:04:05")),
	}
	if t.StartedAt != nil {
		meta = append(meta, fmt.Sprintf("started  %s", t.StartedAt.Local().Format("2006-01-02 15:04:05")))
	}
	if t.DurationSec != nil {
		meta = append(meta, fmt.Sprintf("duration %.1fs", *t.DurationSec))
	}
	parts = append(parts, label("Timing"), dim.Render(strings.Join(meta, "\n")))

	d.viewport.SetContent(strings.Join(parts, "\n"))
}

// View renders the detail panel.
func (d *DetailView) View() string {
	dim := lipgloss.NewStyle().Foreground(colorDim)

	switch d.snapshot.State {
	case poll.StateCollapsed:
		if d.snapshot.Err != nil {
			return statusFailedStyle.Render("Failed to load detail: "+d.snapshot.Err.Error()) +
				"\n" + dim.Render("Press Enter on the task to retry.")
		}
		return dim.Width(d.width).Align(lipgloss.Center).Render("\nSelect a task and press Enter to expand.")

	case poll.StateFetchingInitial:
		return dim.Width(d.width).Align(lipgloss.Center).Render("\nLoading task detail...")
	}

	t := d.snapshot.Task
	if t == nil {
		return ""
	}

	header := fmt.Sprintf("%s  %s  %s",
		statusStyle(t.Status).Render(strings.ToUpper(string(t.Status))),
		lipgloss.NewStyle().Bold(true).Render(t.AgentName),
		dim.Render(t.TaskID),
	)
	var staleNote string
	if d.snapshot.Err != nil {
		// A failed refresh keeps the last good detail on screen.
		staleNote = statusTimeoutStyle.Render("⚠ refresh failed, showing cached detail")
	}

	infoLines := 2
	if staleNote != "" {
		infoLines = 3
	}
	vpHeight := d.height - infoLines
	if vpHeight < 1 {
		vpHeight = 1
	}
	d.viewport.Height = vpHeight

	sepWidth := d.width
	if sepWidth < 1 {
		sepWidth = 1
	}
	sep := dim.Render(strings.Repeat("─", sepWidth))
	if staleNote != "" {
		return header + "\n" + staleNote + "\n" + sep + "\n" + d.viewport.View()
	}
	return header + "\n" + sep + "\n" + d.viewport.View()
}
