package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title string
	keys  []helpKey
}

type helpKey struct {
	key  string
	desc string
}

var helpSections = []helpSection{
	{
		title: "Global",
		keys: []helpKey{
			{"Ctrl+q", "Quit"},
			{"Ctrl+h", "Toggle help"},
			{"Tab", "Switch panel focus"},
			{"1/2", "Switch left panel tab"},
		},
	},
	{
		title: "Task List",
		keys: []helpKey{
			{"j/k ↑/↓", "Navigate tasks"},
			{"n", "Submit new task"},
			{"Enter", "Expand task detail"},
			{"s", "Stop task (while active)"},
			{"x", "Delete task record"},
			{"r", "Refresh now"},
			{"f", "Cycle agent filter"},
		},
	},
	{
		title: "Detail",
		keys: []helpKey{
			{"PgUp/PgDn", "Scroll detail"},
			{"Esc", "Collapse"},
		},
	},
	{
		title: "Logs",
		keys: []helpKey{
			{"j/k ↑/↓", "Scroll the feed"},
			{"f", "Cycle agent filter"},
		},
	},
	{
		title: "Options",
		keys: []helpKey{
			{"a", "Switch agent"},
			{"j/k", "Navigate fields"},
			{"Enter", "Edit field"},
			{"Space", "Toggle boolean"},
		},
	},
	{
		title: "New Task Form",
		keys: []helpKey{
			{"←/→", "Choose agent"},
			{"Tab", "Next field"},
			{"Ctrl+s", "Submit"},
			{"Esc", "Cancel"},
		},
	},
}

// renderHelp renders the help overlay content.
func renderHelp(width int) string {
	maxWidth := 60
	if width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	title := overlayTitleStyle.Render("Keyboard Shortcuts")
	sections := make([]string, 0, len(helpSections)*4+3)
	sections = append(sections, title)

	for _, sec := range helpSections {
		header := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Render(sec.title)
		sections = append(sections, "", header)

		for _, k := range sec.keys {
			keyCol := lipgloss.NewStyle().
				Width(14).
				Foreground(colorWhite).
				Bold(true).
				Render(k.key)
			descCol := lipgloss.NewStyle().
				Foreground(colorDim).
				Render(k.desc)
			sections = append(sections, "  "+keyCol+descCol)
		}
	}

	sections = append(sections, "", lipgloss.NewStyle().Foreground(colorDim).Render("Press Esc or Ctrl+h to close"))

	content := strings.Join(sections, "\n")
	return overlayStyle.Width(maxWidth).Render(content)
}
