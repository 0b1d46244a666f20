package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func renderHeader(leftTab, rightTab int, filter string, activeTasks int, width int) string {
	name := lipgloss.NewStyle().Bold(true).Render("claudectl")

	leftTabs := renderTabs([]string{"Tasks", "Options"}, leftTab)
	rightTabs := renderTabs([]string{"Detail", "Logs"}, rightTab)

	// Filter indicator
	filterBadge := ""
	if filter != "" {
		filterBadge = lipgloss.NewStyle().Foreground(colorCyan).Render("⧩ " + filter)
	}

	badge := renderActivityBadge(activeTasks)

	left := fmt.Sprintf(" %s  %s", name, leftTabs)
	if filterBadge != "" {
		left += "  " + filterBadge
	}
	right := fmt.Sprintf("%s  %s ", rightTabs, badge)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return headerStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func renderTabs(tabs []string, active int) string {
	var parts []string
	for i, tab := range tabs {
		if i == active {
			parts = append(parts, activeTabStyle.Render(tab))
		} else {
			parts = append(parts, inactiveTabStyle.Render(tab))
		}
	}
	return strings.Join(parts, tabSepStyle.Render(" | "))
}

func renderActivityBadge(activeTasks int) string {
	if activeTasks == 0 {
		return lipgloss.NewStyle().Foreground(colorDim).Render("● Idle")
	}
	return statusRunningStyle.Render(fmt.Sprintf("● %d active", activeTasks))
}
