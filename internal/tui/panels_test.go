package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPanesGeometry(t *testing.T) {
	geo := splitPanes(100, 30, 0.45)

	assert.Equal(t, 28, geo.rows, "header and status bar rows are reserved")
	assert.Equal(t, geo.left, geo.divider)
	assert.Equal(t, 99, geo.left+geo.right, "divider column belongs to neither pane")
}

func TestSplitPanesEnforcesMinimumWidths(t *testing.T) {
	narrow := splitPanes(100, 30, 0.01)
	assert.Equal(t, minPaneWidth, narrow.left)

	wide := splitPanes(100, 30, 0.99)
	assert.Equal(t, minPaneWidth, wide.right)
}

func TestPaneInteriorNeverCollapses(t *testing.T) {
	leftCols, rightCols, rows := splitPanes(5, 2, 0.5).interior()
	assert.GreaterOrEqual(t, leftCols, 1)
	assert.GreaterOrEqual(t, rightCols, 1)
	assert.GreaterOrEqual(t, rows, 1)
}

func TestClipPaneBoundsContent(t *testing.T) {
	content := strings.Join([]string{
		"short",
		"a line that is much wider than the pane",
		"third",
		"fourth",
	}, "\n")

	clipped := clipPane(content, 10, 3)

	lines := strings.Split(clipped, "\n")
	assert.Len(t, lines, 3)
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), 10)
	}
}
