package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "  \t ", nil},
		{"comma separated", "Bash(git:*), Edit", []string{"Bash(git:*)", "Edit"}},
		{"space separated", "Bash Edit Read", []string{"Bash", "Edit", "Read"}},
		{"mixed delimiters", "a, b  c,\td", []string{"a", "b", "c", "d"}},
		{"trailing comma", "mcp.json,", []string{"mcp.json"}},
		{"consecutive commas", "a,,b", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseList(tt.in))
		})
	}
}

func TestFormatListRoundTrip(t *testing.T) {
	in := []string{"Bash(git:*)", "Edit"}
	assert.Equal(t, in, ParseList(FormatList(in)))
	assert.Empty(t, FormatList(nil))
}
