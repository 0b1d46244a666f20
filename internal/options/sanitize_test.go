package options

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdimko/claude-api-controller/internal/models"
)

func boolPtr(v bool) *bool { return &v }

func TestSanitizeNilAndEmpty(t *testing.T) {
	tests := []struct {
		name string
		in   *models.ClaudeOptions
	}{
		{"nil input", nil},
		{"zero value", &models.ClaudeOptions{}},
		{"only empty string", &models.ClaudeOptions{Model: ""}},
		{"only empty list", &models.ClaudeOptions{AllowedTools: []string{}}},
		{"only empty object", &models.ClaudeOptions{JSONSchema: map[string]any{}}},
		{"only ui-only flag", &models.ClaudeOptions{OverrideClaudeMD: boolPtr(true)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, Sanitize(tt.in), "expected absent payload")
		})
	}
}

func TestSanitizeKeepsRealValues(t *testing.T) {
	in := &models.ClaudeOptions{
		Model:        "opus",
		Verbose:      boolPtr(false), // explicit false survives
		AllowedTools: []string{"Bash(git:*)", "Edit"},
		JSONSchema:   map[string]any{"type": "object"},
	}

	out := Sanitize(in)
	require.NotNil(t, out)
	assert.Equal(t, "opus", out.Model)
	require.NotNil(t, out.Verbose)
	assert.False(t, *out.Verbose)
	assert.Equal(t, []string{"Bash(git:*)", "Edit"}, out.AllowedTools)
	assert.Equal(t, map[string]any{"type": "object"}, out.JSONSchema)
}

func TestSanitizeStripsUIOnlyAndEmpties(t *testing.T) {
	in := &models.ClaudeOptions{
		Model:            "sonnet",
		OverrideClaudeMD: boolPtr(true),
		SystemPrompt:     "be terse",
		FallbackModel:    "",
		DisallowedTools:  []string{},
		AgentsJSON:       map[string]any{},
	}

	out := Sanitize(in)
	require.NotNil(t, out)
	assert.Nil(t, out.OverrideClaudeMD, "override_claude_md never reaches the wire")
	assert.Equal(t, "be terse", out.SystemPrompt, "system_prompt itself is a real wire field")

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"model":"sonnet","system_prompt":"be terse"}`, string(data))
}

func TestSanitizeIdempotent(t *testing.T) {
	tests := []struct {
		name string
		in   *models.ClaudeOptions
	}{
		{"empty", &models.ClaudeOptions{}},
		{"mixed", &models.ClaudeOptions{
			Model:            "opus",
			OverrideClaudeMD: boolPtr(true),
			SystemPrompt:     "x",
			Betas:            []string{},
			MCPConfig:        []string{"mcp.json"},
			ContinueSession:  boolPtr(true),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := Sanitize(tt.in)
			twice := Sanitize(once)
			if once == nil {
				assert.Nil(t, twice)
				return
			}
			a, err := json.Marshal(once)
			require.NoError(t, err)
			b, err := json.Marshal(twice)
			require.NoError(t, err)
			assert.JSONEq(t, string(a), string(b))
		})
	}
}

func TestSanitizeDoesNotMutateInput(t *testing.T) {
	in := &models.ClaudeOptions{
		Model:            "haiku",
		OverrideClaudeMD: boolPtr(true),
		SystemPrompt:     "keep me locally",
	}
	_ = Sanitize(in)

	require.NotNil(t, in.OverrideClaudeMD)
	assert.True(t, *in.OverrideClaudeMD, "persisted copy keeps the toggle")
	assert.Equal(t, "keep me locally", in.SystemPrompt)
}
