package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdimko/claude-api-controller/internal/models"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(NewMemStorage())

	saved := models.ClaudeOptions{
		Model:            "opus",
		OverrideClaudeMD: boolPtr(true),
		SystemPrompt:     "focus on tests",
		AllowedTools:     []string{"Bash(git:*)", "Edit"},
		ContinueSession:  boolPtr(false),
	}
	store.Save("reviewer", saved)

	loaded := store.Load("reviewer")
	assert.Equal(t, saved, loaded)
}

func TestStoreLoadDegradesToEmpty(t *testing.T) {
	storage := NewMemStorage()
	storage.Set(Key("broken"), "{not json")
	store := NewStore(storage)

	tests := []struct {
		name  string
		agent string
	}{
		{"empty agent name", ""},
		{"never saved", "fresh"},
		{"malformed blob", "broken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, models.ClaudeOptions{}, store.Load(tt.agent))
		})
	}
}

func TestStoreIsolatesAgents(t *testing.T) {
	store := NewStore(NewMemStorage())
	store.Save("alpha", models.ClaudeOptions{Model: "opus"})
	store.Save("beta", models.ClaudeOptions{Model: "haiku"})

	assert.Equal(t, "opus", store.Load("alpha").Model)
	assert.Equal(t, "haiku", store.Load("beta").Model)
	assert.Equal(t, models.ClaudeOptions{}, store.Load("gamma"),
		"switching to an agent with nothing saved starts empty")
}

func TestStorePersistsUIOnlyToggle(t *testing.T) {
	storage := NewMemStorage()
	store := NewStore(storage)

	store.Save("reviewer", models.ClaudeOptions{
		OverrideClaudeMD: boolPtr(true),
		SystemPrompt:     "custom",
	})

	raw, ok := storage.Get(Key("reviewer"))
	require.True(t, ok)
	assert.Contains(t, raw, "override_claude_md",
		"the local blob retains the toggle so it survives a reload")
}

func TestSetClaudeMDOverride(t *testing.T) {
	opts := models.ClaudeOptions{}

	opts.SetClaudeMDOverride(true)
	assert.True(t, opts.ClaudeMDOverridden())

	opts.SystemPrompt = "override text"
	opts.SetClaudeMDOverride(false)

	assert.Nil(t, opts.OverrideClaudeMD)
	assert.Empty(t, opts.SystemPrompt,
		"disabling the override must remove system_prompt in the same update")
}

func TestAgentFromKey(t *testing.T) {
	assert.Equal(t, "reviewer", AgentFromKey(Key("reviewer")))
	assert.Empty(t, AgentFromKey("unrelated_key"))
	assert.Empty(t, AgentFromKey(KeyPrefix))
}
