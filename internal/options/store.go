package options

import (
	"encoding/json"

	"github.com/vdimko/claude-api-controller/internal/models"
)

// KeyPrefix is prepended to the agent name to form the storage key. The
// persisted blob keeps UI-only fields (override_claude_md) so toggle state
// survives a restart; stripping happens only at submission time.
const KeyPrefix = "claude_options_"

// Store persists ClaudeOptions per agent name. Options records are owned by
// the client and have no remote counterpart.
type Store struct {
	storage Storage
}

// NewStore creates a store over the given storage backend.
func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Key returns the storage key for an agent name.
func Key(agentName string) string {
	return KeyPrefix + agentName
}

// AgentFromKey inverts Key; it returns "" when the key doesn't match.
func AgentFromKey(key string) string {
	if len(key) <= len(KeyPrefix) || key[:len(KeyPrefix)] != KeyPrefix {
		return ""
	}
	return key[len(KeyPrefix):]
}

// Load returns the saved options for an agent. An empty agent name, a
// missing record, and a malformed record all degrade to an empty
// configuration; load never fails.
func (s *Store) Load(agentName string) models.ClaudeOptions {
	if agentName == "" {
		return models.ClaudeOptions{}
	}
	raw, ok := s.storage.Get(Key(agentName))
	if !ok {
		return models.ClaudeOptions{}
	}
	var opts models.ClaudeOptions
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		return models.ClaudeOptions{}
	}
	return opts
}

// Save writes the options for an agent. Called write-through on every field
// edit; there is no batching.
func (s *Store) Save(agentName string, opts models.ClaudeOptions) {
	if agentName == "" {
		return
	}
	data, err := json.Marshal(opts)
	if err != nil {
		return
	}
	s.storage.Set(Key(agentName), string(data))
}
