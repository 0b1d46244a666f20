package options

import (
	"encoding/json"

	"github.com/vdimko/claude-api-controller/internal/models"
)

// Sanitize produces the wire-safe form of an options record. In order it
// strips UI-only fields, empty strings, unset booleans, empty lists, and
// empty objects; when nothing remains it returns nil. A nil result means
// the submission carries no options override at all — the remote service
// distinguishes that from an empty object.
//
// Sanitize is pure and idempotent: it never mutates its argument, and
// sanitizing a sanitized record is a no-op.
func Sanitize(o *models.ClaudeOptions) *models.ClaudeOptions {
	if o == nil {
		return nil
	}

	s := *o
	s.OverrideClaudeMD = nil

	// Empty strings are already the zero value and fall out of the wire
	// encoding via omitempty; lists and objects need explicit trimming so
	// []string{} and map{} don't survive as present-but-empty.
	s.AllowedTools = trimList(s.AllowedTools)
	s.DisallowedTools = trimList(s.DisallowedTools)
	s.Tools = trimList(s.Tools)
	s.MCPConfig = trimList(s.MCPConfig)
	s.PluginDirs = trimList(s.PluginDirs)
	s.Betas = trimList(s.Betas)
	s.AddDirs = trimList(s.AddDirs)
	s.JSONSchema = trimObject(s.JSONSchema)
	s.AgentsJSON = trimObject(s.AgentsJSON)

	if isEmpty(&s) {
		return nil
	}
	return &s
}

func trimList(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	return items
}

func trimObject(obj map[string]any) map[string]any {
	if len(obj) == 0 {
		return nil
	}
	return obj
}

// isEmpty reports whether no field would reach the wire. Every field of
// ClaudeOptions is tagged omitempty, so the encoded form of an empty record
// is exactly "{}".
func isEmpty(o *models.ClaudeOptions) bool {
	data, err := json.Marshal(o)
	if err != nil {
		return false
	}
	return string(data) == "{}"
}
