package models

// OutputFormat values accepted by the Claude CLI.
const (
	OutputFormatText       = "text"
	OutputFormatJSON       = "json"
	OutputFormatStreamJSON = "stream-json"
)

// PermissionMode values accepted by the Claude CLI.
const (
	PermissionModeDefault           = "default"
	PermissionModeAcceptEdits       = "acceptEdits"
	PermissionModeBypassPermissions = "bypassPermissions"
	PermissionModeDontAsk           = "dontAsk"
	PermissionModePlan              = "plan"
)

// ClaudeOptions is the sparse per-agent invocation configuration attached to
// a task submission. Every field is optional; absence means "use the remote
// default". Boolean flags are pointers so that an explicit false survives
// the round trip while an unset flag stays off the wire.
//
// OverrideClaudeMD never reaches the wire: it only gates the visibility of
// SystemPrompt in the editing surface and is stripped by options.Sanitize.
// The locally persisted blob keeps it so the toggle survives a reload.
type ClaudeOptions struct {
	// Core
	Verbose       *bool  `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	OutputFormat  string `json:"output_format,omitempty" yaml:"output_format,omitempty"`
	InputFormat   string `json:"input_format,omitempty" yaml:"input_format,omitempty"`
	Model         string `json:"model,omitempty" yaml:"model,omitempty"`
	FallbackModel string `json:"fallback_model,omitempty" yaml:"fallback_model,omitempty"`

	// Prompts
	OverrideClaudeMD   *bool  `json:"override_claude_md,omitempty" yaml:"override_claude_md,omitempty"`
	SystemPrompt       string `json:"system_prompt,omitempty" yaml:"system_prompt,omitempty"`
	AppendSystemPrompt string `json:"append_system_prompt,omitempty" yaml:"append_system_prompt,omitempty"`

	// JSON output
	JSONSchema             map[string]any `json:"json_schema,omitempty" yaml:"json_schema,omitempty"`
	IncludePartialMessages *bool          `json:"include_partial_messages,omitempty" yaml:"include_partial_messages,omitempty"`

	// Tools
	AllowedTools                      []string `json:"allowed_tools,omitempty" yaml:"allowed_tools,omitempty"`
	DisallowedTools                   []string `json:"disallowed_tools,omitempty" yaml:"disallowed_tools,omitempty"`
	Tools                             []string `json:"tools,omitempty" yaml:"tools,omitempty"`
	DangerouslySkipPermissions        *bool    `json:"dangerously_skip_permissions,omitempty" yaml:"dangerously_skip_permissions,omitempty"`
	AllowDangerouslySkipPermissions   *bool    `json:"allow_dangerously_skip_permissions,omitempty" yaml:"allow_dangerously_skip_permissions,omitempty"`

	// Sessions
	ContinueSession *bool  `json:"continue,omitempty" yaml:"continue,omitempty"`
	ResumeSession   string `json:"resume_session,omitempty" yaml:"resume_session,omitempty"`
	ForkSession     *bool  `json:"fork_session,omitempty" yaml:"fork_session,omitempty"`
	SessionID       string `json:"session_id,omitempty" yaml:"session_id,omitempty"`

	// MCP and plugins
	MCPConfig            []string `json:"mcp_config,omitempty" yaml:"mcp_config,omitempty"`
	StrictMCPConfig      *bool    `json:"strict_mcp_config,omitempty" yaml:"strict_mcp_config,omitempty"`
	MCPDebug             *bool    `json:"mcp_debug,omitempty" yaml:"mcp_debug,omitempty"`
	PluginDirs           []string `json:"plugin_dirs,omitempty" yaml:"plugin_dirs,omitempty"`
	DisableSlashCommands *bool    `json:"disable_slash_commands,omitempty" yaml:"disable_slash_commands,omitempty"`

	// Agents
	Agent      string         `json:"agent,omitempty" yaml:"agent,omitempty"`
	AgentsJSON map[string]any `json:"agents_json,omitempty" yaml:"agents_json,omitempty"`

	// Settings
	PermissionMode string   `json:"permission_mode,omitempty" yaml:"permission_mode,omitempty"`
	Betas          []string `json:"betas,omitempty" yaml:"betas,omitempty"`
	SettingsFile   string   `json:"settings_file,omitempty" yaml:"settings_file,omitempty"`
	AddDirs        []string `json:"add_dirs,omitempty" yaml:"add_dirs,omitempty"`
	SettingSources string   `json:"setting_sources,omitempty" yaml:"setting_sources,omitempty"`

	// Debug
	Debug string `json:"debug,omitempty" yaml:"debug,omitempty"`

	// IDE
	IDE *bool `json:"ide,omitempty" yaml:"ide,omitempty"`

	// Streaming
	ReplayUserMessages *bool `json:"replay_user_messages,omitempty" yaml:"replay_user_messages,omitempty"`
}

// SetClaudeMDOverride flips the CLAUDE.md override toggle. Turning it off
// removes both the toggle and the system prompt in the same update; a stray
// system_prompt with the override disabled is an invariant violation.
func (o *ClaudeOptions) SetClaudeMDOverride(on bool) {
	if on {
		v := true
		o.OverrideClaudeMD = &v
		return
	}
	o.OverrideClaudeMD = nil
	o.SystemPrompt = ""
}

// ClaudeMDOverridden reports whether the system prompt field is unlocked.
func (o *ClaudeOptions) ClaudeMDOverridden() bool {
	return o.OverrideClaudeMD != nil && *o.OverrideClaudeMD
}
