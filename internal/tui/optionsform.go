package tui

import (
	"encoding/json"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/vdimko/claude-api-controller/internal/models"
	"github.com/vdimko/claude-api-controller/internal/options"
)

// optionsFieldKind defines how a field is edited and rendered.
type optionsFieldKind int

const (
	fieldText optionsFieldKind = iota
	fieldToggle
	fieldList
	fieldJSON
)

// optionsField is one editable row of the options form. Text/list/JSON
// fields read and write through get/apply; toggles through getBool/toggle.
// apply returns false when the input is rejected, keeping the last valid
// value.
type optionsField struct {
	label   string
	group   string // non-empty starts a new group header above this row
	kind    optionsFieldKind
	get     func(o *models.ClaudeOptions) string
	apply   func(o *models.ClaudeOptions, raw string) bool
	getBool func(o *models.ClaudeOptions) bool
	toggle  func(o *models.ClaudeOptions)
}

// OptionsForm edits one agent's saved invocation options. Every confirmed
// change is written through immediately; there is no save step.
type OptionsForm struct {
	agentName string
	opts      models.ClaudeOptions
	fields    []optionsField

	cursor  int
	editing bool
	input   textinput.Model
	width   int
	height  int
	scroll  int
}

// NewOptionsForm creates an options form with no agent loaded.
func NewOptionsForm() *OptionsForm {
	ti := textinput.New()
	ti.CharLimit = 500
	f := &OptionsForm{input: ti}
	f.rebuildFields()
	return f
}

// LoadAgent switches the form to an agent's saved options.
func (f *OptionsForm) LoadAgent(agentName string, opts models.ClaudeOptions) {
	f.agentName = agentName
	f.opts = opts
	f.editing = false
	f.input.Blur()
	f.rebuildFields()
	if f.cursor >= len(f.fields) {
		f.cursor = len(f.fields) - 1
	}
	if f.cursor < 0 {
		f.cursor = 0
	}
}

// AgentName returns the agent whose options are loaded, or "".
func (f *OptionsForm) AgentName() string { return f.agentName }

// Options returns the current (possibly edited) options value.
func (f *OptionsForm) Options() models.ClaudeOptions { return f.opts }

// SetSize updates dimensions.
func (f *OptionsForm) SetSize(width, height int) {
	f.width = width
	f.height = height
	f.input.Width = width - 28
}

// MoveUp moves cursor up.
func (f *OptionsForm) MoveUp() {
	if !f.editing && f.cursor > 0 {
		f.cursor--
		f.ensureVisible()
	}
}

// MoveDown moves cursor down.
func (f *OptionsForm) MoveDown() {
	if !f.editing && f.cursor < len(f.fields)-1 {
		f.cursor++
		f.ensureVisible()
	}
}

func (f *OptionsForm) ensureVisible() {
	if f.cursor < f.scroll {
		f.scroll = f.cursor
	}
	visible := f.visibleRows()
	if visible > 0 && f.cursor >= f.scroll+visible {
		f.scroll = f.cursor - visible + 1
	}
}

func (f *OptionsForm) visibleRows() int {
	// Group headers consume extra lines; undercounting just scrolls early.
	return f.height - 4
}

// Toggle flips a boolean field. Returns true when the options changed.
func (f *OptionsForm) Toggle() bool {
	if f.agentName == "" || f.cursor < 0 || f.cursor >= len(f.fields) {
		return false
	}
	fld := f.fields[f.cursor]
	if fld.kind != fieldToggle {
		return false
	}
	fld.toggle(&f.opts)
	f.rebuildFields()
	if f.cursor >= len(f.fields) {
		f.cursor = len(f.fields) - 1
	}
	return true
}

// StartEdit begins inline editing of the current text-like field.
func (f *OptionsForm) StartEdit() bool {
	if f.agentName == "" || f.cursor < 0 || f.cursor >= len(f.fields) {
		return false
	}
	fld := f.fields[f.cursor]
	if fld.kind == fieldToggle {
		return false
	}
	f.editing = true
	f.input.SetValue(fld.get(&f.opts))
	f.input.Focus()
	return true
}

// FinishEdit confirms the current edit. Returns true when the options
// changed; invalid input (bad JSON, bad number) is dropped silently and the
// previous value stands.
func (f *OptionsForm) FinishEdit() bool {
	if !f.editing {
		return false
	}
	f.editing = false
	f.input.Blur()

	fld := f.fields[f.cursor]
	raw := f.input.Value()
	if raw == fld.get(&f.opts) {
		return false
	}
	return fld.apply(&f.opts, raw)
}

// CancelEdit cancels the current edit.
func (f *OptionsForm) CancelEdit() {
	f.editing = false
	f.input.Blur()
}

// IsEditing returns whether a field is being edited.
func (f *OptionsForm) IsEditing() bool {
	return f.editing
}

// InputModel returns the text input model for Update forwarding.
func (f *OptionsForm) InputModel() *textinput.Model {
	return &f.input
}

func textField(label, group string, get func(o *models.ClaudeOptions) *string) optionsField {
	return optionsField{
		label: label, group: group, kind: fieldText,
		get: func(o *models.ClaudeOptions) string { return *get(o) },
		apply: func(o *models.ClaudeOptions, raw string) bool {
			*get(o) = strings.TrimSpace(raw)
			return true
		},
	}
}

func toggleField(label, group string, get func(o *models.ClaudeOptions) **bool) optionsField {
	return optionsField{
		label: label, group: group, kind: fieldToggle,
		getBool: func(o *models.ClaudeOptions) bool {
			p := *get(o)
			return p != nil && *p
		},
		toggle: func(o *models.ClaudeOptions) {
			p := get(o)
			if *p != nil && **p {
				// Back to unset rather than explicit false; an explicit
				// false is only reachable through the CLI.
				*p = nil
				return
			}
			v := true
			*p = &v
		},
	}
}

func listField(label, group string, get func(o *models.ClaudeOptions) *[]string) optionsField {
	return optionsField{
		label: label, group: group, kind: fieldList,
		get: func(o *models.ClaudeOptions) string { return options.FormatList(*get(o)) },
		apply: func(o *models.ClaudeOptions, raw string) bool {
			*get(o) = options.ParseList(raw)
			return true
		},
	}
}

func jsonField(label, group string, get func(o *models.ClaudeOptions) *map[string]any) optionsField {
	return optionsField{
		label: label, group: group, kind: fieldJSON,
		get: func(o *models.ClaudeOptions) string {
			m := *get(o)
			if len(m) == 0 {
				return ""
			}
			data, err := json.Marshal(m)
			if err != nil {
				return ""
			}
			return string(data)
		},
		apply: func(o *models.ClaudeOptions, raw string) bool {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				*get(o) = nil
				return true
			}
			var m map[string]any
			if err := json.Unmarshal([]byte(raw), &m); err != nil {
				return false
			}
			*get(o) = m
			return true
		},
	}
}

func (f *OptionsForm) rebuildFields() {
	fields := []optionsField{
		textField("Model", "Core", func(o *models.ClaudeOptions) *string { return &o.Model }),
		textField("Fallback Model", "", func(o *models.ClaudeOptions) *string { return &o.FallbackModel }),
		textField("Output Format", "", func(o *models.ClaudeOptions) *string { return &o.OutputFormat }),
		textField("Input Format", "", func(o *models.ClaudeOptions) *string { return &o.InputFormat }),
		toggleField("Verbose", "", func(o *models.ClaudeOptions) **bool { return &o.Verbose }),

		{
			label: "Override CLAUDE.md", group: "Prompts", kind: fieldToggle,
			getBool: func(o *models.ClaudeOptions) bool { return o.ClaudeMDOverridden() },
			toggle: func(o *models.ClaudeOptions) {
				// Turning the override off drops the system prompt with it.
				o.SetClaudeMDOverride(!o.ClaudeMDOverridden())
			},
		},
	}

	// The system prompt row exists only while the override is on.
	if f.opts.ClaudeMDOverridden() {
		fields = append(fields,
			textField("System Prompt", "", func(o *models.ClaudeOptions) *string { return &o.SystemPrompt }))
	}
	fields = append(fields,
		textField("Append System Prompt", "", func(o *models.ClaudeOptions) *string { return &o.AppendSystemPrompt }),

		listField("Allowed Tools", "Tools", func(o *models.ClaudeOptions) *[]string { return &o.AllowedTools }),
		listField("Disallowed Tools", "", func(o *models.ClaudeOptions) *[]string { return &o.DisallowedTools }),
		listField("Tools", "", func(o *models.ClaudeOptions) *[]string { return &o.Tools }),
		toggleField("Skip Permissions", "", func(o *models.ClaudeOptions) **bool { return &o.DangerouslySkipPermissions }),
		toggleField("Allow Skip Permissions", "", func(o *models.ClaudeOptions) **bool { return &o.AllowDangerouslySkipPermissions }),

		toggleField("Continue Session", "Sessions", func(o *models.ClaudeOptions) **bool { return &o.ContinueSession }),
		textField("Resume Session", "", func(o *models.ClaudeOptions) *string { return &o.ResumeSession }),
		toggleField("Fork Session", "", func(o *models.ClaudeOptions) **bool { return &o.ForkSession }),
		textField("Session ID", "", func(o *models.ClaudeOptions) *string { return &o.SessionID }),

		listField("MCP Config", "MCP & Plugins", func(o *models.ClaudeOptions) *[]string { return &o.MCPConfig }),
		toggleField("Strict MCP Config", "", func(o *models.ClaudeOptions) **bool { return &o.StrictMCPConfig }),
		toggleField("MCP Debug", "", func(o *models.ClaudeOptions) **bool { return &o.MCPDebug }),
		listField("Plugin Dirs", "", func(o *models.ClaudeOptions) *[]string { return &o.PluginDirs }),
		toggleField("Disable Slash Commands", "", func(o *models.ClaudeOptions) **bool { return &o.DisableSlashCommands }),

		textField("Agent", "Agents", func(o *models.ClaudeOptions) *string { return &o.Agent }),
		jsonField("Agents JSON", "", func(o *models.ClaudeOptions) *map[string]any { return &o.AgentsJSON }),

		jsonField("JSON Schema", "Output", func(o *models.ClaudeOptions) *map[string]any { return &o.JSONSchema }),
		toggleField("Partial Messages", "", func(o *models.ClaudeOptions) **bool { return &o.IncludePartialMessages }),
		toggleField("Replay User Messages", "", func(o *models.ClaudeOptions) **bool { return &o.ReplayUserMessages }),

		textField("Permission Mode", "Settings", func(o *models.ClaudeOptions) *string { return &o.PermissionMode }),
		listField("Betas", "", func(o *models.ClaudeOptions) *[]string { return &o.Betas }),
		textField("Settings File", "", func(o *models.ClaudeOptions) *string { return &o.SettingsFile }),
		listField("Add Dirs", "", func(o *models.ClaudeOptions) *[]string { return &o.AddDirs }),
		textField("Setting Sources", "", func(o *models.ClaudeOptions) *string { return &o.SettingSources }),
		textField("Debug", "", func(o *models.ClaudeOptions) *string { return &o.Debug }),
		toggleField("IDE", "", func(o *models.ClaudeOptions) **bool { return &o.IDE }),
	)

	f.fields = fields
}

// View renders the options form.
func (f *OptionsForm) View() string {
	if f.agentName == "" {
		return lipgloss.NewStyle().Foreground(colorDim).Render("No agent selected. Press 'a' to pick one.")
	}

	header := lipgloss.NewStyle().Bold(true).Render("Options for ") +
		lipgloss.NewStyle().Foreground(colorCyan).Bold(true).Render(f.agentName)

	var lines []string
	end := f.scroll + f.visibleRows()
	if end > len(f.fields) {
		end = len(f.fields)
	}

	for i := f.scroll; i < end; i++ {
		fld := f.fields[i]
		if fld.group != "" {
			prefix := ""
			if i > f.scroll {
				prefix = "\n"
			}
			lines = append(lines, prefix+optionsGroupStyle.Render(fld.group))
		}
		lines = append(lines, f.renderField(i, fld))
	}

	if f.scroll > 0 {
		lines = append([]string{lipgloss.NewStyle().Foreground(colorDim).Render("▲ more")}, lines...)
	}
	if end < len(f.fields) {
		lines = append(lines, lipgloss.NewStyle().Foreground(colorDim).Render("▼ more"))
	}

	return header + "\n\n" + strings.Join(lines, "\n")
}

func (f *OptionsForm) renderField(i int, fld optionsField) string {
	label := optionsLabelStyle.Render(fld.label + ":")

	var line string
	if fld.kind == fieldToggle {
		var val string
		if fld.getBool(&f.opts) {
			val = optionsToggleOn.Render("[ON]")
		} else {
			val = optionsToggleOff.Render("[off]")
		}
		line = label + " " + val
	} else if f.editing && i == f.cursor {
		line = label + " " + f.input.View()
	} else {
		val := fld.get(&f.opts)
		if val == "" {
			val = lipgloss.NewStyle().Foreground(colorDim).Render("(unset)")
		} else {
			val = optionsValueStyle.Render(val)
		}
		line = label + " " + val
	}

	if i == f.cursor {
		line = optionsCursorStyle.Width(f.width).Render(line)
	}
	return line
}
