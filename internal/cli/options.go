package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vdimko/claude-api-controller/internal/models"
	"github.com/vdimko/claude-api-controller/internal/options"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Manage per-agent invocation options",
	Long: `Manage the invocation options saved locally for each agent.

Options are attached to every task submission for that agent, after
sanitizing: empty values and UI-only fields never reach the server.`,
}

var optionsShowCmd = &cobra.Command{
	Use:   "show <agent>",
	Short: "Show an agent's saved options",
	Args:  cobra.ExactArgs(1),
	RunE:  runOptionsShow,
}

var optionsSetCmd = &cobra.Command{
	Use:   "set <agent> <field> <value>",
	Short: "Set one option field",
	Long: `Set one option field for an agent. Fields use their wire names, e.g.:

  claudectl options set reviewer model claude-sonnet-4-5
  claudectl options set reviewer allowed_tools "Read, Grep, Bash"
  claudectl options set reviewer verbose true
  claudectl options set reviewer json_schema '{"type":"object"}'

Setting system_prompt turns the CLAUDE.md override on; setting
override_claude_md to false clears the system prompt with it.`,
	Args: cobra.ExactArgs(3),
	RunE: runOptionsSet,
}

var optionsUnsetCmd = &cobra.Command{
	Use:   "unset <agent> <field>",
	Short: "Clear one option field",
	Args:  cobra.ExactArgs(2),
	RunE:  runOptionsUnset,
}

var optionsClearYes bool

var optionsClearCmd = &cobra.Command{
	Use:   "clear <agent>",
	Short: "Remove all saved options for an agent",
	Args:  cobra.ExactArgs(1),
	RunE:  runOptionsClear,
}

func init() {
	optionsClearCmd.Flags().BoolVarP(&optionsClearYes, "yes", "y", false, "skip confirmation")

	optionsCmd.AddCommand(optionsClearCmd)
	optionsCmd.AddCommand(optionsSetCmd)
	optionsCmd.AddCommand(optionsShowCmd)
	optionsCmd.AddCommand(optionsUnsetCmd)
}

func runOptionsShow(cmd *cobra.Command, args []string) error {
	store, err := newOptionsStore()
	if err != nil {
		return err
	}

	opts := store.Load(args[0])
	data, err := yaml.Marshal(opts)
	if err != nil {
		return err
	}
	if strings.TrimSpace(string(data)) == "{}" {
		fmt.Printf("No options saved for %s.\n", args[0])
		return nil
	}

	fmt.Println(styleBrand.Render(args[0]))
	fmt.Print(string(data))

	if sanitized := options.Sanitize(&opts); sanitized == nil {
		fmt.Println(styleHint.Render("\nNothing here survives sanitizing; submissions go out without options."))
	}
	return nil
}

func runOptionsSet(cmd *cobra.Command, args []string) error {
	agent, field, value := args[0], args[1], args[2]

	store, err := newOptionsStore()
	if err != nil {
		return err
	}

	opts := store.Load(agent)
	if err := setOptionField(&opts, field, value); err != nil {
		return err
	}
	store.Save(agent, opts)

	fmt.Printf("%s %s.%s\n", styleSuccess.Render("Set"), agent, field)
	return nil
}

func runOptionsUnset(cmd *cobra.Command, args []string) error {
	agent, field := args[0], args[1]

	store, err := newOptionsStore()
	if err != nil {
		return err
	}

	opts := store.Load(agent)
	if err := unsetOptionField(&opts, field); err != nil {
		return err
	}
	store.Save(agent, opts)

	fmt.Printf("%s %s.%s\n", styleSuccess.Render("Cleared"), agent, field)
	return nil
}

func runOptionsClear(cmd *cobra.Command, args []string) error {
	store, err := newOptionsStore()
	if err != nil {
		return err
	}

	ok, err := confirm(fmt.Sprintf("Clear all options for %s?", args[0]), optionsClearYes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Cancelled.")
		return nil
	}

	store.Save(args[0], models.ClaudeOptions{})
	fmt.Printf("Options for %s cleared.\n", args[0])
	return nil
}

// setOptionField routes a wire-name field edit through the options blob.
// The blob round-trips through JSON so the field registry is the struct's
// own tags rather than a parallel list.
func setOptionField(opts *models.ClaudeOptions, field, value string) error {
	kind, ok := optionFieldKinds[field]
	if !ok {
		return unknownFieldError(field)
	}

	// The override toggle and the gated system prompt get their invariant
	// maintained here, same as the TUI form.
	if field == "override_claude_md" {
		on, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s takes true or false", field)
		}
		opts.SetClaudeMDOverride(on)
		return nil
	}

	var parsed any
	switch kind {
	case "string":
		parsed = value
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s takes true or false", field)
		}
		parsed = b
	case "list":
		parsed = options.ParseList(value)
	case "json":
		var m map[string]any
		if err := json.Unmarshal([]byte(value), &m); err != nil {
			return fmt.Errorf("%s takes a JSON object: %w", field, err)
		}
		parsed = m
	}

	if err := patchOptions(opts, field, parsed); err != nil {
		return err
	}
	if field == "system_prompt" && value != "" {
		opts.SetClaudeMDOverride(true)
	}
	return nil
}

func unsetOptionField(opts *models.ClaudeOptions, field string) error {
	if _, ok := optionFieldKinds[field]; !ok {
		return unknownFieldError(field)
	}
	if field == "override_claude_md" || field == "system_prompt" {
		// Dropping either side drops both; a stray system_prompt with the
		// override off would violate the gating invariant.
		opts.SetClaudeMDOverride(false)
		return nil
	}
	return patchOptions(opts, field, nil)
}

// patchOptions applies {field: value} (or removes field when value is nil)
// to the JSON form of the options and decodes back.
func patchOptions(opts *models.ClaudeOptions, field string, value any) error {
	raw, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}
	if m == nil {
		m = map[string]any{}
	}

	if value == nil {
		delete(m, field)
	} else {
		m[field] = value
	}

	patched, err := json.Marshal(m)
	if err != nil {
		return err
	}
	var next models.ClaudeOptions
	if err := json.Unmarshal(patched, &next); err != nil {
		return fmt.Errorf("invalid value for %s: %w", field, err)
	}
	*opts = next
	return nil
}

// optionFieldKinds maps wire field names to their edit syntax.
var optionFieldKinds = map[string]string{
	"verbose":        "bool",
	"output_format":  "string",
	"input_format":   "string",
	"model":          "string",
	"fallback_model": "string",

	"override_claude_md":   "bool",
	"system_prompt":        "string",
	"append_system_prompt": "string",

	"json_schema":              "json",
	"include_partial_messages": "bool",

	"allowed_tools":                      "list",
	"disallowed_tools":                   "list",
	"tools":                              "list",
	"dangerously_skip_permissions":       "bool",
	"allow_dangerously_skip_permissions": "bool",

	"continue":       "bool",
	"resume_session": "string",
	"fork_session":   "bool",
	"session_id":     "string",

	"mcp_config":             "list",
	"strict_mcp_config":      "bool",
	"mcp_debug":              "bool",
	"plugin_dirs":            "list",
	"disable_slash_commands": "bool",

	"agent":       "string",
	"agents_json": "json",

	"permission_mode": "string",
	"betas":           "list",
	"settings_file":   "string",
	"add_dirs":        "list",
	"setting_sources": "string",

	"debug": "string",
	"ide":   "bool",

	"replay_user_messages": "bool",
}

func unknownFieldError(field string) error {
	known := make([]string, 0, len(optionFieldKinds))
	for k := range optionFieldKinds {
		known = append(known, k)
	}
	sort.Strings(known)
	return fmt.Errorf("unknown field %q; known fields: %s", field, strings.Join(known, ", "))
}
