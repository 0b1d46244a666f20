// Package cli implements the claudectl CLI commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/vdimko/claude-api-controller/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "claudectl",
	Short: "Control remote Claude agent executions",
	Long: `claudectl submits prompts to a remote Claude agent execution server,
follows their lifecycle, and manages per-agent invocation options.

Run without a subcommand to open the interactive TUI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return tui.Run(cfg)
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add subcommands (alphabetical)
	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(versionCmd)
}
