package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var agentsCmd = &cobra.Command{
	Use:     "agents",
	Aliases: []string{"agent"},
	Short:   "List available agents",
	Long:    `List the agent definitions the server can run tasks under.`,
	RunE:    runAgents,
}

func runAgents(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	agents, err := client.ListAgents(cmd.Context())
	if err != nil {
		return err
	}
	if len(agents) == 0 {
		fmt.Println("No agents configured on the server.")
		return nil
	}

	for _, a := range agents {
		line := styleBrand.Render(a.Name)
		if a.HasClaudeMD {
			line += "  " + styleLabel.Render("CLAUDE.md")
		}
		fmt.Println(line)
	}
	return nil
}
