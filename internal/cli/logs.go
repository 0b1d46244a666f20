package cli

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vdimko/claude-api-controller/internal/config"
	"github.com/vdimko/claude-api-controller/internal/models"
	"github.com/vdimko/claude-api-controller/internal/poll"
)

var (
	logsAgent  string
	logsLimit  int
	logsFollow bool
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show server logs",
	Long: `Show the most recent server log records, newest first.

With --follow, keeps polling and prints records as they appear.`,
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().StringVar(&logsAgent, "agent", "", "only records for this agent")
	logsCmd.Flags().IntVar(&logsLimit, "limit", 0, "number of records (default 50)")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "keep polling for new records")
}

func runLogs(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	if !logsFollow {
		logs, err := client.ListLogs(cmd.Context(), logsAgent, logsLimit)
		if err != nil {
			return err
		}
		// The server returns newest first; a terminal reads best oldest
		// first.
		for i := len(logs) - 1; i >= 0; i-- {
			printLog(logs[i])
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	// Follow mode rides the same synchronizer the TUI uses and diffs
	// consecutive snapshots by log id.
	updates := make(chan struct{}, 1)
	sync := poll.NewLogSync(client, poll.LogConfig{
		Filter: logsAgent,
		Limit:  logsLimit,
		Logger: config.OpenDiagnosticsLog(),
		Notify: func() {
			select {
			case updates <- struct{}{}:
			default:
			}
		},
	})
	sync.Start()
	defer sync.Stop()

	seen := make(map[string]bool)
	first := true
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-updates:
		}

		snap := sync.Snapshot()
		if snap.Err != nil && first {
			return snap.Err
		}
		for i := len(snap.Logs) - 1; i >= 0; i-- {
			rec := snap.Logs[i]
			if seen[rec.LogID] {
				continue
			}
			seen[rec.LogID] = true
			printLog(rec)
		}
		first = false
	}
}

func printLog(rec models.Log) {
	fmt.Printf("%s %s %s  %s\n",
		styleLabel.Render(rec.Timestamp.Local().Format("15:04:05")),
		levelBadge(rec.Level),
		styleLabel.Render(rec.AgentName),
		rec.Message,
	)
}
