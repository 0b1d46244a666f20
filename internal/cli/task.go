package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vdimko/claude-api-controller/internal/models"
	"github.com/vdimko/claude-api-controller/internal/options"
	"github.com/vdimko/claude-api-controller/internal/poll"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage remote task executions",
	Long:  `Submit, inspect, stop, and delete remote agent task executions.`,
}

var (
	taskRunTimeout int
	taskRunNoOpts  bool
	taskRunWait    bool

	taskListAgent string

	taskShowWatch bool

	taskStopYes   bool
	taskDeleteYes bool
)

var taskRunCmd = &cobra.Command{
	Use:   "run <agent> <prompt>",
	Short: "Submit a task",
	Long: `Submit a prompt to an agent and print the assigned task id.

The agent's saved options ride along with the submission unless --no-options
is given. With --wait, the command polls until the task settles.`,
	Args: cobra.ExactArgs(2),
	RunE: runTaskRun,
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	RunE:    runTaskList,
}

var taskShowCmd = &cobra.Command{
	Use:   "show <task-id>",
	Short: "Show task detail",
	Long: `Show the full detail of one task: prompt, result or error, and timing.

With --watch, keeps refreshing until the task reaches a terminal status.`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskShow,
}

var taskStopCmd = &cobra.Command{
	Use:   "stop <task-id>",
	Short: "Stop a running task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskStop,
}

var taskDeleteCmd = &cobra.Command{
	Use:     "delete <task-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task record",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskDelete,
}

func init() {
	taskRunCmd.Flags().IntVar(&taskRunTimeout, "timeout", 0, "execution timeout in seconds (0 = server default)")
	taskRunCmd.Flags().BoolVar(&taskRunNoOpts, "no-options", false, "ignore the agent's saved options")
	taskRunCmd.Flags().BoolVar(&taskRunWait, "wait", false, "wait for the task to settle and print the result")
	taskListCmd.Flags().StringVar(&taskListAgent, "agent", "", "only tasks for this agent")
	taskShowCmd.Flags().BoolVar(&taskShowWatch, "watch", false, "refresh until the task settles")
	taskStopCmd.Flags().BoolVarP(&taskStopYes, "yes", "y", false, "skip confirmation")
	taskDeleteCmd.Flags().BoolVarP(&taskDeleteYes, "yes", "y", false, "skip confirmation")

	taskCmd.AddCommand(taskDeleteCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskRunCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskStopCmd)
}

func runTaskRun(cmd *cobra.Command, args []string) error {
	agent, prompt := args[0], args[1]

	client, err := newClient()
	if err != nil {
		return err
	}

	var opts *models.ClaudeOptions
	if !taskRunNoOpts {
		store, err := newOptionsStore()
		if err != nil {
			return err
		}
		saved := store.Load(agent)
		opts = options.Sanitize(&saved)
	}

	taskID, err := client.CreateTask(cmd.Context(), agent, prompt, taskRunTimeout, opts)
	if err != nil {
		return err
	}

	fmt.Println(styleSuccess.Render("Task submitted: ") + taskID)

	if !taskRunWait {
		fmt.Println(styleHint.Render(fmt.Sprintf("Follow it with 'claudectl task show --watch %s'", taskID)))
		return nil
	}
	return watchTask(cmd.Context(), client, taskID)
}

func runTaskList(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	items, err := client.ListTasks(cmd.Context(), taskListAgent)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No tasks. Run 'claudectl task run <agent> <prompt>' to submit one.")
		return nil
	}

	sortNewestFirst(items)
	for _, it := range items {
		line := fmt.Sprintf("%-10s %-36s %-20s %s",
			statusBadge(it.Status),
			it.TaskID,
			styleLabel.Render(it.AgentName),
			it.PromptPreview,
		)
		if it.DurationSec != nil {
			line += styleLabel.Render(fmt.Sprintf("  (%.1fs)", *it.DurationSec))
		}
		fmt.Println(line)
	}
	return nil
}

// sortNewestFirst matches the TUI's default ordering.
func sortNewestFirst(items []models.TaskListItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return poll.NewestFirst(items[i], items[j])
	})
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	if taskShowWatch {
		return watchTask(cmd.Context(), client, args[0])
	}

	task, err := client.GetTask(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	printTask(task)
	return nil
}

// watchTask polls the detail endpoint until the task settles, printing each
// status transition. Ctrl+C detaches without touching the remote task.
func watchTask(ctx context.Context, client apiClient, taskID string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	var last models.TaskStatus
	ticker := time.NewTicker(poll.DefaultDetailInterval)
	defer ticker.Stop()

	for {
		task, err := client.GetTask(ctx, taskID)
		if err != nil {
			if ctx.Err() != nil {
				fmt.Println(styleHint.Render("\nDetached; the task keeps running."))
				return nil
			}
			return err
		}

		if task.Status != last {
			last = task.Status
			fmt.Printf("%s  %s\n", time.Now().Format("15:04:05"), statusBadge(task.Status))
		}
		if task.Status.IsTerminal() {
			fmt.Println()
			printTask(task)
			return nil
		}

		select {
		case <-ctx.Done():
			fmt.Println(styleHint.Render("\nDetached; the task keeps running."))
			return nil
		case <-ticker.C:
		}
	}
}

// apiClient is the slice of the gateway watchTask needs; it keeps the
// watcher testable.
type apiClient interface {
	GetTask(ctx context.Context, taskID string) (*models.Task, error)
}

func printTask(t *models.Task) {
	fmt.Printf("%s  %s  %s\n", statusBadge(t.Status), styleBrand.Render(t.AgentName), styleLabel.Render(t.TaskID))
	fmt.Println(styleLabel.Render(strings.Repeat("─", 60)))

	fmt.Println(styleValue.Render("Prompt"))
	fmt.Println(indent(t.Prompt))

	if t.Result != "" {
		fmt.Println(styleValue.Render("Result"))
		fmt.Println(indent(t.Result))
	}
	if t.Error != "" {
		fmt.Println(styleError.Render("Error"))
		fmt.Println(indent(t.Error))
	}

	fmt.Println(styleLabel.Render("created  " + t.CreatedAt.Local().Format(time.DateTime)))
	if t.StartedAt != nil {
		fmt.Println(styleLabel.Render("started  " + t.StartedAt.Local().Format(time.DateTime)))
	}
	if t.DurationSec != nil {
		fmt.Println(styleLabel.Render(fmt.Sprintf("duration %.1fs", *t.DurationSec)))
	}
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}

func runTaskStop(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	ok, err := confirm(fmt.Sprintf("Stop task %s?", args[0]), taskStopYes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := client.StopTask(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Println(styleSuccess.Render("Stop requested.") + " " +
		styleHint.Render("The task settles as cancelled on its next poll."))
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	ok, err := confirm(fmt.Sprintf("Delete task %s?", args[0]), taskDeleteYes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := client.DeleteTask(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Task %s deleted.\n", args[0])
	return nil
}
