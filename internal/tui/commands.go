package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vdimko/claude-api-controller/internal/api"
	"github.com/vdimko/claude-api-controller/internal/models"
)

const requestTimeout = 10 * time.Second

func loadAgentsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		agents, err := client.ListAgents(ctx)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to load agents: %w", err)}
		}
		return AgentsLoadedMsg{Agents: agents}
	}
}

func createTaskCmd(client *api.Client, agentName, prompt string, timeoutSec int, opts *models.ClaudeOptions) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		taskID, err := client.CreateTask(ctx, agentName, prompt, timeoutSec, opts)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to submit task: %w", err)}
		}
		return TaskCreatedMsg{TaskID: taskID}
	}
}

func stopTaskCmd(client *api.Client, taskID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := client.StopTask(ctx, taskID); err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to stop task: %w", err)}
		}
		return TaskStoppedMsg{TaskID: taskID}
	}
}

func deleteTaskCmd(client *api.Client, taskID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := client.DeleteTask(ctx, taskID); err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to delete task: %w", err)}
		}
		return TaskDeletedMsg{TaskID: taskID}
	}
}

func clearErrorAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}

func clearSavedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearSavedMsg{}
	})
}

func spinnerTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(_ time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}
