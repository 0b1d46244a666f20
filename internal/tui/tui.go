// Package tui implements the interactive terminal UI for claudectl.
package tui

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vdimko/claude-api-controller/internal/api"
	"github.com/vdimko/claude-api-controller/internal/config"
	"github.com/vdimko/claude-api-controller/internal/options"
)

// programRef is a shared reference to the tea.Program for goroutine sends.
// It's set after tea.NewProgram but before p.Run().
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) Set(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *programRef) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// Clear nils out the program reference, preventing post-exit sends.
func (r *programRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = nil
}

// Run launches the TUI against the configured API server.
func Run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	client := api.NewClient(cfg)

	if err := config.EnsureGlobalOptionsDir(); err != nil {
		return fmt.Errorf("failed to prepare options directory: %w", err)
	}
	optionsDir, err := config.GlobalOptionsDir()
	if err != nil {
		return fmt.Errorf("failed to resolve options directory: %w", err)
	}
	store := options.NewStore(options.NewFileStorage(optionsDir))

	logger := config.OpenDiagnosticsLog()

	ref := &programRef{}
	model := NewModel(client, store, logger, ref)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	// Store program reference for goroutine sends
	ref.Set(p)

	// The options watcher reloads the agent list when option files change
	// outside the TUI (e.g. via `claudectl options set`).
	if w, err := options.WatchDir(optionsDir); err == nil {
		defer w.Close()
		go func() {
			for range w.Agents() {
				ref.Send(OptionsChangedMsg{})
			}
		}()
	}

	_, err = p.Run()
	return err
}
