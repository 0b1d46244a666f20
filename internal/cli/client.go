package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/vdimko/claude-api-controller/internal/api"
	"github.com/vdimko/claude-api-controller/internal/config"
	"github.com/vdimko/claude-api-controller/internal/options"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w (run 'claudectl config init')", err)
	}
	return cfg, nil
}

func newClient() (*api.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return api.NewClient(cfg), nil
}

func newOptionsStore() (*options.Store, error) {
	if err := config.EnsureGlobalOptionsDir(); err != nil {
		return nil, fmt.Errorf("failed to prepare options directory: %w", err)
	}
	dir, err := config.GlobalOptionsDir()
	if err != nil {
		return nil, err
	}
	return options.NewStore(options.NewFileStorage(dir)), nil
}

// confirm asks for interactive confirmation of a destructive action. With
// yes set it passes immediately; without a TTY on stdin it refuses rather
// than hang a script.
func confirm(prompt string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, fmt.Errorf("refusing destructive action without a terminal; pass --yes to confirm")
	}

	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
