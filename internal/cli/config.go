package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vdimko/claude-api-controller/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage claudectl configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file interactively",
	Long: `Create ~/.claudectl/config.yaml, prompting for the server URL and
API key. Existing values are shown as defaults and kept on empty input.`,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("Server URL [%s]: ", cfg.BaseURL)
	if v, err := readLine(reader); err != nil {
		return err
	} else if v != "" {
		cfg.BaseURL = v
	}

	keyPrompt := "API key: "
	if cfg.APIKey != "" {
		keyPrompt = fmt.Sprintf("API key [%s]: ", maskKey(cfg.APIKey))
	}
	fmt.Print(keyPrompt)
	if v, err := readLine(reader); err != nil {
		return err
	} else if v != "" {
		cfg.APIKey = v
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	if err := config.EnsureGlobalOptionsDir(); err != nil {
		return err
	}

	path, err := config.GlobalConfigFile()
	if err != nil {
		return err
	}
	fmt.Printf("%s %s\n", styleSuccess.Render("Saved"), path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	path, err := config.GlobalConfigFile()
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", styleLabel.Render("Config file:"), path)
	fmt.Printf("%s %s\n", styleLabel.Render("Server URL:"), cfg.BaseURL)
	key := styleHint.Render("(not set)")
	if cfg.APIKey != "" {
		key = maskKey(cfg.APIKey)
	}
	fmt.Printf("%s %s\n", styleLabel.Render("API key:"), key)
	fmt.Printf("%s %ds\n", styleLabel.Render("Request timeout:"), cfg.RequestTimeoutSec)

	if err := cfg.Validate(); err != nil {
		fmt.Printf("\n%s %v\n", styleWarning.Render("⚠"), err)
	}
	return nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// maskKey keeps enough of the key to recognize it without echoing it whole.
func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "…" + key[len(key)-4:]
}
