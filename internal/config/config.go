package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable overrides, applied once at load time.
const (
	EnvAPIURL = "CLAUDECTL_API_URL"
	EnvAPIKey = "CLAUDECTL_API_KEY"
)

// DefaultBaseURL is used when neither config file nor environment set one.
const DefaultBaseURL = "http://localhost:8000/api"

// Config holds the client configuration. It is constructed once at startup
// and passed by value into the request gateway; nothing reads the
// environment after Load returns.
type Config struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`

	// RequestTimeoutSec bounds a single HTTP request. Zero means no
	// transport-level timeout; synchronizers impose none of their own.
	RequestTimeoutSec int `yaml:"request_timeout_sec,omitempty"`
}

// NewConfig creates a config with default values.
func NewConfig() *Config {
	return &Config{
		BaseURL:           DefaultBaseURL,
		RequestTimeoutSec: 30,
	}
}

// RequestTimeout returns the per-request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// Validate checks the config is usable for network calls.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("base_url is required")
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("api_key is required (set it in config.yaml or %s)", EnvAPIKey)
	}
	return nil
}

// Load reads ~/.claudectl/config.yaml, falling back to defaults when the
// file is missing, then applies environment overrides.
func Load() (*Config, error) {
	path, err := GlobalConfigFile()
	if err != nil {
		return nil, err
	}

	cfg := NewConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// No file yet; defaults plus environment is a valid setup.
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}

	return cfg, nil
}

// Save writes the config to ~/.claudectl/config.yaml, creating the dotdir
// on first use.
func Save(cfg *Config) error {
	path, err := GlobalConfigFile()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	// 0600: the file carries the API key.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
