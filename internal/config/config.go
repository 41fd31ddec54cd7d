// Package config handles reading and writing ~/.docuchat/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for config.yaml.
type Config struct {
	// APIURL is the base origin of the DocuChat HTTP gateway.
	APIURL string `yaml:"api_url"`
	// WSURL is the origin of the indexing-progress push channel.
	WSURL string `yaml:"ws_url"`
	// MockSub is the subject identifier used while no real identity
	// provider is configured (mock OIDC).
	MockSub string `yaml:"mock_sub"`
}

// Environment variables overriding the file values.
const (
	EnvAPIURL  = "DOCUCHAT_API_URL"
	EnvWSURL   = "DOCUCHAT_WS_URL"
	EnvMockSub = "DOCUCHAT_MOCK_SUB"
)

const configDirName = ".docuchat"
const configFile = "config.yaml"

// Dir returns the docuchat state directory (~/.docuchat), creating it if
// it does not already exist.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	dir := filepath.Join(home, configDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating state directory: %w", err)
	}
	return dir, nil
}

// ReadConfig reads config.yaml from the given state directory.
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// WriteConfig writes cfg to config.yaml in the given state directory.
// Creates the directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dir, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with the mock-OIDC development
// defaults.
func DefaultConfig() *Config {
	return &Config{
		APIURL:  "http://localhost:8000/api",
		WSURL:   "ws://localhost/ws/progress",
		MockSub: "mock-user",
	}
}

// LoadFrom resolves the effective configuration for a given state
// directory: defaults, overlaid by config.yaml when present, overlaid by
// DOCUCHAT_* environment variables. A missing config file is not an error.
func LoadFrom(dir string) (*Config, error) {
	cfg := DefaultConfig()

	file, err := ReadConfig(dir)
	switch {
	case err == nil:
		if file.APIURL != "" {
			cfg.APIURL = file.APIURL
		}
		if file.WSURL != "" {
			cfg.WSURL = file.WSURL
		}
		if file.MockSub != "" {
			cfg.MockSub = file.MockSub
		}
	case errors.Is(err, os.ErrNotExist):
		// Defaults stand.
	default:
		return nil, err
	}

	applyEnv(cfg)
	return cfg, nil
}

// Load is LoadFrom rooted at the user's state directory.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(dir)
}

// applyEnv overlays DOCUCHAT_* environment variables onto cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv(EnvWSURL); v != "" {
		cfg.WSURL = v
	}
	if v := os.Getenv(EnvMockSub); v != "" {
		cfg.MockSub = v
	}
}
