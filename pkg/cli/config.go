// Package cli provides configuration and output helpers for the stimkit
// command line tool.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/perceptlab/stimkit/pkg/stim"
)

const (
	// DefaultAppDir is the configuration directory name under the OS
	// config root.
	DefaultAppDir = "stimkit"
	// DefaultConfigFile is the default configuration filename.
	DefaultConfigFile = "config.yaml"
)

// Config is the on-disk configuration for the stimkit CLI.
type Config struct {
	// TransformationHistory toggles provenance recording pipeline-wide.
	// Defaults to true when absent.
	TransformationHistory *bool `yaml:"transformation_history,omitempty"`

	// StoreDir is the BadgerDB directory for the provenance store.
	// Defaults to <config dir>/provenance.
	StoreDir string `yaml:"store_dir,omitempty"`

	// Output is the default output format (yaml, json, table).
	Output string `yaml:"output,omitempty"`

	// configPath is where the config was loaded from.
	configPath string
}

// LoadConfig loads the configuration from the OS config directory,
// creating an empty config file on first use.
func LoadConfig() (*Config, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	return LoadConfigFrom(filepath.Join(root, DefaultAppDir, DefaultConfigFile))
}

// LoadConfigFrom loads the configuration from a custom path.
func LoadConfigFrom(path string) (*Config, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := &Config{configPath: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, cfg.Save()
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.configPath = path
	return cfg, nil
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Path returns the config file path.
func (c *Config) Path() string { return c.configPath }

// Dir returns the config directory path.
func (c *Config) Dir() string { return filepath.Dir(c.configPath) }

// ProvStoreDir returns the provenance store directory, defaulting to a
// subdirectory of the config directory.
func (c *Config) ProvStoreDir() string {
	if c.StoreDir != "" {
		return c.StoreDir
	}
	return filepath.Join(c.Dir(), "provenance")
}

// StimConfig maps the CLI configuration onto the pipeline settings passed
// through the transformation call path.
func (c *Config) StimConfig() *stim.Config {
	enabled := true
	if c.TransformationHistory != nil {
		enabled = *c.TransformationHistory
	}
	return &stim.Config{TransformationHistory: enabled}
}
