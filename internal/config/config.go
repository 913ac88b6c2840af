// Package config loads application configuration from an optional YAML
// file and the environment. Environment values win over file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	taskFileName   = "tasks.json"
	memoryFileName = "memory.json"
)

// Config holds everything the process needs at startup.
type Config struct {
	// APIKey authorizes calls to the language-model service. Required;
	// its absence is a fatal startup error.
	APIKey string `yaml:"api_key"`

	// Model overrides the default model name.
	Model string `yaml:"model"`

	// DataDir holds the task file, memory file, and shell history.
	// Defaults to ~/.smarttodo.
	DataDir string `yaml:"data_dir"`

	// LogLevel is one of debug, info, warn, error. Defaults to info.
	LogLevel string `yaml:"log_level"`
}

// Load reads the default config file location (~/.smarttodo.yaml) if it
// exists, then applies environment overrides.
func Load() (*Config, error) {
	path := ""
	if home, err := os.UserHomeDir(); err == nil {
		path = filepath.Join(home, ".smarttodo.yaml")
	}
	return LoadFrom(path)
}

// LoadFrom is Load with an explicit config file path. A missing file is
// fine; a present but unreadable or invalid one is an error.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{LogLevel: "info"}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// No config file; env and defaults apply.
		case err != nil:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("SMARTTODO_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("SMARTTODO_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("SMARTTODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".smarttodo")
	}

	return cfg, nil
}

// Validate checks that required settings are present. Called once at
// startup, before any menu output.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY not set")
	}
	return nil
}

// TaskPath returns the task file location.
func (c *Config) TaskPath() string {
	return filepath.Join(c.DataDir, taskFileName)
}

// MemoryPath returns the memory file location.
func (c *Config) MemoryPath() string {
	return filepath.Join(c.DataDir, memoryFileName)
}
