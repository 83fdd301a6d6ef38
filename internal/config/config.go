// Package config provides configuration management for scandiff.
//
// Config file locations (priority order):
//  1. $SCANDIFF_CONFIG
//  2. ./scandiff.yaml
//  3. $XDG_CONFIG_HOME/scandiff/config.yaml
//  4. ~/.config/scandiff/config.yaml
//  5. /etc/scandiff/config.yaml
//
// Command-line flags override values loaded from the file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultWatchDebounce is how long folder mode waits after the last file event
	DefaultWatchDebounce = 2 * time.Second
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults when no config file exists
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatText
	}
	if len(c.ScanDir.Extensions) == 0 {
		c.ScanDir.Extensions = []string{".xml"}
	}
	if c.ScanDir.WatchDebounce == nil {
		d := Duration(DefaultWatchDebounce)
		c.ScanDir.WatchDebounce = &d
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stderr"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 3
	}
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	if !c.Output.Format.Valid() {
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	if c.Log.Output == "file" && c.Log.FilePath == "" {
		return fmt.Errorf("log.file_path is required when log.output is file")
	}
	return nil
}

// WatchDebounce returns the configured debounce for folder watching
func (c *Config) WatchDebounce() time.Duration {
	if c.ScanDir.WatchDebounce == nil {
		return DefaultWatchDebounce
	}
	return c.ScanDir.WatchDebounce.Duration()
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	show := "all"
	if len(c.Output.Show) > 0 {
		show = fmt.Sprintf("%v", c.Output.Show)
	}
	return fmt.Sprintf("Format: %s, Color: %v, Show: %s, Extensions: %v, Log: %s/%s",
		c.Output.Format, c.Output.Color, show, c.ScanDir.Extensions, c.Log.Level, c.Log.Output)
}
