package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version int           `yaml:"version"`
	Output  OutputConfig  `yaml:"output"`
	ScanDir ScanDirConfig `yaml:"scan_dir"`
	Log     LogConfig     `yaml:"log"`
}

// OutputConfig controls how reports are written
type OutputConfig struct {
	Format Format   `yaml:"format"`         // text, json, yaml
	Color  bool     `yaml:"color"`          // styled headers for text output
	Show   []string `yaml:"show,omitempty"` // delta kinds to include; empty = all
}

// ScanDirConfig controls folder mode
type ScanDirConfig struct {
	Extensions    []string  `yaml:"extensions,omitempty"`
	WatchDebounce *Duration `yaml:"watch_debounce,omitempty"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level      string `yaml:"level"`                 // debug, info, warn, error
	Format     string `yaml:"format"`                // text, json
	Output     string `yaml:"output"`                // stdout, stderr, file
	FilePath   string `yaml:"file_path,omitempty"`   // required when output is file
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"` // rotation threshold
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty"`
	Compress   bool   `yaml:"compress,omitempty"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
