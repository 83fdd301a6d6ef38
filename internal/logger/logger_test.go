package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scandiff/internal/config"
)

func TestNewLogger_ConsoleOutputs(t *testing.T) {
	tests := []struct {
		name       string
		output     string
		wantStdout bool
	}{
		{name: "stderr", output: "stderr"},
		{name: "default", output: ""},
		{name: "stdout", output: "stdout", wantStdout: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			l, err := newLogger(config.LogConfig{Level: "info", Output: tt.output}, &stdout, &stderr)
			require.NoError(t, err)

			l.Info("hello")
			if tt.wantStdout {
				assert.Contains(t, stdout.String(), "hello")
				assert.Empty(t, stderr.String())
			} else {
				assert.Contains(t, stderr.String(), "hello")
				assert.Empty(t, stdout.String())
			}
			assert.NoError(t, l.Close())
		})
	}
}

func TestNewLogger_Level(t *testing.T) {
	var stderr bytes.Buffer
	l, err := newLogger(config.LogConfig{Level: "warn"}, nil, &stderr)
	require.NoError(t, err)

	assert.Equal(t, logrus.WarnLevel, l.GetLevel())
	l.Info("quiet")
	assert.Empty(t, stderr.String())
	l.Warn("loud")
	assert.Contains(t, stderr.String(), "loud")
}

func TestNewLogger_JSONFormat(t *testing.T) {
	var stderr bytes.Buffer
	l, err := newLogger(config.LogConfig{Level: "info", Format: "json"}, nil, &stderr)
	require.NoError(t, err)

	l.WithField("path", "scan.xml").Info("loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(stderr.Bytes(), &entry))
	assert.Equal(t, "loaded", entry["message"])
	assert.Equal(t, "scan.xml", entry["path"])
	assert.Contains(t, entry, "timestamp")
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "scandiff.log")

	l, err := New(config.LogConfig{Level: "debug", Output: "file", FilePath: path, MaxSizeMB: 1})
	require.NoError(t, err)
	l.Debug("to file")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestNewLogger_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LogConfig
	}{
		{name: "bad level", cfg: config.LogConfig{Level: "loud"}},
		{name: "bad format", cfg: config.LogConfig{Level: "info", Format: "xml"}},
		{name: "bad output", cfg: config.LogConfig{Level: "info", Output: "syslog"}},
		{name: "file without path", cfg: config.LogConfig{Level: "info", Output: "file"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("dropped")
	assert.NoError(t, l.Close())
}
