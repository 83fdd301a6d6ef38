// Package logger builds the logrus logger used across scandiff from LogConfig.
//
// Logs never go to stdout by default: stdout carries the report.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"scandiff/internal/config"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Logger is a configured logrus logger that may own a rotating log file
type Logger struct {
	*logrus.Logger
	file *lumberjack.Logger
}

// New creates a logger from cfg writing console output to os.Stdout / os.Stderr
func New(cfg config.LogConfig) (*Logger, error) {
	return newLogger(cfg, os.Stdout, os.Stderr)
}

func newLogger(cfg config.LogConfig, stdout, stderr io.Writer) (*Logger, error) {
	l := &Logger{Logger: logrus.New()}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	l.SetLevel(level)

	if err := setFormatter(l.Logger, cfg.Format); err != nil {
		return nil, err
	}
	if err := l.setOutput(cfg, stdout, stderr); err != nil {
		return nil, err
	}
	return l, nil
}

func setFormatter(logger *logrus.Logger, format string) error {
	switch strings.ToLower(format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: timestampFormat,
			FullTimestamp:   true,
		})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	default:
		return fmt.Errorf("unsupported log format: %s", format)
	}
	return nil
}

func (l *Logger) setOutput(cfg config.LogConfig, stdout, stderr io.Writer) error {
	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		l.SetOutput(stderr)
	case "stdout":
		l.SetOutput(stdout)
	case "file":
		if cfg.FilePath == "" {
			return fmt.Errorf("file path is required when output is file")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		l.file = &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		l.SetOutput(l.file)
	default:
		return fmt.Errorf("unsupported log output: %s", cfg.Output)
	}
	return nil
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	l := &Logger{Logger: logrus.New()}
	l.SetOutput(io.Discard)
	return l
}
