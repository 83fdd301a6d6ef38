package adapter

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// LoaderOption is a functional option for configuring NmapLoader
type LoaderOption func(*NmapLoader)

// WithExtensions sets which file extensions are treated as scans in folder mode
// Format: ".xml" or "xml"; matching is case-insensitive
func WithExtensions(exts ...string) LoaderOption {
	return func(n *NmapLoader) {
		var normalized []string
		for _, ext := range exts {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			normalized = append(normalized, ext)
		}
		if len(normalized) > 0 {
			n.extensions = normalized
		}
	}
}

// WithLogger sets the logger used for progress and skipped files
func WithLogger(log logrus.FieldLogger) LoaderOption {
	return func(n *NmapLoader) {
		if log != nil {
			n.log = log
		}
	}
}
