// Package codec encodes diff reports for output and decodes saved reports.
package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"scandiff/internal/reconcile"
	"scandiff/internal/service"
)

// Importer reads a previously exported report
type Importer interface {
	Parse(r io.Reader) (*service.Report, error)
	Format() string
}

// Exporter writes a report in one output format
type Exporter interface {
	Export(report *service.Report, w io.Writer) error
	Format() string
}

// ExporterFor returns the exporter for a format name (text, json, yaml)
func ExporterFor(format string, color bool) (Exporter, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return NewTextCodec(color), nil
	case "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// ImporterFor picks an importer from a saved report's file extension
func ImporterFor(path string) (Importer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return NewJSONCodec(), nil
	case ".yaml", ".yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("cannot tell report format from %s (want .json, .yaml or .yml)", path)
	}
}

// checkKinds rejects deltas whose kind is not exactly one this build renders.
// Saved reports are hand-editable, so "GONE" or "moved" can turn up on import.
func checkKinds(report *service.Report) error {
	for i, d := range report.Deltas {
		if !knownKind(d.Kind) {
			return fmt.Errorf("delta %d: unknown kind %q", i, d.Kind)
		}
	}
	for _, k := range report.Shown {
		if !knownKind(k) {
			return fmt.Errorf("shown: unknown kind %q", k)
		}
	}
	return nil
}

func knownKind(kind reconcile.DeltaKind) bool {
	for _, k := range reconcile.AllKinds {
		if k == kind {
			return true
		}
	}
	return false
}
