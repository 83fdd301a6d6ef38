package config

import "strings"

// Format selects the report encoding
type Format string

const (
	FormatText Format = "text" // human-readable delta blocks
	FormatJSON Format = "json" // indented JSON document
	FormatYAML Format = "yaml" // YAML document
)

// ParseFormat normalises a user-supplied format name. Empty means FormatText
// and "yml" means FormatYAML; anything else is returned lower-cased so that
// Validate can reject it.
func ParseFormat(s string) Format {
	switch name := strings.ToLower(strings.TrimSpace(s)); name {
	case "":
		return FormatText
	case "yml":
		return FormatYAML
	default:
		return Format(name)
	}
}

// Valid reports whether f is a known format
func (f Format) Valid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}
