package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"scandiff/internal/service"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse reads a report from JSON and rejects delta kinds it cannot render
func (c *JSONCodec) Parse(r io.Reader) (*service.Report, error) {
	var report service.Report
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if err := checkKinds(&report); err != nil {
		return nil, fmt.Errorf("invalid JSON report: %w", err)
	}

	return &report, nil
}

// Export writes the report as indented JSON
func (c *JSONCodec) Export(report *service.Report, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
