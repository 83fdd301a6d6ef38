package codec

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"scandiff/internal/service"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Parse reads a report from YAML and rejects delta kinds it cannot render
func (c *YAMLCodec) Parse(r io.Reader) (*service.Report, error) {
	var report service.Report
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := checkKinds(&report); err != nil {
		return nil, fmt.Errorf("invalid YAML report: %w", err)
	}

	return &report, nil
}

// Export writes the report as YAML
func (c *YAMLCodec) Export(report *service.Report, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
