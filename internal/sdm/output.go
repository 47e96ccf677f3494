package sdm

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format is an output encoding for designs.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// Write encodes a design, or anything else the CLI reports, in the format.
func Write(w io.Writer, format Format, v interface{}) error {
	switch format {
	case JSON:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize output: %w", err)
		}
		if _, err := w.Write(append(out, '\n')); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize output: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}
