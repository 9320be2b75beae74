package api

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Format selects how CLI commands render structured responses.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var outputFormat = FormatYAML

// SetOutputFormat sets the process-wide output format from the --output flag.
// Unrecognized values fall back to YAML.
func SetOutputFormat(format string) {
	if Format(format) == FormatJSON {
		outputFormat = FormatJSON
		return
	}
	outputFormat = FormatYAML
}

// Output renders data to stdout in the configured format.
func Output(data any) error {
	return Fprint(os.Stdout, outputFormat, data)
}

// Fprint renders data to w in the given format.
func Fprint(w io.Writer, format Format, data any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
