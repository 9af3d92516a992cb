package main

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/amonks/focus/internal/validation"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errInvalidFormat = errors.New("invalid format")

// outputFormat is a pflag.Value for --format.
type outputFormat string

const (
	formatTable outputFormat = "table"
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
)

func validFormats() []outputFormat {
	return []outputFormat{formatTable, formatJSON, formatYAML}
}

func (f *outputFormat) String() string {
	if *f == "" {
		return string(formatTable)
	}
	return string(*f)
}

func (f *outputFormat) Type() string { return "format" }

func (f *outputFormat) Set(value string) error {
	for _, valid := range validFormats() {
		if outputFormat(value) == valid {
			*f = valid
			return nil
		}
	}
	return validation.FormatInvalidValueError(errInvalidFormat, outputFormat(value), validFormats())
}

func addFormatFlag(cmd *cobra.Command, target *outputFormat) {
	cmd.Flags().VarP(target, "format", "o", "Output format (table, json, yaml)")
}

// writeStructured encodes value as JSON or YAML. It reports false for the
// table format so the caller can render its own view.
func writeStructured(w io.Writer, format outputFormat, value any) (bool, error) {
	switch format {
	case formatJSON:
		return true, encodeJSON(w, value)
	case formatYAML:
		return true, encodeYAML(w, value)
	default:
		return false, nil
	}
}

func encodeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func encodeYAML(w io.Writer, value any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(value); err != nil {
		return err
	}
	return enc.Close()
}
