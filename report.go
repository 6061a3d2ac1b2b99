package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func validateFormat(format string) (string, error) {
	switch f := strings.ToLower(format); f {
	case "", formatTable:
		return formatTable, nil
	case formatJSON, formatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s. Use 'table', 'json' or 'yaml'", format)
	}
}

// renderReport writes the requested views in format. Table output follows the
// interactive layout: the total line only when no table was requested.
func renderReport(w io.Writer, report Report, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("error encoding json report: %w", err)
		}
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("error encoding yaml report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("error encoding yaml report: %w", err)
		}
	default:
		if report.TotalLines != nil {
			renderTotal(w, *report.TotalLines)
		}
		if report.Files != nil {
			renderFileTable(w, *report.Files)
		}
		if report.Directories != nil {
			renderDirectoryTable(w, report.Directories)
		}
	}
	return nil
}
