// Package parsers reads point files for bulk import.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// Parser reads point objects in the shape upsert_points accepts: each element
// is a map with "id" and optional "vector", "text" and "payload".
type Parser interface {
	Parse(r io.Reader) ([]any, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	return ForFormat(strings.TrimPrefix(filepath.Ext(filename), "."))
}
