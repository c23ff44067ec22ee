// Package output handles report serialization for cleaning runs.
package output

import (
	"fmt"
	"io"
)

// Format represents report format types.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FileReport is the per-document entry of a Report.
type FileReport struct {
	Name          string `json:"name" yaml:"name"`
	Charset       string `json:"charset" yaml:"charset"`
	Modifications int    `json:"modifications" yaml:"modifications"`
	DurationMs    int64  `json:"duration_ms" yaml:"duration_ms"`
	Error         string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report summarizes a cleaning run for export.
type Report struct {
	GeneratedAt        string       `json:"generated_at" yaml:"generated_at"`
	Files              []FileReport `json:"files" yaml:"files"`
	TotalFiles         int          `json:"total_files" yaml:"total_files"`
	TotalFailed        int          `json:"total_failed" yaml:"total_failed"`
	TotalModifications int          `json:"total_modifications" yaml:"total_modifications"`
}

// Writer handles report serialization.
type Writer interface {
	// Write buffers a single item.
	Write(data any) error

	// Flush ensures all data is written.
	Flush() error
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatJSON:
		return NewJSONWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: json, yaml)", format)
	}
}
