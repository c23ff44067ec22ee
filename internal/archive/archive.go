// Package archive bundles cleaned documents into a zip for grouped delivery.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// Entry is one cleaned document to package.
type Entry struct {
	Name    string
	Content string
}

// CleanedName derives the output artifact name from the input name:
// positions.xml -> positions_cleaned.xml.
func CleanedName(name string) string {
	ext := filepath.Ext(name)
	if strings.EqualFold(ext, ".xml") {
		return strings.TrimSuffix(name, ext) + "_cleaned.xml"
	}
	return name + "_cleaned.xml"
}

// DefaultName returns a timestamped archive name for a cleaning run.
func DefaultName(now time.Time) string {
	return "xmlwash_cleaned_" + now.Format("20060102_150405") + ".zip"
}

// Write packages entries into a zip stream. Entry names are used as-is;
// callers derive them with CleanedName.
func Write(w io.Writer, entries []Entry) error {
	zw := zip.NewWriter(w)
	for _, entry := range entries {
		f, err := zw.Create(entry.Name)
		if err != nil {
			return fmt.Errorf("create zip entry %s: %w", entry.Name, err)
		}
		if _, err := io.WriteString(f, entry.Content); err != nil {
			return fmt.Errorf("write zip entry %s: %w", entry.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize zip: %w", err)
	}
	return nil
}
