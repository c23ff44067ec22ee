package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestNewWriter_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, FormatJSON)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	if _, ok := w.(*JSONWriter); !ok {
		t.Errorf("expected *JSONWriter, got %T", w)
	}
}

func TestNewWriter_YAML(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, FormatYAML)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}

	if _, ok := w.(*YAMLWriter); !ok {
		t.Errorf("expected *YAMLWriter, got %T", w)
	}
}

func TestNewWriter_UnsupportedFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	_, err := NewWriter(buf, Format("unsupported"))
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func sampleReport() Report {
	return Report{
		GeneratedAt: "2025-01-02T15:04:05Z",
		Files: []FileReport{
			{Name: "a.xml", Charset: "utf-8", Modifications: 2, DurationMs: 3},
			{Name: "b.xml", Charset: "iso-8859-1", Error: "malformed document: unexpected EOF"},
		},
		TotalFiles:         1,
		TotalFailed:        1,
		TotalModifications: 2,
	}
}

func TestJSONWriter_Report(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewJSONWriter(buf)

	if err := w.Write(sampleReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got Report
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if got.TotalModifications != 2 {
		t.Errorf("total_modifications = %d, want 2", got.TotalModifications)
	}
	if len(got.Files) != 2 {
		t.Errorf("files = %d, want 2", len(got.Files))
	}
	if !strings.Contains(buf.String(), "malformed document") {
		t.Error("failed file error should appear in the report")
	}
}

func TestYAMLWriter_Report(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewYAMLWriter(buf)

	if err := w.Write(sampleReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got Report
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, buf.String())
	}
	if got.TotalFailed != 1 {
		t.Errorf("total_failed = %d, want 1", got.TotalFailed)
	}
	if got.Files[0].Name != "a.xml" {
		t.Errorf("first file = %q, want a.xml", got.Files[0].Name)
	}
}
