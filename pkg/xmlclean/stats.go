package xmlclean

import (
	"fmt"
	"strings"
	"time"
)

// Stats captures metrics about one cleaning pass.
type Stats struct {
	// Size metrics
	InputBytes  int `json:"input_bytes"`
	OutputBytes int `json:"output_bytes"`

	// Structure counts
	Blocks        int            `json:"blocks"`         // container blocks visited
	FieldsCleared map[string]int `json:"fields_cleared"` // field tag -> count

	// Timing
	ParseDuration     time.Duration `json:"parse_duration_ms"`
	MutateDuration    time.Duration `json:"mutate_duration_ms"`
	SerializeDuration time.Duration `json:"serialize_duration_ms"`
	TotalDuration     time.Duration `json:"total_duration_ms"`
}

// NewStats creates a Stats instance with initialized maps.
func NewStats() *Stats {
	return &Stats{
		FieldsCleared: make(map[string]int),
	}
}

// RecordClear records that a designated field was emptied.
func (s *Stats) RecordClear(field string) {
	s.FieldsCleared[field]++
}

// TotalCleared returns the sum of all cleared fields.
func (s *Stats) TotalCleared() int {
	total := 0
	for _, count := range s.FieldsCleared {
		total += count
	}
	return total
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Size: %d -> %d bytes\n", s.InputBytes, s.OutputBytes))
	sb.WriteString(fmt.Sprintf("Blocks: %d visited, %d fields cleared\n",
		s.Blocks, s.TotalCleared()))

	if len(s.FieldsCleared) > 0 {
		sb.WriteString("Cleared by field: ")
		parts := make([]string, 0, len(s.FieldsCleared))
		for field, count := range s.FieldsCleared {
			parts = append(parts, fmt.Sprintf("%s=%d", field, count))
		}
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Timing: parse=%v, mutate=%v, serialize=%v, total=%v\n",
		s.ParseDuration.Round(time.Microsecond),
		s.MutateDuration.Round(time.Microsecond),
		s.SerializeDuration.Round(time.Microsecond),
		s.TotalDuration.Round(time.Microsecond)))

	return sb.String()
}
