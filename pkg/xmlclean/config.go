// Package xmlclean clears known sentinel values from scoped blocks of an
// XML document. It parses the document into a tree, walks every container
// block, empties the designated fields whose text matches their sentinel
// exactly, and re-serializes with everything else preserved.
package xmlclean

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldRule pairs a designated field tag with the sentinel value that
// triggers clearing. Matching is exact: no trimming, no case folding.
type FieldRule struct {
	Field    string `json:"field" yaml:"field" validate:"required"`
	Sentinel string `json:"sentinel" yaml:"sentinel" validate:"required"`
}

// Config defines which container block is walked and which of its direct
// children are cleared. Tags are matched by local name, so namespace
// prefixes (ns0:PositionStatus) do not affect matching.
type Config struct {
	// Container is the local name of the repeating block that scopes
	// field lookups. Fields outside a container are never touched.
	Container string `json:"container" yaml:"container" validate:"required"`

	// Rules lists the designated fields. Each rule checks at most one
	// direct child per container block.
	Rules []FieldRule `json:"rules" yaml:"rules" validate:"min=1,dive"`
}

// DefaultConfig returns the vocabulary this tool ships with: clear
// Code fields holding "6A" and Description fields holding "Ouvriers"
// inside every PositionStatus block.
func DefaultConfig() *Config {
	return &Config{
		Container: "PositionStatus",
		Rules: []FieldRule{
			{Field: "Code", Sentinel: "6A"},
			{Field: "Description", Sentinel: "Ouvriers"},
		},
	}
}

var validate = validator.New()

// Validate checks that the config names a container and at least one rule.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid cleaning config: %w", err)
	}
	return nil
}
