package quality

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ColumnType names the cell kind a rule expects.
type ColumnType string

const (
	TypeText   ColumnType = "text"
	TypeNumber ColumnType = "number"
	TypeBool   ColumnType = "bool"
	TypeDate   ColumnType = "date"
)

// Rule declares the quality requirements for one column. Zero-value
// fields are unchecked: a rule with only a Column name accepts
// anything.
type Rule struct {
	// Column is matched against unified headers, trimmed and
	// case-folded.
	Column string `json:"column"`

	// Type restricts the cell kind; empty cells pass unless Required.
	Type ColumnType `json:"type,omitempty"`

	// Required rejects empty cells.
	Required bool `json:"required,omitempty"`

	// Min and Max bound numeric values, inclusive.
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`

	// In lists the allowed values in their string form.
	In []string `json:"in,omitempty"`
}

// Schema is an ordered set of column rules, loadable from JSON so a
// merge configuration can carry its validation profile.
type Schema struct {
	Rules []Rule `json:"rules"`
}

// LoadSchema reads a JSON quality schema.
func LoadSchema(r io.Reader) (*Schema, error) {
	var s Schema
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("parse quality schema: %w", err)
	}
	for i, rule := range s.Rules {
		if strings.TrimSpace(rule.Column) == "" {
			return nil, fmt.Errorf("quality schema: rule %d has no column", i+1)
		}
		switch rule.Type {
		case "", TypeText, TypeNumber, TypeBool, TypeDate:
		default:
			return nil, fmt.Errorf("quality schema: rule %q has unknown type %q", rule.Column, rule.Type)
		}
	}
	return &s, nil
}
