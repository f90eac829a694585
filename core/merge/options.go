package merge

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"workbook-merger/core/quality"
)

// SourceOrder controls how input workbooks are ordered before the
// merge. First/last-wins semantics follow this order.
type SourceOrder string

const (
	// OrderAsSupplied keeps the caller's order.
	OrderAsSupplied SourceOrder = "as_supplied"
	// OrderByName sorts sources by workbook name.
	OrderByName SourceOrder = "by_name"
	// OrderByLastWord sorts by the last whitespace-separated word of
	// the workbook name (contributor files often end in a sequence
	// token).
	OrderByLastWord SourceOrder = "by_last_word"
)

// ParseSourceOrder converts a user-supplied order name.
func ParseSourceOrder(s string) (SourceOrder, error) {
	switch SourceOrder(strings.ToLower(strings.TrimSpace(s))) {
	case OrderAsSupplied:
		return OrderAsSupplied, nil
	case OrderByName:
		return OrderByName, nil
	case OrderByLastWord:
		return OrderByLastWord, nil
	default:
		return "", fmt.Errorf("unknown source order %q", s)
	}
}

// Options is the human-chosen merge configuration. It round-trips
// through JSON so a configuration can be saved and reused across
// sessions.
type Options struct {
	// HeaderRow treats the first row of every sheet as headers.
	HeaderRow bool `json:"header_row"`

	// Sheets restricts which sheets of each workbook are read.
	Sheets []string `json:"sheets,omitempty"`

	// KeyColumns identify a logical row across sources. Empty means
	// no deduplication: rows are concatenated in source order.
	KeyColumns []string `json:"key_columns,omitempty"`

	// Policy resolves value conflicts within a key group.
	Policy Policy `json:"policy"`

	// SourceColumn prepends a column naming the workbook(s) each
	// merged row came from.
	SourceColumn bool `json:"source_column"`

	// Order arranges sources before merging.
	Order SourceOrder `json:"order"`

	// Quality optionally validates the merged rows.
	Quality *quality.Schema `json:"quality,omitempty"`
}

// DefaultOptions returns the merge defaults: headers on, first wins,
// sources in supplied order.
func DefaultOptions() Options {
	return Options{
		HeaderRow: true,
		Policy:    PolicyFirstWins,
		Order:     OrderAsSupplied,
	}
}

// Validate rejects unknown policy and order names and key columns that
// are blank.
func (o Options) Validate() error {
	if _, err := ParsePolicy(string(o.Policy)); err != nil {
		return err
	}
	if _, err := ParseSourceOrder(string(o.Order)); err != nil {
		return err
	}
	for _, kc := range o.KeyColumns {
		if strings.TrimSpace(kc) == "" {
			return fmt.Errorf("blank key column name")
		}
	}
	return nil
}

// LoadOptions reads a saved merge configuration. Fields absent from
// the JSON keep their defaults.
func LoadOptions(r io.Reader) (Options, error) {
	o := DefaultOptions()
	if err := json.NewDecoder(r).Decode(&o); err != nil {
		return Options{}, fmt.Errorf("parse merge options: %w", err)
	}
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

// Save writes the configuration as indented JSON, the format LoadOptions
// reads back.
func (o Options) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(o); err != nil {
		return fmt.Errorf("save merge options: %w", err)
	}
	return nil
}
