package merge

import (
	"fmt"
	"strings"

	"workbook-merger/core/workbook"
)

// Column is one unified schema column. Norm is the matching identity
// (trimmed, case-folded); Display keeps the casing of the header's
// first appearance for the output workbook.
type Column struct {
	Display string `json:"display"`
	Norm    string `json:"norm"`
}

// NormalizeHeader produces the matching form of a header string.
func NormalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Schema is the unified column set spanning all input sheets, in order
// of first appearance, plus a per-sheet mapping from unified column
// index to that sheet's source column index (-1 when absent).
type Schema struct {
	Columns []Column `json:"columns"`

	// Mappings is indexed by input sheet position, matching the order
	// the sheets were supplied to Align.
	Mappings [][]int `json:"-"`
}

// Index returns the unified position of a header, matching by
// normalized form, or -1 if the schema has no such column.
func (s *Schema) Index(header string) int {
	norm := NormalizeHeader(header)
	for i, c := range s.Columns {
		if c.Norm == norm {
			return i
		}
	}
	return -1
}

// DisplayNames returns the ordered output header row.
func (s *Schema) DisplayNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Display
	}
	return names
}

// Align computes the unified schema across the supplied sheets.
// Column order is first appearance in supply order: the first sheet's
// columns, then novel columns of each subsequent sheet in the order
// they appear there. Two headers are the same column iff their
// normalized forms are equal. Alignment never fails; divergence is
// reported, not rejected.
func Align(sheets []*workbook.Sheet) (*Schema, []Issue) {
	schema := &Schema{Mappings: make([][]int, len(sheets))}
	var issues []Issue
	byNorm := make(map[string]int)

	for _, sheet := range sheets {
		seen := make(map[string]bool, len(sheet.Headers))
		for j, raw := range sheet.Headers {
			norm := NormalizeHeader(raw)
			if norm == "" {
				issues = append(issues, Issue{
					Kind:     IssueMalformedSheet,
					Severity: SeverityWarning,
					Source:   sheet.Label(),
					Message:  fmt.Sprintf("unnamed column %d ignored", j+1),
				})
				continue
			}
			if seen[norm] {
				issues = append(issues, Issue{
					Kind:     IssueMalformedSheet,
					Severity: SeverityWarning,
					Source:   sheet.Label(),
					Column:   raw,
					Message:  fmt.Sprintf("duplicate header %q ignored; first occurrence wins", raw),
				})
				continue
			}
			seen[norm] = true
			if _, ok := byNorm[norm]; !ok {
				byNorm[norm] = len(schema.Columns)
				schema.Columns = append(schema.Columns, Column{
					Display: strings.TrimSpace(raw),
					Norm:    norm,
				})
			}
		}
	}

	for si, sheet := range sheets {
		mapping := make([]int, len(schema.Columns))
		for i := range mapping {
			mapping[i] = -1
		}
		for j, raw := range sheet.Headers {
			norm := NormalizeHeader(raw)
			ci, ok := byNorm[norm]
			if !ok || mapping[ci] != -1 {
				continue
			}
			mapping[ci] = j
		}
		for ci, src := range mapping {
			if src == -1 {
				issues = append(issues, Issue{
					Kind:     IssueUnmatchedColumn,
					Severity: SeverityInfo,
					Source:   sheet.Label(),
					Column:   schema.Columns[ci].Display,
					Message:  fmt.Sprintf("column %q absent; contributes blanks", schema.Columns[ci].Display),
				})
			}
		}
		schema.Mappings[si] = mapping
	}

	return schema, issues
}
