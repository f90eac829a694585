package merge

import (
	"fmt"
	"strings"

	"workbook-merger/core/workbook"
)

// Policy names the deterministic rule used to pick a winning value
// when sources disagree on a non-key field for the same key. First and
// last are defined relative to source supply order, never iteration or
// wall-clock order.
type Policy string

const (
	PolicyFirstWins      Policy = "first_wins"
	PolicyLastWins       Policy = "last_wins"
	PolicyPreferNonEmpty Policy = "prefer_non_empty"
)

// ParsePolicy converts a user-supplied policy name.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyFirstWins:
		return PolicyFirstWins, nil
	case PolicyLastWins:
		return PolicyLastWins, nil
	case PolicyPreferNonEmpty:
		return PolicyPreferNonEmpty, nil
	default:
		return "", fmt.Errorf("unknown conflict policy %q", s)
	}
}

// MergedRow is one reconciled output row: exactly one value per
// unified column (Empty when never populated), the sources that
// contributed, and whether any field needed conflict resolution.
type MergedRow struct {
	Cells    []workbook.CellValue
	Sources  []string
	Conflict bool
}

// candidate is a source row projected into the unified schema.
type candidate struct {
	cells  []workbook.CellValue
	source string
	row    int // 1-based data row within the source sheet
}

// Reconcile merges the projected rows of all sheets into the unified
// schema. With key columns, rows sharing a key tuple are grouped and
// resolved field by field under the supplied policy; without them,
// every row is unique and rows are concatenated in source order.
// Groups are emitted in first-encountered key order. Conflicting data
// is reported, never rejected. Key columns the schema lacks are
// ignored; when none match, rows are concatenated as if no keys were
// supplied rather than collapsing into one empty-keyed group.
func Reconcile(schema *Schema, sheets []*workbook.Sheet, keyColumns []string, policy Policy) ([]MergedRow, []Issue) {
	keyIdx := make(map[int]bool, len(keyColumns))
	for _, kc := range keyColumns {
		if i := schema.Index(kc); i >= 0 {
			keyIdx[i] = true
		}
	}
	if len(keyIdx) == 0 {
		return concatenate(schema, sheets), nil
	}

	type group struct {
		cands []candidate
	}
	byKey := make(map[string]*group)
	var order []*group

	for si, sheet := range sheets {
		for ri, row := range sheet.Rows {
			cand := project(schema, si, sheet, row, ri)
			key := groupKey(cand.cells, keyIdx)
			g, ok := byKey[key]
			if !ok {
				g = &group{}
				byKey[key] = g
				order = append(order, g)
			}
			g.cands = append(g.cands, cand)
		}
	}

	var (
		rows   []MergedRow
		issues []Issue
	)
	for _, g := range order {
		merged, gi := resolveGroup(schema, g.cands, keyIdx, policy)
		rows = append(rows, merged)
		issues = append(issues, gi...)
	}
	return rows, issues
}

func concatenate(schema *Schema, sheets []*workbook.Sheet) []MergedRow {
	var rows []MergedRow
	for si, sheet := range sheets {
		for ri, row := range sheet.Rows {
			cand := project(schema, si, sheet, row, ri)
			rows = append(rows, MergedRow{Cells: cand.cells, Sources: []string{cand.source}})
		}
	}
	return rows
}

// project maps a source row onto the unified schema; absent source
// columns yield Empty.
func project(schema *Schema, si int, sheet *workbook.Sheet, row workbook.Row, ri int) candidate {
	cells := make([]workbook.CellValue, len(schema.Columns))
	for ci, srcIdx := range schema.Mappings[si] {
		if srcIdx < 0 {
			cells[ci] = workbook.Empty()
			continue
		}
		cells[ci] = row.Cell(srcIdx)
	}
	return candidate{cells: cells, source: sheet.Source, row: ri + 1}
}

// groupKey builds the identity tuple for a candidate. The kind prefix
// keeps cross-kind values distinct even when they stringify the same
// (the text "1" vs. the number 1).
func groupKey(cells []workbook.CellValue, keyIdx map[int]bool) string {
	var sb strings.Builder
	for ci, v := range cells {
		if !keyIdx[ci] {
			continue
		}
		fmt.Fprintf(&sb, "%d:%s\x1f", v.Kind(), v.String())
	}
	return sb.String()
}

func resolveGroup(schema *Schema, cands []candidate, keyIdx map[int]bool, policy Policy) (MergedRow, []Issue) {
	if len(cands) == 1 {
		return MergedRow{Cells: cands[0].cells, Sources: []string{cands[0].source}}, nil
	}

	var issues []Issue

	// Exact repeats of an earlier occurrence fold silently into the
	// group; they are reported but cannot produce conflicts.
	for i := 1; i < len(cands); i++ {
		for j := 0; j < i; j++ {
			if equalCells(cands[i].cells, cands[j].cells) {
				issues = append(issues, Issue{
					Kind:     IssueDuplicateRow,
					Severity: SeverityInfo,
					Source:   cands[i].source,
					Row:      cands[i].row,
					Message:  fmt.Sprintf("row repeats an identical occurrence from %s", cands[j].source),
				})
				break
			}
		}
	}

	merged := MergedRow{
		Cells:   make([]workbook.CellValue, len(schema.Columns)),
		Sources: sourceList(cands),
	}

	for ci := range schema.Columns {
		if keyIdx[ci] {
			merged.Cells[ci] = cands[0].cells[ci]
			continue
		}
		value, issue := resolveField(schema.Columns[ci].Display, cands, ci, policy)
		merged.Cells[ci] = value
		if issue != nil {
			merged.Conflict = true
			issues = append(issues, *issue)
		}
	}
	return merged, issues
}

// resolveField picks the value for one non-key column across a key
// group. Agreement and single-contributor cases win silently; two or
// more differing non-empty values are a conflict resolved by policy.
func resolveField(column string, cands []candidate, ci int, policy Policy) (workbook.CellValue, *Issue) {
	type contribution struct {
		value  workbook.CellValue
		source string
	}
	var distinct []contribution
	var last contribution
	for _, c := range cands {
		v := c.cells[ci]
		if v.IsEmpty() {
			continue
		}
		// Last non-empty occurrence, not last distinct value: a
		// source repeating an earlier value still counts as the
		// latest contributor under LastWins.
		last = contribution{value: v, source: c.source}
		known := false
		for _, d := range distinct {
			if d.value.Equal(v) {
				known = true
				break
			}
		}
		if !known {
			distinct = append(distinct, contribution{value: v, source: c.source})
		}
	}

	switch len(distinct) {
	case 0:
		return workbook.Empty(), nil
	case 1:
		return distinct[0].value, nil
	}

	winner := distinct[0]
	if policy == PolicyLastWins {
		winner = last
	}

	parts := make([]string, len(distinct))
	for i, d := range distinct {
		parts[i] = fmt.Sprintf("%s (%s)", d.value.String(), d.source)
	}
	return winner.value, &Issue{
		Kind:     IssueValueConflict,
		Severity: SeverityWarning,
		Source:   winner.source,
		Column:   column,
		Message:  fmt.Sprintf("conflicting values %s; %s keeps %s", strings.Join(parts, " vs "), policy, winner.value.String()),
	}
}

func sourceList(cands []candidate) []string {
	var out []string
	seen := make(map[string]bool, len(cands))
	for _, c := range cands {
		if seen[c.source] {
			continue
		}
		seen[c.source] = true
		out = append(out, c.source)
	}
	return out
}

func equalCells(a, b []workbook.CellValue) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
