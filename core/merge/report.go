package merge

// IssueKind tags a report entry.
type IssueKind string

const (
	// IssueUnmatchedColumn marks a unified column a source sheet lacks.
	IssueUnmatchedColumn IssueKind = "unmatched_column"
	// IssueDuplicateRow marks a repeated key with identical content.
	IssueDuplicateRow IssueKind = "duplicate_row"
	// IssueValueConflict marks differing non-empty values for one key.
	IssueValueConflict IssueKind = "value_conflict"
	// IssueMalformedSheet marks structural irregularities in a source.
	IssueMalformedSheet IssueKind = "malformed_sheet"
	// IssueQualityViolation marks a data-quality rule failure.
	IssueQualityViolation IssueKind = "quality_violation"
)

// Severity grades a report entry. Nothing in the report is fatal.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Issue is one reportable irregularity with enough context to render
// to the end user. Row is the 1-based data row within the source sheet
// (0 when not applicable).
type Issue struct {
	Kind     IssueKind `json:"kind"`
	Severity Severity  `json:"severity"`
	Source   string    `json:"source,omitempty"`
	Row      int       `json:"row,omitempty"`
	Column   string    `json:"column,omitempty"`
	Message  string    `json:"message"`
}

// Summary aggregates counts for a merge run.
type Summary struct {
	Sources           int `json:"sources"`
	Columns           int `json:"columns"`
	RowsIn            int `json:"rows_in"`
	RowsOut           int `json:"rows_out"`
	UnmatchedColumns  int `json:"unmatched_columns"`
	Duplicates        int `json:"duplicates"`
	Conflicts         int `json:"conflicts"`
	QualityViolations int `json:"quality_violations"`
}

// Report accumulates the issues produced by alignment, reconciliation
// and validation, in the order they were raised. It lives for the
// duration of one merge call and is returned alongside the output.
type Report struct {
	Issues  []Issue `json:"issues"`
	Summary Summary `json:"summary"`
}

// Append records issues and bumps the per-kind counters.
func (r *Report) Append(issues ...Issue) {
	for _, is := range issues {
		r.Issues = append(r.Issues, is)
		switch is.Kind {
		case IssueUnmatchedColumn:
			r.Summary.UnmatchedColumns++
		case IssueDuplicateRow:
			r.Summary.Duplicates++
		case IssueValueConflict:
			r.Summary.Conflicts++
		case IssueQualityViolation:
			r.Summary.QualityViolations++
		}
	}
}
