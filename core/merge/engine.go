package merge

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"workbook-merger/core/workbook"

	"go.uber.org/zap"
)

// SourceFileColumn is the display name of the optional origin column.
const SourceFileColumn = "SourceFile"

// Source is one uploaded workbook: its name (used in reports and
// origin markers) and its raw bytes.
type Source struct {
	Name string
	Data []byte
}

// Result is everything a merge call hands back to the caller: the
// output workbook bytes ready for download, the merged dataset, and
// the report.
type Result struct {
	// Output is the single-sheet merged workbook.
	Output []byte

	// Headers is the output header row (includes the source column
	// when enabled).
	Headers []string

	// Rows is the reconciled dataset in output order, one value per
	// unified column.
	Rows []MergedRow

	// Schema is the unified column schema.
	Schema *Schema

	// Report lists every irregularity observed during the merge.
	Report *Report
}

// Engine runs the merge pipeline: decode every source, align schemas,
// reconcile rows, validate, encode. All state is call-local; one
// Engine may serve concurrent merges.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a merge engine. A nil logger disables logging.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Merge consolidates the supplied workbooks under the given options.
// A workbook that cannot be decoded aborts the call with a
// *workbook.DecodeError naming the file; schema divergence, duplicate
// rows and value conflicts are accumulated into the report instead.
func (e *Engine) Merge(ctx context.Context, sources []Source, opts Options) (*Result, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no input workbooks supplied")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	sources = orderSources(sources, opts.Order)

	decodeOpts := workbook.DecodeOptions{HeaderRow: opts.HeaderRow, Sheets: opts.Sheets}
	var sheets []*workbook.Sheet
	rowsIn := 0
	for i := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		decoded, err := workbook.Decode(sources[i].Name, sources[i].Data, decodeOpts)
		if err != nil {
			return nil, err
		}
		for j := range decoded {
			sheets = append(sheets, &decoded[j])
			rowsIn += len(decoded[j].Rows)
		}
		e.logger.Debug("decoded workbook",
			zap.String("source", sources[i].Name),
			zap.Int("sheets", len(decoded)))
	}

	report := &Report{}
	schema, alignIssues := Align(sheets)
	report.Append(alignIssues...)

	for _, kc := range opts.KeyColumns {
		if schema.Index(kc) < 0 {
			return nil, fmt.Errorf("key column %q not found in any source", kc)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, reconcileIssues := Reconcile(schema, sheets, opts.KeyColumns, opts.Policy)
	report.Append(reconcileIssues...)

	headers, matrix := outputDataset(schema, rows, opts.SourceColumn)

	if opts.Quality != nil {
		for _, v := range opts.Quality.Validate(headers, matrix) {
			report.Append(Issue{
				Kind:     IssueQualityViolation,
				Severity: SeverityWarning,
				Row:      v.Row,
				Column:   v.Column,
				Message:  v.Message,
			})
		}
	}

	output, err := workbook.Encode(headers, matrix)
	if err != nil {
		return nil, err
	}

	report.Summary.Sources = len(sources)
	report.Summary.Columns = len(schema.Columns)
	report.Summary.RowsIn = rowsIn
	report.Summary.RowsOut = len(rows)

	e.logger.Info("merge completed",
		zap.Int("sources", len(sources)),
		zap.Int("columns", len(schema.Columns)),
		zap.Int("rows_in", rowsIn),
		zap.Int("rows_out", len(rows)),
		zap.Int("conflicts", report.Summary.Conflicts),
		zap.Int("duplicates", report.Summary.Duplicates))

	return &Result{
		Output:  output,
		Headers: headers,
		Rows:    rows,
		Schema:  schema,
		Report:  report,
	}, nil
}

// orderSources arranges the inputs before merging; a stable sort keeps
// the supplied order among ties. The caller's slice is left untouched.
func orderSources(sources []Source, order SourceOrder) []Source {
	out := append([]Source(nil), sources...)
	switch order {
	case OrderByName:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Name < out[j].Name
		})
	case OrderByLastWord:
		sort.SliceStable(out, func(i, j int) bool {
			return lastWord(out[i].Name) < lastWord(out[j].Name)
		})
	}
	return out
}

func lastWord(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	return fields[len(fields)-1]
}

// outputDataset flattens merged rows for the writer, prepending the
// origin column when requested.
func outputDataset(schema *Schema, rows []MergedRow, sourceColumn bool) ([]string, [][]workbook.CellValue) {
	headers := schema.DisplayNames()
	matrix := make([][]workbook.CellValue, len(rows))
	if !sourceColumn {
		for i, r := range rows {
			matrix[i] = r.Cells
		}
		return headers, matrix
	}

	headers = append([]string{SourceFileColumn}, headers...)
	for i, r := range rows {
		cells := make([]workbook.CellValue, 0, len(r.Cells)+1)
		cells = append(cells, workbook.NewText(strings.Join(r.Sources, "; ")))
		cells = append(cells, r.Cells...)
		matrix[i] = cells
	}
	return headers, matrix
}
