package workbook

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// DecodeOptions controls how a workbook byte stream is decoded.
type DecodeOptions struct {
	// HeaderRow treats the first row of every sheet as column headers.
	HeaderRow bool

	// Sheets selects which sheets to decode by name. Empty means all.
	Sheets []string
}

// DefaultDecodeOptions returns the default decode options.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{HeaderRow: true}
}

// DecodeError reports an unreadable or structurally unusable input
// workbook. It is fatal for the file it names.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Builtin number formats Excel renders as dates. Cells styled with one
// of these carry a serial date in their raw value.
var dateNumFmts = map[int]struct{}{
	14: {}, 15: {}, 16: {}, 17: {}, 22: {},
	27: {}, 30: {}, 36: {}, 45: {}, 46: {}, 47: {},
}

// Plain-text layouts accepted as dates, ISO first.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// Decode parses a raw workbook byte stream into typed sheets. The
// source name is attached to every returned sheet and to any error.
// A stream that is not a parseable workbook, a selected sheet that
// does not exist, and a sheet with zero rows all yield a *DecodeError.
func Decode(source string, data []byte, opts DecodeOptions) ([]Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Source: source, Err: err}
	}
	defer f.Close()

	names, err := selectSheets(f, opts.Sheets)
	if err != nil {
		return nil, &DecodeError{Source: source, Err: err}
	}

	sheets := make([]Sheet, 0, len(names))
	for _, name := range names {
		sheet, err := decodeSheet(f, source, name, opts)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

func selectSheets(f *excelize.File, want []string) ([]string, error) {
	all := f.GetSheetList()
	if len(want) == 0 {
		return all, nil
	}
	have := make(map[string]string, len(all))
	for _, name := range all {
		have[strings.ToLower(name)] = name
	}
	names := make([]string, 0, len(want))
	for _, w := range want {
		name, ok := have[strings.ToLower(strings.TrimSpace(w))]
		if !ok {
			return nil, fmt.Errorf("sheet %q not found", w)
		}
		names = append(names, name)
	}
	return names, nil
}

func decodeSheet(f *excelize.File, source, name string, opts DecodeOptions) (Sheet, error) {
	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return Sheet{}, &DecodeError{Source: source, Err: err}
	}
	if len(raw) == 0 {
		return Sheet{}, &DecodeError{Source: source, Err: fmt.Errorf("sheet %q has no rows", name)}
	}

	sheet := Sheet{Source: source, Name: name}

	dataStart := 0
	if opts.HeaderRow {
		sheet.Headers = append([]string(nil), raw[0]...)
		dataStart = 1
	} else {
		sheet.Headers = positionalHeaders(raw)
	}

	for i := dataStart; i < len(raw); i++ {
		row := make(Row)
		for j, cell := range raw[i] {
			// GetRows addresses are 1-based in both axes.
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return Sheet{}, &DecodeError{Source: source, Err: err}
			}
			v := inferValue(f, name, ref, cell)
			if !v.IsEmpty() {
				row[j] = v
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

// positionalHeaders synthesizes header names when the sheet has none,
// sized to the widest row.
func positionalHeaders(raw [][]string) []string {
	width := 0
	for _, r := range raw {
		if len(r) > width {
			width = len(r)
		}
	}
	headers := make([]string, width)
	for i := range headers {
		headers[i] = fmt.Sprintf("Column%d", i+1)
	}
	return headers
}

// inferValue types a raw cell by an ordered decision table:
//
//  1. native boolean cell            -> Bool
//  2. date-styled cell, serial value -> Date
//  3. blank after trimming           -> Empty
//  4. numeric pattern                -> Number
//  5. known date layout              -> Date
//  6. TRUE/FALSE literal             -> Bool
//  7. anything else                  -> Text
func inferValue(f *excelize.File, sheet, ref, raw string) CellValue {
	if ct, err := f.GetCellType(sheet, ref); err == nil && ct == excelize.CellTypeBool {
		return NewBool(raw == "1" || strings.EqualFold(raw, "true"))
	}

	if isDateStyled(f, sheet, ref) {
		if serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return NewDate(t)
			}
		}
	}

	s := strings.TrimSpace(raw)
	if s == "" {
		return Empty()
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return NewNumber(n)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t)
		}
	}
	if strings.EqualFold(s, "true") {
		return NewBool(true)
	}
	if strings.EqualFold(s, "false") {
		return NewBool(false)
	}
	return NewText(raw)
}

func isDateStyled(f *excelize.File, sheet, ref string) bool {
	styleID, err := f.GetCellStyle(sheet, ref)
	if err != nil || styleID == 0 {
		return false
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	_, ok := dateNumFmts[style.NumFmt]
	return ok
}
