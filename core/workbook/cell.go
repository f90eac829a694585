package workbook

import (
	"strconv"
	"time"
)

// Kind identifies the value type held by a CellValue.
type Kind uint8

const (
	// KindEmpty is a blank cell.
	KindEmpty Kind = iota
	// KindText is a string cell.
	KindText
	// KindNumber is a numeric cell.
	KindNumber
	// KindBool is a boolean cell.
	KindBool
	// KindDate is a calendar date cell.
	KindDate
)

// String returns the kind name for logging and reports.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	default:
		return "empty"
	}
}

// CellValue is the typed representation of a single spreadsheet cell.
// Values are immutable after construction; equality and ordering are
// defined per kind and cross-kind values are never equal.
type CellValue struct {
	kind Kind
	text string
	num  float64
	b    bool
	date time.Time
}

// Empty returns the blank cell value.
func Empty() CellValue {
	return CellValue{kind: KindEmpty}
}

// NewText returns a text cell value.
func NewText(s string) CellValue {
	return CellValue{kind: KindText, text: s}
}

// NewNumber returns a numeric cell value.
func NewNumber(f float64) CellValue {
	return CellValue{kind: KindNumber, num: f}
}

// NewBool returns a boolean cell value.
func NewBool(v bool) CellValue {
	return CellValue{kind: KindBool, b: v}
}

// NewDate returns a date cell value. The time component is discarded:
// the value is normalized to midnight UTC so that equality means
// calendar-date equality.
func NewDate(t time.Time) CellValue {
	y, m, d := t.Date()
	return CellValue{kind: KindDate, date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Kind returns the value kind.
func (v CellValue) Kind() Kind { return v.kind }

// IsEmpty reports whether the cell is blank.
func (v CellValue) IsEmpty() bool { return v.kind == KindEmpty }

// Text returns the string payload. Valid only for KindText.
func (v CellValue) Text() string { return v.text }

// Number returns the numeric payload. Valid only for KindNumber.
func (v CellValue) Number() float64 { return v.num }

// Bool returns the boolean payload. Valid only for KindBool.
func (v CellValue) Bool() bool { return v.b }

// Date returns the date payload. Valid only for KindDate.
func (v CellValue) Date() time.Time { return v.date }

// Equal reports per-kind equality. Values of different kinds are never
// equal, including Empty vs. the zero text value.
func (v CellValue) Equal(o CellValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.text == o.text
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindDate:
		return v.date.Equal(o.date)
	default:
		return true
	}
}

// Less defines a deterministic total order: first by kind, then by the
// payload within the kind (false < true for booleans).
func (v CellValue) Less(o CellValue) bool {
	if v.kind != o.kind {
		return v.kind < o.kind
	}
	switch v.kind {
	case KindText:
		return v.text < o.text
	case KindNumber:
		return v.num < o.num
	case KindBool:
		return !v.b && o.b
	case KindDate:
		return v.date.Before(o.date)
	default:
		return false
	}
}

// String renders the value for reports and key building. Numbers use
// the shortest exact representation, dates ISO 8601, booleans the
// spreadsheet literals TRUE/FALSE, and Empty the empty string.
func (v CellValue) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	case KindDate:
		return v.date.Format("2006-01-02")
	default:
		return ""
	}
}

// Native returns the value in the representation the workbook encoder
// feeds to excelize: float64, bool, time.Time, string, or nil.
func (v CellValue) Native() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindDate:
		return v.date
	default:
		return nil
	}
}
