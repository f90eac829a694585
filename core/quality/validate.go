package quality

import (
	"fmt"
	"strings"

	"workbook-merger/core/workbook"
)

// Violation is one failed rule check, addressable to a row and column
// of the merged dataset.
type Violation struct {
	Row     int    `json:"row"` // 1-based data row
	Column  string `json:"column"`
	Message string `json:"message"`
}

// Validate checks every row against the schema. Rules naming columns
// the dataset lacks are checked as Required failures only when the
// rule is Required; otherwise they are skipped.
func (s *Schema) Validate(headers []string, rows [][]workbook.CellValue) []Violation {
	var out []Violation
	for _, rule := range s.Rules {
		ci := columnIndex(headers, rule.Column)
		if ci < 0 {
			if rule.Required {
				out = append(out, Violation{
					Column:  rule.Column,
					Message: fmt.Sprintf("required column %q missing from dataset", rule.Column),
				})
			}
			continue
		}
		for ri, row := range rows {
			if ci >= len(row) {
				continue
			}
			if v := checkCell(rule, row[ci]); v != "" {
				out = append(out, Violation{Row: ri + 1, Column: headers[ci], Message: v})
			}
		}
	}
	return out
}

func columnIndex(headers []string, name string) int {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, h := range headers {
		if strings.ToLower(strings.TrimSpace(h)) == want {
			return i
		}
	}
	return -1
}

func checkCell(rule Rule, v workbook.CellValue) string {
	if v.IsEmpty() {
		if rule.Required {
			return "value is required"
		}
		return ""
	}

	switch rule.Type {
	case TypeText:
		if v.Kind() != workbook.KindText {
			return fmt.Sprintf("expected text, got %s %q", v.Kind(), v.String())
		}
	case TypeNumber:
		if v.Kind() != workbook.KindNumber {
			return fmt.Sprintf("expected number, got %s %q", v.Kind(), v.String())
		}
	case TypeBool:
		if v.Kind() != workbook.KindBool {
			return fmt.Sprintf("expected boolean, got %s %q", v.Kind(), v.String())
		}
	case TypeDate:
		if v.Kind() != workbook.KindDate {
			return fmt.Sprintf("expected date, got %s %q", v.Kind(), v.String())
		}
	}

	if v.Kind() == workbook.KindNumber {
		n := v.Number()
		if rule.Min != nil && n < *rule.Min {
			return fmt.Sprintf("%s below minimum %s",
				v.String(), workbook.NewNumber(*rule.Min).String())
		}
		if rule.Max != nil && n > *rule.Max {
			return fmt.Sprintf("%s above maximum %s",
				v.String(), workbook.NewNumber(*rule.Max).String())
		}
	}

	if len(rule.In) > 0 {
		got := v.String()
		for _, allowed := range rule.In {
			if got == allowed {
				return ""
			}
		}
		return fmt.Sprintf("%q not in allowed set [%s]", got, strings.Join(rule.In, ", "))
	}
	return ""
}

// DuplicateValues scans one column of a source sheet and returns the
// non-empty values that occur more than once, in first-occurrence
// order. Used by the pre-merge duplicate check.
func DuplicateValues(cells []workbook.CellValue) []string {
	counts := make(map[string]int, len(cells))
	var order []string
	for _, c := range cells {
		if c.IsEmpty() {
			continue
		}
		key := c.String()
		counts[key]++
		if counts[key] == 2 {
			order = append(order, key)
		}
	}
	return order
}
