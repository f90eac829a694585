package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// OutputSheetName is the single sheet name in merged workbooks.
const OutputSheetName = "Merged"

// Encode serializes the merged dataset into a single-sheet workbook
// byte stream: one header row followed by one row per payload entry,
// with cell values written back as their native workbook types.
// Numbers stay numeric, dates stay date cells, booleans stay boolean.
// Errors here are environment-level and abort the merge.
func Encode(headers []string, rows [][]CellValue) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", OutputSheetName); err != nil {
		return nil, fmt.Errorf("rename output sheet: %w", err)
	}

	// m/d/yy, so decoded output recognizes the cell as a date again.
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		return nil, fmt.Errorf("create date style: %w", err)
	}

	sw, err := f.NewStreamWriter(OutputSheetName)
	if err != nil {
		return nil, fmt.Errorf("create stream writer: %w", err)
	}

	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = excelize.Cell{Value: h}
	}
	if err := sw.SetRow("A1", headerRow); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}

	for i, row := range rows {
		out := make([]interface{}, len(row))
		for j, v := range row {
			switch v.Kind() {
			case KindEmpty:
				out[j] = nil
			case KindDate:
				out[j] = excelize.Cell{Value: v.Native(), StyleID: dateStyle}
			default:
				out[j] = excelize.Cell{Value: v.Native()}
			}
		}
		ref := fmt.Sprintf("A%d", i+2)
		if err := sw.SetRow(ref, out); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("flush stream writer: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
