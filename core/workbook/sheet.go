package workbook

// Row maps a source column index to its cell value. The map is sparse:
// a missing index means the cell is blank.
type Row map[int]CellValue

// Cell returns the value at the given source column index, or Empty
// when the row has no entry for it.
func (r Row) Cell(idx int) CellValue {
	if v, ok := r[idx]; ok {
		return v
	}
	return Empty()
}

// Sheet is one decoded tabular page. Source names the workbook the
// sheet came from (typically the uploaded file name) so that report
// entries and origin markers can point back at it.
type Sheet struct {
	// Source is the originating workbook name.
	Source string

	// Name is the sheet name inside the workbook.
	Name string

	// Headers holds the raw header strings in source column order.
	Headers []string

	// Rows holds the data rows in sheet order.
	Rows []Row
}

// Label renders "source/sheet" for report entries.
func (s *Sheet) Label() string {
	if s.Name == "" {
		return s.Source
	}
	return s.Source + "/" + s.Name
}
