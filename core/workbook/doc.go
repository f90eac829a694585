// Package workbook decodes and encodes spreadsheet workbooks as typed
// tabular data.
//
// It owns the cell value model (CellValue: empty, text, number, boolean,
// date) and the two edges of the merge pipeline:
//
//   - Decode: raw .xlsx byte stream -> named sheets of typed rows,
//     using an ordered decision table to infer each cell's kind.
//   - Encode: unified header row plus merged rows -> single-sheet
//     .xlsx byte stream, preserving native cell types.
//
// Decoding is a pure function of its input bytes; callers may run it
// for several uploads concurrently.
package workbook
