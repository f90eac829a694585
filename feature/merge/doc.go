// Package merge exposes the workbook merge engine over HTTP.
//
// Uploaded .xlsx workbooks are decoded, their schemas aligned by
// header name, rows reconciled by the configured key columns, and the
// result returned as a single-sheet workbook. Options arrive as a JSON
// form field and default to the server configuration.
//
// # HTTP Endpoints
//
//   - POST /merge : Merges uploads and returns the workbook.
//   - POST /merge/report : Merges uploads and returns the issue report.
//   - GET /merge/options : Returns the default merge options.
//
// When the history feature is available every merge is recorded and
// the job id is returned in the X-Merge-Job header.
package merge
