// Package history records merge runs and serves archived outputs.
//
// Every merge performed through the HTTP API is stored as a MergeJob
// row (sources, row counts, issue counts, policy) and, when an object
// store is configured, the merged workbook itself is archived under
// merges/<id>.xlsx for later re-download.
//
// # HTTP Endpoints
//
//   - GET /history : Lists recent merge jobs.
//   - GET /history/{id}/download : Streams an archived output.
//
// Both the database and the archive store are optional; the feature
// disables itself without a database connection.
package history
