// Package merge consolidates independently authored workbooks into one
// deterministic output dataset.
//
// The pipeline has three stages over decoded sheets:
//
//  1. Align: compute the unified column schema by normalized header
//     identity, in first-appearance order across sources. Partial
//     schema overlap is expected and reported, never rejected.
//  2. Reconcile: project every source row into the unified schema,
//     group rows by the configured key columns, fold exact duplicates,
//     and resolve value conflicts under a named policy (first wins,
//     last wins, prefer non-empty) relative to source supply order.
//  3. Encode: write the unified header row and merged rows back to a
//     single-sheet workbook.
//
// Every irregularity along the way (absent columns, duplicate rows,
// value conflicts, quality violations) is accumulated into a Report
// that the caller renders to the user alongside the download. Only an
// unreadable input file or a failure to produce output bytes aborts a
// merge.
package merge
