// Package quality validates merged tabular data against a declared
// schema of per-column rules (type, required, numeric range, allowed
// values) and provides the pre-merge duplicate scan for key columns.
//
// Violations are informational: they are surfaced into the merge
// report for the user to review, never used to reject a merge.
package quality
