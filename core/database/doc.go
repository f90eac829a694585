// Package database manages the optional MySQL connection used by the
// merge history feature. The application runs fine without it; only
// job records and archive lookups are unavailable then.
package database
