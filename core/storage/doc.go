// Package storage provides the object-store abstraction behind the
// merge archive.
//
// It wraps the MinIO Go client in a small interface (bucket check,
// put, get, list, remove) so merged workbooks can be archived for
// later re-download and so tests can mock the store
// (core/storage/mocks). Both AWS S3 and self-hosted MinIO work.
package storage
