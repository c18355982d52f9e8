// Package sqlite provides the SQLite implementation of the file and word stores.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. A single Store implements both driven.FileStore and driven.WordStore over
// one database connection:
//
//   - files: one row per upload, with the blob key and original name
//   - words: the shared vocabulary, unique by text
//   - occurrences: per-file counts, unique by (file, word)
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// The database is stored at <data_dir>/wordstats.db.
//
// # Thread Safety
//
// All operations are safe for concurrent use. Writes that span tables run in a
// single transaction and SQLite runs in WAL mode with a busy timeout.
package sqlite
