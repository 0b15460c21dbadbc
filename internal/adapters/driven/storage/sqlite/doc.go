// Package sqlite provides the SQLite-backed implementation of the
// CatalogStore driven port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation.
//
// # Crash Safety
//
// Catalog replacement runs inside a single transaction: either the new
// catalog and favorite set commit completely, or the previously
// persisted version stays readable. A crash mid-write can never leave a
// partially written catalog behind.
//
// # Schema
//
// The database schema is managed through versioned migrations embedded
// from the migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.craftdex/data/catalog.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
