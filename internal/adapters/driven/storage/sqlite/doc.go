// Package sqlite implements driven.StarStore on a single SQLite file.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. The database is opened lazily: Init only creates
// directories, and the file itself appears on the first Save.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Applied versions are tracked in schema_migrations.
//
// # Backups
//
// Backups are written with VACUUM INTO as backups/stars-YYYYMMDD-HHMMSS.db,
// so a backup is always a complete, consistent database.
//
// # Thread Safety
//
// Reads may run concurrently. Writes assume a single writer process; SQLite
// in WAL mode serialises them at the database level.
package sqlite
