// Package memory provides in-memory implementations of the driven store
// ports. They mirror the SQLite and TOML adapters' semantics without
// touching disk and back the service tests.
package memory
