// Package domain defines the core business entities for starsync.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - StarRecord: The canonical, normalised repository reference
//   - RawStar: A candidate produced by a source adapter before normalisation
//   - SourceType: The closed set of sources a record can come from
//   - Paths: Resolved filesystem locations for the store, backups and legacy store
//   - FilterOptions: Default exclusion rules applied to stored records
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
