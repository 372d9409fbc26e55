package driving

import (
	"context"

	"github.com/custodia-labs/starsync/internal/core/domain"
)

// StorageService exposes store maintenance operations.
type StorageService interface {
	// Init creates the store directories.
	Init(ctx context.Context) error

	// Backup writes a timestamped copy of the store and returns its path.
	Backup(ctx context.Context) (string, error)

	// ListBackups returns backup paths, newest first.
	ListBackups() ([]string, error)

	// Migrate runs the one-time legacy migration. Returns false when
	// there was nothing to migrate or the current store already exists.
	Migrate(ctx context.Context) (bool, error)

	// Import validates untyped records and appends the valid ones as
	// manual records. Invalid entries are reported, not stored.
	Import(ctx context.Context, entries []map[string]any) (*ImportReport, error)

	// Stats returns record counts per source.
	Stats(ctx context.Context) (map[domain.SourceType]int, error)
}

// ImportReport summarises an import.
type ImportReport struct {
	Imported int
	Rejected int

	// Problems lists validation errors and warnings by entry index.
	Problems []string
}
