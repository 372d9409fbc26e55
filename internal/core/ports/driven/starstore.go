package driven

import (
	"context"

	"github.com/custodia-labs/starsync/internal/core/domain"
)

// StarStore persists StarRecords.
//
// The store assumes a single writer: Save, Backup and
// MigrateLegacy must not run concurrently against the same store. Reads may
// run concurrently with each other.
type StarStore interface {
	// Init creates the directories the store needs. It does not create the
	// store itself; the first Save does.
	Init(ctx context.Context) error

	// Exists reports whether the current store has been created.
	Exists() bool

	// Load returns every stored record.
	// Returns ErrStoreNotFound if no store exists yet.
	Load(ctx context.Context) ([]domain.StarRecord, error)

	// Save writes a batch. StoreReplace supersedes every stored record
	// atomically; StoreAppend upserts by full name.
	Save(ctx context.Context, records []domain.StarRecord, mode domain.StoreMode) error

	// Count returns the number of stored records, 0 if no store exists.
	Count(ctx context.Context) (int, error)

	// CountBySource returns record counts keyed by source.
	CountBySource(ctx context.Context) (map[domain.SourceType]int, error)

	// Backup writes a timestamped copy of the store and returns its path.
	// Returns ErrNoData if no store exists.
	Backup(ctx context.Context) (string, error)

	// ListBackups returns backup file paths, newest first.
	ListBackups() ([]string, error)

	// MigrateLegacy copies the legacy store into the current location once.
	// Returns false, without error, if no legacy store exists or the current
	// store already exists.
	MigrateLegacy(ctx context.Context) (bool, error)

	// Location returns the store file path.
	Location() string
}
