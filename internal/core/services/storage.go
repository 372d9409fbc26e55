package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/starsync/internal/core/domain"
	"github.com/custodia-labs/starsync/internal/core/ports/driven"
	"github.com/custodia-labs/starsync/internal/core/ports/driving"
	"github.com/custodia-labs/starsync/internal/logger"
	"github.com/custodia-labs/starsync/internal/normalisers/star"
)

// Ensure StorageService implements the interface.
var _ driving.StorageService = (*StorageService)(nil)

// StorageService exposes store maintenance operations.
type StorageService struct {
	store driven.StarStore
	now   func() time.Time
}

// NewStorageService creates a new storage service.
func NewStorageService(store driven.StarStore) *StorageService {
	return &StorageService{store: store, now: time.Now}
}

// Init creates the store directories.
func (s *StorageService) Init(ctx context.Context) error {
	if err := s.store.Init(ctx); err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	logger.Info("Store location: %s", s.store.Location())
	return nil
}

// Backup writes a timestamped copy of the store.
func (s *StorageService) Backup(ctx context.Context) (string, error) {
	return s.store.Backup(ctx)
}

// ListBackups returns backup paths, newest first.
func (s *StorageService) ListBackups() ([]string, error) {
	return s.store.ListBackups()
}

// Migrate runs the one-time legacy migration.
func (s *StorageService) Migrate(ctx context.Context) (bool, error) {
	migrated, err := s.store.MigrateLegacy(ctx)
	if err != nil {
		return false, fmt.Errorf("migrate legacy store: %w", err)
	}
	if !migrated {
		logger.Debug("No legacy migration needed")
	}
	return migrated, nil
}

// Import validates entries and appends the valid ones as manual records.
// One synced_at is stamped on the whole batch. Entries that fail validation
// are reported and skipped; nothing is written if none are valid.
func (s *StorageService) Import(ctx context.Context, entries []map[string]any) (*driving.ImportReport, error) {
	report := &driving.ImportReport{}

	existing, syncedAt, err := loadForRun(ctx, s.store, s.now())
	if err != nil {
		return nil, err
	}
	defaults := star.FieldDefaults{Source: domain.SourceManual, ForceSource: true, SyncedAt: syncedAt}

	records := make([]domain.StarRecord, 0, len(entries))
	for i, entry := range entries {
		rec, res, err := star.FromFields(entry, defaults)
		for _, w := range res.Warnings {
			report.Problems = append(report.Problems, fmt.Sprintf("entry %d: warning: %s", i, w))
		}
		if err != nil {
			report.Rejected++
			report.Problems = append(report.Problems, fmt.Sprintf("entry %d: %v", i, err))
			continue
		}
		// Stored timestamps are ignored; the batch shares one run timestamp.
		rec.SyncedAt = syncedAt
		records = append(records, rec)
	}

	records, dups := star.Deduplicate(records)
	if dups > 0 {
		logger.Info("Merged %d duplicate import entries", dups)
	}
	if len(records) == 0 {
		return report, nil
	}

	// Imported entries merge with stored ones so a sparse entry does not
	// overwrite a richer stored record.
	batch, merged := mergeBatch(existing, records, domain.SourceManual, domain.StoreAppend, false)
	if merged > 0 {
		logger.Debug("Merged %d imported entries with stored records", merged)
	}
	if err := s.store.Save(ctx, batch, domain.StoreAppend); err != nil {
		return nil, fmt.Errorf("save imported records: %w", err)
	}
	report.Imported = len(records)
	return report, nil
}

// Stats returns record counts per source.
func (s *StorageService) Stats(ctx context.Context) (map[domain.SourceType]int, error) {
	return s.store.CountBySource(ctx)
}
