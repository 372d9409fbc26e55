package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/starsync/internal/core/domain"
	"github.com/custodia-labs/starsync/internal/core/ports/driven"
	"github.com/custodia-labs/starsync/internal/core/ports/driving"
	"github.com/custodia-labs/starsync/internal/logger"
	"github.com/custodia-labs/starsync/internal/normalisers/star"
)

// Ensure SyncOrchestrator implements the interface.
var _ driving.SyncOrchestrator = (*SyncOrchestrator)(nil)

// SettingsProvider supplies the current settings.
type SettingsProvider interface {
	Get() (domain.Settings, error)
}

// SyncOrchestrator runs a connector, merges its batch with the stored
// records according to the write mode and writes the result.
//
// It assumes a single writer; callers serialise syncs against one store.
type SyncOrchestrator struct {
	store    driven.StarStore
	factory  driven.ConnectorFactory
	settings SettingsProvider

	now      func() time.Time
	newRunID func() string
}

// NewSyncOrchestrator creates a new sync orchestrator.
func NewSyncOrchestrator(
	store driven.StarStore,
	factory driven.ConnectorFactory,
	settings SettingsProvider,
) *SyncOrchestrator {
	return &SyncOrchestrator{
		store:    store,
		factory:  factory,
		settings: settings,
		now:      time.Now,
		newRunID: uuid.NewString,
	}
}

// Sync runs one source end-to-end.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (o *SyncOrchestrator) Sync(ctx context.Context, req driving.SyncRequest) (*driving.SyncReport, error) {
	mode := req.Mode
	if mode == "" {
		mode = domain.StoreReplace
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: store mode %q", domain.ErrInvalidInput, mode)
	}
	if !req.Source.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedSource, req.Source)
	}

	// 1. Create connector from current settings
	settings, err := o.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if o.factory == nil {
		return nil, errors.New("create connector: connector factory not configured")
	}
	connector, err := o.factory.Create(ctx, req.Source, settings)
	if err != nil {
		return nil, fmt.Errorf("create connector: %w", err)
	}

	// 2. Read current state and pick this run's timestamp
	existing, err := o.store.Load(ctx)
	if err != nil && !errors.Is(err, domain.ErrStoreNotFound) {
		return nil, fmt.Errorf("load records: %w", err)
	}
	syncedAt := runTimestamp(existing, o.now())

	report := &driving.SyncReport{
		RunID:    o.newRunID(),
		Source:   req.Source,
		SyncedAt: syncedAt,
	}
	logger.Section("Sync " + string(req.Source))
	logger.Info("Run %s: %s mode, refresh=%t", report.RunID, mode, req.Refresh)

	// 3. Fetch and normalise
	result, err := connector.Fetch(ctx, syncedAt)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", req.Source, err)
	}
	report.Fetched = len(result.Records)
	report.Dropped = result.Dropped
	report.Duplicates = result.Duplicates
	report.Partial = result.Partial

	if result.Partial != nil {
		logger.Warn("%s: keeping %d records from an incomplete fetch: %v", req.Source, len(result.Records), result.Partial)
	}
	if result.Dropped > 0 {
		logger.Warn("%s: dropped %d invalid candidates", req.Source, result.Dropped)
	}

	// 4. Merge with stored records
	batch, merged := mergeBatch(existing, result.Records, req.Source, mode, req.Refresh)
	report.Duplicates += merged

	// 5. Back up before superseding a large store
	if mode == domain.StoreReplace {
		report.BackupPath = o.backupIfNeeded(ctx, len(existing), settings.Sync.BackupThreshold)
	}

	// 6. Write in one step
	if err := o.store.Save(ctx, batch, mode); err != nil {
		return nil, fmt.Errorf("save %s records: %w", req.Source, err)
	}

	stored, err := o.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}
	report.Stored = stored

	logger.Info("Sync complete: %d fetched, %d dropped, %d duplicates, %d stored",
		report.Fetched, report.Dropped, report.Duplicates, report.Stored)
	return report, nil
}

// SyncAll runs every configured source in the configured order with
// refresh semantics. Failures are logged and joined; other sources still run.
func (o *SyncOrchestrator) SyncAll(ctx context.Context) ([]driving.SyncReport, error) {
	settings, err := o.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	var reports []driving.SyncReport
	var errs []error
	for _, source := range settings.Sync.Order {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		report, err := o.Sync(ctx, driving.SyncRequest{
			Source:  source,
			Mode:    domain.StoreReplace,
			Refresh: true,
		})
		if errors.Is(err, domain.ErrSourceNotConfigured) {
			logger.Debug("Skipping %s: not configured", source)
			continue
		}
		if err != nil {
			logger.Error("Sync %s failed: %v", source, err)
			errs = append(errs, fmt.Errorf("sync %s: %w", source, err))
			reports = append(reports, driving.SyncReport{Source: source, Err: err})
			continue
		}
		reports = append(reports, *report)
	}

	return reports, errors.Join(errs...)
}

// backupIfNeeded returns the backup path, or "" when no backup was taken.
// A failed backup is logged and the replace goes ahead.
func (o *SyncOrchestrator) backupIfNeeded(ctx context.Context, count, threshold int) string {
	if count <= threshold {
		logger.Debug("Skipping backup: %d records (threshold %d)", count, threshold)
		return ""
	}
	path, err := o.store.Backup(ctx)
	if err != nil {
		logger.Warn("Backup before replace failed, continuing: %v", err)
		return ""
	}
	logger.Info("Backed up %d records to %s", count, path)
	return path
}

// mergeBatch computes what to write. Replace writes the fresh batch alone,
// or with refresh the fresh batch plus every other source's records.
// Append writes existing and fresh records merged by full name. Returns
// the batch and how many records were folded together while merging.
func mergeBatch(
	existing, fresh []domain.StarRecord,
	source domain.SourceType,
	mode domain.StoreMode,
	refresh bool,
) ([]domain.StarRecord, int) {
	switch {
	case mode == domain.StoreAppend:
		combined := make([]domain.StarRecord, 0, len(existing)+len(fresh))
		combined = append(combined, existing...)
		combined = append(combined, fresh...)
		return star.Deduplicate(combined)

	case refresh:
		combined := make([]domain.StarRecord, 0, len(existing)+len(fresh))
		for i := range existing {
			if existing[i].Source != source {
				combined = append(combined, existing[i])
			}
		}
		combined = append(combined, fresh...)
		return star.Deduplicate(combined)

	default:
		return fresh, 0
	}
}

// runTimestamp returns now, or just after the latest stored synced_at if
// the clock has not moved past it, so every run is strictly newer.
func runTimestamp(existing []domain.StarRecord, now time.Time) time.Time {
	ts := now.UTC()
	for i := range existing {
		if !existing[i].SyncedAt.Before(ts) {
			ts = existing[i].SyncedAt.Add(time.Microsecond)
		}
	}
	return ts
}

// loadForRun loads the store, treating a missing store as empty, and
// returns its records with a run timestamp for them.
func loadForRun(ctx context.Context, store driven.StarStore, now time.Time) ([]domain.StarRecord, time.Time, error) {
	existing, err := store.Load(ctx)
	if err != nil && !errors.Is(err, domain.ErrStoreNotFound) {
		return nil, time.Time{}, fmt.Errorf("load records: %w", err)
	}
	return existing, runTimestamp(existing, now), nil
}
