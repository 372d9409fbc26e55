package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/starsync/internal/core/domain"
)

// SyncOrchestrator coordinates record synchronisation from sources.
type SyncOrchestrator interface {
	// Sync runs one source end-to-end and writes the result.
	Sync(ctx context.Context, req SyncRequest) (*SyncReport, error)

	// SyncAll runs every configured source in the configured order.
	// A failing source is logged and skipped; the returned error joins
	// every per-source failure.
	SyncAll(ctx context.Context) ([]SyncReport, error)
}

// SyncRequest selects a source and how its batch is written.
type SyncRequest struct {
	// Source is the source to sync.
	Source domain.SourceType

	// Mode is replace (supersede) or append (merge into existing).
	Mode domain.StoreMode

	// Refresh limits a replace to records of Source, preserving the
	// records of every other source.
	Refresh bool
}

// SyncReport summarises one source run.
type SyncReport struct {
	// RunID identifies the sync run.
	RunID string

	// Source is the synced source.
	Source domain.SourceType

	// Fetched is the number of normalised records the connector returned.
	Fetched int

	// Dropped counts invalid candidates discarded by the connector.
	Dropped int

	// Duplicates counts candidates merged into other records.
	Duplicates int

	// Stored is the total number of records in the store after the write.
	Stored int

	// Partial is set when the connector stopped early and kept a partial result.
	Partial error

	// BackupPath is set when an automatic backup was taken.
	BackupPath string

	// SyncedAt is the timestamp stamped on every record of the run.
	SyncedAt time.Time

	// Err is set on reports from SyncAll when the source failed.
	Err error
}
