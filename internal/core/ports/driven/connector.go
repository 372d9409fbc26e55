package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/starsync/internal/core/domain"
)

// Connector fetches candidates from one source and normalises them into
// StarRecords. Each source type (github, firefox, chrome, awesome)
// implements this interface.
type Connector interface {
	// Source returns the source type this connector produces.
	Source() domain.SourceType

	// Fetch retrieves and normalises every candidate from the source.
	// syncedAt is stamped on every record of the batch.
	//
	// Invalid individual candidates are dropped and counted, never returned
	// as errors. A non-nil error means nothing usable was fetched. A partial
	// result (later-page failure) is reported through FetchResult.Partial.
	Fetch(ctx context.Context, syncedAt time.Time) (*FetchResult, error)
}

// FetchResult is the outcome of one connector run.
type FetchResult struct {
	// Records are normalised and deduplicated by full name.
	Records []domain.StarRecord

	// Dropped counts candidates discarded as invalid (unparseable URL,
	// denylisted path, failed validation).
	Dropped int

	// Duplicates counts candidates collapsed into an earlier record.
	Duplicates int

	// Partial is set when the fetch stopped early but kept what it had,
	// e.g. a transport failure after the first page.
	Partial error
}

// ConnectorFactory creates connectors for source types.
type ConnectorFactory interface {
	// Create returns a Connector for the source type using current settings.
	// Returns ErrSourceNotConfigured if the source has no input configured
	// and ErrUnsupportedSource if no connector exists for the type.
	Create(ctx context.Context, source domain.SourceType, settings domain.Settings) (Connector, error)

	// SupportedSources returns the source types the factory can build.
	SupportedSources() []domain.SourceType
}

// RepoEnricher re-fetches full repository metadata for an owner/name pair.
type RepoEnricher interface {
	Enrich(ctx context.Context, owner, name string) (*domain.RawStar, error)
}

// ReadmeFetcher reads a repository's README as raw markdown.
type ReadmeFetcher interface {
	FetchReadme(ctx context.Context, owner, name string) (string, error)
}
