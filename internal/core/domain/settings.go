package domain

import "time"

// Defaults for sync and enrichment behaviour.
const (
	// DefaultPerPage is the GitHub page size (the API maximum).
	DefaultPerPage = 100

	// MaxPerPage is the GitHub API's hard page-size limit.
	MaxPerPage = 100

	// DefaultBackupThreshold is the record count above which a replace
	// sync takes a backup first.
	DefaultBackupThreshold = 10

	// DefaultEnrichBatchSize is the number of enrichment requests per batch.
	DefaultEnrichBatchSize = 10

	// DefaultEnrichBatchDelay is the pause between enrichment batches.
	DefaultEnrichBatchDelay = 2 * time.Second
)

// GitHubSettings configures the GitHub starred-list source.
type GitHubSettings struct {
	// User whose stars are listed. Empty means the authenticated user.
	User string

	// PerPage is the requested page size, clamped to MaxPerPage.
	PerPage int
}

// BookmarkSettings configures a browser bookmark source.
type BookmarkSettings struct {
	// Path is the bookmark store or export file.
	Path string

	// Folder restricts output to bookmarks below a folder whose path contains it.
	Folder string
}

// IsConfigured returns true if a bookmark file is set.
func (b BookmarkSettings) IsConfigured() bool {
	return b.Path != ""
}

// AwesomeSettings configures markdown list sources.
type AwesomeSettings struct {
	// Lists are local markdown files or owner/repo references whose README is read.
	Lists []string

	// Enrich re-fetches each candidate from GitHub for full metadata.
	Enrich bool

	// BatchSize is the number of enrichment requests per batch.
	BatchSize int

	// BatchDelay is the pause between enrichment batches.
	BatchDelay time.Duration
}

// IsConfigured returns true if at least one list is set.
func (a AwesomeSettings) IsConfigured() bool {
	return len(a.Lists) > 0
}

// SyncSettings configures the sync orchestrator.
type SyncSettings struct {
	// BackupThreshold triggers an automatic backup before a replace sync
	// when the store holds more records than this.
	BackupThreshold int

	// Order is the fixed sequence used by sync-all.
	Order []SourceType
}

// Settings is the complete application configuration.
type Settings struct {
	GitHub  GitHubSettings
	Firefox BookmarkSettings
	Chrome  BookmarkSettings
	Awesome AwesomeSettings
	Filter  FilterOptions
	Sync    SyncSettings
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		GitHub: GitHubSettings{PerPage: DefaultPerPage},
		Awesome: AwesomeSettings{
			BatchSize:  DefaultEnrichBatchSize,
			BatchDelay: DefaultEnrichBatchDelay,
		},
		Filter: DefaultFilterOptions(),
		Sync: SyncSettings{
			BackupThreshold: DefaultBackupThreshold,
			Order:           []SourceType{SourceGitHub, SourceFirefox, SourceChrome, SourceAwesome},
		},
	}
}

// ClampPerPage bounds a requested page size to [1, MaxPerPage].
// Non-positive values fall back to the default.
func ClampPerPage(n int) int {
	switch {
	case n <= 0:
		return DefaultPerPage
	case n > MaxPerPage:
		return MaxPerPage
	default:
		return n
	}
}
