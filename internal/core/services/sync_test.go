package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/starsync/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/starsync/internal/core/domain"
	"github.com/custodia-labs/starsync/internal/core/ports/driven"
	"github.com/custodia-labs/starsync/internal/core/ports/driving"
)

var syncNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

// mockConnector returns canned records stamped with the run's synced_at.
type mockConnector struct {
	source   domain.SourceType
	names    []string
	dropped  int
	partial  error
	err      error
	syncedAt time.Time
}

func (m *mockConnector) Source() domain.SourceType { return m.source }

func (m *mockConnector) Fetch(_ context.Context, syncedAt time.Time) (*driven.FetchResult, error) {
	m.syncedAt = syncedAt
	if m.err != nil {
		return nil, m.err
	}
	records := make([]domain.StarRecord, len(m.names))
	for i, name := range m.names {
		records[i] = syncRecord(name, m.source, syncedAt)
	}
	return &driven.FetchResult{Records: records, Dropped: m.dropped, Partial: m.partial}, nil
}

// mockFactory serves connectors by source; a missing source is unconfigured.
type mockFactory struct {
	connectors map[domain.SourceType]*mockConnector
	created    []domain.SourceType
}

func (f *mockFactory) Create(_ context.Context, source domain.SourceType, _ domain.Settings) (driven.Connector, error) {
	f.created = append(f.created, source)
	conn, ok := f.connectors[source]
	if !ok {
		return nil, domain.ErrSourceNotConfigured
	}
	return conn, nil
}

func (f *mockFactory) SupportedSources() []domain.SourceType {
	return []domain.SourceType{domain.SourceGitHub, domain.SourceFirefox, domain.SourceChrome, domain.SourceAwesome}
}

type staticSettings struct {
	settings domain.Settings
	err      error
}

func (s staticSettings) Get() (domain.Settings, error) { return s.settings, s.err }

// failingStore wraps a store and fails the chosen operations.
type failingStore struct {
	driven.StarStore
	saveErr   error
	backupErr error
}

func (s *failingStore) Save(ctx context.Context, records []domain.StarRecord, mode domain.StoreMode) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.StarStore.Save(ctx, records, mode)
}

func (s *failingStore) Backup(ctx context.Context) (string, error) {
	if s.backupErr != nil {
		return "", s.backupErr
	}
	return s.StarStore.Backup(ctx)
}

func syncRecord(fullName string, source domain.SourceType, syncedAt time.Time) domain.StarRecord {
	owner, name, _ := strings.Cut(fullName, "/")
	return domain.StarRecord{
		ID:       1,
		Owner:    owner,
		Name:     name,
		FullName: fullName,
		Topics:   []string{},
		Source:   source,
		SyncedAt: syncedAt,
	}
}

func newOrchestrator(store driven.StarStore, factory *mockFactory, settings domain.Settings) *SyncOrchestrator {
	o := NewSyncOrchestrator(store, factory, staticSettings{settings: settings})
	o.now = func() time.Time { return syncNow }
	o.newRunID = func() string { return "run-1" }
	return o
}

func namesBySource(t *testing.T, store driven.StarStore) map[domain.SourceType][]string {
	t.Helper()
	records, err := store.Load(context.Background())
	require.NoError(t, err)
	out := make(map[domain.SourceType][]string)
	for _, r := range records {
		out[r.Source] = append(out[r.Source], r.FullName)
	}
	return out
}

func TestSync_ReplaceIntoEmptyStore(t *testing.T) {
	store := memory.NewStarStore()
	conn := &mockConnector{source: domain.SourceGitHub, names: []string{"acme/a", "acme/b"}, dropped: 3}
	factory := &mockFactory{connectors: map[domain.SourceType]*mockConnector{domain.SourceGitHub: conn}}

	report, err := newOrchestrator(store, factory, domain.DefaultSettings()).
		Sync(context.Background(), driving.SyncRequest{Source: domain.SourceGitHub})
	require.NoError(t, err)

	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, 2, report.Fetched)
	assert.Equal(t, 3, report.Dropped)
	assert.Equal(t, 2, report.Stored)
	assert.Equal(t, syncNow, report.SyncedAt)
	assert.Equal(t, syncNow, conn.syncedAt)
	assert.Empty(t, report.BackupPath)
}

func TestSync_SyncedAtStrictlyAfterStored(t *testing.T) {
	later := syncNow.Add(time.Hour)
	store := memory.NewStarStoreWith([]domain.StarRecord{syncRecord("acme/old", domain.SourceChrome, later)})
	conn := &mockConnector{source: domain.SourceGitHub, names: []string{"acme/a"}}
	factory := &mockFactory{connectors: map[domain.SourceType]*mockConnector{domain.SourceGitHub: conn}}

	report, err := newOrchestrator(store, factory, domain.DefaultSettings()).
		Sync(context.Background(), driving.SyncRequest{Source: domain.SourceGitHub, Refresh: true})
	require.NoError(t, err)

	assert.True(t, report.SyncedAt.After(later))
	assert.Equal(t, report.SyncedAt, conn.syncedAt)
}

func TestSync_RefreshPreservesOtherSources(t *testing.T) {
	store := memory.NewStarStoreWith([]domain.StarRecord{
		syncRecord("acme/gh-old", domain.SourceGitHub, syncNow.Add(-time.Hour)),
		syncRecord("acme/ff", domain.SourceFirefox, syncNow.Add(-time.Hour)),
	})
	conn := &mockConnector{source: domain.SourceGitHub, names: []string{"acme/gh-new"}}
	factory := &mockFactory{connectors: map[domain.SourceType]*mockConnector{domain.SourceGitHub: conn}}

	report, err := newOrchestrator(store, factory, domain.DefaultSettings()).
		Sync(context.Background(), driving.SyncRequest{Source: domain.SourceGitHub, Mode: domain.StoreReplace, Refresh: true})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Stored)
	assert.Equal(t, map[domain.SourceType][]string{
		domain.SourceFirefox: {"acme/ff"},
		domain.SourceGitHub:  {"acme/gh-new"},
	}, namesBySource(t, store))
}

func TestSync_ReplaceWithoutRefreshSupersedesAll(t *testing.T) {
	store := memory.NewStarStoreWith([]domain.StarRecord{
		syncRecord("acme/ff", domain.SourceFirefox, syncNow.Add(-time.Hour)),
	})
	conn := &mockConnector{source: domain.SourceGitHub, names: []string{"acme/gh"}}
	factory := &mockFactory{connectors: map[domain.SourceType]*mockConnector{domain.SourceGitHub: conn}}

	_, err := newOrchestrator(store, factory, domain.DefaultSettings()).
		Sync(context.Background(), driving.SyncRequest{Source: domain.SourceGitHub, Mode: domain.StoreReplace})
	require.NoError(t, err)

	assert.Equal(t, map[domain.SourceType][]string{domain.SourceGitHub: {"acme/gh"}}, namesBySource(t, store))
}

func TestSync_AppendMergesByFullName(t *testing.T) {
	store := memory.NewStarStoreWith([]domain.StarRecord{
		syncRecord("acme/shared", domain.SourceGitHub, syncNow.Add(-time.Hour)),
		syncRecord("acme/kept", domain.SourceGitHub, syncNow.Add(-time.Hour)),
	})
	conn := &mockConnector{source: domain.SourceChrome, names: []string{"ACME/shared", "acme/new"}}
	factory := &mockFactory{connectors: map[domain.SourceType]*mockConnector{domain.SourceChrome: conn}}

	report, err := newOrchestrator(store, factory, domain.DefaultSettings()).
		Sync(context.Background(), driving.SyncRequest{Source: domain.SourceChrome, Mode: domain.StoreAppend})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Stored)
	assert.Equal(t, 1, report.Duplicates)

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	// The fresh record is newer, so its spelling of the name wins.
	assert.Equal(t, []string{"ACME/shared", "acme/kept", "acme/new"}, namesOf(records))
}

func TestSync_BackupAboveThreshold(t *testing.T) {
	existing := []domain.StarRecord{
		syncRecord("acme/1", domain.SourceGitHub, syncNow.Add(-time.Hour)),
		syncRecord("acme/2", domain.SourceGitHub, syncNow.Add(-time.Hour)),
		syncRecord("acme/3", domain.SourceGitHub, syncNow.Add(-time.Hour)),
	}
	settings := domain.DefaultSettings()
	settings.Sync.BackupThreshold = 2

	store := memory.NewStarStoreWith(existing)
	conn := &mockConnector{source: domain.SourceGitHub, names: []string{"acme/only"}}
	factory := &mockFactory{connectors: map[domain.SourceType]*mockConnector{domain.SourceGitHub: conn}}

	report, err := newOrchestrator(store, factory, settings).
		Sync(context.Background(), driving.SyncRequest{Source: domain.SourceGitHub})
	require.NoError(t, err)

	require.NotEmpty(t, report.BackupPath)
	backedUp, ok := store.BackupRecords(report.BackupPath)
	require.True(t, ok)
	assert.Len(t, backedUp, 3)
}

func TestSync_NoBackupAtOrBelowThreshold(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Sync.BackupThreshold = 1

	store := memory.NewStarStoreWith([]domain.StarRecord{syncRecord("acme/1", domain.SourceGitHub, syncNow.Add(-time.Hour))})
	conn := &mockConnector{source: domain.SourceGitHub, names: []string{"acme/2"}}
	factory := &mockFactory{connectors: map[domain.SourceType]*mockConnector{domain.SourceGitHub: conn}}

	report, err := newOrchestrator(store, factory, settings).
		Sync(context.Background(), driving.SyncRequest{Source: domain.SourceGitHub})
	require.NoError(t, err)
	assert.Empty(t, report.BackupPath)

	backups, err := store.ListBackups()
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestSync_BackupFailureStillReplaces(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Sync.BackupThreshold = 0

	inner := memory.NewStarStoreWith([]domain.StarRecord{syncRecord("acme/1", domain.SourceGitHub, syncNow.Add(-time.Hour))})
	store := &failingStore{StarStore: inner, backupErr: errors.New("disk full")}
	conn := &mockConnector{source: domain.SourceGitHub, names: []string{"acme/2"}}
	factory := &mockFactory{connectors: map[domain.SourceType]*mockConnector{domain.SourceGitHub: conn}}

	report, err := newOrchestrator(store, factory, settings).
		Sync(context.Background(), driving.SyncRequest{Source: domain.SourceGitHub})
	require.NoError(t, err)
	assert.Empty(t, report.BackupPath)
	assert.Equal(t, 1, report.Stored)

	assert.Equal(t, map[domain.SourceType][]string{domain.SourceGitHub: {"acme/2"}}, namesBySource(t, inner))
}

func TestSync_FetchErrorLeavesStoreUntouched(t *testing.T) {
	store := memory.NewStarStoreWith([]domain.StarRecord{syncRecord("acme/1", domain.SourceGitHub, syncNow.Add(-time.Hour))})
	fetchErr := &domain.SourceFetchError{Source: domain.SourceGitHub, Page: 1, Err: domain.ErrAuthInvalid}
	conn := &mockConnector{source: domain.SourceGitHub, err: fetchErr}
	factory := &mockFactory{connectors: map[domain.SourceType]*mockConnector{domain.SourceGitHub: conn}}

	_, err := newOrchestrator(store, factory, domain.DefaultSettings()).
		Sync(context.Background(), driving.SyncRequest{Source: domain.SourceGitHub})
	assert.ErrorIs(t, err, domain.ErrAuthInvalid)

	assert.Equal(t, map[domain.SourceType][]string{domain.SourceGitHub: {"acme/1"}}, namesBySource(t, store))
}

func TestSync_PartialResultIsStored(t *testing.T) {
	store := memory.NewStarStore()
	partial := &domain.SourceFetchError{Source: domain.SourceGitHub, Page: 3, Retrieved: 200, Err: errors.New("reset")}
	conn := &mockConnector{source: domain.SourceGitHub, names: []string{"acme/a"}, partial: partial}
	factory := &mockFactory{connectors: map[domain.SourceType]*mockConnector{domain.SourceGitHub: conn}}

	report, err := newOrchestrator(store, factory, domain.DefaultSettings()).
		Sync(context.Background(), driving.SyncRequest{Source: domain.SourceGitHub})
	require.NoError(t, err)
	assert.Equal(t, partial, report.Partial)
	assert.Equal(t, 1, report.Stored)
}

func TestSync_SaveErrorIsReturned(t *testing.T) {
	writeErr := &domain.StorageWriteError{Op: "write replace", Path: "/x", Err: errors.New("read-only")}
	store := &failingStore{StarStore: memory.NewStarStore(), saveErr: writeErr}
	conn := &mockConnector{source: domain.SourceGitHub, names: []string{"acme/a"}}
	factory := &mockFactory{connectors: map[domain.SourceType]*mockConnector{domain.SourceGitHub: conn}}

	_, err := newOrchestrator(store, factory, domain.DefaultSettings()).
		Sync(context.Background(), driving.SyncRequest{Source: domain.SourceGitHub})

	var target *domain.StorageWriteError
	assert.ErrorAs(t, err, &target)
}

func TestSync_RejectsBadRequests(t *testing.T) {
	o := newOrchestrator(memory.NewStarStore(), &mockFactory{}, domain.DefaultSettings())

	_, err := o.Sync(context.Background(), driving.SyncRequest{Source: "myspace"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedSource)

	_, err = o.Sync(context.Background(), driving.SyncRequest{Source: domain.SourceGitHub, Mode: "merge"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = o.Sync(context.Background(), driving.SyncRequest{Source: domain.SourceChrome})
	assert.ErrorIs(t, err, domain.ErrSourceNotConfigured)
}

func TestSyncAll_OrderSkipAndJoinedErrors(t *testing.T) {
	store := memory.NewStarStore()
	factory := &mockFactory{connectors: map[domain.SourceType]*mockConnector{
		domain.SourceGitHub:  {source: domain.SourceGitHub, names: []string{"acme/gh"}},
		domain.SourceChrome:  {source: domain.SourceChrome, err: errors.New("corrupt file")},
		domain.SourceAwesome: {source: domain.SourceAwesome, names: []string{"acme/aw"}},
	}}

	reports, err := newOrchestrator(store, factory, domain.DefaultSettings()).SyncAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sync chrome")

	assert.Equal(t, []domain.SourceType{
		domain.SourceGitHub, domain.SourceFirefox, domain.SourceChrome, domain.SourceAwesome,
	}, factory.created)

	require.Len(t, reports, 3)
	assert.Equal(t, domain.SourceGitHub, reports[0].Source)
	assert.NoError(t, reports[0].Err)
	assert.Equal(t, domain.SourceChrome, reports[1].Source)
	assert.Error(t, reports[1].Err)
	assert.Equal(t, domain.SourceAwesome, reports[2].Source)

	assert.Equal(t, map[domain.SourceType][]string{
		domain.SourceGitHub:  {"acme/gh"},
		domain.SourceAwesome: {"acme/aw"},
	}, namesBySource(t, store))
}

func TestSyncAll_AllSucceed(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Sync.Order = []domain.SourceType{domain.SourceFirefox}

	factory := &mockFactory{connectors: map[domain.SourceType]*mockConnector{
		domain.SourceFirefox: {source: domain.SourceFirefox, names: []string{"acme/ff"}},
	}}

	reports, err := newOrchestrator(memory.NewStarStore(), factory, settings).SyncAll(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, 1, reports[0].Stored)
}

func TestSyncAll_SettingsError(t *testing.T) {
	o := NewSyncOrchestrator(memory.NewStarStore(), &mockFactory{}, staticSettings{err: errors.New("bad toml")})

	_, err := o.SyncAll(context.Background())
	assert.Error(t, err)
}

func TestRunTimestamp(t *testing.T) {
	assert.Equal(t, syncNow, runTimestamp(nil, syncNow))

	older := []domain.StarRecord{syncRecord("a/b", domain.SourceGitHub, syncNow.Add(-time.Second))}
	assert.Equal(t, syncNow, runTimestamp(older, syncNow))

	same := []domain.StarRecord{syncRecord("a/b", domain.SourceGitHub, syncNow)}
	assert.Equal(t, syncNow.Add(time.Microsecond), runTimestamp(same, syncNow))
}
