package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/starsync/internal/core/domain"
	"github.com/custodia-labs/starsync/internal/core/ports/driving"
)

// mockSyncOrchestrator implements driving.SyncOrchestrator for testing.
type mockSyncOrchestrator struct {
	report  *driving.SyncReport
	reports []driving.SyncReport
	err     error

	requests  []driving.SyncRequest
	allCalled bool
}

func (m *mockSyncOrchestrator) Sync(_ context.Context, req driving.SyncRequest) (*driving.SyncReport, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	if m.report != nil {
		return m.report, nil
	}
	return &driving.SyncReport{Source: req.Source}, nil
}

func (m *mockSyncOrchestrator) SyncAll(_ context.Context) ([]driving.SyncReport, error) {
	m.allCalled = true
	return m.reports, m.err
}

// mockQueryService implements driving.QueryService for testing.
type mockQueryService struct {
	records []domain.StarRecord
	groups  []domain.Group
	err     error

	opts driving.QueryOptions
	key  domain.GroupKey
}

func (m *mockQueryService) List(_ context.Context, opts driving.QueryOptions) ([]domain.StarRecord, error) {
	m.opts = opts
	return m.records, m.err
}

func (m *mockQueryService) Group(_ context.Context, opts driving.QueryOptions, key domain.GroupKey) ([]domain.Group, error) {
	m.opts = opts
	m.key = key
	return m.groups, m.err
}

// mockStorageService implements driving.StorageService for testing.
type mockStorageService struct {
	backupPath string
	backups    []string
	migrated   bool
	stats      map[domain.SourceType]int
	report     *driving.ImportReport
	err        error

	imported   []map[string]any
	initCalled bool
}

func (m *mockStorageService) Init(_ context.Context) error {
	m.initCalled = true
	return m.err
}

func (m *mockStorageService) Backup(_ context.Context) (string, error) {
	return m.backupPath, m.err
}

func (m *mockStorageService) ListBackups() ([]string, error) {
	return m.backups, m.err
}

func (m *mockStorageService) Migrate(_ context.Context) (bool, error) {
	return m.migrated, m.err
}

func (m *mockStorageService) Import(_ context.Context, entries []map[string]any) (*driving.ImportReport, error) {
	m.imported = entries
	if m.err != nil {
		return nil, m.err
	}
	if m.report != nil {
		return m.report, nil
	}
	return &driving.ImportReport{Imported: len(entries)}, nil
}

func (m *mockStorageService) Stats(_ context.Context) (map[domain.SourceType]int, error) {
	return m.stats, m.err
}

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	settings domain.Settings
	err      error
	set      map[string]string
}

func (m *mockSettingsService) Get() (domain.Settings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.err != nil {
		return m.err
	}
	if m.set == nil {
		m.set = make(map[string]string)
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"github.per_page", "github.user"}
}

func (m *mockSettingsService) Path() string {
	return "/home/test/.config/starsync/config.toml"
}

type testServices struct {
	sync     *mockSyncOrchestrator
	query    *mockQueryService
	storage  *mockStorageService
	settings *mockSettingsService
}

// setupServices installs fresh mocks and restores the previous services
// when the test ends.
func setupServices(t *testing.T) *testServices {
	t.Helper()

	oldSync, oldQuery, oldStorage, oldSettings := syncOrchestrator, queryService, storageService, settingsService
	t.Cleanup(func() {
		syncOrchestrator, queryService, storageService, settingsService = oldSync, oldQuery, oldStorage, oldSettings
	})

	s := &testServices{
		sync:     &mockSyncOrchestrator{},
		query:    &mockQueryService{},
		storage:  &mockStorageService{},
		settings: &mockSettingsService{settings: domain.DefaultSettings()},
	}
	syncOrchestrator, queryService, storageService, settingsService = s.sync, s.query, s.storage, s.settings
	return s
}

// executeCommand runs the root command with args and returns its output.
// Flag values persist between executions, so every flag is reset first.
func executeCommand(args ...string) (string, error) {
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func testRecord(fullName string, stars int) domain.StarRecord {
	lang := "Go"
	desc := "A   test\nrepository"
	pushed := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	return domain.StarRecord{
		ID:          1,
		Owner:       "acme",
		Name:        fullName,
		FullName:    fullName,
		Description: &desc,
		Language:    &lang,
		Topics:      []string{},
		Stars:       stars,
		Pushed:      &pushed,
		Source:      domain.SourceGitHub,
		SyncedAt:    pushed,
	}
}
