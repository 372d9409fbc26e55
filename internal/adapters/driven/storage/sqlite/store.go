package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/starsync/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/starsync/internal/core/domain"
	"github.com/custodia-labs/starsync/internal/core/ports/driven"
	"github.com/custodia-labs/starsync/internal/logger"
	"github.com/custodia-labs/starsync/internal/normalisers/star"
)

// Backup file naming.
const (
	backupPrefix     = "stars-"
	backupSuffix     = ".db"
	backupTimeLayout = "20060102-150405"
)

// legacyTable is the table name used by the legacy store.
const legacyTable = "stars"

// Verify interface compliance.
var _ driven.StarStore = (*Store)(nil)

// Store is a SQLite-backed StarStore.
type Store struct {
	paths domain.Paths
	now   func() time.Time

	mu sync.Mutex
	db *sql.DB
}

// NewStore creates a store at paths.StorePath. Nothing is touched on disk
// until the store is used.
func NewStore(paths domain.Paths) *Store {
	return &Store{paths: paths, now: time.Now}
}

// Close closes the database connection if one is open.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Location returns the store file path.
func (s *Store) Location() string {
	return s.paths.StorePath
}

// Init creates the data and backup directories.
func (s *Store) Init(_ context.Context) error {
	for _, dir := range []string{s.paths.DataDir, s.paths.BackupDir} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return &domain.StorageWriteError{Op: "create directory", Path: dir, Err: err}
		}
	}
	return nil
}

// Exists reports whether the store file has been created.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.paths.StorePath)
	return err == nil
}

// open returns the shared connection, opening and migrating it on first
// use. Unless create is set, a missing file gives ErrStoreNotFound.
func (s *Store) open(create bool) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}
	if !create && !s.Exists() {
		return nil, domain.ErrStoreNotFound
	}
	if err := os.MkdirAll(s.paths.DataDir, 0700); err != nil {
		return nil, &domain.StorageWriteError{Op: "create directory", Path: s.paths.DataDir, Err: err}
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", s.paths.StorePath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := migrate(db, migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	s.db = db
	return db, nil
}

// migrate runs all pending migrations.
func migrate(db *sql.DB, fsys fs.FS) error {
	// Ensure schema_migrations table exists
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_stars.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}

	return nil
}

const selectColumns = `id, owner, name, full_name, description, homepage, url, language,
	license, topics, stars, forks, issues, created, updated, pushed, archived, fork,
	source, synced_at`

// Load returns every stored record in insertion order.
func (s *Store) Load(ctx context.Context) ([]domain.StarRecord, error) {
	db, err := s.open(false)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, "SELECT "+selectColumns+" FROM stars ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying stars: %w", err)
	}
	defer rows.Close()

	records := []domain.StarRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stars: %w", err)
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (domain.StarRecord, error) {
	var (
		rec                                  domain.StarRecord
		description, homepage, url, language sql.NullString
		license, created, updated, pushed    sql.NullString
		topics, source, syncedAt             string
		archived, fork                       int
	)
	err := rows.Scan(
		&rec.ID, &rec.Owner, &rec.Name, &rec.FullName,
		&description, &homepage, &url, &language, &license, &topics,
		&rec.Stars, &rec.Forks, &rec.Issues,
		&created, &updated, &pushed, &archived, &fork,
		&source, &syncedAt,
	)
	if err != nil {
		return domain.StarRecord{}, fmt.Errorf("scanning star: %w", err)
	}

	rec.Description = nullableString(description)
	rec.Homepage = nullableString(homepage)
	rec.URL = nullableString(url)
	rec.Language = nullableString(language)
	rec.License = nullableString(license)
	rec.Topics = star.DecodeTopics(domain.TopicsEncoded(topics))
	rec.Created = nullableTime(created)
	rec.Updated = nullableTime(updated)
	rec.Pushed = nullableTime(pushed)
	rec.Archived = archived != 0
	rec.Fork = fork != 0
	rec.Source = domain.SourceType(source)
	if t := nullableTime(sql.NullString{String: syncedAt, Valid: true}); t != nil {
		rec.SyncedAt = *t
	}
	return rec, nil
}

const upsertStar = `INSERT INTO stars (star_key, position, ` + selectColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(star_key) DO UPDATE SET
		id = excluded.id,
		owner = excluded.owner,
		name = excluded.name,
		full_name = excluded.full_name,
		description = excluded.description,
		homepage = excluded.homepage,
		url = excluded.url,
		language = excluded.language,
		license = excluded.license,
		topics = excluded.topics,
		stars = excluded.stars,
		forks = excluded.forks,
		issues = excluded.issues,
		created = excluded.created,
		updated = excluded.updated,
		pushed = excluded.pushed,
		archived = excluded.archived,
		fork = excluded.fork,
		source = excluded.source,
		synced_at = excluded.synced_at`

// Save writes a batch in one transaction. Replace deletes every existing
// row first; append upserts by full name and keeps existing positions.
func (s *Store) Save(ctx context.Context, records []domain.StarRecord, mode domain.StoreMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: store mode %q", domain.ErrInvalidInput, mode)
	}

	db, err := s.open(true)
	if err != nil {
		return err
	}

	if err := s.save(ctx, db, records, mode); err != nil {
		return &domain.StorageWriteError{Op: "write " + string(mode), Path: s.paths.StorePath, Err: err}
	}
	return nil
}

func (s *Store) save(ctx context.Context, db *sql.DB, records []domain.StarRecord, mode domain.StoreMode) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	next := 0
	if mode == domain.StoreReplace {
		if _, err := tx.ExecContext(ctx, "DELETE FROM stars"); err != nil {
			return fmt.Errorf("clearing stars: %w", err)
		}
	} else {
		row := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(position), -1) + 1 FROM stars")
		if err := row.Scan(&next); err != nil {
			return fmt.Errorf("reading next position: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, upsertStar)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		r := &records[i]
		_, err := stmt.ExecContext(ctx,
			r.Key(), next+i,
			r.ID, r.Owner, r.Name, r.FullName,
			r.Description, r.Homepage, r.URL, r.Language, r.License,
			star.EncodeTopics(r.Topics),
			r.Stars, r.Forks, r.Issues,
			formatTime(r.Created), formatTime(r.Updated), formatTime(r.Pushed),
			boolInt(r.Archived), boolInt(r.Fork),
			string(r.Source), r.SyncedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("writing %s: %w", r.FullName, err)
		}
	}

	return tx.Commit()
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	db, err := s.open(false)
	if errors.Is(err, domain.ErrStoreNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM stars").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting stars: %w", err)
	}
	return n, nil
}

// CountBySource returns record counts keyed by source.
func (s *Store) CountBySource(ctx context.Context) (map[domain.SourceType]int, error) {
	counts := make(map[domain.SourceType]int)

	db, err := s.open(false)
	if errors.Is(err, domain.ErrStoreNotFound) {
		return counts, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, "SELECT source, COUNT(*) FROM stars GROUP BY source")
	if err != nil {
		return nil, fmt.Errorf("counting by source: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var source string
		var n int
		if err := rows.Scan(&source, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[domain.SourceType(source)] = n
	}
	return counts, rows.Err()
}

// Backup writes a consistent copy of the store into the backup directory.
func (s *Store) Backup(ctx context.Context) (string, error) {
	if !s.Exists() {
		return "", domain.ErrNoData
	}
	db, err := s.open(false)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.paths.BackupDir, 0700); err != nil {
		return "", &domain.StorageWriteError{Op: "create directory", Path: s.paths.BackupDir, Err: err}
	}

	path := s.backupPath()
	if _, err := db.ExecContext(ctx, "VACUUM INTO ?", path); err != nil {
		return "", &domain.StorageWriteError{Op: "backup", Path: path, Err: err}
	}
	return path, nil
}

// backupPath names a new backup file, adding a counter when two backups
// land in the same second.
func (s *Store) backupPath() string {
	stamp := s.now().UTC().Format(backupTimeLayout)
	path := filepath.Join(s.paths.BackupDir, backupPrefix+stamp+backupSuffix)
	for i := 2; fileExists(path); i++ {
		path = filepath.Join(s.paths.BackupDir, fmt.Sprintf("%s%s-%d%s", backupPrefix, stamp, i, backupSuffix))
	}
	return path
}

// ListBackups returns backup paths, newest first.
func (s *Store) ListBackups() ([]string, error) {
	entries, err := os.ReadDir(s.paths.BackupDir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading backup directory: %w", err)
	}

	type backup struct {
		path    string
		modTime time.Time
	}
	var backups []backup
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		backups = append(backups, backup{path: filepath.Join(s.paths.BackupDir, name), modTime: info.ModTime()})
	}

	// Names sort chronologically; mod time breaks same-second ties.
	sort.Slice(backups, func(i, j int) bool {
		if backups[i].modTime.Equal(backups[j].modTime) {
			return backups[i].path > backups[j].path
		}
		return backups[i].modTime.After(backups[j].modTime)
	})

	paths := make([]string, len(backups))
	for i, b := range backups {
		paths[i] = b.path
	}
	return paths, nil
}

// MigrateLegacy copies the legacy store into the current location.
// Rows missing source or synced_at are backfilled with github and the
// current time; rows that fail validation are skipped with a warning.
func (s *Store) MigrateLegacy(ctx context.Context) (bool, error) {
	legacy := s.paths.LegacyStorePath
	if legacy == "" || !fileExists(legacy) || s.Exists() {
		return false, nil
	}

	rows, err := readLegacy(ctx, legacy)
	if err != nil {
		return false, err
	}

	defaults := star.FieldDefaults{Source: domain.SourceGitHub, SyncedAt: s.now().UTC()}
	records := make([]domain.StarRecord, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		rec, res, err := star.FromFields(row, defaults)
		if err != nil {
			skipped++
			logger.Warn("Skipping legacy row: %v", err)
			continue
		}
		for _, w := range res.Warnings {
			logger.Debug("Legacy row %s: %s", rec.FullName, w)
		}
		records = append(records, rec)
	}
	records, dups := star.Deduplicate(records)

	if err := s.Save(ctx, records, domain.StoreReplace); err != nil {
		// The store did not exist before; leave no empty store behind so
		// the migration can be retried.
		if rmErr := s.discard(); rmErr != nil {
			logger.Warn("Could not remove partial store %s: %v", s.paths.StorePath, rmErr)
		}
		return false, err
	}

	logger.Info("Migrated %d records from %s (%d skipped, %d duplicates merged)", len(records), legacy, skipped, dups)
	return true, nil
}

// discard closes the connection and removes the store file with its
// WAL and shared-memory files.
func (s *Store) discard() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if s.db != nil {
		errs = append(errs, s.db.Close())
		s.db = nil
	}
	for _, suffix := range []string{"", "-wal", "-shm"} {
		if err := os.Remove(s.paths.StorePath + suffix); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// readLegacy reads every row of the legacy stars table as column maps.
// The column set is whatever the legacy schema had.
func readLegacy(ctx context.Context, path string) ([]map[string]any, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening legacy store: %w", err)
	}
	defer db.Close()

	var table string
	err = db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", legacyTable).Scan(&table)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: legacy store %s has no %s table", domain.ErrInvalidInput, path, legacyTable)
	}
	if err != nil {
		return nil, fmt.Errorf("reading legacy schema: %w", err)
	}

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+legacyTable)
	if err != nil {
		return nil, fmt.Errorf("querying legacy store: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading legacy columns: %w", err)
	}

	var out []map[string]any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning legacy row: %w", err)
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			if values[i] != nil {
				row[col] = values[i]
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return domain.StringPtr(ns.String)
}

func nullableTime(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, ns.String)
	if err != nil {
		return nil
	}
	return domain.TimePtr(t)
}

func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
