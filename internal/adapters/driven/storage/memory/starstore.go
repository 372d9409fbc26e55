package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/starsync/internal/core/domain"
	"github.com/custodia-labs/starsync/internal/core/ports/driven"
	"github.com/custodia-labs/starsync/internal/normalisers/star"
)

// Ensure StarStore implements the interface.
var _ driven.StarStore = (*StarStore)(nil)

type snapshot struct {
	name    string
	records []domain.StarRecord
}

// StarStore is an in-memory implementation of driven.StarStore.
// Records are deep-copied on the way in and out.
type StarStore struct {
	mu      sync.RWMutex
	exists  bool
	records []domain.StarRecord
	backups []snapshot
	legacy  []map[string]any
	now     func() time.Time
}

// NewStarStore creates an empty store that does not exist yet.
func NewStarStore() *StarStore {
	return &StarStore{now: time.Now}
}

// NewStarStoreWith creates an existing store holding records.
func NewStarStoreWith(records []domain.StarRecord) *StarStore {
	s := NewStarStore()
	s.exists = true
	s.records = cloneAll(records)
	return s
}

// SetLegacy seeds legacy rows for MigrateLegacy.
func (s *StarStore) SetLegacy(rows []map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.legacy = rows
}

// Init is a no-op; there are no directories to create.
func (s *StarStore) Init(_ context.Context) error {
	return nil
}

// Exists reports whether a Save has happened.
func (s *StarStore) Exists() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exists
}

// Load returns copies of every record in insertion order.
func (s *StarStore) Load(_ context.Context) ([]domain.StarRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.exists {
		return nil, domain.ErrStoreNotFound
	}
	return cloneAll(s.records), nil
}

// Save writes a batch. Append upserts by full name and keeps positions.
func (s *StarStore) Save(_ context.Context, records []domain.StarRecord, mode domain.StoreMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: store mode %q", domain.ErrInvalidInput, mode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.records
	if mode == domain.StoreReplace {
		existing = nil
	}

	index := make(map[string]int, len(existing))
	next := make([]domain.StarRecord, 0, len(existing)+len(records))
	for i := range existing {
		index[existing[i].Key()] = len(next)
		next = append(next, existing[i])
	}
	for i := range records {
		rec := records[i].Clone()
		if at, ok := index[rec.Key()]; ok {
			next[at] = rec
			continue
		}
		index[rec.Key()] = len(next)
		next = append(next, rec)
	}

	s.records = next
	s.exists = true
	return nil
}

// Count returns the number of stored records.
func (s *StarStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// CountBySource returns record counts keyed by source.
func (s *StarStore) CountBySource(_ context.Context) (map[domain.SourceType]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[domain.SourceType]int)
	for i := range s.records {
		counts[s.records[i].Source]++
	}
	return counts, nil
}

// Backup snapshots the current records.
func (s *StarStore) Backup(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.exists {
		return "", domain.ErrNoData
	}
	name := fmt.Sprintf("memory://backups/stars-%s-%d.db", s.now().UTC().Format("20060102-150405"), len(s.backups)+1)
	s.backups = append(s.backups, snapshot{name: name, records: cloneAll(s.records)})
	return name, nil
}

// ListBackups returns backup names, newest first.
func (s *StarStore) ListBackups() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.backups))
	for i := len(s.backups) - 1; i >= 0; i-- {
		names = append(names, s.backups[i].name)
	}
	return names, nil
}

// BackupRecords returns the records captured by a backup.
func (s *StarStore) BackupRecords(name string) ([]domain.StarRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.backups {
		if b.name == name {
			return cloneAll(b.records), true
		}
	}
	return nil, false
}

// MigrateLegacy converts the seeded legacy rows once.
func (s *StarStore) MigrateLegacy(ctx context.Context) (bool, error) {
	s.mu.RLock()
	legacy, exists := s.legacy, s.exists
	s.mu.RUnlock()

	if legacy == nil || exists {
		return false, nil
	}

	defaults := star.FieldDefaults{Source: domain.SourceGitHub, SyncedAt: s.now().UTC()}
	records := make([]domain.StarRecord, 0, len(legacy))
	for _, row := range legacy {
		rec, _, err := star.FromFields(row, defaults)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	records, _ = star.Deduplicate(records)
	return true, s.Save(ctx, records, domain.StoreReplace)
}

// Location returns a placeholder path.
func (s *StarStore) Location() string {
	return "memory://stars.db"
}

func cloneAll(records []domain.StarRecord) []domain.StarRecord {
	out := make([]domain.StarRecord, len(records))
	for i := range records {
		out[i] = records[i].Clone()
	}
	return out
}
