package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/starsync/internal/core/domain"
	"github.com/custodia-labs/starsync/internal/core/ports/driven"
	"github.com/custodia-labs/starsync/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyGitHubUser       = "github.user"
	keyGitHubPerPage    = "github.per_page"
	keyFirefoxPath      = "firefox.path"
	keyFirefoxFolder    = "firefox.folder"
	keyChromePath       = "chrome.path"
	keyChromeFolder     = "chrome.folder"
	keyAwesomeLists     = "awesome.lists"
	keyAwesomeEnrich    = "awesome.enrich"
	keyAwesomeBatchSize = "awesome.batch_size"
	keyAwesomeDelay     = "awesome.batch_delay"
	keyFilterArchived   = "filter.archived"
	keyFilterStale      = "filter.stale"
	keyFilterStaleDays  = "filter.stale_days"
	keyFilterLangs      = "filter.exclude_languages"
	keyFilterLangList   = "filter.languages"
	keyFilterForks      = "filter.forks"
	keyBackupThreshold  = "sync.backup_threshold"
	keySyncOrder        = "sync.order"
)

type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindBool
	kindList
	kindDuration
	kindSources
)

// settingSpec describes how a key's string form is parsed and bounded.
type settingSpec struct {
	kind settingKind
	min  int
	max  int
}

var settingSpecs = map[string]settingSpec{
	keyGitHubUser:       {kind: kindString},
	keyGitHubPerPage:    {kind: kindInt, min: 1, max: domain.MaxPerPage},
	keyFirefoxPath:      {kind: kindString},
	keyFirefoxFolder:    {kind: kindString},
	keyChromePath:       {kind: kindString},
	keyChromeFolder:     {kind: kindString},
	keyAwesomeLists:     {kind: kindList},
	keyAwesomeEnrich:    {kind: kindBool},
	keyAwesomeBatchSize: {kind: kindInt, min: 1},
	keyAwesomeDelay:     {kind: kindDuration},
	keyFilterArchived:   {kind: kindBool},
	keyFilterStale:      {kind: kindBool},
	keyFilterStaleDays:  {kind: kindInt, min: 1},
	keyFilterLangs:      {kind: kindBool},
	keyFilterLangList:   {kind: kindList},
	keyFilterForks:      {kind: kindBool},
	keyBackupThreshold:  {kind: kindInt, min: 0},
	keySyncOrder:        {kind: kindSources},
}

// SettingsService maps config keys onto domain.Settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns current settings. Keys that are absent or hold unusable
// values fall back to defaults.
func (s *SettingsService) Get() (domain.Settings, error) {
	d := domain.DefaultSettings()

	return domain.Settings{
		GitHub: domain.GitHubSettings{
			User:    s.getString(keyGitHubUser, d.GitHub.User),
			PerPage: domain.ClampPerPage(s.getInt(keyGitHubPerPage, d.GitHub.PerPage)),
		},
		Firefox: domain.BookmarkSettings{
			Path:   s.getString(keyFirefoxPath, ""),
			Folder: s.getString(keyFirefoxFolder, ""),
		},
		Chrome: domain.BookmarkSettings{
			Path:   s.getString(keyChromePath, ""),
			Folder: s.getString(keyChromeFolder, ""),
		},
		Awesome: domain.AwesomeSettings{
			Lists:      s.getList(keyAwesomeLists, d.Awesome.Lists),
			Enrich:     s.getBool(keyAwesomeEnrich, d.Awesome.Enrich),
			BatchSize:  s.getInt(keyAwesomeBatchSize, d.Awesome.BatchSize),
			BatchDelay: s.getDuration(keyAwesomeDelay, d.Awesome.BatchDelay),
		},
		Filter: domain.FilterOptions{
			ExcludeArchived:  s.getBool(keyFilterArchived, d.Filter.ExcludeArchived),
			ExcludeStale:     s.getBool(keyFilterStale, d.Filter.ExcludeStale),
			StaleDays:        s.getInt(keyFilterStaleDays, d.Filter.StaleDays),
			ExcludeLanguages: s.getBool(keyFilterLangs, d.Filter.ExcludeLanguages),
			Languages:        s.getList(keyFilterLangList, d.Filter.Languages),
			ExcludeForks:     s.getBool(keyFilterForks, d.Filter.ExcludeForks),
		},
		Sync: domain.SyncSettings{
			BackupThreshold: s.getInt(keyBackupThreshold, d.Sync.BackupThreshold),
			Order:           s.getSources(keySyncOrder, d.Sync.Order),
		},
	}, nil
}

// Set parses value for key and persists it.
func (s *SettingsService) Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	spec, ok := settingSpecs[key]
	if !ok {
		return fmt.Errorf("%w: setting %q", domain.ErrUnsupportedKey, key)
	}

	parsed, err := spec.parse(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the supported setting keys, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingSpecs))
	for k := range settingSpecs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func (spec settingSpec) parse(value string) (any, error) {
	value = strings.TrimSpace(value)

	switch spec.kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", value)
		}
		if n < spec.min || (spec.max > 0 && n > spec.max) {
			if spec.max > 0 {
				return nil, fmt.Errorf("%d is outside %d..%d", n, spec.min, spec.max)
			}
			return nil, fmt.Errorf("%d is below %d", n, spec.min)
		}
		return n, nil

	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%q is not a boolean", value)
		}
		return b, nil

	case kindList:
		return splitList(value), nil

	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("%q is not a duration", value)
		}
		if d < 0 {
			return nil, fmt.Errorf("%s is negative", d)
		}
		return d.String(), nil

	case kindSources:
		names := splitList(value)
		for _, name := range names {
			if _, err := domain.ParseSourceType(name); err != nil {
				return nil, err
			}
		}
		return names, nil

	default:
		return value, nil
	}
}

func splitList(s string) []string {
	result := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// Helper methods

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getList(key string, defaultVal []string) []string {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetStringSlice(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getSources(key string, defaultVal []domain.SourceType) []domain.SourceType {
	names := s.configStore.GetStringSlice(key)
	if len(names) == 0 {
		return defaultVal
	}
	sources := make([]domain.SourceType, 0, len(names))
	for _, name := range names {
		source, err := domain.ParseSourceType(name)
		if err != nil {
			return defaultVal
		}
		sources = append(sources, source)
	}
	return sources
}
