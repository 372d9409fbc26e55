package domain

import (
	"path/filepath"
)

// AppName is used for directory names under the XDG base directories.
const AppName = "starsync"

// Store file names.
const (
	StoreFileName  = "stars.db"
	BackupDirName  = "backups"
	ConfigFileName = "config.toml"
)

// Paths holds every filesystem location the application touches.
// It is built once at startup and passed explicitly to components.
type Paths struct {
	// DataDir holds the current store and the backups directory.
	DataDir string

	// StorePath is the current store file.
	StorePath string

	// BackupDir holds timestamped copies of the store.
	BackupDir string

	// LegacyStorePath is the deprecated store location, read only by migration.
	LegacyStorePath string

	// ConfigDir holds config.toml and an optional .env file.
	ConfigDir string
}

// NewPaths derives all paths from a data directory, a config directory and
// the legacy store location.
func NewPaths(dataDir, configDir, legacyStorePath string) Paths {
	return Paths{
		DataDir:         dataDir,
		StorePath:       filepath.Join(dataDir, StoreFileName),
		BackupDir:       filepath.Join(dataDir, BackupDirName),
		LegacyStorePath: legacyStorePath,
		ConfigDir:       configDir,
	}
}

// ResolvePaths applies XDG base directory rules:
//
//   - data:   $XDG_DATA_HOME/starsync   (default ~/.local/share/starsync)
//   - config: $XDG_CONFIG_HOME/starsync (default ~/.config/starsync)
//   - legacy: ~/.starsync/stars.db
//
// STARSYNC_DATA_DIR overrides the data directory. getenv is injected so
// callers (and tests) control the environment.
func ResolvePaths(home string, getenv func(string) string) Paths {
	dataHome := getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}
	configHome := getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	dataDir := filepath.Join(dataHome, AppName)
	if override := getenv("STARSYNC_DATA_DIR"); override != "" {
		dataDir = override
	}

	return NewPaths(
		dataDir,
		filepath.Join(configHome, AppName),
		filepath.Join(home, "."+AppName, StoreFileName),
	)
}

// ConfigFile returns the path of the TOML config file.
func (p Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, ConfigFileName)
}

// EnvFile returns the path of the optional .env file.
func (p Paths) EnvFile() string {
	return filepath.Join(p.ConfigDir, ".env")
}
