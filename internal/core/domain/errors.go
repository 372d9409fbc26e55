package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedSource indicates an unknown source type.
	ErrUnsupportedSource = errors.New("unsupported source")

	// ErrUnsupportedKey indicates an unknown sort or group key.
	ErrUnsupportedKey = errors.New("unsupported key")

	// ErrSourceNotConfigured indicates a source has no input configured (no path, no list).
	ErrSourceNotConfigured = errors.New("source not configured")

	// Storage Errors.

	// ErrStoreNotFound indicates no record store exists yet.
	ErrStoreNotFound = errors.New("record store not found")

	// ErrNoData indicates there is nothing to back up.
	ErrNoData = errors.New("no data to back up")

	// Authentication Errors.

	// ErrAuthRequired indicates the source requires authentication but none is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the authentication credentials are invalid.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)

// ValidationError is a structural schema violation. It is fatal to the
// offending record only.
type ValidationError struct {
	// Field is the first offending field, empty when several fields failed.
	Field string

	// Problems lists every error found.
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "invalid record"
	}
	return "invalid record: " + strings.Join(e.Problems, "; ")
}

// Unwrap lets errors.Is(err, ErrInvalidInput) match validation failures.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// SourceFetchError is a network, auth or rate-limit failure while fetching
// from a source. Retrieved reports how many records were collected before it.
type SourceFetchError struct {
	Source    SourceType
	Page      int
	Retrieved int
	Err       error
}

func (e *SourceFetchError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("%s: fetch page %d failed after %d records: %v", e.Source, e.Page, e.Retrieved, e.Err)
	}
	return fmt.Sprintf("%s: fetch failed: %v", e.Source, e.Err)
}

func (e *SourceFetchError) Unwrap() error {
	return e.Err
}

// StorageWriteError is a disk or permission failure while mutating the store.
type StorageWriteError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageWriteError) Unwrap() error {
	return e.Err
}

// Hint returns a remediation hint for errors the user can act on.
// Returns empty string when there is nothing useful to suggest.
func Hint(err error) string {
	var writeErr *StorageWriteError
	var fetchErr *SourceFetchError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrStoreNotFound):
		return "initialize the store first: run `starsync sync` (or `starsync migrate` if you have a legacy store)"
	case errors.Is(err, ErrNoData):
		return "nothing has been synced yet; run `starsync sync` first"
	case errors.Is(err, ErrAuthRequired), errors.Is(err, ErrAuthInvalid):
		return "set GITHUB_TOKEN, pass --token, or log in with `gh auth login`"
	case errors.Is(err, ErrRateLimited):
		return "wait for the GitHub rate limit to reset and retry"
	case errors.Is(err, ErrSourceNotConfigured):
		return "configure the source with `starsync settings set`"
	case errors.As(err, &writeErr):
		return fmt.Sprintf("check that %s is writable and the disk is not full", writeErr.Path)
	case errors.As(err, &fetchErr):
		return "check your network connection and credentials"
	default:
		return ""
	}
}
