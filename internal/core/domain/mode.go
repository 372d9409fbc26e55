package domain

import "fmt"

// StoreMode selects how a batch is written.
type StoreMode string

const (
	// StoreReplace supersedes the existing records with the batch.
	StoreReplace StoreMode = "replace"

	// StoreAppend adds the batch to existing records, upserting by full name.
	StoreAppend StoreMode = "append"
)

// IsValid returns true if the mode is recognised.
func (m StoreMode) IsValid() bool {
	return m == StoreReplace || m == StoreAppend
}

// ParseStoreMode converts a string into a StoreMode.
func ParseStoreMode(s string) (StoreMode, error) {
	m := StoreMode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("%w: store mode %q (expected replace or append)", ErrInvalidInput, s)
	}
	return m, nil
}
