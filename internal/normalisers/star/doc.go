// Package star normalises RawStar candidates into StarRecords and merges
// duplicates.
//
// Normalisation applies the schema's defaulting rules uniformly:
//   - topics always decode to a concrete list (absent, null or malformed input gives [])
//   - owner falls back to the full name prefix, then to "unknown"
//   - counts default to 0 and never go negative
//   - timestamps are converted to UTC
//   - source and synced_at are stamped by the caller's sync run
//
// Deduplication groups records by case-insensitive full name and keeps the
// most complete record, tie-broken by the latest synced_at. It is idempotent.
package star
