// Package connectors holds the source adapters and the factory that builds
// them. Each subpackage knows how to fetch candidates from one kind of
// source (GitHub starred list, browser bookmarks, markdown lists) and turn
// them into normalised StarRecords.
//
// Connectors are created per sync run by Factory from the current settings.
package connectors
