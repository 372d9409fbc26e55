// Package file provides the TOML-backed ConfigStore.
//
// Keys are dot-separated ("github.user"). On disk each key prefix becomes a
// TOML table:
//
//	[github]
//	user = "octocat"
//	per_page = 100
package file
