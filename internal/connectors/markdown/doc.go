// Package markdown implements the awesome-list source: GitHub repository
// links extracted from markdown files or from a repository's README.
//
// Four link shapes are recognised:
//
//	[text](https://github.com/owner/repo)
//	[text](github.com/owner/repo)
//	https://github.com/owner/repo
//	github.com/owner/repo
//
// Bare URLs inside a bracketed link are not counted twice. Candidates are
// deduplicated by URL before normalisation and by full name after. When
// enrichment is enabled each candidate is re-fetched from GitHub in
// sequential batches separated by a fixed delay.
package markdown
