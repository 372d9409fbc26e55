// Package github implements the GitHub starred-repositories source.
//
// # Architecture
//
// The connector follows the driven port pattern defined in [driven.Connector].
// It comprises the following components:
//
//   - Connector: drives the page loop and normalises each page
//   - PageCursor: the {page, total, done} state advanced by Advance
//   - Client: go-github wrapper with rate limiting and error mapping
//   - Config: user and page size derived from settings
//
// The Client also implements [driven.RepoEnricher] and [driven.ReadmeFetcher]
// for the markdown-list source.
//
// # Pagination
//
// Pages are requested sequentially with per_page clamped to 100. A page
// with zero items, or fewer items than requested, ends the loop without a
// trailing request. A failure on the first page is fatal. A failure on a
// later page keeps the records retrieved so far and is reported through
// [driven.FetchResult.Partial].
//
// # Authentication
//
// A token from the [driven.TokenProvider] is sent as a bearer token.
// Without one, requests are anonymous and limited to 60 per hour.
//
// # Rate Limiting
//
// A token bucket throttles requests proactively. X-RateLimit-* response
// headers are tracked and requests pause until reset when the remaining
// quota falls below a buffer.
package github
