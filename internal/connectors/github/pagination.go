package github

import "github.com/custodia-labs/starsync/internal/core/domain"

// PageCursor is the state of a page-numbered listing.
type PageCursor struct {
	// Page is the next 1-based page to request.
	Page int

	// PerPage is the requested page size.
	PerPage int

	// Total is the number of items received so far.
	Total int

	// Done is set once a page proves to be the last.
	Done bool
}

// NewPageCursor starts a listing at page 1 with the page size clamped to
// the API maximum.
func NewPageCursor(perPage int) PageCursor {
	return PageCursor{Page: 1, PerPage: domain.ClampPerPage(perPage)}
}

// Advance returns the cursor after a page of received items. A page with
// no items or fewer than PerPage is the last one, so no trailing empty
// request is needed to detect the end.
func (c PageCursor) Advance(received int) PageCursor {
	if c.Done {
		return c
	}
	c.Total += received
	if received == 0 || received < c.PerPage {
		c.Done = true
		return c
	}
	c.Page++
	return c
}
