// Package repourl recognises GitHub repository URLs.
//
// Bookmarks and markdown lists link to many github.com pages that are not
// repositories (profiles settings, search, marketplace). Match accepts only
// paths of the form /{owner}/{repo}[/...] whose segments are not reserved.
package repourl

import (
	"net/url"
	"strings"
)

// Host is the only host recognised.
const Host = "github.com"

// reservedOwners are first path segments that are GitHub pages, not users.
var reservedOwners = map[string]struct{}{
	"about": {}, "account": {}, "apps": {}, "blog": {}, "collections": {},
	"contact": {}, "customer-stories": {}, "dashboard": {}, "enterprise": {},
	"events": {}, "explore": {}, "features": {}, "issues": {}, "join": {},
	"login": {}, "logout": {}, "marketplace": {}, "new": {}, "notifications": {},
	"orgs": {}, "organizations": {}, "pricing": {}, "pulls": {}, "search": {},
	"security": {}, "settings": {}, "site": {}, "sponsors": {}, "stars": {},
	"topics": {}, "trending": {}, "users": {}, "codespaces": {}, "readme": {},
}

// reservedRepos are second path segments that never name a repository.
var reservedRepos = map[string]struct{}{
	"followers": {}, "following": {}, "repositories": {}, "projects": {},
	"packages": {}, "stars": {}, "sponsoring": {}, "people": {}, "teams": {},
}

// Repo identifies a repository by owner and name.
type Repo struct {
	Owner string
	Name  string
}

// FullName returns "owner/name".
func (r Repo) FullName() string {
	return r.Owner + "/" + r.Name
}

// URL returns the canonical https URL.
func (r Repo) URL() string {
	return "https://" + Host + "/" + r.FullName()
}

// IsReservedOwner reports whether segment is a non-user GitHub page.
func IsReservedOwner(segment string) bool {
	_, ok := reservedOwners[strings.ToLower(segment)]
	return ok
}

// IsReservedRepo reports whether segment is a non-repository profile tab.
func IsReservedRepo(segment string) bool {
	_, ok := reservedRepos[strings.ToLower(segment)]
	return ok
}

// Match extracts owner and repository from a GitHub URL. The scheme is
// optional. Trailing path segments, query and fragment are ignored and a
// trailing .git is stripped.
func Match(raw string) (Repo, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Repo{}, false
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Repo{}, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Repo{}, false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host != Host {
		return Repo{}, false
	}

	return FromPath(u.Path)
}

// FromPath extracts owner and repository from a URL path.
func FromPath(path string) (Repo, bool) {
	parts := strings.SplitN(strings.Trim(path, "/"), "/", 3)
	if len(parts) < 2 {
		return Repo{}, false
	}

	owner := parts[0]
	name := strings.TrimSuffix(parts[1], ".git")
	if !validSegment(owner) || !validSegment(name) {
		return Repo{}, false
	}
	if IsReservedOwner(owner) || IsReservedRepo(name) {
		return Repo{}, false
	}
	return Repo{Owner: owner, Name: name}, true
}

// validSegment accepts the characters GitHub allows in logins and
// repository names.
func validSegment(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
