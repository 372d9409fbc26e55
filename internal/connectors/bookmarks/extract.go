package bookmarks

import (
	"net/url"
	"strings"

	"github.com/custodia-labs/starsync/internal/connectors/repourl"
	"github.com/custodia-labs/starsync/internal/core/domain"
)

// Extraction summarises what Extract kept and rejected.
type Extraction struct {
	Candidates []domain.RawStar

	// Rejected counts github.com links that are not repositories.
	Rejected int

	// Duplicates counts repositories already seen earlier in traversal.
	Duplicates int
}

// Extract turns bookmarks into repository candidates. Links to other
// hosts are ignored. The first bookmark of each repository wins.
func Extract(bookmarks []Bookmark) Extraction {
	var ex Extraction
	seen := make(map[string]struct{})

	for _, b := range bookmarks {
		repo, ok := repourl.Match(b.URL)
		if !ok {
			if isGitHubLink(b.URL) {
				ex.Rejected++
			}
			continue
		}

		key := domain.DedupKey(repo.FullName())
		if _, dup := seen[key]; dup {
			ex.Duplicates++
			continue
		}
		seen[key] = struct{}{}

		fullName := repo.FullName()
		raw := domain.RawStar{
			FullName:   &fullName,
			Name:       &repo.Name,
			OwnerLogin: &repo.Owner,
			URL:        domain.StringPtr(repo.URL()),
			Created:    b.Added,
		}
		if desc := titleDescription(b.Title, fullName); desc != "" {
			raw.Description = &desc
		}
		ex.Candidates = append(ex.Candidates, raw)
	}
	return ex
}

// titleDescription recovers a description from a page title such as
// "GitHub - acme/widget: Widgets for everyone". Titles that only repeat the
// repository name yield nothing.
func titleDescription(title, fullName string) string {
	t := strings.TrimSpace(title)
	t = strings.TrimPrefix(t, "GitHub - ")
	if rest, ok := cutPrefixFold(t, fullName); ok {
		t = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), ":"))
	}
	if strings.EqualFold(t, fullName) || strings.EqualFold(t, "GitHub") {
		return ""
	}
	return strings.TrimSpace(t)
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}

func isGitHubLink(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	return host == repourl.Host
}
