package markdown

import (
	"strings"

	"github.com/custodia-labs/starsync/internal/connectors/repourl"
	"github.com/custodia-labs/starsync/internal/core/domain"
)

// Extraction summarises the candidates built from a set of links.
type Extraction struct {
	Candidates []domain.RawStar

	// Rejected counts links that are not repository URLs.
	Rejected int

	// DuplicateURLs counts links whose URL was already seen.
	DuplicateURLs int
}

// Candidates turns links into repository candidates. Links are
// deduplicated by URL first, keeping the first occurrence.
func Candidates(links []Link) Extraction {
	var ex Extraction
	seen := make(map[string]struct{}, len(links))

	for _, l := range links {
		key := urlKey(l.URL)
		if _, dup := seen[key]; dup {
			ex.DuplicateURLs++
			continue
		}
		seen[key] = struct{}{}

		repo, ok := repourl.Match(l.URL)
		if !ok {
			ex.Rejected++
			continue
		}

		fullName := repo.FullName()
		raw := domain.RawStar{
			FullName:   &fullName,
			Name:       &repo.Name,
			OwnerLogin: &repo.Owner,
			URL:        domain.StringPtr(repo.URL()),
		}
		if desc := linkDescription(l.Text, fullName); desc != "" {
			raw.Description = &desc
		}
		ex.Candidates = append(ex.Candidates, raw)
	}
	return ex
}

// urlKey ignores the scheme, a www prefix and a trailing slash so the same
// link written two ways is seen once.
func urlKey(u string) string {
	u = strings.TrimSpace(u)
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	u = strings.TrimPrefix(u, "www.")
	return strings.TrimSuffix(u, "/")
}

// linkDescription returns the link text unless it is empty or only repeats
// the repository name or URL.
func linkDescription(text, fullName string) string {
	t := strings.TrimSpace(text)
	switch {
	case t == "":
		return ""
	case strings.EqualFold(t, fullName):
		return ""
	case strings.EqualFold(urlKey(t), "github.com/"+fullName):
		return ""
	default:
		return t
	}
}
