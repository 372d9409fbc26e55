package github

import (
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/starsync/internal/core/domain"
)

// ToRawStar lifts a go-github repository into a candidate. Owner login and
// license name come out of their nested objects; absent values stay nil.
func ToRawStar(repo *gh.Repository) domain.RawStar {
	if repo == nil {
		return domain.RawStar{}
	}

	raw := domain.RawStar{
		ID:          repo.ID,
		FullName:    repo.FullName,
		Name:        repo.Name,
		Description: repo.Description,
		Homepage:    repo.Homepage,
		URL:         repo.HTMLURL,
		Language:    repo.Language,
		Stars:       repo.StargazersCount,
		Forks:       repo.ForksCount,
		Issues:      repo.OpenIssuesCount,
		Created:     timestamp(repo.CreatedAt),
		Updated:     timestamp(repo.UpdatedAt),
		Pushed:      timestamp(repo.PushedAt),
		Archived:    repo.Archived,
		Fork:        repo.Fork,
	}
	if repo.Owner != nil {
		raw.OwnerLogin = repo.Owner.Login
	}
	if repo.License != nil {
		raw.LicenseName = repo.License.Name
	}
	if repo.Topics != nil {
		raw.Topics = domain.TopicsList(repo.Topics)
	}
	return raw
}

func timestamp(ts *gh.Timestamp) *time.Time {
	if ts == nil || ts.IsZero() {
		return nil
	}
	t := ts.Time
	return &t
}
