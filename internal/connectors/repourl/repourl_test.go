package repourl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Repo
		ok    bool
	}{
		{"plain", "https://github.com/acme/widget", Repo{"acme", "widget"}, true},
		{"http", "http://github.com/acme/widget", Repo{"acme", "widget"}, true},
		{"no scheme", "github.com/acme/widget", Repo{"acme", "widget"}, true},
		{"www", "https://www.github.com/acme/widget", Repo{"acme", "widget"}, true},
		{"dot git", "https://github.com/acme/widget.git", Repo{"acme", "widget"}, true},
		{"deep path", "https://github.com/acme/widget/blob/main/README.md#L3", Repo{"acme", "widget"}, true},
		{"query", "https://github.com/acme/widget?tab=readme", Repo{"acme", "widget"}, true},
		{"trailing slash", "https://github.com/acme/widget/", Repo{"acme", "widget"}, true},
		{"dotted name", "https://github.com/acme/widget.js", Repo{"acme", "widget.js"}, true},

		{"settings", "https://github.com/settings/profile", Repo{}, false},
		{"trending", "https://github.com/trending/go", Repo{}, false},
		{"topics", "https://github.com/topics/cli", Repo{}, false},
		{"followers tab", "https://github.com/acme/followers", Repo{}, false},
		{"owner only", "https://github.com/acme", Repo{}, false},
		{"root", "https://github.com/", Repo{}, false},
		{"other host", "https://gitlab.com/acme/widget", Repo{}, false},
		{"lookalike host", "https://notgithub.com/acme/widget", Repo{}, false},
		{"ftp", "ftp://github.com/acme/widget", Repo{}, false},
		{"empty", "", Repo{}, false},
		{"encoded junk", "https://github.com/ac%20me/widget", Repo{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Match(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReservedSegmentsNeverMatch(t *testing.T) {
	for owner := range reservedOwners {
		_, ok := Match("https://github.com/" + owner + "/something")
		assert.False(t, ok, owner)
	}
	for repo := range reservedRepos {
		_, ok := Match("https://github.com/acme/" + repo)
		assert.False(t, ok, repo)
	}
}

func TestRepo(t *testing.T) {
	r := Repo{Owner: "acme", Name: "widget"}
	assert.Equal(t, "acme/widget", r.FullName())
	assert.Equal(t, "https://github.com/acme/widget", r.URL())
}
