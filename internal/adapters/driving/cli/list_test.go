package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/starsync/internal/core/domain"
)

func TestListCmd_DefaultsFromSettings(t *testing.T) {
	s := setupServices(t)
	s.settings.settings.Filter.StaleDays = 90
	s.query.records = []domain.StarRecord{testRecord("acme/rocket", 42)}

	out, err := executeCommand("list")
	require.NoError(t, err)

	assert.Equal(t, "acme/rocket\t42\tGo\tgithub\t2026-09-01\tA test repository\n", out)
	assert.True(t, s.query.opts.Filter.ExcludeArchived)
	assert.True(t, s.query.opts.Filter.ExcludeStale)
	assert.Equal(t, 90, s.query.opts.Filter.StaleDays)
	assert.Equal(t, domain.DefaultExcludedLanguages(), s.query.opts.Filter.Languages)
}

func TestListCmd_IncludeToggles(t *testing.T) {
	s := setupServices(t)

	_, err := executeCommand("list", "--include-archived", "--include-forks", "--stale-days", "30",
		"--exclude-language", "Java,Objective-*")
	require.NoError(t, err)

	f := s.query.opts.Filter
	assert.False(t, f.ExcludeArchived)
	assert.False(t, f.ExcludeForks)
	assert.True(t, f.ExcludeStale)
	assert.True(t, f.ExcludeLanguages)
	assert.Equal(t, 30, f.StaleDays)
	assert.Equal(t, []string{"Java", "Objective-*"}, f.Languages)
}

func TestListCmd_AllDisablesFilters(t *testing.T) {
	s := setupServices(t)

	_, err := executeCommand("list", "--all")
	require.NoError(t, err)
	assert.Equal(t, domain.NoFilterOptions(), s.query.opts.Filter)
}

func TestListCmd_SortSourceLimit(t *testing.T) {
	s := setupServices(t)

	_, err := executeCommand("list", "--sort", "Stars", "--desc", "--limit", "5", "--source", "github,manual")
	require.NoError(t, err)

	assert.Equal(t, domain.SortStars, s.query.opts.Sort)
	assert.True(t, s.query.opts.Desc)
	assert.Equal(t, 5, s.query.opts.Limit)
	assert.Equal(t, []domain.SourceType{domain.SourceGitHub, domain.SourceManual}, s.query.opts.Sources)
}

func TestListCmd_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"sort key", []string{"list", "--sort", "popularity"}, domain.ErrUnsupportedKey},
		{"group key", []string{"list", "--group", "topic"}, domain.ErrUnsupportedKey},
		{"source", []string{"list", "--source", "myspace"}, domain.ErrUnsupportedSource},
		{"limit", []string{"list", "--limit", "-1"}, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupServices(t)
			_, err := executeCommand(tt.args...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestListCmd_JSON(t *testing.T) {
	s := setupServices(t)
	s.query.records = []domain.StarRecord{testRecord("acme/rocket", 42)}

	out, err := executeCommand("list", "--json")
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "acme/rocket", decoded[0]["full_name"])
	assert.Equal(t, float64(42), decoded[0]["stars"])
}

func TestListCmd_EmptyJSONIsArray(t *testing.T) {
	setupServices(t)

	out, err := executeCommand("list", "--json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestListCmd_Empty(t *testing.T) {
	setupServices(t)

	out, err := executeCommand("list")
	require.NoError(t, err)
	assert.Contains(t, out, "No repositories match")
}

func TestListCmd_Group(t *testing.T) {
	s := setupServices(t)
	s.query.groups = []domain.Group{
		{Value: "Go", Records: []domain.StarRecord{testRecord("acme/a", 1), testRecord("acme/b", 2)}},
	}

	out, err := executeCommand("list", "--group", "language")
	require.NoError(t, err)
	assert.Equal(t, domain.GroupLanguage, s.query.key)
	assert.Contains(t, out, "Go (2)")
	assert.Contains(t, out, "acme/b\t2\t")

	out, err = executeCommand("list", "--group", "language", "--json")
	require.NoError(t, err)
	var decoded []groupJSON
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, 2, decoded[0].Count)
}

func TestListCmd_StoreMissing(t *testing.T) {
	s := setupServices(t)
	s.query.err = domain.ErrStoreNotFound

	_, err := executeCommand("list")
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)
}
