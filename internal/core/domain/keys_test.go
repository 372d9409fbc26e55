package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(records []StarRecord) []string {
	out := make([]string, len(records))
	for i := range records {
		out[i] = records[i].FullName
	}
	return out
}

func TestSortRecords(t *testing.T) {
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []StarRecord{
		{FullName: "b/two", Stars: 5, Pushed: &recent},
		{FullName: "a/one", Stars: 5},
		{FullName: "c/three", Stars: 9, Pushed: &old},
	}

	t.Run("stars descending with name tie-break", func(t *testing.T) {
		r := append([]StarRecord(nil), records...)
		SortRecords(r, SortStars, true)
		assert.Equal(t, []string{"c/three", "a/one", "b/two"}, names(r))
	})

	t.Run("pushed ascending puts absent first", func(t *testing.T) {
		r := append([]StarRecord(nil), records...)
		SortRecords(r, SortPushed, false)
		assert.Equal(t, []string{"a/one", "c/three", "b/two"}, names(r))
	})

	t.Run("name", func(t *testing.T) {
		r := append([]StarRecord(nil), records...)
		SortRecords(r, SortName, false)
		assert.Equal(t, []string{"a/one", "b/two", "c/three"}, names(r))
	})
}

func TestParseKeys(t *testing.T) {
	k, err := ParseSortKey("Stars")
	require.NoError(t, err)
	assert.Equal(t, SortStars, k)

	_, err = ParseSortKey("popularity")
	assert.ErrorIs(t, err, ErrUnsupportedKey)

	g, err := ParseGroupKey("language")
	require.NoError(t, err)
	assert.Equal(t, GroupLanguage, g)

	_, err = ParseGroupKey("topic")
	assert.ErrorIs(t, err, ErrUnsupportedKey)
}

func TestGroupRecords(t *testing.T) {
	records := []StarRecord{
		{FullName: "a/1", Language: StringPtr("Go")},
		{FullName: "a/2", Language: StringPtr("Rust")},
		{FullName: "a/3", Language: StringPtr("Go")},
		{FullName: "a/4"},
	}

	groups, err := GroupRecords(records, GroupLanguage)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, "Go", groups[0].Value)
	assert.Equal(t, []string{"a/1", "a/3"}, names(groups[0].Records))
	assert.Equal(t, NoneGroup, groups[1].Value)
	assert.Equal(t, "Rust", groups[2].Value)

	_, err = GroupRecords(records, GroupKey("topic"))
	assert.ErrorIs(t, err, ErrUnsupportedKey)
}
