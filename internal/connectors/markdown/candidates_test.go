package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidates(t *testing.T) {
	links := []Link{
		{Text: "Widgets for all", URL: "https://github.com/acme/widget"},
		{Text: "acme/widget", URL: "github.com/acme/widget/"},
		{Text: "", URL: "https://github.com/trending"},
		{Text: "acme/gadget", URL: "https://github.com/acme/gadget"},
		{Text: "Widget tree", URL: "https://github.com/acme/widget/tree/main"},
	}

	ex := Candidates(links)

	assert.Equal(t, 1, ex.DuplicateURLs, "same URL written two ways")
	assert.Equal(t, 1, ex.Rejected)
	require.Len(t, ex.Candidates, 3)

	assert.Equal(t, "acme/widget", *ex.Candidates[0].FullName)
	assert.Equal(t, "Widgets for all", *ex.Candidates[0].Description)
	assert.Equal(t, "acme/gadget", *ex.Candidates[1].FullName)
	assert.Nil(t, ex.Candidates[1].Description, "text repeating the name is trivial")
	assert.Equal(t, "acme/widget", *ex.Candidates[2].FullName, "distinct URL, same repository; merged after normalisation")
}

func TestLinkDescription(t *testing.T) {
	assert.Empty(t, linkDescription("", "acme/widget"))
	assert.Empty(t, linkDescription(" ACME/Widget ", "acme/widget"))
	assert.Empty(t, linkDescription("https://github.com/acme/widget", "acme/widget"))
	assert.Equal(t, "Widget", linkDescription("Widget", "acme/widget"))
}
