package markdown

import (
	"regexp"
	"slices"
	"strings"
)

// Link is a GitHub link found in markdown text.
type Link struct {
	// Text is the bracketed link text, empty for bare URLs.
	Text string

	// URL is the link target as written.
	URL string

	// Offset is the byte position of the match, used for document order.
	Offset int
}

const (
	hostPattern = `(?:www\.)?github\.com/`
	// urlTail stops at whitespace and characters that close markdown or HTML.
	urlTail = `[^\s()\[\]<>"'` + "`" + `]+`
)

var (
	bracketedWithScheme = regexp.MustCompile(`\[([^\]]*)\]\(\s*(https?://` + hostPattern + `[^\s)]+)\s*\)`)
	bracketedNoScheme   = regexp.MustCompile(`\[([^\]]*)\]\(\s*(` + hostPattern + `[^\s)]+)\s*\)`)
	bareWithScheme      = regexp.MustCompile(`https?://` + hostPattern + urlTail)
	// The leading class keeps this from matching the tail of a URL with a
	// scheme or a longer host name.
	bareNoScheme = regexp.MustCompile(`(?:^|[^/\w.@-])(` + hostPattern + urlTail + `)`)
)

type span struct{ start, end int }

func (s span) contains(pos int) bool {
	return pos >= s.start && pos < s.end
}

// ExtractLinks returns every GitHub link in document order.
func ExtractLinks(text string) []Link {
	var links []Link
	var bracketed []span

	for _, re := range []*regexp.Regexp{bracketedWithScheme, bracketedNoScheme} {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			bracketed = append(bracketed, span{m[0], m[1]})
			links = append(links, Link{
				Text:   strings.TrimSpace(text[m[2]:m[3]]),
				URL:    text[m[4]:m[5]],
				Offset: m[0],
			})
		}
	}

	insideBracketed := func(pos int) bool {
		for _, s := range bracketed {
			if s.contains(pos) {
				return true
			}
		}
		return false
	}

	for _, m := range bareWithScheme.FindAllStringIndex(text, -1) {
		if insideBracketed(m[0]) {
			continue
		}
		links = append(links, Link{URL: trimTrailingPunct(text[m[0]:m[1]]), Offset: m[0]})
	}
	for _, m := range bareNoScheme.FindAllStringSubmatchIndex(text, -1) {
		if insideBracketed(m[2]) {
			continue
		}
		links = append(links, Link{URL: trimTrailingPunct(text[m[2]:m[3]]), Offset: m[2]})
	}

	slices.SortStableFunc(links, func(a, b Link) int { return a.Offset - b.Offset })
	return links
}

// trimTrailingPunct drops sentence punctuation glued to a bare URL.
func trimTrailingPunct(u string) string {
	return strings.TrimRight(u, ".,;:!?*_")
}
