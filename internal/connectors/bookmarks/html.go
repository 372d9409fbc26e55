package bookmarks

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML decodes a Netscape bookmark export, the HTML format both
// browsers export to.
func ParseHTML(data []byte) ([]*Node, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse bookmark html: %w", err)
	}

	top := doc.Find("dl").First()
	if top.Length() == 0 {
		return nil, fmt.Errorf("parse bookmark html: no bookmark list found")
	}
	return []*Node{{Children: parseList(top)}}, nil
}

// parseList converts the <DT> entries of a <DL>. A folder is a <DT> holding
// an <H3> followed by its own <DL>, which the HTML parser nests inside the
// <DT> or, for some exporters, places right after it.
func parseList(dl *goquery.Selection) []*Node {
	var nodes []*Node
	dl.ChildrenFiltered("dt").Each(func(_ int, dt *goquery.Selection) {
		if a := dt.ChildrenFiltered("a").First(); a.Length() > 0 {
			href, _ := a.Attr("href")
			added, _ := a.Attr("add_date")
			nodes = append(nodes, &Node{
				Title: strings.TrimSpace(a.Text()),
				URL:   strings.TrimSpace(href),
				Added: FromUnixSeconds(added),
			})
			return
		}

		h3 := dt.ChildrenFiltered("h3").First()
		if h3.Length() == 0 {
			return
		}
		added, _ := h3.Attr("add_date")
		folder := &Node{Title: strings.TrimSpace(h3.Text()), Added: FromUnixSeconds(added)}

		sub := dt.ChildrenFiltered("dl").First()
		if sub.Length() == 0 {
			sub = dt.NextFiltered("dl")
		}
		if sub.Length() > 0 {
			folder.Children = parseList(sub)
		}
		nodes = append(nodes, folder)
	})
	return nodes
}
