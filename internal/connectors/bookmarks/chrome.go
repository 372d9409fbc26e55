package bookmarks

import (
	"encoding/json"
	"fmt"
)

// chromeRootOrder is the order Chrome shows its top-level folders in.
var chromeRootOrder = []string{"bookmark_bar", "other", "synced"}

type chromeFile struct {
	Roots map[string]json.RawMessage `json:"roots"`
}

type chromeNode struct {
	Type      string       `json:"type"`
	Name      string       `json:"name"`
	URL       string       `json:"url"`
	DateAdded string       `json:"date_added"`
	Children  []chromeNode `json:"children"`
}

// ParseChrome decodes a Chrome "Bookmarks" file.
func ParseChrome(data []byte) ([]*Node, error) {
	var file chromeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode chrome bookmarks: %w", err)
	}
	if file.Roots == nil {
		return nil, fmt.Errorf("decode chrome bookmarks: no roots object")
	}

	var roots []*Node
	for _, key := range chromeRootOrder {
		raw, ok := file.Roots[key]
		if !ok {
			continue
		}
		var n chromeNode
		if err := json.Unmarshal(raw, &n); err != nil {
			continue
		}
		roots = append(roots, n.toNode())
	}
	return roots, nil
}

func (c chromeNode) toNode() *Node {
	n := &Node{Title: c.Name, Added: FromWebKit(c.DateAdded)}
	if c.Type == "url" {
		n.URL = c.URL
		return n
	}
	for _, child := range c.Children {
		n.Children = append(n.Children, child.toNode())
	}
	return n
}
