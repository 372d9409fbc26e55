package bookmarks

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

// Firefox JSON backup node types.
const (
	firefoxContainer = "text/x-moz-place-container"
	firefoxPlace     = "text/x-moz-place"
)

// moz_bookmarks.type values.
const (
	mozTypeBookmark = 1
	mozTypeFolder   = 2
)

type firefoxNode struct {
	Title     string        `json:"title"`
	Type      string        `json:"type"`
	URI       string        `json:"uri"`
	DateAdded int64         `json:"dateAdded"`
	Children  []firefoxNode `json:"children"`
}

// ParseFirefoxJSON decodes a Firefox bookmarks backup (.json).
func ParseFirefoxJSON(data []byte) ([]*Node, error) {
	var root firefoxNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode firefox backup: %w", err)
	}
	return []*Node{root.toNode()}, nil
}

func (f firefoxNode) toNode() *Node {
	n := &Node{Title: f.Title, Added: FromPRTime(f.DateAdded)}
	if f.Type == firefoxPlace {
		n.URL = f.URI
		return n
	}
	for _, child := range f.Children {
		if child.Type != firefoxPlace && child.Type != firefoxContainer {
			continue
		}
		n.Children = append(n.Children, child.toNode())
	}
	return n
}

// ReadPlaces reads the bookmark tree from a Firefox places.sqlite file.
// The database is opened read-only and immutable so a running browser's
// lock does not block the read.
func ReadPlaces(ctx context.Context, path string) ([]*Node, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro&immutable=1")
	if err != nil {
		return nil, fmt.Errorf("open places: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT b.id, b.type, b.parent, COALESCE(b.title, ''), COALESCE(p.url, ''), COALESCE(b.dateAdded, 0)
		FROM moz_bookmarks b
		LEFT JOIN moz_places p ON p.id = b.fk
		WHERE b.type IN (?, ?)
		ORDER BY b.parent, b.position, b.id
	`, mozTypeBookmark, mozTypeFolder)
	if err != nil {
		return nil, fmt.Errorf("query bookmarks: %w", err)
	}
	defer rows.Close()

	type row struct {
		id, parent int64
		node       *Node
	}
	var all []row
	byID := make(map[int64]*Node)
	for rows.Next() {
		var (
			id, parent, added int64
			typ               int
			title, url        string
		)
		if err := rows.Scan(&id, &typ, &parent, &title, &url, &added); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		n := &Node{Title: title, Added: FromPRTime(added)}
		if typ == mozTypeBookmark {
			if url == "" {
				continue
			}
			n.URL = url
		}
		all = append(all, row{id: id, parent: parent, node: n})
		byID[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookmarks: %w", err)
	}

	var roots []*Node
	for _, r := range all {
		parent, ok := byID[r.parent]
		if !ok || r.parent == r.id {
			roots = append(roots, r.node)
			continue
		}
		parent.Children = append(parent.Children, r.node)
	}
	return roots, nil
}
