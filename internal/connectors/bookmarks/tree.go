package bookmarks

import (
	"strings"
	"time"
)

// PathSeparator joins folder titles into a path.
const PathSeparator = "/"

// Node is a folder or a bookmark.
type Node struct {
	Title string

	// URL is empty for folders.
	URL string

	// Added is the creation time, nil when unknown.
	Added *time.Time

	Children []*Node
}

// IsFolder reports whether the node is a folder.
func (n *Node) IsFolder() bool {
	return n.URL == ""
}

// Bookmark is a URL together with the folder path it was found under.
type Bookmark struct {
	Title string
	URL   string
	Path  string
	Added *time.Time
}

// Collect walks roots depth-first and returns the bookmarks in traversal
// order. A non-empty folder keeps only bookmarks whose ancestor path
// contains it, compared case-insensitively.
func Collect(roots []*Node, folder string) []Bookmark {
	folder = strings.ToLower(strings.TrimSpace(folder))

	var out []Bookmark
	var walk func(n *Node, path []string)
	walk = func(n *Node, path []string) {
		if n == nil {
			return
		}
		if !n.IsFolder() {
			joined := strings.Join(path, PathSeparator)
			if folder == "" || strings.Contains(strings.ToLower(joined), folder) {
				out = append(out, Bookmark{Title: n.Title, URL: n.URL, Path: joined, Added: n.Added})
			}
			return
		}

		childPath := path
		if n.Title != "" {
			childPath = append(path[:len(path):len(path)], n.Title)
		}
		for _, child := range n.Children {
			walk(child, childPath)
		}
	}

	for _, root := range roots {
		walk(root, nil)
	}
	return out
}
