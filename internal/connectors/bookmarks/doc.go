// Package bookmarks implements the Firefox and Chrome bookmark sources.
//
// Every input format is decoded into the same tree of [Node] values:
//
//   - Chrome "Bookmarks" JSON (timestamps in WebKit microseconds)
//   - Firefox places.sqlite and JSON backups (timestamps in PRTime microseconds)
//   - Netscape HTML exports from either browser (timestamps in Unix seconds)
//
// [Collect] walks the tree depth-first, tracking the folder path, and keeps
// bookmarks below folders whose path contains the folder filter. [Extract]
// keeps GitHub repository URLs and drops duplicates, keeping the first
// occurrence in traversal order.
package bookmarks
