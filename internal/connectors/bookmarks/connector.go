package bookmarks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/custodia-labs/starsync/internal/core/domain"
	"github.com/custodia-labs/starsync/internal/core/ports/driven"
	"github.com/custodia-labs/starsync/internal/logger"
	"github.com/custodia-labs/starsync/internal/normalisers/star"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Format is a bookmark file encoding.
type Format string

// Supported formats.
const (
	FormatJSON   Format = "json"
	FormatPlaces Format = "places-sqlite"
	FormatHTML   Format = "html"
)

// ErrUnknownFormat indicates a file that matches no supported format.
var ErrUnknownFormat = errors.New("bookmarks: unrecognised file format")

var sqliteMagic = []byte("SQLite format 3\x00")

// Connector reads one browser's bookmark file.
type Connector struct {
	source domain.SourceType
	config domain.BookmarkSettings
}

// New creates a bookmark connector for the firefox or chrome source.
func New(source domain.SourceType, cfg domain.BookmarkSettings) (*Connector, error) {
	if source != domain.SourceFirefox && source != domain.SourceChrome {
		return nil, fmt.Errorf("%w: %s is not a bookmark source", domain.ErrUnsupportedSource, source)
	}
	if !cfg.IsConfigured() {
		return nil, fmt.Errorf("%w: %s bookmark path", domain.ErrSourceNotConfigured, source)
	}
	return &Connector{source: source, config: cfg}, nil
}

// Source returns the source type.
func (c *Connector) Source() domain.SourceType {
	return c.source
}

// Fetch reads the bookmark file and returns one record per repository.
func (c *Connector) Fetch(ctx context.Context, syncedAt time.Time) (*driven.FetchResult, error) {
	roots, err := c.readTree(ctx)
	if err != nil {
		return nil, &domain.SourceFetchError{Source: c.source, Err: err}
	}

	bookmarks := Collect(roots, c.config.Folder)
	ex := Extract(bookmarks)
	logger.Debug("%s: %d bookmarks, %d repositories, %d rejected links",
		c.source, len(bookmarks), len(ex.Candidates), ex.Rejected)

	records, invalid := star.New(c.source, syncedAt).NormaliseAll(ex.Candidates)
	return &driven.FetchResult{
		Records:    records,
		Dropped:    ex.Rejected + invalid,
		Duplicates: ex.Duplicates,
	}, nil
}

func (c *Connector) readTree(ctx context.Context) ([]*Node, error) {
	format, err := DetectFormat(c.config.Path)
	if err != nil {
		return nil, err
	}
	logger.Debug("%s: reading %s as %s", c.source, c.config.Path, format)

	if format == FormatPlaces {
		if c.source != domain.SourceFirefox {
			return nil, fmt.Errorf("%w: %s cannot read places.sqlite", ErrUnknownFormat, c.source)
		}
		return ReadPlaces(ctx, c.config.Path)
	}

	data, err := os.ReadFile(c.config.Path)
	if err != nil {
		return nil, fmt.Errorf("read bookmarks: %w", err)
	}

	switch format {
	case FormatHTML:
		return ParseHTML(data)
	default:
		if c.source == domain.SourceChrome {
			return ParseChrome(data)
		}
		return ParseFirefoxJSON(data)
	}
}

// DetectFormat sniffs the first bytes of a bookmark file. The source
// decides which JSON layout applies.
func DetectFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open bookmarks: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read bookmarks: %w", err)
	}
	head = head[:n]

	if bytes.HasPrefix(head, sqliteMagic) {
		return FormatPlaces, nil
	}
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(head, []byte("\xef\xbb\xbf")), " \t\r\n")
	switch {
	case bytes.HasPrefix(trimmed, []byte("{")):
		return FormatJSON, nil
	case bytes.HasPrefix(trimmed, []byte("<")):
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}
