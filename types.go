package lakepath

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// PathKind tells the resolver and storage whether a path names a file or a directory.
type PathKind int

const (
	KindFile PathKind = iota
	KindDirectory
)

func (k PathKind) String() string {
	if k == KindDirectory {
		return "directory"
	}
	return "file"
}

// KindOf returns KindDirectory when isDirectory is true.
func KindOf(isDirectory bool) PathKind {
	if isDirectory {
		return KindDirectory
	}
	return KindFile
}

// Entry is a raw listing record as returned by a Storage backend.
// Path is the full path without leading or trailing slashes.
type Entry struct {
	Path          string
	IsDirectory   bool
	ContentLength int64
	LastModified  time.Time
}

// Name returns the last segment of the entry path.
func (e Entry) Name() string {
	_, name := SplitPath(e.Path)
	return name
}

// ItemTimeFormat is the wire format of Item.LastModified.
const ItemTimeFormat = "2006-01-02T15:04:05.000Z"

// Item is a file or directory listed under a data lake directory.
type Item struct {
	Name          string
	Directory     string
	URL           string
	IsDirectory   bool
	ContentLength int64
	LastModified  time.Time
}

// NewItem builds an Item from a listing entry. The URL is baseURL joined
// with the entry path.
func NewItem(e Entry, baseURL string) Item {
	dir, name := SplitPath(e.Path)
	length := e.ContentLength
	if e.IsDirectory {
		length = 0
	}
	return Item{
		Name:          name,
		Directory:     dir,
		URL:           JoinURL(baseURL, e.Path),
		IsDirectory:   e.IsDirectory,
		ContentLength: length,
		LastModified:  e.LastModified.UTC(),
	}
}

// FullPath returns Directory and Name joined by a slash, or Name alone at the root.
func (i Item) FullPath() string {
	if i.Directory == "" {
		return i.Name
	}
	return i.Directory + "/" + i.Name
}

type itemJSON struct {
	Name          string `json:"name"`
	Directory     string `json:"directory"`
	FullPath      string `json:"fullPath"`
	URL           string `json:"url"`
	IsDirectory   bool   `json:"isDirectory"`
	ContentLength int64  `json:"contentLength"`
	LastModified  string `json:"lastModified"`
}

func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(itemJSON{
		Name:          i.Name,
		Directory:     i.Directory,
		FullPath:      i.FullPath(),
		URL:           i.URL,
		IsDirectory:   i.IsDirectory,
		ContentLength: i.ContentLength,
		LastModified:  i.LastModified.UTC().Format(ItemTimeFormat),
	})
}

func (i *Item) UnmarshalJSON(data []byte) error {
	var raw itemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var lastModified time.Time
	if raw.LastModified != "" {
		t, err := time.Parse(time.RFC3339Nano, raw.LastModified)
		if err != nil {
			return fmt.Errorf("parse lastModified: %w", err)
		}
		lastModified = t
	}

	*i = Item{
		Name:          raw.Name,
		Directory:     raw.Directory,
		URL:           raw.URL,
		IsDirectory:   raw.IsDirectory,
		ContentLength: raw.ContentLength,
		LastModified:  lastModified,
	}
	return nil
}

// ListItemsQuery holds the parameters of a GetItems call.
type ListItemsQuery struct {
	Path        string
	Recursive   bool
	IgnoreCase  bool
	OrderBy     string
	OrderByDesc bool
	Limit       int
	Filters     []Filter
}

type ItemsResult struct {
	Items []Item
	// CorrectedPath is set only when case-insensitive resolution changed the
	// requested directory.
	CorrectedPath string
}

// Tables holds configurable table names for the listing catalog.
type Tables struct {
	Entries string `mapstructure:"entries"`
}

var validTableNameRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// IsValidTableName checks if a table name is valid (lowercase, alphanumeric with underscores, max 63 chars).
func IsValidTableName(name string) bool {
	return validTableNameRegex.MatchString(name) && len(name) <= 63
}

// Validate checks that all required table names are set and valid.
func (t Tables) Validate() error {
	if t.Entries == "" {
		return errors.New("validate tables: entries table name cannot be empty")
	}

	if !IsValidTableName(t.Entries) {
		return fmt.Errorf("validate tables: invalid entries table name: %s (must match ^[a-z_][a-z0-9_]*$ and be <= 63 chars)", t.Entries)
	}

	return nil
}

// JoinURL appends a slash-separated path to a base URL.
func JoinURL(base, p string) string {
	base = strings.TrimRight(base, "/")
	p = strings.TrimLeft(p, "/")
	switch {
	case base == "":
		return p
	case p == "":
		return base
	default:
		return base + "/" + p
	}
}
