package lakepath

import (
	"context"
	"errors"
	"fmt"
)

// Storage is the only capability the resolver and listing need from a data
// lake backend. Implementations must be safe for concurrent use.
//
// All methods accept a context for cancellation and timeout control.
type Storage interface {
	// Exists reports whether path exists with its exact casing as the
	// requested kind.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - path: A normalized, non-empty path
	//   - kind: KindFile or KindDirectory
	//
	// Returns:
	//   - bool: false when nothing of that kind exists at path
	//   - error: Connectivity or permission errors only; a missing path is not an error
	Exists(ctx context.Context, path string, kind PathKind) (bool, error)

	// List returns the entries below base, the root when base is empty.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - base: A normalized directory path
	//   - recursive: false for immediate children only, true for every descendant
	//
	// Returns:
	//   - []Entry: Entries with full paths, directories included
	//   - error: Any storage or I/O error
	//
	// Implementations backed by paginated APIs must drain every page before
	// returning; the resolver counts matches on the returned slice.
	List(ctx context.Context, base string, recursive bool) ([]Entry, error)
}

// Connector opens a Storage for a client supplied Connection.
type Connector interface {
	Connect(ctx context.Context, conn Connection) (Storage, error)
	// BaseURL returns the URL that item paths are appended to.
	BaseURL(conn Connection) string
}

// ServiceConfig holds configuration options for Service.
type ServiceConfig struct {
	BaseURL  string
	Observer Observer
}

// Service implements the two data lake operations: path case checking and
// item listing.
type Service struct {
	storage  Storage
	resolver *Resolver
	baseURL  string
	observer Observer
}

func NewService(storage Storage, cfg ServiceConfig) (*Service, error) {
	if storage == nil {
		return nil, fmt.Errorf("new service: %w: storage cannot be nil", ErrInvalidInput)
	}

	observer := cfg.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	return &Service{
		storage:  storage,
		resolver: NewResolver(storage, WithObserver(observer)),
		baseURL:  cfg.BaseURL,
		observer: observer,
	}, nil
}

// CheckPath returns the stored casing of path. The path is tried as a
// directory first and then as a file. Ambiguity errors from the directory
// attempt are returned without trying the file.
func (s *Service) CheckPath(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("check path: %w", err)
	}

	resolved, err := s.resolver.Resolve(ctx, path, KindDirectory)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", fmt.Errorf("check path: %w", err)
	}

	resolved, err = s.resolver.Resolve(ctx, path, KindFile)
	if err != nil {
		return "", fmt.Errorf("check path: %w", err)
	}
	return resolved, nil
}

// GetItems lists the items below q.Path and applies the query filters,
// ordering and limit.
//
// The steps are:
//  1. Resolve the directory case-insensitively when q.IgnoreCase is set
//  2. Fail with ErrDirectoryNotFound when the directory does not exist
//  3. List the directory, recursively when q.Recursive is set
//  4. Apply the query with ApplyQuery
//
// Error types returned:
//   - ErrDirectoryNotFound (wraps ErrNotFound): the directory does not exist
//   - ErrMultipleDirectoryMatches: the directory is ambiguous
//   - ErrInvalidFilter: one or more filters are invalid
//   - ErrInvalidInput: unknown order by column
//   - Wrapped storage errors
func (s *Service) GetItems(ctx context.Context, q ListItemsQuery) (ItemsResult, error) {
	if err := ctx.Err(); err != nil {
		return ItemsResult{}, fmt.Errorf("get items: %w", err)
	}

	requested := NormalizePath(q.Path)
	directory := requested
	if q.IgnoreCase {
		resolved, err := s.resolver.Resolve(ctx, requested, KindDirectory)
		if errors.Is(err, ErrNotFound) {
			return ItemsResult{}, fmt.Errorf("get items '%s': %w", requested, ErrDirectoryNotFound)
		}
		if err != nil {
			return ItemsResult{}, fmt.Errorf("get items: %w", err)
		}
		directory = resolved
	}

	if directory != "" {
		exists, err := s.storage.Exists(ctx, directory, KindDirectory)
		if err != nil {
			return ItemsResult{}, fmt.Errorf("get items '%s': %w", directory, err)
		}
		if !exists {
			return ItemsResult{}, fmt.Errorf("get items '%s': %w", directory, ErrDirectoryNotFound)
		}
	}

	entries, err := s.storage.List(ctx, directory, q.Recursive)
	if err != nil {
		return ItemsResult{}, fmt.Errorf("get items '%s': %w", directory, err)
	}

	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, NewItem(e, s.baseURL))
	}

	if invalid := countInvalid(q.Filters); invalid > 0 {
		s.observer.ObserveInvalidFilters(invalid)
	}

	items, err = ApplyQuery(items, q.Filters, q.OrderBy, q.OrderByDesc, q.Limit)
	if err != nil {
		return ItemsResult{}, fmt.Errorf("get items: %w", err)
	}

	result := ItemsResult{Items: items}
	if q.IgnoreCase && directory != requested {
		result.CorrectedPath = directory
	}
	return result, nil
}

func countInvalid(filters []Filter) int {
	n := 0
	for _, f := range filters {
		if !f.IsValid {
			n++
		}
	}
	return n
}
