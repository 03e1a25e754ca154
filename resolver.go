package lakepath

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Resolution outcomes reported to an Observer.
const (
	OutcomeRoot      = "root"
	OutcomeExact     = "exact"
	OutcomeCorrected = "corrected"
	OutcomeNotFound  = "not_found"
	OutcomeAmbiguous = "ambiguous"
	OutcomeError     = "error"
)

// Observer receives resolution and filter outcomes, typically to record metrics.
type Observer interface {
	ObserveResolution(kind PathKind, outcome string)
	ObserveInvalidFilters(n int)
}

type nopObserver struct{}

func (nopObserver) ObserveResolution(PathKind, string) {}
func (nopObserver) ObserveInvalidFilters(int)          {}

// Resolver finds the stored casing of a path whose case may not match the
// data lake.
type Resolver struct {
	storage  Storage
	observer Observer
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithObserver reports every resolution outcome to o.
func WithObserver(o Observer) ResolverOption {
	return func(r *Resolver) {
		if o != nil {
			r.observer = o
		}
	}
}

// NewResolver returns a Resolver that probes storage.
func NewResolver(storage Storage, opts ...ResolverOption) *Resolver {
	r := &Resolver{storage: storage, observer: nopObserver{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MatchChildren lists the immediate children of base (the root when base is
// empty) and returns the full paths of those whose name equals segment
// ignoring case and whose kind matches wantDirs.
//
// No match is not an error. Several matches are all returned.
func (r *Resolver) MatchChildren(ctx context.Context, base, segment string, wantDirs bool) ([]string, error) {
	entries, err := r.storage.List(ctx, base, false)
	if err != nil {
		return nil, fmt.Errorf("match children of '%s': %w", base, err)
	}

	var matches []string
	for _, e := range entries {
		if e.IsDirectory == wantDirs && strings.EqualFold(e.Name(), segment) {
			matches = append(matches, e.Path)
		}
	}
	return matches, nil
}

// Resolve returns the stored casing of path as a file or directory.
//
// The path is normalized first; an empty result is the root and resolves to
// "" without any storage call. A path that exists with its exact casing is
// returned as is. Otherwise the directory segments are walked from the root,
// keeping every case-insensitive match as a live branch, and the final
// segment must match exactly one entry.
//
// Error types returned:
//   - ErrNotFound: a segment has no case-insensitive match
//   - ErrMultipleDirectoryMatches: the target directory matches more than once
//   - ErrMultipleFileMatches: the target file matches more than once
//   - Wrapped storage errors
func (r *Resolver) Resolve(ctx context.Context, path string, kind PathKind) (string, error) {
	resolved, outcome, err := r.resolve(ctx, path, kind)
	r.observer.ObserveResolution(kind, outcome)
	return resolved, err
}

func (r *Resolver) resolve(ctx context.Context, path string, kind PathKind) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", OutcomeError, fmt.Errorf("resolve %s: %w", kind, err)
	}

	p := NormalizePath(path)
	if p == "" {
		return "", OutcomeRoot, nil
	}

	exists, err := r.storage.Exists(ctx, p, kind)
	if err != nil {
		return "", OutcomeError, fmt.Errorf("resolve %s '%s': %w", kind, p, err)
	}
	if exists {
		return p, OutcomeExact, nil
	}

	slog.Info("path not found, checking case using case insensitive compare", "kind", kind.String(), "path", p)

	dirPath, fileName := p, ""
	if kind == KindFile {
		dirPath, fileName = SplitPath(p)
	}

	frontier := []string{""}
	for _, segment := range Segments(dirPath) {
		var next []string
		for _, base := range frontier {
			matches, err := r.MatchChildren(ctx, base, segment, true)
			if err != nil {
				return "", OutcomeError, fmt.Errorf("resolve %s '%s': %w", kind, p, err)
			}
			next = append(next, matches...)
		}
		if len(next) == 0 {
			return "", OutcomeNotFound, fmt.Errorf("resolve %s '%s': %w", kind, p, ErrNotFound)
		}
		frontier = next
	}

	if kind == KindDirectory {
		if len(frontier) > 1 {
			return "", OutcomeAmbiguous, fmt.Errorf("resolve directory '%s': %w (%s)",
				p, ErrMultipleDirectoryMatches, strings.Join(frontier, ", "))
		}
		return frontier[0], OutcomeCorrected, nil
	}

	var files []string
	for _, dir := range frontier {
		matches, err := r.MatchChildren(ctx, dir, fileName, false)
		if err != nil {
			return "", OutcomeError, fmt.Errorf("resolve file '%s': %w", p, err)
		}
		files = append(files, matches...)
	}

	switch len(files) {
	case 0:
		return "", OutcomeNotFound, fmt.Errorf("resolve file '%s': %w", p, ErrNotFound)
	case 1:
		return files[0], OutcomeCorrected, nil
	default:
		return "", OutcomeAmbiguous, fmt.Errorf("resolve file '%s': %w (%s)",
			p, ErrMultipleFileMatches, strings.Join(files, ", "))
	}
}
