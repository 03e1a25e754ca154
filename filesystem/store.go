// Package filesystem provides a local directory backend for lakepath. Each
// container is a subdirectory of the lake root, opened through os.Root so a
// request can never escape it.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"syscall"

	"github.com/sagarc03/lakepath"
)

// Store provides read-only listing of a directory tree.
type Store struct {
	root *os.Root
	dir  string
}

// NewFileStorage creates a new Store with the given root directory.
// The root provides sandboxed file operations preventing path traversal.
func NewFileStorage(root *os.Root) *Store {
	return &Store{root: root}
}

// newContainerStore serves the subdirectory dir of root. Entry paths stay
// relative to dir.
func newContainerStore(root *os.Root, dir string) *Store {
	return &Store{root: root, dir: dir}
}

func (s *Store) full(p string) string {
	switch {
	case s.dir == "" && p == "":
		return "."
	case s.dir == "":
		return p
	default:
		return path.Join(s.dir, p)
	}
}

// Exists reports whether path exists as kind. The final segment must match
// with its exact casing even on case-insensitive file systems.
func (s *Store) Exists(ctx context.Context, p string, kind lakepath.PathKind) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	info, err := s.root.Stat(s.full(p))
	if err != nil {
		if isNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat '%s': %w", p, err)
	}
	if info.IsDir() != (kind == lakepath.KindDirectory) {
		return false, nil
	}

	return s.hasExactName(p)
}

func (s *Store) hasExactName(p string) (bool, error) {
	parent, name := lakepath.SplitPath(p)

	dirEntries, err := fs.ReadDir(s.root.FS(), s.full(parent))
	if err != nil {
		if isNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read dir '%s': %w", parent, err)
	}
	for _, e := range dirEntries {
		if e.Name() == name {
			return true, nil
		}
	}
	return false, nil
}

// isNotExist also treats a path running through a regular file as missing.
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

// List returns the entries below base, walking every subdirectory when
// recursive is set. Entries are returned in lexical order per directory.
func (s *Store) List(ctx context.Context, base string, recursive bool) ([]lakepath.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entries []lakepath.Entry
	if err := s.walkDir(ctx, base, recursive, &entries); err != nil {
		if isNotExist(err) {
			return nil, fmt.Errorf("list '%s': %w", base, lakepath.ErrNotFound)
		}
		return nil, fmt.Errorf("list '%s': %w", base, err)
	}

	return entries, nil
}

func (s *Store) walkDir(ctx context.Context, dir string, recursive bool, entries *[]lakepath.Entry) error {
	dirEntries, err := fs.ReadDir(s.root.FS(), s.full(dir))
	if err != nil {
		return err
	}

	for _, entry := range dirEntries {
		if err := ctx.Err(); err != nil {
			return err
		}

		entryPath := entry.Name()
		if dir != "" {
			entryPath = path.Join(dir, entry.Name())
		}

		info, err := entry.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Debug("entry vanished while listing", "path", entryPath)
				continue
			}
			return fmt.Errorf("walk dir: %w", err)
		}

		e := lakepath.Entry{
			Path:         entryPath,
			IsDirectory:  entry.IsDir(),
			LastModified: info.ModTime().UTC(),
		}
		if !e.IsDirectory {
			e.ContentLength = info.Size()
		}
		*entries = append(*entries, e)

		if entry.IsDir() && recursive {
			if err := s.walkDir(ctx, entryPath, recursive, entries); err != nil {
				return err
			}
		}
	}

	return nil
}
