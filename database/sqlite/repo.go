// Package sqlite implements the listing catalog using SQLite
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/sagarc03/lakepath"
)

// Catalog stores the entries of every indexed container in one table.
type Catalog struct {
	db        *sql.DB
	tableName string
}

// NewCatalog creates a Catalog over an already migrated table.
func NewCatalog(db *sql.DB, tables lakepath.Tables) (*Catalog, error) {
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("new catalog: %w", err)
	}

	return &Catalog{db: db, tableName: tables.Entries}, nil
}

// Upsert writes entries in one transaction, stamping each row with indexedAt.
func (c *Catalog) Upsert(ctx context.Context, container string, entries []lakepath.Entry, indexedAt time.Time) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`INSERT INTO %s (container, path, parent, name, is_directory, content_length, last_modified, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (container, path) DO UPDATE
		SET is_directory = excluded.is_directory,
			content_length = excluded.content_length,
			last_modified = excluded.last_modified,
			indexed_at = excluded.indexed_at`, quoteIdentifier(c.tableName))

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("upsert: prepare: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	stamp := indexedAt.UTC().UnixMicro()
	for _, e := range entries {
		parent, name := lakepath.SplitPath(e.Path)
		_, err := stmt.ExecContext(ctx,
			container, e.Path, parent, name, e.IsDirectory, e.ContentLength,
			e.LastModified.UTC().Format(time.RFC3339Nano), stamp,
		)
		if err != nil {
			return fmt.Errorf("upsert '%s': %w", e.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert: commit: %w", err)
	}
	return nil
}

// Prune deletes the rows of container last indexed before the given time.
func (c *Catalog) Prune(ctx context.Context, container string, before time.Time) (int64, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`DELETE FROM %s WHERE container = ? AND indexed_at < ?`, quoteIdentifier(c.tableName))

	result, err := c.db.ExecContext(ctx, query, container, before.UTC().UnixMicro())
	if err != nil {
		return 0, fmt.Errorf("prune: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune: rows affected: %w", err)
	}
	return n, nil
}

// Indexed reports whether container has any rows.
func (c *Catalog) Indexed(ctx context.Context, container string) (bool, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT EXISTS (SELECT 1 FROM %s WHERE container = ?)`, quoteIdentifier(c.tableName))

	var exists bool
	if err := c.db.QueryRowContext(ctx, query, container).Scan(&exists); err != nil {
		return false, fmt.Errorf("indexed: %w", err)
	}
	return exists, nil
}

// Container returns the Storage view of container.
func (c *Catalog) Container(name string) lakepath.Storage {
	return &containerStore{catalog: c, container: name}
}

type containerStore struct {
	catalog   *Catalog
	container string
}

func (s *containerStore) Exists(ctx context.Context, path string, kind lakepath.PathKind) (bool, error) {
	query := fmt.Sprintf( //nolint:gosec // G201: table name is validated
		`SELECT EXISTS (
			SELECT 1 FROM %s WHERE container = ? AND path = ? AND is_directory = ?
		)`, quoteIdentifier(s.catalog.tableName))

	var exists bool
	err := s.catalog.db.QueryRowContext(ctx, query, s.container, path, kind == lakepath.KindDirectory).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists '%s': %w", path, err)
	}
	return exists, nil
}

func (s *containerStore) List(ctx context.Context, base string, recursive bool) ([]lakepath.Entry, error) {
	table := quoteIdentifier(s.catalog.tableName)
	columns := `path, is_directory, content_length, last_modified`

	var query string
	var args []any
	switch {
	case !recursive:
		query = fmt.Sprintf( //nolint:gosec // G201: table name is validated
			`SELECT %s FROM %s WHERE container = ? AND parent = ? ORDER BY path`, columns, table)
		args = []any{s.container, base}
	case base == "":
		query = fmt.Sprintf( //nolint:gosec // G201: table name is validated
			`SELECT %s FROM %s WHERE container = ? ORDER BY path`, columns, table)
		args = []any{s.container}
	default:
		// LIKE ignores ASCII case in SQLite; the substr comparison keeps the
		// prefix match exact.
		prefix := base + "/"
		query = fmt.Sprintf( //nolint:gosec // G201: table name is validated
			`SELECT %s FROM %s
			WHERE container = ? AND path LIKE ? || '%%' ESCAPE '\' AND substr(path, 1, ?) = ?
			ORDER BY path`, columns, table)
		args = []any{s.container, lakepath.EscapeLikePattern(prefix), utf8.RuneCountInString(prefix), prefix}
	}

	rows, err := s.catalog.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list '%s': %w", base, err)
	}
	defer func() { _ = rows.Close() }()

	var entries []lakepath.Entry
	for rows.Next() {
		var e lakepath.Entry
		var lastModified string
		if err := rows.Scan(&e.Path, &e.IsDirectory, &e.ContentLength, &lastModified); err != nil {
			return nil, fmt.Errorf("list '%s': scan: %w", base, err)
		}

		e.LastModified, err = time.Parse(time.RFC3339Nano, lastModified)
		if err != nil {
			return nil, fmt.Errorf("list '%s': parse last_modified: %w", base, err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list '%s': rows: %w", base, err)
	}

	return entries, nil
}
