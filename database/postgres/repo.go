// Package postgres implements the listing catalog using PostgreSQL
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sagarc03/lakepath"
)

// Catalog stores the entries of every indexed container in one table.
type Catalog struct {
	pool      *pgxpool.Pool
	tableName string
}

// NewCatalog creates a Catalog over an already migrated table.
func NewCatalog(pool *pgxpool.Pool, tables lakepath.Tables) (*Catalog, error) {
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("new catalog: %w", err)
	}

	return &Catalog{pool: pool, tableName: tables.Entries}, nil
}

func (c *Catalog) table() string {
	return pgx.Identifier{c.tableName}.Sanitize()
}

// Upsert writes entries as one batch inside a transaction, stamping each row
// with indexedAt.
func (c *Catalog) Upsert(ctx context.Context, container string, entries []lakepath.Entry, indexedAt time.Time) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (container, path, parent, name, is_directory, content_length, last_modified, indexed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (container, path) DO UPDATE
		SET is_directory = EXCLUDED.is_directory,
			content_length = EXCLUDED.content_length,
			last_modified = EXCLUDED.last_modified,
			indexed_at = EXCLUDED.indexed_at
	`, c.table())

	batch := &pgx.Batch{}
	for _, e := range entries {
		parent, name := lakepath.SplitPath(e.Path)
		batch.Queue(query, container, e.Path, parent, name, e.IsDirectory, e.ContentLength, e.LastModified.UTC(), indexedAt.UTC())
	}

	err := pgx.BeginFunc(ctx, c.pool, func(tx pgx.Tx) error {
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return nil
}

// Prune deletes the rows of container last indexed before the given time.
func (c *Catalog) Prune(ctx context.Context, container string, before time.Time) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE container = $1 AND indexed_at < $2`, c.table())

	result, err := c.pool.Exec(ctx, query, container, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune: %w", err)
	}
	return result.RowsAffected(), nil
}

// Indexed reports whether container has any rows.
func (c *Catalog) Indexed(ctx context.Context, container string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE container = $1)`, c.table())

	var exists bool
	if err := c.pool.QueryRow(ctx, query, container).Scan(&exists); err != nil {
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
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE container = $1 AND path = $2 AND is_directory = $3
		)
	`, s.catalog.table())

	var exists bool
	err := s.catalog.pool.QueryRow(ctx, query, s.container, path, kind == lakepath.KindDirectory).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists '%s': %w", path, err)
	}
	return exists, nil
}

func (s *containerStore) List(ctx context.Context, base string, recursive bool) ([]lakepath.Entry, error) {
	const columns = `path, is_directory, content_length, last_modified`
	table := s.catalog.table()

	var query string
	var args []any
	switch {
	case !recursive:
		query = fmt.Sprintf(`SELECT %s FROM %s WHERE container = $1 AND parent = $2 ORDER BY path COLLATE "C"`, columns, table)
		args = []any{s.container, base}
	case base == "":
		query = fmt.Sprintf(`SELECT %s FROM %s WHERE container = $1 ORDER BY path COLLATE "C"`, columns, table)
		args = []any{s.container}
	default:
		query = fmt.Sprintf(`SELECT %s FROM %s WHERE container = $1 AND path LIKE $2 || '%%' ORDER BY path COLLATE "C"`, columns, table)
		args = []any{s.container, lakepath.EscapeLikePattern(base + "/")}
	}

	rows, err := s.catalog.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list '%s': %w", base, err)
	}
	defer rows.Close()

	var entries []lakepath.Entry
	for rows.Next() {
		var e lakepath.Entry
		if err := rows.Scan(&e.Path, &e.IsDirectory, &e.ContentLength, &e.LastModified); err != nil {
			return nil, fmt.Errorf("list '%s': scan: %w", base, err)
		}
		e.LastModified = e.LastModified.UTC()
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list '%s': rows: %w", base, err)
	}

	return entries, nil
}
