package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sagarc03/lakepath"
)

// Migrate creates the catalog tables if they do not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool, tables lakepath.Tables) error {
	if err := createEntriesTable(ctx, pool, tables.Entries); err != nil {
		return fmt.Errorf("migrate up %s: %w", tables.Entries, err)
	}
	return nil
}

// DropTables removes the catalog tables.
func DropTables(ctx context.Context, pool *pgxpool.Pool, tables lakepath.Tables) error {
	sql := fmt.Sprintf("DROP TABLE IF EXISTS %s", pgx.Identifier{tables.Entries}.Sanitize())
	if _, err := pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("migrate down %s: %w", tables.Entries, err)
	}
	return nil
}

func createEntriesTable(ctx context.Context, pool *pgxpool.Pool, tableName string) error {
	quotedTable := pgx.Identifier{tableName}.Sanitize()
	indexParent := pgx.Identifier{fmt.Sprintf("idx_%s_parent", tableName)}.Sanitize()
	indexIndexedAt := pgx.Identifier{fmt.Sprintf("idx_%s_indexed_at", tableName)}.Sanitize()

	sql := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			container TEXT NOT NULL,
			path TEXT NOT NULL,
			parent TEXT NOT NULL,
			name TEXT NOT NULL,
			is_directory BOOLEAN NOT NULL,
			content_length BIGINT NOT NULL,
			last_modified TIMESTAMPTZ NOT NULL,
			indexed_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (container, path)
		);

		CREATE INDEX IF NOT EXISTS %s
		ON %s (container, parent);

		CREATE INDEX IF NOT EXISTS %s
		ON %s (container, indexed_at);
	`,
		quotedTable,
		indexParent, quotedTable,
		indexIndexedAt, quotedTable,
	)

	_, err := pool.Exec(ctx, sql)
	if err != nil {
		return fmt.Errorf("create entries table: %w", err)
	}
	return nil
}
