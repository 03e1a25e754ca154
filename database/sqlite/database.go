package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sagarc03/lakepath"

	_ "modernc.org/sqlite" // SQLite driver
)

// DB provides SQLite catalog operations.
type DB struct {
	db     *sql.DB
	tables lakepath.Tables
}

// Connect opens a SQLite database.
// Tables should be validated before calling Connect.
func Connect(ctx context.Context, dsn string, tables lakepath.Tables) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}

	// :memory: databases are per connection.
	db.SetMaxOpenConns(1)

	return &DB{
		db:     db,
		tables: tables,
	}, nil
}

// Ping verifies the database connection is alive.
func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Migrate creates the catalog tables.
func (d *DB) Migrate(ctx context.Context) error {
	if err := Migrate(ctx, d.db, d.tables); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Validate checks that the database schema matches expected structure.
func (d *DB) Validate(ctx context.Context) error {
	return ValidateSchema(ctx, d.db, d.tables)
}

// GetCatalog returns the catalog stored in the entries table.
func (d *DB) GetCatalog() lakepath.Catalog {
	return &Catalog{db: d.db, tableName: d.tables.Entries}
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}
