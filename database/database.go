package database

import (
	"context"
	"fmt"

	"github.com/sagarc03/lakepath"
	"github.com/sagarc03/lakepath/database/postgres"
	"github.com/sagarc03/lakepath/database/sqlite"
)

// Config holds the configuration for connecting to a catalog backend.
type Config struct {
	// Type specifies the database type: "sqlite" or "postgres"
	Type string `mapstructure:"type" validate:"required,oneof=sqlite postgres"`
	// DSN is the data source name (connection string)
	DSN string `mapstructure:"dsn" validate:"required"`
	// Tables holds the catalog table names
	Tables lakepath.Tables `mapstructure:"tables"`
}

// Database is a catalog backend.
type Database interface {
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Validate(ctx context.Context) error
	GetCatalog() lakepath.Catalog
	Close() error
}

// Connect opens the configured backend. It does not migrate or validate;
// callers decide which of the two they need.
func Connect(ctx context.Context, cfg Config) (Database, error) {
	if err := cfg.Tables.Validate(); err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	switch cfg.Type {
	case "sqlite":
		return sqlite.Connect(ctx, cfg.DSN, cfg.Tables)
	case "postgres":
		return postgres.Connect(ctx, cfg.DSN, cfg.Tables)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
}
