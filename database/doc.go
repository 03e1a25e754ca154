// Package database opens the listing catalog on SQLite or PostgreSQL.
//
// The catalog is a single table of entries keyed by (container, path). It
// is filled by lakepath.Reindex from a live backend and then serves the same
// Storage interface, so path resolution and item listing can run without
// touching the data lake.
//
// # Supported Backends
//
//   - PostgreSQL: pgx connection pool, suited to shared deployments
//   - SQLite: modernc.org/sqlite, suited to a single node or tests
//
// # Usage
//
//	db, err := database.Connect(ctx, database.Config{
//	    Type:   "sqlite",
//	    DSN:    "lakepath.db",
//	    Tables: lakepath.Tables{Entries: "lakepath_entries"},
//	})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
//	connector := database.NewConnector(db.GetCatalog(), "https://lake.example.com")
package database
