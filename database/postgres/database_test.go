package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/lakepath"
	"github.com/sagarc03/lakepath/database/postgres"
)

func TestConnect(t *testing.T) {
	pool := getSharedTestDatabase(t)
	ctx := context.Background()

	db, err := postgres.Connect(ctx, getDSN(pool), lakepath.Tables{Entries: "entries"})
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.NoError(t, db.Ping(ctx), "ping should succeed after connect")
}

func TestDatabase_Migrate(t *testing.T) {
	pool := getSharedTestDatabase(t)
	ctx := context.Background()

	tableName := "migrate_test_" + getRandomString(t)
	db, err := postgres.Connect(ctx, getDSN(pool), lakepath.Tables{Entries: tableName})
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
		_ = dropTable(ctx, pool, tableName)
	}()

	require.NoError(t, db.Migrate(ctx))
	assert.NoError(t, db.Migrate(ctx), "migrate should be idempotent")
	assert.NoError(t, db.Validate(ctx))
}

func TestDatabase_Validate(t *testing.T) {
	pool := getSharedTestDatabase(t)
	ctx := context.Background()

	t.Run("error - table does not exist", func(t *testing.T) {
		db, err := postgres.Connect(ctx, getDSN(pool), lakepath.Tables{Entries: "nonexistent_table"})
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		assert.Error(t, db.Validate(ctx))
	})

	t.Run("error - missing columns", func(t *testing.T) {
		tableName := "incomplete_" + getRandomString(t)
		_, err := pool.Exec(ctx, `CREATE TABLE `+tableName+` (container TEXT NOT NULL, path TEXT NOT NULL)`)
		require.NoError(t, err)
		defer func() { _ = dropTable(ctx, pool, tableName) }()

		db, err := postgres.Connect(ctx, getDSN(pool), lakepath.Tables{Entries: tableName})
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		err = db.Validate(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing columns")
	})

	t.Run("error - wrong column type", func(t *testing.T) {
		tableName := "wrongtype_" + getRandomString(t)
		_, err := pool.Exec(ctx, `
			CREATE TABLE `+tableName+` (
				container TEXT NOT NULL,
				path TEXT NOT NULL,
				parent TEXT NOT NULL,
				name TEXT NOT NULL,
				is_directory BOOLEAN NOT NULL,
				content_length TEXT NOT NULL,
				last_modified TIMESTAMPTZ NOT NULL,
				indexed_at TIMESTAMPTZ NOT NULL
			)
		`)
		require.NoError(t, err)
		defer func() { _ = dropTable(ctx, pool, tableName) }()

		db, err := postgres.Connect(ctx, getDSN(pool), lakepath.Tables{Entries: tableName})
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		err = db.Validate(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "content_length")
	})
}

func TestDropTables(t *testing.T) {
	pool := getSharedTestDatabase(t)
	ctx := context.Background()
	tables := lakepath.Tables{Entries: "drop_" + getRandomString(t)}

	require.NoError(t, postgres.Migrate(ctx, pool, tables))
	require.NoError(t, postgres.DropTables(ctx, pool, tables))
	assert.NoError(t, postgres.DropTables(ctx, pool, tables), "drop should be idempotent")
	assert.Error(t, postgres.ValidateSchema(ctx, pool, tables))
}
