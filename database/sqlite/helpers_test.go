package sqlite_test

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/lakepath"
	"github.com/sagarc03/lakepath/database/sqlite"
)

func getRandomString(t *testing.T) string {
	t.Helper()
	n, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	assert.NoError(t, err, "random string")
	return fmt.Sprintf("test%x", n.Int64())
}

// setupTestCatalog creates a catalog with a unique table name for test isolation
func setupTestCatalog(t *testing.T) lakepath.Catalog {
	t.Helper()

	ctx := context.Background()

	tables := lakepath.Tables{Entries: fmt.Sprintf("entries_%s", getRandomString(t))}

	db, err := sqlite.Connect(ctx, ":memory:", tables)
	require.NoError(t, err, "failed to connect")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate(ctx), "failed to migrate")

	return db.GetCatalog()
}

var modified = time.Date(2022, 6, 1, 12, 30, 0, 123456789, time.UTC)

func lakeEntries() []lakepath.Entry {
	dir := func(p string) lakepath.Entry {
		return lakepath.Entry{Path: p, IsDirectory: true, LastModified: modified}
	}
	file := func(p string, size int64) lakepath.Entry {
		return lakepath.Entry{Path: p, ContentLength: size, LastModified: modified}
	}
	return []lakepath.Entry{
		dir("raw"),
		dir("raw/api"),
		dir("raw/API"),
		file("raw/api/delta_1.json", 10),
		file("raw/API/delta_1.json", 11),
		dir("raw/my_dir"),
		file("raw/my_dir/a.csv", 1),
		dir("raw/myXdir"),
		file("raw/myXdir/b.csv", 2),
		dir("curated"),
		file("curated/report.parquet", 5),
	}
}

func paths(entries []lakepath.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}
