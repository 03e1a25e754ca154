package lakepath

import (
	"context"
	"fmt"
	"time"
)

// DefaultIndexBatchSize is the number of entries written per Upsert call.
const DefaultIndexBatchSize = 500

// CatalogWriter stores listing entries for a container so a catalog backed
// Storage can answer later queries without touching the data lake.
type CatalogWriter interface {
	// Upsert creates or refreshes entries and stamps them with indexedAt.
	Upsert(ctx context.Context, container string, entries []Entry, indexedAt time.Time) error
	// Prune removes the entries of container last indexed before the given time.
	Prune(ctx context.Context, container string, before time.Time) (int64, error)
}

// Catalog is a database of indexed listings holding any number of
// containers.
type Catalog interface {
	CatalogWriter
	// Container returns the Storage view of one container's entries.
	Container(name string) Storage
	// Indexed reports whether container holds any entries.
	Indexed(ctx context.Context, container string) (bool, error)
}

// IndexStats reports what a Reindex run did.
type IndexStats struct {
	Indexed int
	Pruned  int64
}

// Reindex copies the full recursive listing of src into dst for container
// and removes catalog entries that no longer exist in src.
//
// The operation is not atomic. If it fails partway through, the catalog holds
// a mix of old and refreshed entries and nothing is pruned.
func Reindex(ctx context.Context, src Storage, dst CatalogWriter, container string) (IndexStats, error) {
	if err := ctx.Err(); err != nil {
		return IndexStats{}, fmt.Errorf("reindex: %w", err)
	}

	// Catalog timestamps keep microseconds.
	startedAt := time.Now().UTC().Truncate(time.Microsecond)

	entries, err := src.List(ctx, "", true)
	if err != nil {
		return IndexStats{}, fmt.Errorf("reindex: %w", err)
	}

	var stats IndexStats
	for start := 0; start < len(entries); start += DefaultIndexBatchSize {
		end := min(start+DefaultIndexBatchSize, len(entries))
		if err := dst.Upsert(ctx, container, entries[start:end], startedAt); err != nil {
			return stats, fmt.Errorf("reindex '%s': %w", container, err)
		}
		stats.Indexed = end
	}

	pruned, err := dst.Prune(ctx, container, startedAt)
	if err != nil {
		return stats, fmt.Errorf("reindex '%s': prune: %w", container, err)
	}
	stats.Pruned = pruned

	return stats, nil
}
