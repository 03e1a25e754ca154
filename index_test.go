package lakepath_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/lakepath"
)

type SpyCatalog struct {
	mock.Mock
}

func (s *SpyCatalog) Upsert(ctx context.Context, container string, entries []lakepath.Entry, indexedAt time.Time) error {
	args := s.Called(ctx, container, entries, indexedAt)
	return args.Error(0)
}

func (s *SpyCatalog) Prune(ctx context.Context, container string, before time.Time) (int64, error) {
	args := s.Called(ctx, container, before)
	return args.Get(0).(int64), args.Error(1)
}

func manyFiles(n int) *memStorage {
	files := make([]lakepath.Entry, n)
	for i := range files {
		files[i] = lakepath.Entry{
			Path:          fmt.Sprintf("bulk/part-%05d.parquet", i),
			ContentLength: int64(i),
			LastModified:  day(time.March, 1, 0),
		}
	}
	return newMemStorage(files...)
}

func TestReindex(t *testing.T) {
	ctx := context.Background()

	t.Run("writes in batches and prunes", func(t *testing.T) {
		// 1200 files plus the bulk directory.
		src := manyFiles(1200)
		catalog := new(SpyCatalog)

		var sizes []int
		var stamps []time.Time
		catalog.On("Upsert", ctx, "lake", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				sizes = append(sizes, len(args.Get(2).([]lakepath.Entry)))
				stamps = append(stamps, args.Get(3).(time.Time))
			}).
			Return(nil)
		catalog.On("Prune", ctx, "lake", mock.Anything).Return(int64(7), nil)

		stats, err := lakepath.Reindex(ctx, src, catalog, "lake")
		require.NoError(t, err)

		assert.Equal(t, []int{500, 500, 201}, sizes)
		assert.Equal(t, 1201, stats.Indexed)
		assert.Equal(t, int64(7), stats.Pruned)

		require.Len(t, stamps, 3)
		assert.Equal(t, stamps[0], stamps[2], "every batch shares one timestamp")
		assert.Equal(t, stamps[0], stamps[0].Truncate(time.Microsecond))

		before := catalog.Calls[len(catalog.Calls)-1].Arguments.Get(2).(time.Time)
		assert.Equal(t, stamps[0], before)
	})

	t.Run("empty source still prunes", func(t *testing.T) {
		catalog := new(SpyCatalog)
		catalog.On("Prune", ctx, "lake", mock.Anything).Return(int64(3), nil)

		stats, err := lakepath.Reindex(ctx, newMemStorage(), catalog, "lake")
		require.NoError(t, err)
		assert.Equal(t, 0, stats.Indexed)
		assert.Equal(t, int64(3), stats.Pruned)
		catalog.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("upsert failure skips prune", func(t *testing.T) {
		upsertErr := errors.New("disk full")
		catalog := new(SpyCatalog)
		catalog.On("Upsert", ctx, "lake", mock.Anything, mock.Anything).Return(nil).Once()
		catalog.On("Upsert", ctx, "lake", mock.Anything, mock.Anything).Return(upsertErr).Once()

		stats, err := lakepath.Reindex(ctx, manyFiles(800), catalog, "lake")
		assert.ErrorIs(t, err, upsertErr)
		assert.Equal(t, 500, stats.Indexed)
		catalog.AssertNotCalled(t, "Prune", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("list failure", func(t *testing.T) {
		listErr := errors.New("access denied")
		src := new(SpyStorage)
		src.On("List", ctx, "", true).Return([]lakepath.Entry(nil), listErr)
		catalog := new(SpyCatalog)

		_, err := lakepath.Reindex(ctx, src, catalog, "lake")
		assert.ErrorIs(t, err, listErr)
		catalog.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("prune failure", func(t *testing.T) {
		pruneErr := errors.New("lock timeout")
		catalog := new(SpyCatalog)
		catalog.On("Upsert", ctx, "lake", mock.Anything, mock.Anything).Return(nil)
		catalog.On("Prune", ctx, "lake", mock.Anything).Return(int64(0), pruneErr)

		stats, err := lakepath.Reindex(ctx, newLakeFixture(), catalog, "lake")
		assert.ErrorIs(t, err, pruneErr)
		assert.Positive(t, stats.Indexed)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := lakepath.Reindex(cctx, newLakeFixture(), new(SpyCatalog), "lake")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
