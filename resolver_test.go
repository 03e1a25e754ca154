package lakepath_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/lakepath"
)

func TestResolver_MatchChildren(t *testing.T) {
	ctx := context.Background()
	resolver := lakepath.NewResolver(newLakeFixture())

	t.Run("returns every case-insensitive directory match", func(t *testing.T) {
		matches, err := resolver.MatchChildren(ctx, "raw", "Api", true)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"raw/api", "raw/API"}, matches)
	})

	t.Run("filters by kind", func(t *testing.T) {
		matches, err := resolver.MatchChildren(ctx, "raw", "api", false)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("root base", func(t *testing.T) {
		matches, err := resolver.MatchChildren(ctx, "", "RAW", true)
		require.NoError(t, err)
		assert.Equal(t, []string{"raw"}, matches)
	})

	t.Run("no candidates is not an error", func(t *testing.T) {
		matches, err := resolver.MatchChildren(ctx, "raw", "missing", true)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("storage error is wrapped", func(t *testing.T) {
		storage := new(SpyStorage)
		storageErr := errors.New("connection reset")
		storage.On("List", ctx, "raw", false).Return([]lakepath.Entry{}, storageErr)

		_, err := lakepath.NewResolver(storage).MatchChildren(ctx, "raw", "api", true)
		assert.ErrorIs(t, err, storageErr)
		storage.AssertExpectations(t)
	})
}

func TestResolver_Resolve_Root(t *testing.T) {
	ctx := context.Background()

	for _, path := range []string{"", "/", "   ", "   \t\r\n   ", "//"} {
		t.Run("path "+path, func(t *testing.T) {
			storage := new(SpyStorage)
			resolver := lakepath.NewResolver(storage)

			for _, kind := range []lakepath.PathKind{lakepath.KindDirectory, lakepath.KindFile} {
				got, err := resolver.Resolve(ctx, path, kind)
				require.NoError(t, err)
				assert.Equal(t, "", got)
			}

			storage.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
			storage.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestResolver_Resolve_ExactCase(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		path string
		kind lakepath.PathKind
	}{
		{name: "directory", path: "raw/database", kind: lakepath.KindDirectory},
		{name: "nested directory", path: "raw/api/jan", kind: lakepath.KindDirectory},
		{name: "file", path: "raw/database/jan/extract_1.csv", kind: lakepath.KindFile},
		{name: "file under ambiguous parent", path: "raw/API/jan/delta_extract_1.json", kind: lakepath.KindFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := newLakeFixture()
			got, err := lakepath.NewResolver(storage).Resolve(ctx, tt.path, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.path, got)
			assert.Zero(t, storage.ListCalls(), "exact case must not list")
		})
	}

	t.Run("surrounding slashes are trimmed", func(t *testing.T) {
		got, err := lakepath.NewResolver(newLakeFixture()).Resolve(ctx, "/raw/database/", lakepath.KindDirectory)
		require.NoError(t, err)
		assert.Equal(t, "raw/database", got)
	})
}

func TestResolver_Resolve_IncorrectCase(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		path string
		kind lakepath.PathKind
		want string
	}{
		{name: "directory last segment", path: "raw/database/JAN", kind: lakepath.KindDirectory, want: "raw/database/jan"},
		{name: "directory middle segment", path: "raw/DataBase/jan", kind: lakepath.KindDirectory, want: "raw/database/jan"},
		{name: "directory every segment", path: "RAW/DATABASE/JAN", kind: lakepath.KindDirectory, want: "raw/database/jan"},
		{name: "file name", path: "raw/database/jan/eXTRact_1.csv", kind: lakepath.KindFile, want: "raw/database/jan/extract_1.csv"},
		{name: "file directory", path: "raw/database/JAN/extract_1.csv", kind: lakepath.KindFile, want: "raw/database/jan/extract_1.csv"},
		{name: "file everything", path: "RAW/DataBase/Jan/EXTRACT_1.CSV", kind: lakepath.KindFile, want: "raw/database/jan/extract_1.csv"},
		{name: "ambiguous intermediate with single final match", path: "raw/API/FEB", kind: lakepath.KindDirectory, want: "raw/api/feb"},
		{name: "ambiguous intermediate with single file match", path: "RAW/Api/Feb/Delta_Extract_3.json", kind: lakepath.KindFile, want: "raw/api/feb/delta_extract_3.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lakepath.NewResolver(newLakeFixture()).Resolve(ctx, tt.path, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_Resolve_NotFound(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		path string
		kind lakepath.PathKind
	}{
		{name: "missing directory", path: "some/invalid/path", kind: lakepath.KindDirectory},
		{name: "missing file", path: "some/invalid/path.csv", kind: lakepath.KindFile},
		{name: "file in existing directory", path: "raw/database/jan/missing.csv", kind: lakepath.KindFile},
		{name: "file asked as directory", path: "raw/database/jan/EXTRACT_1.csv", kind: lakepath.KindDirectory},
		{name: "directory asked as file", path: "raw/DATABASE", kind: lakepath.KindFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lakepath.NewResolver(newLakeFixture()).Resolve(ctx, tt.path, tt.kind)
			assert.ErrorIs(t, err, lakepath.ErrNotFound)
			assert.Equal(t, "", got)
		})
	}

	t.Run("stops at the first empty segment", func(t *testing.T) {
		storage := newLakeFixture()
		_, err := lakepath.NewResolver(storage).Resolve(ctx, "nope/a/b/c", lakepath.KindDirectory)
		assert.ErrorIs(t, err, lakepath.ErrNotFound)
		assert.Equal(t, 1, storage.ListCalls())
	})
}

func TestResolver_Resolve_Ambiguous(t *testing.T) {
	ctx := context.Background()

	directories := []string{"raw/aPi", "RAW/api", "RaW/api/jan", "raw/ApI/jan", "raw/api/JaN"}
	for _, path := range directories {
		t.Run("directory "+path, func(t *testing.T) {
			_, err := lakepath.NewResolver(newLakeFixture()).Resolve(ctx, path, lakepath.KindDirectory)
			assert.ErrorIs(t, err, lakepath.ErrMultipleDirectoryMatches)
		})
	}

	files := []string{
		"RaW/api/jan/delta_extract_1.json",
		"raw/ApI/jan/delta_extract_1.json",
		"raw/api/JaN/delta_extract_1.json",
		"raw/api/jan/delta_EXTRACT_1.json",
		"raw/DataBase/feb/extract_2.csv",
		"raw/database/feb/Extract_2.csv",
	}
	for _, path := range files {
		t.Run("file "+path, func(t *testing.T) {
			_, err := lakepath.NewResolver(newLakeFixture()).Resolve(ctx, path, lakepath.KindFile)
			assert.ErrorIs(t, err, lakepath.ErrMultipleFileMatches)
		})
	}
}

func TestResolver_Resolve_CaseDuplicateDirectoryScenario(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage(
		lakepath.Entry{Path: "raw/database/jan/extract_1.csv", ContentLength: 1, LastModified: time.Now()},
		lakepath.Entry{Path: "raw/DATABASE/other.csv", ContentLength: 1, LastModified: time.Now()},
	)

	got, err := lakepath.NewResolver(storage).Resolve(ctx, "raw/DATABASE/JAN/extract_1.CSV", lakepath.KindFile)
	require.NoError(t, err)
	assert.Equal(t, "raw/database/jan/extract_1.csv", got)
}

func TestResolver_Resolve_Errors(t *testing.T) {
	t.Run("exists error is propagated", func(t *testing.T) {
		ctx := context.Background()
		storage := new(SpyStorage)
		storageErr := errors.New("access denied")
		storage.On("Exists", ctx, "raw", lakepath.KindDirectory).Return(false, storageErr)

		_, err := lakepath.NewResolver(storage).Resolve(ctx, "raw", lakepath.KindDirectory)
		assert.ErrorIs(t, err, storageErr)
		storage.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("list error is propagated", func(t *testing.T) {
		ctx := context.Background()
		storage := new(SpyStorage)
		storageErr := errors.New("timeout")
		storage.On("Exists", ctx, "RAW", lakepath.KindDirectory).Return(false, nil)
		storage.On("List", ctx, "", false).Return([]lakepath.Entry{}, storageErr)

		_, err := lakepath.NewResolver(storage).Resolve(ctx, "RAW", lakepath.KindDirectory)
		assert.ErrorIs(t, err, storageErr)
		assert.NotErrorIs(t, err, lakepath.ErrNotFound)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		storage := new(SpyStorage)

		_, err := lakepath.NewResolver(storage).Resolve(ctx, "raw", lakepath.KindDirectory)
		assert.ErrorIs(t, err, context.Canceled)
		storage.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestResolver_Observer(t *testing.T) {
	ctx := context.Background()
	observer := new(SpyObserver)
	observer.On("ObserveResolution", lakepath.KindDirectory, lakepath.OutcomeRoot).Once()
	observer.On("ObserveResolution", lakepath.KindDirectory, lakepath.OutcomeExact).Once()
	observer.On("ObserveResolution", lakepath.KindDirectory, lakepath.OutcomeCorrected).Once()
	observer.On("ObserveResolution", lakepath.KindDirectory, lakepath.OutcomeAmbiguous).Once()
	observer.On("ObserveResolution", lakepath.KindFile, lakepath.OutcomeNotFound).Once()

	resolver := lakepath.NewResolver(newLakeFixture(), lakepath.WithObserver(observer))

	_, _ = resolver.Resolve(ctx, "/", lakepath.KindDirectory)
	_, _ = resolver.Resolve(ctx, "raw/api", lakepath.KindDirectory)
	_, _ = resolver.Resolve(ctx, "RAW/DATABASE", lakepath.KindDirectory)
	_, _ = resolver.Resolve(ctx, "raw/Api", lakepath.KindDirectory)
	_, _ = resolver.Resolve(ctx, "raw/nothing.csv", lakepath.KindFile)

	observer.AssertExpectations(t)
}
