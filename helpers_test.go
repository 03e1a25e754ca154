package lakepath_test

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sagarc03/lakepath"
)

type SpyStorage struct {
	mock.Mock
}

func (s *SpyStorage) Exists(ctx context.Context, path string, kind lakepath.PathKind) (bool, error) {
	args := s.Called(ctx, path, kind)
	return args.Bool(0), args.Error(1)
}

func (s *SpyStorage) List(ctx context.Context, base string, recursive bool) ([]lakepath.Entry, error) {
	args := s.Called(ctx, base, recursive)
	return args.Get(0).([]lakepath.Entry), args.Error(1)
}

type SpyObserver struct {
	mock.Mock
}

func (s *SpyObserver) ObserveResolution(kind lakepath.PathKind, outcome string) {
	s.Called(kind, outcome)
}

func (s *SpyObserver) ObserveInvalidFilters(n int) {
	s.Called(n)
}

// memStorage is an in-memory data lake. Parent directories of every file are
// created implicitly, with the earliest modification time of their content.
type memStorage struct {
	mu        sync.Mutex
	entries   map[string]lakepath.Entry
	listCalls int
}

func newMemStorage(files ...lakepath.Entry) *memStorage {
	m := &memStorage{entries: make(map[string]lakepath.Entry)}
	for _, f := range files {
		m.entries[f.Path] = f
		dir, _ := lakepath.SplitPath(f.Path)
		for dir != "" {
			d, ok := m.entries[dir]
			if !ok || d.LastModified.After(f.LastModified) {
				m.entries[dir] = lakepath.Entry{Path: dir, IsDirectory: true, LastModified: f.LastModified}
			}
			dir, _ = lakepath.SplitPath(dir)
		}
	}
	return m
}

func (m *memStorage) Exists(_ context.Context, path string, kind lakepath.PathKind) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[path]
	return ok && e.IsDirectory == (kind == lakepath.KindDirectory), nil
}

func (m *memStorage) List(_ context.Context, base string, recursive bool) ([]lakepath.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++

	prefix := ""
	if base != "" {
		prefix = base + "/"
	}

	var out []lakepath.Entry
	for p, e := range m.entries {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		if !recursive && strings.Contains(p[len(prefix):], "/") {
			continue
		}
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b lakepath.Entry) int { return strings.Compare(a.Path, b.Path) })
	return out, nil
}

func (m *memStorage) ListCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

func day(month time.Month, d, hour int) time.Time {
	return time.Date(2021, month, d, hour, 0, 0, 0, time.UTC)
}

// newLakeFixture builds the data lake used across the service tests:
//
//	raw/database/jan/extract_1.csv
//	raw/database/feb/extract_2.csv
//	raw/database/feb/EXTRACT_2.csv
//	raw/api/jan/delta_extract_{1..5}.json   (10..50 bytes)
//	raw/api/feb/delta_extract_3.json
//	raw/API/jan/delta_extract_1.json
func newLakeFixture() *memStorage {
	return newMemStorage(
		lakepath.Entry{Path: "raw/database/jan/extract_1.csv", ContentLength: 100, LastModified: day(time.January, 1, 10)},
		lakepath.Entry{Path: "raw/database/feb/extract_2.csv", ContentLength: 200, LastModified: day(time.February, 1, 10)},
		lakepath.Entry{Path: "raw/database/feb/EXTRACT_2.csv", ContentLength: 210, LastModified: day(time.February, 1, 11)},
		lakepath.Entry{Path: "raw/api/jan/delta_extract_1.json", ContentLength: 10, LastModified: day(time.January, 1, 12)},
		lakepath.Entry{Path: "raw/api/jan/delta_extract_2.json", ContentLength: 20, LastModified: day(time.January, 2, 12)},
		lakepath.Entry{Path: "raw/api/jan/delta_extract_3.json", ContentLength: 30, LastModified: day(time.January, 3, 12)},
		lakepath.Entry{Path: "raw/api/jan/delta_extract_4.json", ContentLength: 40, LastModified: day(time.January, 4, 12)},
		lakepath.Entry{Path: "raw/api/jan/delta_extract_5.json", ContentLength: 50, LastModified: day(time.January, 5, 12)},
		lakepath.Entry{Path: "raw/api/feb/delta_extract_3.json", ContentLength: 60, LastModified: day(time.February, 3, 12)},
		lakepath.Entry{Path: "raw/API/jan/delta_extract_1.json", ContentLength: 15, LastModified: day(time.January, 1, 9)},
	)
}

func itemsOf(entries ...lakepath.Entry) []lakepath.Item {
	items := make([]lakepath.Item, len(entries))
	for i, e := range entries {
		items[i] = lakepath.NewItem(e, "https://lake.example.com/container")
	}
	return items
}

func lengths(items []lakepath.Item) []int64 {
	out := make([]int64, len(items))
	for i, item := range items {
		out[i] = item.ContentLength
	}
	return out
}

func names(items []lakepath.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}
