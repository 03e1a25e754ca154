package metrics

import (
	"context"
	"time"

	"github.com/sagarc03/lakepath"
)

type instrumentedStorage struct {
	next    lakepath.Storage
	metrics *Metrics
}

// InstrumentStorage wraps s so every call is counted and timed. With a nil
// m, s is returned unchanged.
func InstrumentStorage(s lakepath.Storage, m *Metrics) lakepath.Storage {
	if m == nil {
		return s
	}
	return &instrumentedStorage{next: s, metrics: m}
}

func (s *instrumentedStorage) Exists(ctx context.Context, path string, kind lakepath.PathKind) (bool, error) {
	started := time.Now()
	ok, err := s.next.Exists(ctx, path, kind)
	s.metrics.observeStorageCall("exists", started, err)
	return ok, err
}

func (s *instrumentedStorage) List(ctx context.Context, base string, recursive bool) ([]lakepath.Entry, error) {
	started := time.Now()
	op := "list"
	if recursive {
		op = "list_recursive"
	}
	entries, err := s.next.List(ctx, base, recursive)
	s.metrics.observeStorageCall(op, started, err)
	return entries, err
}

type instrumentedConnector struct {
	next    lakepath.Connector
	metrics *Metrics
}

// InstrumentConnector wraps c so that every Storage it opens is
// instrumented.
func InstrumentConnector(c lakepath.Connector, m *Metrics) lakepath.Connector {
	if m == nil {
		return c
	}
	return &instrumentedConnector{next: c, metrics: m}
}

func (c *instrumentedConnector) Connect(ctx context.Context, conn lakepath.Connection) (lakepath.Storage, error) {
	started := time.Now()
	s, err := c.next.Connect(ctx, conn)
	c.metrics.observeStorageCall("connect", started, err)
	if err != nil {
		return nil, err
	}
	return InstrumentStorage(s, c.metrics), nil
}

func (c *instrumentedConnector) BaseURL(conn lakepath.Connection) string {
	return c.next.BaseURL(conn)
}
