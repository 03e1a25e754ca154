package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/lakepath"
	lakehttp "github.com/sagarc03/lakepath/http"
)

const containerURL = "https://lake.example.com/lake"

// MockService is a mock implementation of http.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CheckPath(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

func (m *MockService) GetItems(ctx context.Context, q lakepath.ListItemsQuery) (lakepath.ItemsResult, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(lakepath.ItemsResult), args.Error(1)
}

// MockConnector is a mock implementation of lakepath.Connector
type MockConnector struct {
	mock.Mock
}

func (m *MockConnector) Connect(ctx context.Context, conn lakepath.Connection) (lakepath.Storage, error) {
	args := m.Called(ctx, conn)
	s, _ := args.Get(0).(lakepath.Storage)
	return s, args.Error(1)
}

func (m *MockConnector) BaseURL(conn lakepath.Connection) string {
	return m.Called(conn).String(0)
}

type nopStorage struct{}

func (nopStorage) Exists(context.Context, string, lakepath.PathKind) (bool, error) { return false, nil }
func (nopStorage) List(context.Context, string, bool) ([]lakepath.Entry, error)    { return nil, nil }

// newTestHandler wires a handler whose every connection yields service.
func newTestHandler(t *testing.T, cfg *lakehttp.HandlerConfig, service *MockService) (*lakehttp.Handler, *MockConnector) {
	t.Helper()

	connector := new(MockConnector)
	connector.On("Connect", mock.Anything, mock.Anything).Return(nopStorage{}, nil).Maybe()
	connector.On("BaseURL", mock.Anything).Return(containerURL).Maybe()

	if cfg == nil {
		cfg = &lakehttp.HandlerConfig{}
	}
	cfg.DebugInfo = lakehttp.DebugInfo{Name: "lakepath", Version: "test", GoVersion: "go"}
	cfg.NewService = func(storage lakepath.Storage, baseURL string) (lakehttp.Service, error) {
		require.Equal(t, containerURL, baseURL)
		return service, nil
	}

	return lakehttp.NewHandler(cfg, connector), connector
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}
