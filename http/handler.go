package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/sagarc03/lakepath"
	"github.com/sagarc03/lakepath/metrics"
)

// Service is the per-connection data lake service.
type Service interface {
	CheckPath(ctx context.Context, path string) (string, error)
	GetItems(ctx context.Context, q lakepath.ListItemsQuery) (lakepath.ItemsResult, error)
}

// ServiceFactory builds a Service over a connected Storage.
type ServiceFactory func(storage lakepath.Storage, baseURL string) (Service, error)

// SecretLookup resolves secrets passed by name.
type SecretLookup interface {
	Lookup(name string) (string, error)
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type HandlerConfig struct {
	// KeyVerifier enables API key checks when set.
	KeyVerifier KeyVerifier
	// Secrets resolves ...SecretName parameters. Named secrets are rejected
	// when nil.
	Secrets     SecretLookup
	CORS        CORSConfig
	Metrics     *metrics.Metrics
	MetricsPath string
	DebugInfo   DebugInfo
	// NewService defaults to lakepath.NewService.
	NewService ServiceFactory
}

// Handler provides the data lake HTTP endpoints.
type Handler struct {
	config     HandlerConfig
	connector  lakepath.Connector
	newService ServiceFactory
}

// NewHandler creates a new Handler with the given configuration and connector.
func NewHandler(config *HandlerConfig, connector lakepath.Connector) *Handler {
	h := &Handler{
		config:     *config,
		connector:  metrics.InstrumentConnector(connector, config.Metrics),
		newService: config.NewService,
	}
	if h.newService == nil {
		h.newService = h.defaultService
	}
	return h
}

func (h *Handler) defaultService(storage lakepath.Storage, baseURL string) (Service, error) {
	cfg := lakepath.ServiceConfig{BaseURL: baseURL}
	if h.config.Metrics != nil {
		cfg.Observer = h.config.Metrics
	}
	return lakepath.NewService(storage, cfg)
}

// Router returns an http.Handler with every route configured. Both datalake
// operations answer GET and POST, under lower-case and legacy mixed-case
// paths.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(InvocationMiddleware)
	r.Use(h.config.Metrics.Middleware)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_ = WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if h.config.Metrics != nil {
		path := h.config.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, h.config.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(h.config.KeyVerifier))
		for _, p := range []string{"/datalake/checkpathcase", "/DataLake/CheckPathCase"} {
			r.Get(p, h.handleCheckPath)
			r.Post(p, h.handleCheckPath)
		}
		for _, p := range []string{"/datalake/getitems", "/DataLake/GetItems"} {
			r.Get(p, h.handleGetItems)
			r.Post(p, h.handleGetItems)
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, InvocationID(r.Context()), "Not found")
	})

	return r
}

func (h *Handler) handleCheckPath(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := InvocationID(ctx)

	rp, err := newRequestParams(r)
	if err != nil {
		HandleError(w, id, err)
		return
	}
	params := rp.checkPath()
	if params.Path == nil {
		slog.Error("request error", "invocation_id", id, "error", "missing path")
		WriteError(w, http.StatusBadRequest, id, "Parameter 'path' is required.")
		return
	}

	svc, baseURL, err := h.connect(ctx, params.ConnectionParams)
	if err != nil {
		HandleError(w, id, err)
		return
	}

	echo := params
	echo.ConnectionParams = params.ConnectionParams.Redacted()
	base := h.response(id, baseURL, echo)

	validated, err := svc.CheckPath(ctx, *params.Path)
	if errors.Is(err, lakepath.ErrNotFound) {
		slog.Info("path not found", "invocation_id", id, "path", *params.Path)
		base.Error = PathNotFoundMessage
		_ = WriteJSON(w, http.StatusBadRequest, base)
		return
	}
	if err != nil {
		HandleError(w, id, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, CheckPathResponse{Response: base, ValidatedPath: validated})
}

func (h *Handler) handleGetItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := InvocationID(ctx)

	rp, err := newRequestParams(r)
	if err != nil {
		HandleError(w, id, err)
		return
	}
	params := rp.getItems()

	svc, baseURL, err := h.connect(ctx, params.ConnectionParams)
	if err != nil {
		HandleError(w, id, err)
		return
	}

	echo := params
	echo.ConnectionParams = params.ConnectionParams.Redacted()
	base := h.response(id, baseURL, echo)

	result, err := svc.GetItems(ctx, params.Query())
	if errors.Is(err, lakepath.ErrInvalidFilter) {
		slog.Warn("rejected invalid filters", "invocation_id", id, "error", err)
		base.Error = InvalidFiltersMessage
		_ = WriteJSON(w, http.StatusBadRequest, base)
		return
	}
	if err != nil {
		HandleError(w, id, err)
		return
	}

	files := result.Items
	if files == nil {
		files = []lakepath.Item{}
	}
	_ = WriteJSON(w, http.StatusOK, GetItemsResponse{
		Response:          base,
		CorrectedFilePath: result.CorrectedPath,
		FileCount:         len(files),
		Files:             files,
	})
}

func (h *Handler) response(id, baseURL string, params any) Response {
	debug := h.config.DebugInfo
	return Response{
		InvocationID:        id,
		DebugInfo:           &debug,
		StorageContainerURL: baseURL,
		Parameters:          params,
	}
}

// connect builds the connection, opens its storage and wraps it in a Service.
func (h *Handler) connect(ctx context.Context, p ConnectionParams) (Service, string, error) {
	conn, err := h.connection(p)
	if err != nil {
		return nil, "", err
	}

	storage, err := h.connector.Connect(ctx, conn)
	if err != nil {
		return nil, "", fmt.Errorf("connect: %w", err)
	}

	baseURL := h.connector.BaseURL(conn)
	svc, err := h.newService(storage, baseURL)
	if err != nil {
		return nil, "", fmt.Errorf("connect: %w", err)
	}
	return svc, baseURL, nil
}

// connection resolves named secrets and picks the auth variant.
func (h *Handler) connection(p ConnectionParams) (lakepath.Connection, error) {
	spSecret, err := h.secret(p.ServicePrincipalClientSecret, p.ServicePrincipalClientSecretName)
	if err != nil {
		return lakepath.Connection{}, err
	}
	sasToken, err := h.secret(p.SasToken, p.SasTokenSecretName)
	if err != nil {
		return lakepath.Connection{}, err
	}
	keySecret, err := h.secret(p.AccountKeySecret, p.AccountKeySecretName)
	if err != nil {
		return lakepath.Connection{}, err
	}

	conn := lakepath.Connection{
		Account:   p.AccountURI,
		Container: p.Container,
		Auth: lakepath.NewAuth(lakepath.AuthParams{
			ServicePrincipalClientID:     p.ServicePrincipalClientID,
			ServicePrincipalClientSecret: spSecret,
			SasToken:                     sasToken,
			AccountKeyID:                 p.AccountKeyID,
			AccountKeySecret:             keySecret,
		}),
	}
	if err := conn.Validate(); err != nil {
		return lakepath.Connection{}, err
	}
	return conn, nil
}

// secret returns value when set and otherwise looks name up.
func (h *Handler) secret(value, name string) (string, error) {
	if value != "" || name == "" {
		return value, nil
	}
	if h.config.Secrets == nil {
		return "", fmt.Errorf("%w: secret '%s' cannot be resolved, no secret store is configured", lakepath.ErrInvalidInput, name)
	}
	v, err := h.config.Secrets.Lookup(name)
	if err != nil {
		return "", fmt.Errorf("%w: secret '%s' could not be found", lakepath.ErrInvalidInput, name)
	}
	return v, nil
}
