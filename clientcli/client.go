package clientcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 30 * time.Second

const (
	checkPathRoute = "/datalake/checkpathcase"
	getItemsRoute  = "/datalake/getitems"
	healthRoute    = "/healthz"

	functionsKeyHeader = "x-functions-key"

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 64 << 20
)

// Client performs operations against a lakepath server.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a new Client with the given config and options.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}

	cfg = cfg.WithDefaults()

	c := &Client{
		config: &Config{
			Endpoint:  strings.TrimSuffix(cfg.Endpoint, "/"),
			APIKey:    cfg.APIKey,
			Account:   cfg.Account,
			Container: cfg.Container,
		},
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Endpoint returns the server URL the client talks to.
func (c *Client) Endpoint() string {
	return c.config.Endpoint
}

// CheckPath asks the server for the correctly cased form of a path.
func (c *Client) CheckPath(ctx context.Context, opts CheckPathOptions) (*CheckPathResult, error) {
	path := strings.Trim(opts.Path, "/")
	if path == "" {
		return nil, fmt.Errorf("check path: %w", ErrEmptyPath)
	}

	query, err := c.connectionQuery(opts.Connection)
	if err != nil {
		return nil, fmt.Errorf("check path: %w", err)
	}
	query.Set("path", path)

	var resp serverResponse
	if err := c.get(ctx, checkPathRoute, query, &resp); err != nil {
		return nil, err
	}

	return &CheckPathResult{
		InvocationID:        resp.InvocationID,
		StorageContainerURL: resp.StorageContainerURL,
		ValidatedPath:       resp.ValidatedPath,
	}, nil
}

// GetItems lists the items under a directory with the server applying the
// filters, ordering and limit.
func (c *Client) GetItems(ctx context.Context, opts GetItemsOptions) (*ItemsResult, error) {
	query, err := c.connectionQuery(opts.Connection)
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}

	directory := strings.Trim(opts.Directory, "/")
	if directory == "" {
		directory = "/"
	}
	query.Set("directory", directory)
	query.Set("recursive", strconv.FormatBool(opts.Recursive))
	query.Set("ignoreDirectoryCase", strconv.FormatBool(!opts.CaseSensitive))
	if opts.OrderBy != "" {
		query.Set("orderBy", opts.OrderBy)
		query.Set("orderByDesc", strconv.FormatBool(opts.OrderByDesc))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	for _, f := range opts.Filters {
		query.Add("filter["+f.Property+"]", f.Expression)
	}

	var resp serverResponse
	if err := c.get(ctx, getItemsRoute, query, &resp); err != nil {
		return nil, err
	}

	return &ItemsResult{
		InvocationID:        resp.InvocationID,
		StorageContainerURL: resp.StorageContainerURL,
		CorrectedPath:       resp.CorrectedFilePath,
		Items:               resp.Files,
	}, nil
}

// Ping checks that the server answers its health route.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.Endpoint+healthRoute, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		return parseServerError(resp.StatusCode, body)
	}
	return nil
}

// connectionQuery merges the per-call connection with the configured
// defaults and encodes it as query parameters.
func (c *Client) connectionQuery(conn Connection) (url.Values, error) {
	if conn.Account == "" {
		conn.Account = c.config.Account
	}
	if conn.Container == "" {
		conn.Container = c.config.Container
	}
	if conn.Container == "" {
		return nil, ErrContainerRequired
	}

	query := url.Values{}
	set := func(key, value string) {
		if value != "" {
			query.Set(key, value)
		}
	}
	set("accountUri", conn.Account)
	set("container", conn.Container)
	set("servicePrincipalClientId", conn.ServicePrincipalClientID)
	set("servicePrincipalClientSecretName", conn.ServicePrincipalClientSecretName)
	set("sasTokenSecretName", conn.SasTokenSecretName)
	set("accountKeyId", conn.AccountKeyID)
	set("accountKeySecretName", conn.AccountKeySecretName)
	return query, nil
}

func (c *Client) get(ctx context.Context, route string, query url.Values, out *serverResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.Endpoint+route+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set(functionsKeyHeader, c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return parseServerError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// parseServerError extracts the error message and invocation id from a
// server response. Bodies that are not JSON are kept verbatim.
func parseServerError(statusCode int, body []byte) error {
	apiErr := &APIError{StatusCode: statusCode, Body: string(body)}

	var resp serverResponse
	if err := json.Unmarshal(body, &resp); err == nil {
		apiErr.Message = resp.Error
		apiErr.InvocationID = resp.InvocationID
	}
	return apiErr
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode   int
	Message      string
	InvocationID string
	Body         string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = strings.TrimSpace(e.Body)
	}
	if e.InvocationID != "" {
		return fmt.Sprintf("server error: %d - %s (invocation %s)", e.StatusCode, msg, e.InvocationID)
	}
	return "server error: " + strconv.Itoa(e.StatusCode) + " - " + msg
}

// Is reports whether target matches this error.
// It matches if target is an *APIError with the same StatusCode.
func (e *APIError) Is(target error) bool {
	var t *APIError
	if !errors.As(target, &t) {
		return false
	}
	return t.StatusCode == e.StatusCode
}

// Sentinel errors for common API error conditions.
// Use errors.Is() to check for these conditions.
var (
	// ErrBadRequest is returned for rejected parameters and for paths that
	// do not resolve (400).
	ErrBadRequest = &APIError{StatusCode: http.StatusBadRequest}

	// ErrUnauthorized is returned when the api key is missing or wrong (401).
	ErrUnauthorized = &APIError{StatusCode: http.StatusUnauthorized}

	// ErrNotFound is returned for unknown routes (404).
	ErrNotFound = &APIError{StatusCode: http.StatusNotFound}
)
