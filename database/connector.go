package database

import (
	"context"
	"fmt"

	"github.com/sagarc03/lakepath"
)

// Connector serves connections from an indexed catalog. Credentials are not
// checked; the catalog only holds what an earlier crawl was allowed to see.
type Connector struct {
	catalog lakepath.Catalog
	baseURL string
}

// NewConnector creates a Connector whose item URLs start with baseURL.
func NewConnector(catalog lakepath.Catalog, baseURL string) *Connector {
	return &Connector{catalog: catalog, baseURL: baseURL}
}

// Connect returns the Storage view of the connection container. A container
// that was never indexed is not found.
func (c *Connector) Connect(ctx context.Context, conn lakepath.Connection) (lakepath.Storage, error) {
	if err := conn.Validate(); err != nil {
		return nil, err
	}

	ok, err := c.catalog.Indexed(ctx, conn.Container)
	if err != nil {
		return nil, fmt.Errorf("connect '%s': %w", conn.Container, err)
	}
	if !ok {
		return nil, fmt.Errorf("connect: container '%s' is not indexed: %w", conn.Container, lakepath.ErrNotFound)
	}

	return c.catalog.Container(conn.Container), nil
}

// BaseURL returns the configured base URL joined with the container.
func (c *Connector) BaseURL(conn lakepath.Connection) string {
	return lakepath.JoinURL(c.baseURL, conn.Container)
}
