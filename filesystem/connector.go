package filesystem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/sagarc03/lakepath"
)

// Connector opens containers below a lake root directory. Credentials are
// not checked; access is governed by the process file permissions.
type Connector struct {
	root    *os.Root
	baseURL string
}

// NewConnector opens the lake root. Close must be called to release it.
func NewConnector(rootPath, baseURL string) (*Connector, error) {
	root, err := os.OpenRoot(rootPath)
	if err != nil {
		return nil, fmt.Errorf("open lake root '%s': %w", rootPath, err)
	}
	return &Connector{root: root, baseURL: baseURL}, nil
}

// Connect returns a Store for the connection container.
func (c *Connector) Connect(ctx context.Context, conn lakepath.Connection) (lakepath.Storage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := conn.Validate(); err != nil {
		return nil, err
	}
	if kind := conn.AuthKindOf(); kind != lakepath.AuthAmbient {
		slog.Debug("filesystem backend ignores credentials", "auth", kind)
	}

	info, err := c.root.Stat(conn.Container)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("connect container '%s': %w", conn.Container, lakepath.ErrNotFound)
		}
		return nil, fmt.Errorf("connect container '%s': %w", conn.Container, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("connect container '%s': %w", conn.Container, lakepath.ErrNotFound)
	}
	return newContainerStore(c.root, conn.Container), nil
}

// BaseURL returns base_url/container.
func (c *Connector) BaseURL(conn lakepath.Connection) string {
	return lakepath.JoinURL(c.baseURL, conn.Container)
}

// Close releases the lake root.
func (c *Connector) Close() error {
	return c.root.Close()
}
