package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sagarc03/lakepath"
	"github.com/sagarc03/lakepath/config"
	"github.com/sagarc03/lakepath/database"
	"github.com/sagarc03/lakepath/filesystem"
	lakehttp "github.com/sagarc03/lakepath/http"
	"github.com/sagarc03/lakepath/keybackend"
	"github.com/sagarc03/lakepath/metrics"
	"github.com/sagarc03/lakepath/s3store"
)

// openConnector builds the connector for storageType. The returned cleanup
// function releases what the connector holds open.
func openConnector(ctx context.Context, cfg *config.Config, storageType string) (lakepath.Connector, func(), error) {
	switch storageType {
	case config.StorageFilesystem:
		c, err := filesystem.NewConnector(cfg.Storage.Filesystem.Path, cfg.Storage.Filesystem.BaseURL)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("using filesystem storage", "path", cfg.Storage.Filesystem.Path)
		return c, func() { _ = c.Close() }, nil

	case config.StorageS3:
		c, err := s3store.NewConnector(ctx, s3store.Config{
			Region:       cfg.Storage.S3.Region,
			Endpoint:     cfg.Storage.S3.Endpoint,
			UsePathStyle: cfg.Storage.S3.UsePathStyle,
			BaseURL:      cfg.Storage.S3.BaseURL,
		})
		if err != nil {
			return nil, nil, err
		}
		slog.Info("using s3 storage", "region", cfg.Storage.S3.Region, "endpoint", cfg.Storage.S3.Endpoint)
		return c, func() {}, nil

	case config.StorageCatalog:
		db, err := openCatalog(ctx, cfg.Database, false)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("using catalog storage", "type", cfg.Database.Type)
		return database.NewConnector(db.GetCatalog(), cfg.Storage.Catalog.BaseURL), func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}

// openCatalog connects to the catalog database, migrating it first when
// migrate is set, and checks its schema.
func openCatalog(ctx context.Context, cfg database.Config, migrate bool) (database.Database, error) {
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err = db.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if migrate {
		if err = db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	if err = db.Validate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("validate database schema: %w", err)
	}

	return db, nil
}

// newHandler wires the key stores, metrics and CORS settings into the HTTP
// handler.
func newHandler(cfg *config.Config, connector lakepath.Connector) (*lakehttp.Handler, error) {
	secrets, err := keybackend.NewSecretStore(cfg.Secrets)
	if err != nil {
		return nil, fmt.Errorf("load secrets: %w", err)
	}

	handlerConfig := lakehttp.HandlerConfig{
		Secrets:     secrets,
		CORS:        cfg.CORS,
		MetricsPath: cfg.Metrics.Path,
		DebugInfo:   lakehttp.NewDebugInfo("lakepath", version),
	}

	if cfg.Auth.Enabled {
		keys, err := keybackend.NewSecretStore(cfg.Auth.Keys)
		if err != nil {
			return nil, fmt.Errorf("load api keys: %w", err)
		}
		if keys.Len() == 0 {
			return nil, errors.New("auth is enabled but no api keys are configured")
		}
		handlerConfig.KeyVerifier = keys
		slog.Info("api key auth enabled", "keys", keys.Len())
	}

	if cfg.Metrics.Enabled {
		handlerConfig.Metrics = metrics.New(prometheus.NewRegistry())
	}

	return lakehttp.NewHandler(&handlerConfig, connector), nil
}
