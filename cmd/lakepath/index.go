package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagarc03/lakepath"
	"github.com/sagarc03/lakepath/config"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Crawl a container into the catalog database",
	Long: `Crawl one container of a live backend and store its full listing in the
catalog database, so the catalog storage type can serve it. Entries that
disappeared since the previous crawl are removed. The catalog tables are
created when missing.`,
	Example: `  lakepath index --container raw --source filesystem
  lakepath index --container lake-bucket --source s3 --account http://localhost:4566`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().String("container", "", "container to crawl (required)")
	indexCmd.Flags().String("source", "", "backend to crawl: filesystem or s3 (default: storage.type)")
	indexCmd.Flags().String("account", "", "account URI or endpoint passed to the source backend")
	_ = indexCmd.MarkFlagRequired("container")

	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	container, _ := cmd.Flags().GetString("container")
	account, _ := cmd.Flags().GetString("account")
	source, _ := cmd.Flags().GetString("source")
	if source == "" {
		source = cfg.Storage.Type
	}
	if source == config.StorageCatalog {
		return errors.New("index: the source must be a live backend, not the catalog")
	}

	connector, cleanup, err := openConnector(ctx, cfg, source)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer cleanup()

	src, err := connector.Connect(ctx, lakepath.Connection{Account: account, Container: container})
	if err != nil {
		return fmt.Errorf("connect source: %w", err)
	}

	db, err := openCatalog(ctx, cfg.Database, true)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	started := time.Now()
	stats, err := lakepath.Reindex(ctx, src, db.GetCatalog(), container)
	if err != nil {
		return err
	}

	slog.Info("index complete", "container", container, "indexed", stats.Indexed, "pruned", stats.Pruned, "took", time.Since(started))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "indexed %d entries, pruned %d\n", stats.Indexed, stats.Pruned)
	return nil
}
