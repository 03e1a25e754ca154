package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagarc03/lakepath"
	"github.com/sagarc03/lakepath/config"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <path>",
	Short: "Resolve the stored casing of a path against the configured backend",
	Args:  cobra.ExactArgs(1),
	Example: `  lakepath resolve RAW/Database/JAN --container lake
  lakepath resolve raw/database/jan/extract_1.csv --container lake --storage-type catalog`,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().String("container", "", "container holding the path (required)")
	resolveCmd.Flags().String("account", "", "account URI or endpoint")
	_ = resolveCmd.MarkFlagRequired("container")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	container, _ := cmd.Flags().GetString("container")
	account, _ := cmd.Flags().GetString("account")

	connector, cleanup, err := openConnector(ctx, cfg, cfg.Storage.Type)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer cleanup()

	conn := lakepath.Connection{Account: account, Container: container}
	storage, err := connector.Connect(ctx, conn)
	if err != nil {
		return err
	}

	svc, err := lakepath.NewService(storage, lakepath.ServiceConfig{BaseURL: connector.BaseURL(conn)})
	if err != nil {
		return err
	}

	resolved, err := svc.CheckPath(ctx, args[0])
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), resolved)
	return nil
}
