package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/lakepath/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "lakepath",
	Short:   "Case-insensitive data lake path resolver",
	Long: `lakepath resolves data lake paths whose letter case may not match
the stored casing, and lists, filters, orders and limits the items below
a directory. It serves both operations over HTTP or AWS Lambda.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFiles, _ := cmd.Flags().GetStringArray("config")

		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return err
		}

		setupLogging(cfg.Log)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringArray("config", nil, "config file path, repeatable; later files override earlier ones (default: ./config.yaml)")
	flags.String("log-level", "", "log level: debug, info, warn, error (default: info, env: LAKEPATH_LOG_LEVEL)")
	flags.String("log-format", "", "log format: text, json (default: text, env: LAKEPATH_LOG_FORMAT)")
	flags.String("storage-type", "", "storage backend: filesystem, s3, catalog (default: filesystem, env: LAKEPATH_STORAGE_TYPE)")
	flags.String("storage-path", "", "filesystem lake root (default: ./lake, env: LAKEPATH_STORAGE_FILESYSTEM_PATH)")
	flags.String("db-type", "", "catalog database type: sqlite, postgres (default: sqlite, env: LAKEPATH_DATABASE_TYPE)")
	flags.String("db-dsn", "", "catalog database connection string (default: lakepath.db, env: LAKEPATH_DATABASE_DSN)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
