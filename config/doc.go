// Package config provides configuration loading and validation for lakepath.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (LAKEPATH_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// All config keys map to environment variables with LAKEPATH_ prefix:
//   - server.port → LAKEPATH_SERVER_PORT
//   - storage.type → LAKEPATH_STORAGE_TYPE
//   - auth.enabled → LAKEPATH_AUTH_ENABLED
//
// # Configuration Structure
//
// The Config struct contains:
//   - Server: port and read, write and shutdown timeouts
//   - Storage: backend type (filesystem, s3 or catalog) and its settings
//   - Database: catalog type, DSN, and table names
//   - Auth: API key checks and the key store
//   - Secrets: named connection secrets
//   - CORS: cross-origin resource sharing settings
//   - Metrics: Prometheus endpoint
//   - Log: logging level and format
package config
