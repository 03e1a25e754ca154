package main

import (
	"os"

	"github.com/sagarc03/lakepath/clientcli"
	"github.com/spf13/cobra"
)

var (
	version = "dev"

	cfgFile    string
	profile    string
	endpoint   string
	apiKey     string
	account    string
	container  string
	jsonOutput bool
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:     "lakepath-cli",
	Version: version,
	Short:   "Client for the lakepath data lake resolver",
	Long: `lakepath-cli - Client for a lakepath server

Resolve the real casing of data lake paths and list the items under a
directory with server side filtering, ordering and limits.

Settings are merged in this order, later wins:
  1. profile from the config file (--profile or LAKEPATH_PROFILE)
  2. environment: LAKEPATH_ENDPOINT, LAKEPATH_API_KEY, LAKEPATH_ACCOUNT, LAKEPATH_CONTAINER
  3. flags`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.lakepath/config.yaml, env: LAKEPATH_CLI_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "profile name (env: LAKEPATH_PROFILE)")
	rootCmd.PersistentFlags().StringVarP(&endpoint, "endpoint", "e", "", "server URL (default: "+clientcli.DefaultEndpoint+")")
	rootCmd.PersistentFlags().StringVarP(&apiKey, "api-key", "k", "", "api key sent as x-functions-key")
	rootCmd.PersistentFlags().StringVar(&account, "account", "", "storage account")
	rootCmd.PersistentFlags().StringVar(&container, "container", "", "storage container")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(configureCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// getConfigPath returns the config file path from the flag, the environment
// or the default location.
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if p := clientcli.ConfigPathFromEnv(); p != "" {
		return p
	}
	return clientcli.DefaultConfigPath()
}

// buildConfig merges the selected profile, env vars and flags (flags take precedence).
func buildConfig() (*clientcli.Config, error) {
	var configs []*clientcli.Config

	name := profile
	if name == "" {
		name = clientcli.ProfileFromEnv()
	}

	if path := getConfigPath(); path != "" {
		file, err := clientcli.LoadConfigFile(path)
		switch {
		case err == nil:
			p, profileErr := file.GetProfile(name)
			if profileErr != nil && name != "" {
				return nil, profileErr
			}
			configs = append(configs, clientcli.ConfigFromProfile(p))
		case cfgFile != "" || name != "":
			// Only error if the user asked for a file or profile explicitly.
			return nil, err
		}
	}

	configs = append(configs,
		clientcli.ConfigFromEnv(),
		&clientcli.Config{
			Endpoint:  endpoint,
			APIKey:    apiKey,
			Account:   account,
			Container: container,
		},
	)

	return clientcli.MergeConfig(configs...), nil
}

// getFormatter returns the appropriate formatter based on flags.
func getFormatter() clientcli.Formatter {
	return clientcli.NewFormatter(jsonOutput, quiet)
}

// getClient creates and returns a configured client.
func getClient() (*clientcli.Client, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, err
	}
	return clientcli.New(cfg)
}

// reportError prints err with the selected formatter and returns it.
func reportError(err error) error {
	_ = getFormatter().FormatError(os.Stderr, err)
	return err
}
