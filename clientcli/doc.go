// Package clientcli provides a client library for lakepath servers.
//
// It wraps the checkpathcase and getitems operations, authenticating with an
// api key sent in the x-functions-key header. The package includes
// profile-based configuration for managing connections to multiple servers.
//
// # Basic Usage
//
// Create a client and resolve a path:
//
//	cfg := &clientcli.Config{
//		Endpoint:  "http://localhost:7071",
//		APIKey:    "your-api-key",
//		Container: "raw",
//	}
//
//	client, err := clientcli.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := client.CheckPath(ctx, clientcli.CheckPathOptions{
//		Path: "database/jan/extract_1.csv",
//	})
//
// List the files under a directory, largest first:
//
//	items, err := client.GetItems(ctx, clientcli.GetItemsOptions{
//		Directory:   "database",
//		Recursive:   true,
//		OrderBy:     "ContentLength",
//		OrderByDesc: true,
//		Filters: []clientcli.FilterOption{
//			{Property: "IsDirectory", Expression: "eq:false"},
//		},
//	})
//
// # Profile Configuration
//
// Use profiles to manage multiple server configurations:
//
//	configFile, err := clientcli.LoadConfigFile(clientcli.DefaultConfigPath())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	profile, err := configFile.GetProfile("production")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := clientcli.New(clientcli.ConfigFromProfile(profile))
//
// # Output Formatting
//
// Use formatters for human-readable or JSON output:
//
//	formatter := clientcli.NewFormatter(jsonOutput, quiet)
//	formatter.FormatItems(os.Stdout, items)
package clientcli
