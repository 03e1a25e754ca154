package main

import (
	"os"

	"github.com/sagarc03/lakepath/clientcli"
	"github.com/spf13/cobra"
)

var (
	itemsConn          clientcli.Connection
	itemsRecursive     bool
	itemsCaseSensitive bool
	itemsOrderBy       string
	itemsDesc          bool
	itemsLimit         int
	itemsFilters       []string
)

var itemsCmd = &cobra.Command{
	Use:   "items [directory]",
	Short: "List the items under a directory",
	Long: `List the files and directories under a directory. The directory is
resolved case-insensitively unless --case-sensitive is set; when its casing
was corrected the resolved path is printed first.

Filters take the form Property=operator:value where operator is one of
eq, ne, lt, gt, le, ge or like. like accepts * wildcards on string
properties.

Examples:
  lakepath-cli items --container raw
  lakepath-cli items database --recursive --order-by ContentLength --desc --limit 10
  lakepath-cli items database -r -f IsDirectory=eq:false -f "Name=like:extract_*"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runItems,
}

func init() {
	addConnectionFlags(itemsCmd, &itemsConn)
	itemsCmd.Flags().BoolVarP(&itemsRecursive, "recursive", "r", false, "include every descendant")
	itemsCmd.Flags().BoolVar(&itemsCaseSensitive, "case-sensitive", false, "require the exact directory casing")
	itemsCmd.Flags().StringVarP(&itemsOrderBy, "order-by", "o", "", "property to order by")
	itemsCmd.Flags().BoolVar(&itemsDesc, "desc", false, "order descending")
	itemsCmd.Flags().IntVarP(&itemsLimit, "limit", "l", 0, "maximum number of items (0 = no limit)")
	itemsCmd.Flags().StringArrayVarP(&itemsFilters, "filter", "f", nil, "filter as Property=operator:value (repeatable)")
}

func runItems(cmd *cobra.Command, args []string) error {
	directory := ""
	if len(args) > 0 {
		directory = args[0]
	}

	filters := make([]clientcli.FilterOption, 0, len(itemsFilters))
	for _, raw := range itemsFilters {
		f, err := clientcli.ParseFilter(raw)
		if err != nil {
			return err
		}
		filters = append(filters, f)
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	result, err := client.GetItems(cmd.Context(), clientcli.GetItemsOptions{
		Connection:    itemsConn,
		Directory:     directory,
		Recursive:     itemsRecursive,
		CaseSensitive: itemsCaseSensitive,
		OrderBy:       itemsOrderBy,
		OrderByDesc:   itemsDesc,
		Limit:         itemsLimit,
		Filters:       filters,
	})
	if err != nil {
		return reportError(err)
	}

	return getFormatter().FormatItems(os.Stdout, result)
}
