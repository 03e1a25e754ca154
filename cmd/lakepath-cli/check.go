package main

import (
	"os"

	"github.com/sagarc03/lakepath/clientcli"
	"github.com/spf13/cobra"
)

var checkConn clientcli.Connection

var checkCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Resolve the real casing of a path",
	Long: `Resolve a file or directory path case-insensitively and print the path
as it is actually stored.

Examples:
  lakepath-cli check --container raw database/JAN/extract_1.csv
  lakepath-cli check -q raw/api/jan`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	addConnectionFlags(checkCmd, &checkConn)
}

func runCheck(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	result, err := client.CheckPath(cmd.Context(), clientcli.CheckPathOptions{
		Connection: checkConn,
		Path:       args[0],
	})
	if err != nil {
		return reportError(err)
	}

	return getFormatter().FormatCheckPath(os.Stdout, result)
}

// addConnectionFlags registers the secret-name flags shared by the data
// lake commands.
func addConnectionFlags(cmd *cobra.Command, conn *clientcli.Connection) {
	cmd.Flags().StringVar(&conn.ServicePrincipalClientID, "sp-client-id", "", "service principal client id")
	cmd.Flags().StringVar(&conn.ServicePrincipalClientSecretName, "sp-secret-name", "", "name of the server-side service principal secret")
	cmd.Flags().StringVar(&conn.SasTokenSecretName, "sas-secret-name", "", "name of the server-side SAS token secret")
	cmd.Flags().StringVar(&conn.AccountKeyID, "account-key-id", "", "account key id")
	cmd.Flags().StringVar(&conn.AccountKeySecretName, "account-key-secret-name", "", "name of the server-side account key secret")
}
