package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vaultctl",
	Short: "Vaultis server administration tool",
	Long: `vaultctl runs maintenance tasks against a Vaultis server database.

It reads the same environment configuration as the server itself
(DATABASE_URI, VAULT_SECRET and friends), so it can be run on the
server host or anywhere with database access.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}
