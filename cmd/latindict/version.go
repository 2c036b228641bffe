package main

import (
	"fmt"

	"github.com/japaniel/latindict/pkg/db"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	// No database needed.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "latindict %s (schema v%d)\n", version, db.SchemaVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
