package main

import (
	"fmt"

	"github.com/japaniel/latindict/pkg/legacy"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Move the legacy flat-store dictionary into the database",
	Long: `Migrate imports the dictionary kept under the legacy key and deletes the
key afterwards. Every command already does this on startup; running it again
is a no-op.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := store.MigrateLegacyIfPresent(cmd.Context(), legacy.NewFileStore(cfg.Legacy.Path), cfg.Legacy.Key)
		if err != nil {
			return err
		}
		total := migrated + n
		if total == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Nothing to migrate in %s\n", cfg.Legacy.Path)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d entries from %s\n", total, cfg.Legacy.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
