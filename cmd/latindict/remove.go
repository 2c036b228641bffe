package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove ID",
	Aliases: []string{"delete", "rm"},
	Short:   "Delete a word by id",
	Long:    `Remove deletes the entry with the given id. Unknown ids are ignored.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := newSession().Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed #%d\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
