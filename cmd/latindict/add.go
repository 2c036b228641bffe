package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add WORD DEFINITION",
	Short: "Add a word and its definition",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := newSession().Submit(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added #%d %s: %s\n", entry.ID, entry.Word, entry.Definition)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
