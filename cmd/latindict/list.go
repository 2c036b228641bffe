package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	listSorted bool
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all words in the dictionary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		words, err := newSession().Render(cmd.Context(), listSorted)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if listJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(words)
		}
		for _, w := range words {
			fmt.Fprintf(out, "%d\t%s: %s\n", w.ID, w.Word, w.Definition)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVarP(&listSorted, "sort", "s", false, "Sort alphabetically by word")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
