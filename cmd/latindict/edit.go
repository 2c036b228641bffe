package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	editWord       string
	editDefinition string
)

var editCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit a word",
	Long: `Edit takes the entry out of the dictionary and re-adds it with the values
given by --word and --definition; omitted flags keep the old value.

Without either flag the entry is removed and its values are printed so they
can be re-added with "latindict add". It is not restored automatically.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		sess := newSession()
		draft, err := sess.BeginEdit(cmd.Context(), id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !cmd.Flags().Changed("word") && !cmd.Flags().Changed("definition") {
			fmt.Fprintf(out, "Removed #%d for editing: %s: %s\n", id, draft.Word, draft.Definition)
			return nil
		}

		word, definition := draft.Word, draft.Definition
		if cmd.Flags().Changed("word") {
			word = editWord
		}
		if cmd.Flags().Changed("definition") {
			definition = editDefinition
		}
		entry, err := sess.Submit(cmd.Context(), word, definition)
		if err != nil {
			return fmt.Errorf("entry #%d was removed but not re-added (%s: %s): %w", id, draft.Word, draft.Definition, err)
		}
		fmt.Fprintf(out, "Replaced #%d with #%d %s: %s\n", id, entry.ID, entry.Word, entry.Definition)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editWord, "word", "", "New word")
	editCmd.Flags().StringVar(&editDefinition, "definition", "", "New definition")
}
