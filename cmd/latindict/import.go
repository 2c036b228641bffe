package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/japaniel/latindict/pkg/dictionary"
	"github.com/spf13/cobra"
)

var importURL string

var importCmd = &cobra.Command{
	Use:   "import [FILE|GLOB|-]...",
	Short: "Import entries from JSON exports or saved HTML lists",
	Long: `Import adds every entry found in the given files as new words. Ids in the
input are ignored, so importing an export into the same dictionary duplicates
its entries. Patterns may use ** to match nested directories; "-" reads a JSON
export from stdin. With --url the dictionary is downloaded first.

Files are parsed before anything is written; if one of them is malformed
nothing is imported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && importURL == "" {
			return errors.New("nothing to import: give files or --url")
		}
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		im := dictionary.NewImporter(store, logger)
		im.Workers = cfg.Import.Workers

		var files []string
		for _, a := range args {
			if a != "-" {
				files = append(files, a)
				continue
			}
			text, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			n, err := store.Import(ctx, text)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Imported %d entries from stdin\n", n)
		}

		if len(files) > 0 {
			n, err := im.ImportFiles(ctx, files...)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Imported %d entries from %d pattern(s)\n", n, len(files))
		}

		if importURL != "" {
			n, err := im.ImportURL(ctx, importURL)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Imported %d entries from %s\n", n, importURL)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importURL, "url", "", "Download and import a JSON export or HTML list page")
}
