package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"subseek/internal/config"
	"subseek/internal/corpus"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export the corpus as CSV",
		Long:  "Export every record as CSV to the given path, or to stdout when no path is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *corpus.Store) error {
				out := cmd.OutOrStdout()
				if len(args) == 0 {
					_, err := store.ExportCSV(cmd.Context(), out)
					return err
				}

				path, err := config.ExpandPath(args[0])
				if err != nil {
					return err
				}
				file, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}

				count, err := store.ExportCSV(cmd.Context(), file)
				if closeErr := file.Close(); err == nil {
					err = closeErr
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Exported %d records to %s\n", count, path)
				return nil
			})
		},
	}
}
