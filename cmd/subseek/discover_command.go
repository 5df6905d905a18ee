package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"subseek/internal/fetcher"
)

func newDiscoverCommand(ctx *commandContext) *cobra.Command {
	var maxResults int
	var savePath string

	cmd := &cobra.Command{
		Use:   "discover <query>",
		Short: "Search for candidate videos to ingest",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.buildFetcher()
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			candidates, err := client.Discover(cmd.Context(), query, maxResults)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(candidates) == 0 {
				fmt.Fprintln(out, "No videos found.")
				return nil
			}

			rows := make([][]string, 0, len(candidates))
			for _, candidate := range candidates {
				duration := ""
				if candidate.DurationSeconds > 0 {
					duration = formatTime(candidate.DurationSeconds)
				}
				rows = append(rows, []string{
					candidate.VideoID,
					duration,
					candidate.Title,
					candidate.Reference,
				})
			}
			columns := []tableColumn{
				{title: "Video"},
				{title: "Length", align: alignRight},
				{title: "Title", maxWidth: 50},
				{title: "Reference"},
			}
			fmt.Fprintln(out, renderTable(columns, rows))

			if savePath == "" {
				return nil
			}
			if err := appendReferences(savePath, candidates); err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved %d references to %s\n", len(candidates), savePath)
			return nil
		},
	}

	cmd.Flags().IntVarP(&maxResults, "max", "m", 10, "Maximum number of candidates")
	cmd.Flags().StringVar(&savePath, "save", "", "Append discovered references to a file for later ingest")
	return cmd
}

func appendReferences(path string, candidates []fetcher.Candidate) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open reference file: %w", err)
	}
	defer file.Close()

	for _, candidate := range candidates {
		if _, err := fmt.Fprintln(file, candidate.Reference); err != nil {
			return fmt.Errorf("write reference file: %w", err)
		}
	}
	return nil
}
