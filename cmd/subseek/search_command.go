package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subseek/internal/config"
	"subseek/internal/corpus"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var exact bool
	var limit int
	var minDuration float64
	var maxDuration float64
	var videoIDs []string
	var excludeShort bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search caption text across the corpus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := corpus.Query{
				Term:  args[0],
				Exact: exact,
				Limit: limit,
				Filters: corpus.Filters{
					VideoIDs:     videoIDs,
					ExcludeShort: excludeShort,
				},
			}
			if cmd.Flags().Changed("min-duration") {
				query.Filters.MinDuration = &minDuration
			}
			if cmd.Flags().Changed("max-duration") {
				query.Filters.MaxDuration = &maxDuration
			}

			return ctx.withStore(func(cfg *config.Config, store *corpus.Store) error {
				if query.Limit <= 0 {
					if query.Filters.Empty() {
						query.Limit = cfg.Search.DefaultLimit
					} else {
						query.Limit = cfg.Search.FilteredLimit
					}
				}

				results, err := store.Search(cmd.Context(), query)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if asJSON {
					return printJSON(out, searchResultsJSON(results))
				}
				if len(results) == 0 {
					fmt.Fprintln(out, "No matches.")
					return nil
				}

				columns := []tableColumn{
					{title: "Video"},
					{title: "Start", align: alignRight},
					{title: "Text", maxWidth: 60},
					{title: "Replay"},
				}
				rows := make([][]string, 0, len(results))
				for _, result := range results {
					rows = append(rows, []string{
						result.VideoID,
						formatTime(result.StartTime),
						result.Text,
						result.ReplayReference,
					})
				}
				fmt.Fprintln(out, renderTable(columns, rows))
				fmt.Fprintf(out, "%d result(s)\n", len(results))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&exact, "exact", false, "Match the full caption text instead of a substring")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of results")
	cmd.Flags().Float64Var(&minDuration, "min-duration", 0, "Minimum caption duration in seconds")
	cmd.Flags().Float64Var(&maxDuration, "max-duration", 0, "Maximum caption duration in seconds")
	cmd.Flags().StringSliceVar(&videoIDs, "video-id", nil, "Restrict results to the given video ids")
	cmd.Flags().BoolVar(&excludeShort, "exclude-short", false, "Drop captions with five or fewer characters")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit results as JSON")
	return cmd
}
