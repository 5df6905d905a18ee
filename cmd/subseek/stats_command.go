package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"subseek/internal/config"
	"subseek/internal/corpus"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *corpus.Store) error {
				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if asJSON {
					return printJSON(out, statsJSON(stats))
				}

				fmt.Fprintf(out, "Records:        %d\n", stats.TotalRecords)
				fmt.Fprintf(out, "Videos:         %d\n", stats.UniqueVideos)
				fmt.Fprintf(out, "Total duration: %s\n", formatTime(stats.TotalDurationSeconds))
				if len(stats.TopVideos) == 0 {
					return nil
				}

				fmt.Fprintln(out)
				fmt.Fprintln(out, "Most captioned videos:")
				rows := make([][]string, 0, len(stats.TopVideos))
				for _, vc := range stats.TopVideos {
					rows = append(rows, []string{vc.VideoID, strconv.Itoa(vc.Records)})
				}
				fmt.Fprintln(out, renderTable(videoCountColumns(), rows))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit stats as JSON")
	return cmd
}

func videoCountColumns() []tableColumn {
	return []tableColumn{
		{title: "Video"},
		{title: "Records", align: alignRight},
	}
}

func newVideosCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "videos",
		Short: "List every video in the corpus with its record count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *corpus.Store) error {
				counts, err := store.VideoCounts(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(counts) == 0 {
					fmt.Fprintln(out, "Corpus is empty.")
					return nil
				}
				rows := make([][]string, 0, len(counts))
				for _, vc := range counts {
					rows = append(rows, []string{vc.VideoID, strconv.Itoa(vc.Records)})
				}
				fmt.Fprintln(out, renderTable(videoCountColumns(), rows))
				return nil
			})
		},
	}
}
