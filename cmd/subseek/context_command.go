package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"subseek/internal/config"
	"subseek/internal/corpus"
)

func newContextCommand(ctx *commandContext) *cobra.Command {
	var window float64

	cmd := &cobra.Command{
		Use:   "context <video-id> <time>",
		Short: "Show the captions around a moment in one video",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID := args[0]
			targetTime, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid time %q: expected seconds", args[1])
			}

			return ctx.withStore(func(cfg *config.Config, store *corpus.Store) error {
				if window <= 0 {
					window = float64(cfg.Search.ContextWindowSeconds)
				}

				items, err := store.Context(cmd.Context(), videoID, targetTime, window)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(items) == 0 {
					fmt.Fprintf(out, "No captions within %.0fs of %s in %s.\n", window, formatTime(targetTime), videoID)
					return nil
				}
				for _, item := range items {
					marker := " "
					if item.IsTarget {
						marker = ">"
					}
					fmt.Fprintf(out, "%s [%s] %s\n", marker, formatTime(item.StartTime), item.Text)
				}
				return nil
			})
		},
	}

	cmd.Flags().Float64VarP(&window, "window", "w", 0, "Seconds of context either side of the target time (defaults to search.context_window_seconds)")
	return cmd
}
