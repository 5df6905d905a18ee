package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"subseek/internal/api"
	"subseek/internal/config"
	"subseek/internal/corpus"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve corpus queries over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.buildLogger()
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, store *corpus.Store) error {
				addr := bind
				if addr == "" {
					addr = cfg.API.Bind
				}

				runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				return api.NewServer(store, cfg.Search, logger).Run(runCtx, addr)
			})
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (overrides the configured one)")
	return cmd
}
