package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"subseek/internal/corpus"
	"subseek/internal/ingest"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var fromFile string
	var force bool
	var workers int

	cmd := &cobra.Command{
		Use:   "ingest [reference...]",
		Short: "Fetch subtitle tracks and add them to the corpus",
		Long: `Fetch the timed-text track for each video reference and store its
caption lines. Videos that already have records are skipped unless
--force is given. Failures on individual videos never abort the batch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			references := append([]string(nil), args...)
			if fromFile != "" {
				fileRefs, err := ingest.ReadReferenceFile(fromFile)
				if err != nil {
					return err
				}
				references = append(references, fileRefs...)
			}
			if len(references) == 0 {
				return errors.New("no video references given (pass URLs or --file)")
			}

			logger, err := ctx.buildLogger()
			if err != nil {
				return err
			}

			store, err := corpus.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			// One writer per corpus at a time; concurrent CLI runs would
			// interleave WAL writes and confuse the skip logic.
			lock := flock.New(filepath.Join(cfg.Paths.CorpusDir, "ingest.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire ingest lock: %w", err)
			}
			if !locked {
				return errors.New("another ingest run is already writing to this corpus")
			}
			defer func() { _ = lock.Unlock() }()

			client, err := ctx.buildFetcher()
			if err != nil {
				return err
			}
			if workers <= 0 {
				workers = cfg.Ingest.Workers
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			coordinator := ingest.NewCoordinator(store, client, logger, force)
			report, err := ingest.NewScheduler(coordinator, workers, logger).Run(runCtx, references)
			if err != nil {
				return err
			}

			renderIngestReport(cmd.OutOrStdout(), report)
			if report.Failed > 0 {
				return fmt.Errorf("%d of %d videos failed", report.Failed, len(report.Details))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&fromFile, "file", "f", "", "Read video references from a file, one per line")
	cmd.Flags().BoolVar(&force, "force", false, "Re-fetch videos that already have records")
	cmd.Flags().IntVar(&workers, "workers", 0, "Override the configured worker count")
	return cmd
}

func renderIngestReport(out io.Writer, report *ingest.Report) {
	colorize := shouldColorize(out)

	fmt.Fprintln(out, renderStatusLine("Ingested", statusOK,
		fmt.Sprintf("%d videos, %d records", report.Success, report.TotalRecords), colorize))
	if report.Skipped > 0 {
		fmt.Fprintln(out, renderStatusLine("Skipped", statusInfo,
			fmt.Sprintf("%d already in corpus", report.Skipped), colorize))
	}
	if report.NoSubtitles > 0 {
		fmt.Fprintln(out, renderStatusLine("No subtitles", statusWarn,
			fmt.Sprintf("%d videos had no usable track", report.NoSubtitles), colorize))
	}
	if report.Failed > 0 {
		fmt.Fprintln(out, renderStatusLine("Failed", statusError,
			fmt.Sprintf("%d videos", report.Failed), colorize))
		for _, outcome := range report.Details {
			if outcome.Status != ingest.StatusFailed {
				continue
			}
			fmt.Fprintf(out, "    %s: %v\n", outcome.Reference, outcome.Err)
		}
	}
	fmt.Fprintln(out, renderStatusLine("Elapsed", statusInfo,
		report.Elapsed.Round(time.Millisecond).String(), colorize))
}
