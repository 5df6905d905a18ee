package ingest

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"subseek/internal/logging"
)

// ErrNoReferences is returned when a batch is started with nothing to do.
var ErrNoReferences = errors.New("no video references to ingest")

// Scheduler runs the coordinator over a reference list with bounded
// parallelism.
type Scheduler struct {
	coordinator *Coordinator
	workers     int
	logger      *slog.Logger
}

// NewScheduler wires a scheduler. Worker counts below one are clamped to one.
func NewScheduler(coordinator *Coordinator, workers int, logger *slog.Logger) *Scheduler {
	if workers < 1 {
		workers = 1
	}
	return &Scheduler{
		coordinator: coordinator,
		workers:     workers,
		logger:      logging.NewComponentLogger(logger, "scheduler"),
	}
}

// Run ingests every reference and returns the aggregate report. All
// references are enqueued up front; outcomes are collected in completion
// order by this goroutine alone, so no counter is ever shared between
// workers. Individual failures are folded into the report; Run itself only
// errors when the cleaned reference list is empty.
func (s *Scheduler) Run(ctx context.Context, references []string) (*Report, error) {
	refs := cleanReferences(references)
	if len(refs) == 0 {
		return nil, ErrNoReferences
	}

	started := time.Now()
	report := &Report{RunID: uuid.NewString()}
	logger := s.logger.With(logging.String(logging.FieldRunID, report.RunID))
	logger.Info("batch started",
		logging.Args(
			logging.Int("references", len(refs)),
			logging.Int("workers", s.workers),
		)...)

	jobs := make(chan string, len(refs))
	for _, ref := range refs {
		jobs <- ref
	}
	close(jobs)

	results := make(chan Outcome)
	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ref := range jobs {
				results <- s.coordinator.IngestOne(ctx, ref)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	for outcome := range results {
		report.add(outcome)
		s.logOutcome(logger, outcome)
	}

	report.Elapsed = time.Since(started)
	logger.Info("batch finished",
		logging.Args(
			logging.Int("success", report.Success),
			logging.Int("skipped", report.Skipped),
			logging.Int("no_subtitles", report.NoSubtitles),
			logging.Int("failed", report.Failed),
			logging.Int("total_records", report.TotalRecords),
			logging.Duration("elapsed", report.Elapsed),
		)...)
	return report, nil
}

func (s *Scheduler) logOutcome(logger *slog.Logger, outcome Outcome) {
	attrs := []logging.Attr{
		logging.String(logging.FieldVideoID, outcome.VideoID),
		logging.String(logging.FieldReference, outcome.Reference),
		logging.String(logging.FieldStatus, string(outcome.Status)),
		logging.Int("records", outcome.RecordCount),
		logging.Duration("elapsed", outcome.Elapsed),
	}
	if outcome.Err != nil {
		logger.Warn("video ingest failed", logging.Args(append(attrs, logging.Error(outcome.Err))...)...)
		return
	}
	logger.Info("video ingested", logging.Args(attrs...)...)
}

func cleanReferences(references []string) []string {
	seen := make(map[string]struct{}, len(references))
	cleaned := make([]string, 0, len(references))
	for _, ref := range references {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}
		cleaned = append(cleaned, ref)
	}
	return cleaned
}
