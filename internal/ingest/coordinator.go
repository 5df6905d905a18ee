package ingest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"subseek/internal/corpus"
	"subseek/internal/fetcher"
	"subseek/internal/logging"
	"subseek/internal/services"
	"subseek/internal/track"
	"subseek/internal/videoref"
)

// RecordStore is the slice of the corpus store the coordinator needs.
type RecordStore interface {
	CountForVideo(ctx context.Context, videoID string) (int, error)
	InsertIfAbsent(ctx context.Context, record corpus.Record) (bool, error)
}

// Coordinator ingests one video at a time: check, fetch, normalize, store.
type Coordinator struct {
	store  RecordStore
	tracks fetcher.TrackFetcher
	logger *slog.Logger

	// force bypasses the video-level idempotency check. Duplicate rows are
	// still absorbed by the store's uniqueness constraint, so forcing a
	// re-run only re-fetches; it never double-inserts.
	force bool
}

// NewCoordinator wires a coordinator. A nil logger is replaced with a no-op.
func NewCoordinator(store RecordStore, tracks fetcher.TrackFetcher, logger *slog.Logger, force bool) *Coordinator {
	return &Coordinator{
		store:  store,
		tracks: tracks,
		logger: logging.NewComponentLogger(logger, "ingest"),
		force:  force,
	}
}

// IngestOne runs the full pipeline for a single reference and returns its
// outcome. It never returns an error; failures are folded into the outcome so
// the scheduler can aggregate them uniformly.
func (c *Coordinator) IngestOne(ctx context.Context, reference string) Outcome {
	started := time.Now()
	outcome := Outcome{Reference: reference}

	videoID, err := videoref.ExtractVideoID(reference)
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Err = err
		outcome.Elapsed = time.Since(started)
		return outcome
	}
	outcome.VideoID = videoID

	if !c.force {
		existing, err := c.store.CountForVideo(ctx, videoID)
		if err != nil {
			outcome.Status = StatusFailed
			outcome.Err = err
			outcome.Elapsed = time.Since(started)
			return outcome
		}
		// Video-level idempotency: any stored record means the whole video
		// is treated as present. A partially-ingested video is therefore
		// never retried by a normal batch re-run; `--force` exists for that.
		if existing > 0 {
			outcome.Status = StatusSkipped
			outcome.RecordCount = existing
			outcome.Elapsed = time.Since(started)
			return outcome
		}
	}

	payload, err := c.tracks.FetchTrack(ctx, reference, videoID)
	if err != nil {
		if errors.Is(err, services.ErrNoSubtitles) {
			outcome.Status = StatusNoSubtitles
			outcome.Elapsed = time.Since(started)
			return outcome
		}
		outcome.Status = StatusFailed
		outcome.Err = err
		outcome.Elapsed = time.Since(started)
		return outcome
	}

	inserted := 0
	for _, record := range track.Normalize(videoID, reference, payload) {
		added, err := c.store.InsertIfAbsent(ctx, record)
		if err != nil {
			// A storage error aborts this record only; the remaining
			// candidates still get their chance.
			c.logger.Warn("record insert failed",
				logging.Args(
					logging.String(logging.FieldVideoID, videoID),
					logging.Int("sequence", record.SequenceNumber),
					logging.Error(err),
				)...)
			continue
		}
		if added {
			inserted++
		}
	}

	outcome.RecordCount = inserted
	outcome.Elapsed = time.Since(started)
	if inserted == 0 {
		outcome.Status = StatusNoSubtitles
		return outcome
	}
	outcome.Status = StatusSuccess
	return outcome
}
