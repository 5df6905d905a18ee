package ingest

import "time"

// Status classifies one video's ingestion result.
type Status string

const (
	// StatusSuccess: at least one new record was stored.
	StatusSuccess Status = "success"
	// StatusSkipped: the corpus already held records for the video; nothing
	// was fetched.
	StatusSkipped Status = "skipped"
	// StatusNoSubtitles: the fetch succeeded but yielded zero usable records
	// (no track, empty track, or all duplicates).
	StatusNoSubtitles Status = "no_subtitles"
	// StatusFailed: the reference was malformed or the fetch/store errored.
	StatusFailed Status = "failed"
)

// Outcome is the immutable result of ingesting one video reference.
type Outcome struct {
	VideoID     string
	Reference   string
	Status      Status
	RecordCount int
	Elapsed     time.Duration
	Err         error
}

// Report aggregates a batch run. Details are in completion order, which is
// arbitrary under concurrency.
type Report struct {
	RunID        string
	Success      int
	Failed       int
	Skipped      int
	NoSubtitles  int
	TotalRecords int
	Elapsed      time.Duration
	Details      []Outcome
}

func (r *Report) add(outcome Outcome) {
	r.Details = append(r.Details, outcome)
	switch outcome.Status {
	case StatusSuccess:
		r.Success++
		r.TotalRecords += outcome.RecordCount
	case StatusSkipped:
		r.Skipped++
		r.TotalRecords += outcome.RecordCount
	case StatusNoSubtitles:
		r.NoSubtitles++
	case StatusFailed:
		r.Failed++
	}
}
