// Package ingest orchestrates batch subtitle acquisition.
//
// The Coordinator runs one video's pipeline sequentially: parse the
// reference, check the corpus for existing records, fetch the track,
// normalize it, and insert the surviving records. The Scheduler fans a
// reference list out over a small bounded worker pool and aggregates the
// immutable per-video outcomes into a batch report; workers never share
// counters, they hand outcomes to the single aggregator.
//
// Failures are contained per video. One reference failing never aborts its
// siblings, and the scheduler always returns a completed report.
package ingest
