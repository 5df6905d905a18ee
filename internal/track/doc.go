// Package track models the raw timed-text (json3) payload returned by the
// track fetcher and normalizes it into candidate corpus records.
//
// Normalization is pure: segment texts are concatenated in order and trimmed,
// whitespace-only events are dropped, and millisecond offsets become seconds.
// Deduplication against the store happens later, at insert time.
package track
