package corpus

import "time"

// Record is one timed caption line belonging to one video. Records are
// immutable after insertion; the store never updates or deletes them during
// normal operation.
type Record struct {
	ID             int64
	VideoID        string
	VideoReference string
	Text           string
	StartTime      float64
	EndTime        float64
	Duration       float64
	SequenceNumber int
	CreatedAt      time.Time
}

// SearchResult is a Record enriched with a replay reference pointing playback
// at the record's start time. Computed at query time, never persisted.
type SearchResult struct {
	Record
	ReplayReference string
}

// ContextItem is one line of a temporal context window around a target time.
type ContextItem struct {
	Text           string
	StartTime      float64
	EndTime        float64
	SequenceNumber int
	IsTarget       bool
}

// VideoCount pairs a video id with its stored record count.
type VideoCount struct {
	VideoID string
	Records int
}

// Stats summarizes the corpus. TotalDurationSeconds is the plain sum of
// record durations; overlapping captions double-count by design.
type Stats struct {
	TotalRecords         int
	UniqueVideos         int
	TotalDurationSeconds float64
	TopVideos            []VideoCount
}
