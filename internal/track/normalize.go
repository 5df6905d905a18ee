package track

import (
	"strings"

	"subseek/internal/corpus"
)

// Normalize converts a raw payload into ordered candidate records for one
// video. The event's position in the payload becomes the record's sequence
// number; events whose concatenated text trims to nothing are dropped.
func Normalize(videoID, videoReference string, payload *Payload) []corpus.Record {
	if payload == nil {
		return nil
	}

	records := make([]corpus.Record, 0, len(payload.Events))
	for i, event := range payload.Events {
		var builder strings.Builder
		for _, segment := range event.Segments {
			builder.WriteString(segment.UTF8)
		}
		text := strings.TrimSpace(builder.String())
		if text == "" {
			continue
		}

		startTime := float64(event.StartMs) / 1000.0
		duration := float64(event.DurationMs) / 1000.0

		records = append(records, corpus.Record{
			VideoID:        videoID,
			VideoReference: videoReference,
			Text:           text,
			StartTime:      startTime,
			EndTime:        startTime + duration,
			Duration:       duration,
			SequenceNumber: i,
		})
	}
	return records
}
