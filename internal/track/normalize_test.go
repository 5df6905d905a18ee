package track_test

import (
	"testing"

	"subseek/internal/track"
)

func TestParseDecodesEvents(t *testing.T) {
	raw := []byte(`{"events":[{"tStartMs":1500,"dDurationMs":2500,"segs":[{"utf8":"こん"},{"utf8":"にちは"}]}]}`)
	payload, err := track.Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(payload.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(payload.Events))
	}
	if payload.Events[0].StartMs != 1500 {
		t.Fatalf("unexpected start: %d", payload.Events[0].StartMs)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := track.Parse([]byte("not json")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNormalizeConcatenatesSegmentsAndConvertsTimes(t *testing.T) {
	payload := &track.Payload{Events: []track.Event{
		{StartMs: 1500, DurationMs: 2500, Segments: []track.Segment{{UTF8: "こん"}, {UTF8: "にちは"}}},
	}}

	records := track.Normalize("dQw4w9WgXcQ", "https://youtu.be/dQw4w9WgXcQ", payload)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	record := records[0]
	if record.Text != "こんにちは" {
		t.Fatalf("unexpected text %q", record.Text)
	}
	if record.StartTime != 1.5 || record.Duration != 2.5 || record.EndTime != 4.0 {
		t.Fatalf("unexpected times: start=%v dur=%v end=%v", record.StartTime, record.Duration, record.EndTime)
	}
	if record.VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("unexpected video id %q", record.VideoID)
	}
}

func TestNormalizeDropsEmptyEvents(t *testing.T) {
	payload := &track.Payload{Events: []track.Event{
		{StartMs: 0, DurationMs: 2000, Segments: []track.Segment{{UTF8: "こんにちは"}}},
		{StartMs: 2000, DurationMs: 1000, Segments: []track.Segment{{UTF8: "   "}}},
		{StartMs: 3000, DurationMs: 1000},
		{StartMs: 5000, DurationMs: 2000, Segments: []track.Segment{{UTF8: "さようなら"}}},
	}}

	records := track.Normalize("dQw4w9WgXcQ", "https://youtu.be/dQw4w9WgXcQ", payload)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// Sequence numbers come from the event's payload position, not the
	// surviving-record index.
	if records[0].SequenceNumber != 0 || records[1].SequenceNumber != 3 {
		t.Fatalf("unexpected sequence numbers: %d, %d", records[0].SequenceNumber, records[1].SequenceNumber)
	}
}

func TestNormalizeMissingOffsetsDefaultToZero(t *testing.T) {
	payload := &track.Payload{Events: []track.Event{
		{Segments: []track.Segment{{UTF8: "音楽"}}},
	}}
	records := track.Normalize("dQw4w9WgXcQ", "https://youtu.be/dQw4w9WgXcQ", payload)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].StartTime != 0 || records[0].Duration != 0 || records[0].EndTime != 0 {
		t.Fatalf("expected zero times, got %+v", records[0])
	}
}

func TestNormalizeNilPayload(t *testing.T) {
	if records := track.Normalize("dQw4w9WgXcQ", "ref", nil); records != nil {
		t.Fatalf("expected nil, got %v", records)
	}
}
