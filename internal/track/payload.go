package track

import "encoding/json"

// Segment is one text fragment inside an event.
type Segment struct {
	UTF8 string `json:"utf8"`
}

// Event is one entry in a raw track payload. Offsets are optional in the wire
// format; missing values decode as 0.
type Event struct {
	StartMs    int64     `json:"tStartMs"`
	DurationMs int64     `json:"dDurationMs"`
	Segments   []Segment `json:"segs"`
}

// Payload is a full timed-text track for one video, events in track order.
type Payload struct {
	Events []Event `json:"events"`
}

// Parse decodes a raw json3 document into a Payload.
func Parse(data []byte) (*Payload, error) {
	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
