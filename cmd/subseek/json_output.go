package main

import (
	"encoding/json"
	"io"

	"subseek/internal/corpus"
)

type searchResultJSON struct {
	VideoID         string  `json:"video_id"`
	VideoReference  string  `json:"video_reference"`
	Text            string  `json:"text"`
	StartTime       float64 `json:"start_time"`
	EndTime         float64 `json:"end_time"`
	Duration        float64 `json:"duration"`
	SequenceNumber  int     `json:"sequence_number"`
	ReplayReference string  `json:"replay_reference"`
}

type videoCountJSON struct {
	VideoID string `json:"video_id"`
	Records int    `json:"records"`
}

type statsOutputJSON struct {
	TotalRecords         int              `json:"total_records"`
	UniqueVideos         int              `json:"unique_videos"`
	TotalDurationSeconds float64          `json:"total_duration_seconds"`
	TopVideos            []videoCountJSON `json:"top_videos"`
}

func searchResultsJSON(results []corpus.SearchResult) []searchResultJSON {
	out := make([]searchResultJSON, 0, len(results))
	for _, result := range results {
		out = append(out, searchResultJSON{
			VideoID:         result.VideoID,
			VideoReference:  result.VideoReference,
			Text:            result.Text,
			StartTime:       result.StartTime,
			EndTime:         result.EndTime,
			Duration:        result.Duration,
			SequenceNumber:  result.SequenceNumber,
			ReplayReference: result.ReplayReference,
		})
	}
	return out
}

func statsJSON(stats *corpus.Stats) statsOutputJSON {
	out := statsOutputJSON{
		TotalRecords:         stats.TotalRecords,
		UniqueVideos:         stats.UniqueVideos,
		TotalDurationSeconds: stats.TotalDurationSeconds,
		TopVideos:            make([]videoCountJSON, 0, len(stats.TopVideos)),
	}
	for _, vc := range stats.TopVideos {
		out.TopVideos = append(out.TopVideos, videoCountJSON{VideoID: vc.VideoID, Records: vc.Records})
	}
	return out
}

func printJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}
