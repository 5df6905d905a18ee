package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"subseek/internal/services"
)

// Candidate is one video reference produced by discovery, with optional
// display metadata. The core only needs the reference string.
type Candidate struct {
	VideoID         string  `json:"id"`
	Title           string  `json:"title"`
	Reference       string  `json:"url"`
	DurationSeconds float64 `json:"duration"`
}

// Discover runs a free-text video search and returns candidate references.
// maxResults values below one are clamped to ten.
func (c *Client) Discover(ctx context.Context, query string, maxResults int) ([]Candidate, error) {
	if strings.TrimSpace(query) == "" {
		return nil, services.Wrap(services.ErrInvalidReference, "fetcher", "discover", "empty query", nil)
	}
	if maxResults < 1 {
		maxResults = 10
	}

	fetchCtx := ctx
	if c.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, c.fetchTimeout)
		defer cancel()
	}

	args := []string{
		"--flat-playlist",
		"--dump-json",
		"--no-warnings",
		fmt.Sprintf("ytsearch%d:%s", maxResults, query),
	}

	output, err := c.exec.Run(fetchCtx, c.binary, args)
	if err != nil {
		return nil, services.Wrap(services.ErrFetchFailed, "fetcher", "discover", query, err)
	}

	// yt-dlp emits one JSON document per line.
	var candidates []Candidate
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.HasPrefix(line, "{") {
			continue
		}
		var candidate Candidate
		if err := json.Unmarshal([]byte(line), &candidate); err != nil {
			continue
		}
		if candidate.Reference == "" && candidate.VideoID != "" {
			candidate.Reference = "https://www.youtube.com/watch?v=" + candidate.VideoID
		}
		if candidate.Reference == "" {
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}
