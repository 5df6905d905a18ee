package videoref

import (
	"fmt"
	"regexp"
	"strings"

	"subseek/internal/services"
)

// idPatterns are tried in order against a reference string. Each must capture
// the 11-character video id in its first group. The shapes cover the watch
// page (?v=), short links (youtu.be/), and the embed and /v/ player forms.
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})(?:[^0-9A-Za-z_-]|$)`),
	regexp.MustCompile(`embed/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`v/([0-9A-Za-z_-]{11})`),
}

// ExtractVideoID pulls the canonical 11-character video id out of a reference
// string. The error is tagged services.ErrInvalidReference when no pattern
// matches; callers must treat that as non-retryable.
func ExtractVideoID(reference string) (string, error) {
	trimmed := strings.TrimSpace(reference)
	if trimmed == "" {
		return "", services.Wrap(services.ErrInvalidReference, "videoref", "parse", "empty reference", nil)
	}
	for _, pattern := range idPatterns {
		if match := pattern.FindStringSubmatch(trimmed); match != nil {
			return match[1], nil
		}
	}
	return "", services.Wrap(services.ErrInvalidReference, "videoref", "parse", fmt.Sprintf("no video id in %q", reference), nil)
}

var (
	timeMarkerPattern  = regexp.MustCompile(`[?&#]t=\d+s?`)
	startMarkerPattern = regexp.MustCompile(`[?&#]start=\d+`)
)

// BuildReplayReference returns reference with a playback-start marker for the
// given time. Any pre-existing t= or start= marker is stripped first, so the
// result always carries exactly one marker regardless of how many times the
// function is applied. The marker value is the integer floor of startSeconds.
func BuildReplayReference(reference string, startSeconds float64) string {
	ref := stripMarker(reference, timeMarkerPattern)
	ref = stripMarker(ref, startMarkerPattern)

	separator := "?"
	if strings.Contains(ref, "?") {
		separator = "&"
	}
	return fmt.Sprintf("%s%st=%ds", ref, separator, int(startSeconds))
}

func stripMarker(ref string, pattern *regexp.Regexp) string {
	for {
		loc := pattern.FindStringIndex(ref)
		if loc == nil {
			return ref
		}
		lead := ref[loc[0]]
		ref = ref[:loc[0]] + ref[loc[1]:]
		// Removing a ?-led marker leaves any following parameter dangling on
		// an &; promote it so the query string stays well formed.
		if lead == '?' && loc[0] < len(ref) && ref[loc[0]] == '&' {
			ref = ref[:loc[0]] + "?" + ref[loc[0]+1:]
		}
	}
}
