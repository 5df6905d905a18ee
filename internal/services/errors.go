package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidReference marks a video reference no id pattern matched.
	// Not retryable: the reference itself is malformed.
	ErrInvalidReference = errors.New("invalid video reference")
	// ErrFetchFailed marks an external track fetch that errored, timed out,
	// or exited non-zero. Retryable on a later batch run because the video
	// stays absent from the corpus.
	ErrFetchFailed = errors.New("track fetch failed")
	// ErrNoSubtitles marks a fetch that succeeded but produced zero usable
	// records. Informational rather than a failure.
	ErrNoSubtitles = errors.New("no subtitles")
	// ErrStorage marks a persistence-layer failure. Aborts the current
	// operation only, never the batch.
	ErrStorage = errors.New("storage error")
	// ErrTimeout marks an operation that exceeded its deadline.
	ErrTimeout = errors.New("timeout")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later outcome classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrStorage
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Retryable reports whether a later batch run could plausibly succeed where
// this error failed. Malformed references never become valid; fetches can.
func Retryable(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidReference):
		return false
	case errors.Is(err, ErrFetchFailed), errors.Is(err, ErrTimeout), errors.Is(err, ErrStorage):
		return true
	default:
		return false
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
