package fetcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"subseek/internal/services"
	"subseek/internal/track"
)

// TrackFetcher is the capability the ingest coordinator consumes.
type TrackFetcher interface {
	// FetchTrack retrieves the timed-text track for one video, preferring
	// the authored track and falling back to the auto-generated one.
	FetchTrack(ctx context.Context, reference, videoID string) (*track.Payload, error)
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (output string, err error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client drives yt-dlp.
type Client struct {
	binary       string
	languages    []string
	fetchTimeout time.Duration
	exec         Executor
}

// New constructs a yt-dlp client.
func New(binary string, languages []string, fetchTimeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("yt-dlp binary required")
	}
	if len(languages) == 0 {
		return nil, errors.New("at least one track language required")
	}
	client := &Client{
		binary:       binary,
		languages:    languages,
		fetchTimeout: time.Duration(fetchTimeoutSeconds) * time.Second,
		exec:         commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// FetchTrack downloads the subtitle track for one video into a scratch
// directory, reads the best available variant, and returns the parsed
// payload. The raw file is deleted before returning; the payload is the only
// thing retained.
func (c *Client) FetchTrack(ctx context.Context, reference, videoID string) (*track.Payload, error) {
	scratchDir, err := os.MkdirTemp("", "subseek-track-")
	if err != nil {
		return nil, services.Wrap(services.ErrFetchFailed, "fetcher", "scratch dir", "", err)
	}
	defer os.RemoveAll(scratchDir)

	fetchCtx := ctx
	if c.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, c.fetchTimeout)
		defer cancel()
	}

	args := []string{
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-lang", strings.Join(c.languages, ","),
		"--sub-format", "json3",
		"-o", filepath.Join(scratchDir, "%(id)s.%(ext)s"),
		reference,
	}

	if _, err := c.exec.Run(fetchCtx, c.binary, args); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(fetchCtx.Err(), context.DeadlineExceeded) {
			return nil, services.Wrap(services.ErrTimeout, "fetcher", "download", fmt.Sprintf("video %s", videoID), err)
		}
		return nil, services.Wrap(services.ErrFetchFailed, "fetcher", "download", fmt.Sprintf("video %s", videoID), err)
	}

	payload, err := c.readTrackFile(scratchDir, videoID)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// readTrackFile looks for the authored track first, then the auto-generated
// ("-orig") variant, per configured language order.
func (c *Client) readTrackFile(dir, videoID string) (*track.Payload, error) {
	candidates := make([]string, 0, len(c.languages)*2)
	for _, lang := range c.languages {
		candidates = append(candidates,
			filepath.Join(dir, fmt.Sprintf("%s.%s.json3", videoID, lang)),
			filepath.Join(dir, fmt.Sprintf("%s.%s-orig.json3", videoID, lang)),
		)
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, services.Wrap(services.ErrFetchFailed, "fetcher", "read track", path, err)
		}
		payload, err := track.Parse(data)
		if err != nil {
			return nil, services.Wrap(services.ErrFetchFailed, "fetcher", "parse track", path, err)
		}
		return payload, nil
	}

	return nil, services.Wrap(services.ErrNoSubtitles, "fetcher", "read track",
		fmt.Sprintf("no %s track for video %s", strings.Join(c.languages, "/"), videoID), nil)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return string(output), ctx.Err()
		}
		return string(output), fmt.Errorf("%s: %w: %s", binary, err, tail(string(output), 512))
	}
	return string(output), nil
}

func tail(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max:]
}
