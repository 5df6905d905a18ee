// Package fetcher wraps the external yt-dlp binary behind the two
// capabilities the core consumes: fetching one video's timed-text track and
// discovering candidate video references for a free-text query.
//
// Command execution sits behind the Executor seam so tests can substitute a
// fake that writes literal payloads. Each fetch runs under its own timeout;
// a deadline hit is reported as services.ErrTimeout, any other subprocess
// failure as services.ErrFetchFailed, and a clean run that produced no track
// file as services.ErrNoSubtitles.
package fetcher
