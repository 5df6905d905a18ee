// Package config loads and validates subseek's TOML configuration.
//
// Configuration covers the corpus location, yt-dlp invocation settings,
// ingest concurrency, query defaults, logging, and the optional HTTP API
// bind. Load resolves the config path (explicit flag, then
// ~/.config/subseek/config.toml, then ./subseek.toml), applies defaults for
// anything unset, expands ~ in paths, and validates the result. A sample
// config is embedded for `subseek config new`.
package config
