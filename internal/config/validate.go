package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateIngest(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.CorpusDir == "" {
		return errors.New("paths.corpus_dir must be set")
	}
	return nil
}

func (c *Config) validateIngest() error {
	if strings.TrimSpace(c.Ingest.YtDlpBinary) == "" {
		return errors.New("ingest.ytdlp_binary must be set")
	}
	if c.Ingest.Workers < 1 {
		return errors.New("ingest.workers must be at least 1")
	}
	if c.Ingest.FetchTimeoutSeconds < 1 {
		return errors.New("ingest.fetch_timeout_seconds must be at least 1")
	}
	if len(c.Ingest.TrackLanguages) == 0 {
		return errors.New("ingest.track_languages must list at least one language code")
	}
	for _, lang := range c.Ingest.TrackLanguages {
		if _, err := language.Parse(lang); err != nil {
			return fmt.Errorf("ingest.track_languages: invalid language code %q: %w", lang, err)
		}
	}
	return nil
}

func (c *Config) validateSearch() error {
	if c.Search.DefaultLimit < 1 {
		return errors.New("search.default_limit must be at least 1")
	}
	if c.Search.FilteredLimit < 1 {
		return errors.New("search.filtered_limit must be at least 1")
	}
	if c.Search.ContextWindowSeconds < 1 {
		return errors.New("search.context_window_seconds must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
