package config

const (
	defaultCorpusDir            = "~/.local/share/subseek"
	defaultLogDir               = "~/.local/share/subseek/logs"
	defaultYtDlpBinary          = "yt-dlp"
	defaultWorkers              = 3
	defaultFetchTimeoutSeconds  = 60
	defaultTrackLanguage        = "ja"
	defaultSearchLimit          = 20
	defaultFilteredSearchLimit  = 50
	defaultContextWindowSeconds = 15
	defaultAPIBind              = "127.0.0.1:7833"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a configuration populated with defaults. Paths are left
// unexpanded; Load handles expansion.
func Default() Config {
	return Config{
		Paths: Paths{
			CorpusDir: defaultCorpusDir,
			LogDir:    defaultLogDir,
		},
		Ingest: Ingest{
			YtDlpBinary:         defaultYtDlpBinary,
			Workers:             defaultWorkers,
			FetchTimeoutSeconds: defaultFetchTimeoutSeconds,
			TrackLanguages:      []string{defaultTrackLanguage},
		},
		Search: Search{
			DefaultLimit:         defaultSearchLimit,
			FilteredLimit:        defaultFilteredSearchLimit,
			ContextWindowSeconds: defaultContextWindowSeconds,
		},
		API: API{
			Bind: defaultAPIBind,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
