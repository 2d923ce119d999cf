package config

import "time"

const (
	defaultTitle      = "Glossary"
	defaultCharset    = "utf-8"
	defaultPolicy     = "span"
	defaultDuplicates = "reject"
	defaultDebounce   = 300 * time.Millisecond
)

func applyDefaults(cfg *Config) {
	if cfg.Input.Charset == "" {
		cfg.Input.Charset = defaultCharset
	}
	if cfg.Site.Title == "" {
		cfg.Site.Title = defaultTitle
	}
	if cfg.Parsing.Duplicates == "" {
		cfg.Parsing.Duplicates = defaultDuplicates
	}
	if cfg.Linking.Policy == "" {
		cfg.Linking.Policy = defaultPolicy
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = string(LogLevelInfo)
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = string(LogFormatText)
	}
	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = defaultDebounce
	}
}
