package config

import (
	"time"

	"git.home.luguber.info/inful/sitenav/internal/content"
)

const (
	DefaultWorkers        = 4
	DefaultDebounce       = 300 * time.Millisecond
	DefaultRescanInterval = 5 * time.Minute
	DefaultNATSSubject    = "sitenav.reports"
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Content.PublicDir == "" {
		cfg.Content.PublicDir = content.DefaultPublicDir
	}
	if cfg.Validation.Workers == 0 {
		cfg.Validation.Workers = DefaultWorkers
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = OutputFormatText
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultDebounce
	}
	if cfg.Watch.RescanInterval == 0 {
		cfg.Watch.RescanInterval = DefaultRescanInterval
	}
	if cfg.Watch.NATSSubject == "" {
		cfg.Watch.NATSSubject = DefaultNATSSubject
	}
}
