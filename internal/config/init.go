package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
)

// Example returns the configuration written by Init.
func Example() *Config {
	consistency := true
	return &Config{
		Sites: []SiteConfig{
			{Name: "main", File: "docs/.vitepress/config.yaml", ContentDir: "docs"},
			{Name: "staging", File: "docs/.vitepress/staging.yaml", ContentDir: "docs"},
		},
		Content: ContentConfig{
			PublicDir: "public",
			Exclude:   []string{"drafts/**"},
		},
		Validation: ValidationConfig{
			IgnoreDeadLinks:  []string{"/api/**"},
			Workers:          DefaultWorkers,
			CheckConsistency: &consistency,
		},
		Output:  OutputConfig{Format: OutputFormatText},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
		Watch: WatchConfig{
			Debounce:       DefaultDebounce,
			RescanInterval: DefaultRescanInterval,
			MetricsAddr:    "127.0.0.1:9464",
			NATSSubject:    DefaultNATSSubject,
		},
	}
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("file", configPath).
			Build()
	}

	data, err := yaml.Marshal(Example())
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal example configuration").Build()
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write configuration file").
			WithContext("file", configPath).
			Build()
	}
	return nil
}
