package config

import (
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
)

// DefaultPath is the tool configuration file looked up when none is given.
const DefaultPath = "sitenav.yaml"

// Config represents the sitenav tool configuration.
type Config struct {
	Sites      []SiteConfig     `yaml:"sites" validate:"dive"`
	Content    ContentConfig    `yaml:"content"`
	Validation ValidationConfig `yaml:"validation"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
	Watch      WatchConfig      `yaml:"watch"`
}

// SiteConfig names one site configuration file to check.
type SiteConfig struct {
	Name       string `yaml:"name,omitempty" validate:"omitempty,max=64"`
	File       string `yaml:"file" validate:"required"`
	ContentDir string `yaml:"content_dir,omitempty"` // docs source; empty disables dead-link checks
}

// ContentConfig controls content discovery for dead-link checks.
type ContentConfig struct {
	PublicDir   string   `yaml:"public_dir,omitempty"`
	Exclude     []string `yaml:"exclude,omitempty"`
	TrackedOnly bool     `yaml:"tracked_only,omitempty"`
}

// ValidationConfig tunes the checks.
type ValidationConfig struct {
	ExtraIcons       []string `yaml:"extra_icons,omitempty"`
	IgnoreDeadLinks  []string `yaml:"ignore_dead_links,omitempty"` // path patterns never reported as dangling
	Workers          int      `yaml:"workers,omitempty" validate:"gte=0,lte=64"`
	CheckConsistency *bool    `yaml:"check_consistency,omitempty"`
}

// ConsistencyEnabled reports whether the cross-variant pass runs (default true).
func (v ValidationConfig) ConsistencyEnabled() bool {
	return v.CheckConsistency == nil || *v.CheckConsistency
}

// OutputConfig controls how reports are printed.
type OutputConfig struct {
	Format OutputFormat `yaml:"format,omitempty"`
	Quiet  bool         `yaml:"quiet,omitempty"`
}

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Debounce       time.Duration `yaml:"debounce,omitempty" validate:"gte=0"`
	RescanInterval time.Duration `yaml:"rescan_interval,omitempty" validate:"gte=0"`
	MetricsAddr    string        `yaml:"metrics_addr,omitempty" validate:"omitempty,hostname_port"`
	NATSURL        string        `yaml:"nats_url,omitempty" validate:"omitempty,url"`
	NATSSubject    string        `yaml:"nats_subject,omitempty"`
}

// Load reads the configuration file at path. Environment variables from
// .env files are loaded first and ${VAR} references in the file are
// expanded. Relative site and content paths are resolved against the
// directory holding the configuration file.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewError(errors.CategoryNotFound, "configuration file not found").
				WithContext("file", path).
				WithCause(err).
				UserAction().
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read configuration file").
			WithContext("file", path).
			Build()
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, err
	}
	cfg.resolvePaths(filepath.Dir(path))

	slog.Debug("Configuration loaded", logfields.File(path), slog.Int("sites", len(cfg.Sites)))
	return cfg, nil
}

// Parse decodes, defaults, normalizes and validates a configuration
// document. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse configuration").
			UserAction().
			Build()
	}

	applyDefaults(&cfg)
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) resolvePaths(baseDir string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}
	for i := range c.Sites {
		c.Sites[i].File = resolve(c.Sites[i].File)
		c.Sites[i].ContentDir = resolve(c.Sites[i].ContentDir)
	}
}
