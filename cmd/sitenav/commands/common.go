package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/content"
	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/lint"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/metrics"
)

// Global context passed to subcommands.
type Global struct {
	Ctx    context.Context
	Logger *slog.Logger
	Out    io.Writer
}

func (g *Global) context() context.Context {
	if g == nil || g.Ctx == nil {
		return context.Background()
	}
	return g.Ctx
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"sitenav.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Check CheckCmd `cmd:"" help:"Validate site navigation files"`
	Tree  TreeCmd  `cmd:"" help:"Print the navigation of a site file as a tree"`
	Init  InitCmd  `cmd:"" help:"Initialize a new configuration file"`
	Watch WatchCmd `cmd:"" help:"Re-run checks whenever site files change"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// ExitCode ends the process with a status but prints nothing; the report
// has already said everything.
type ExitCode int

func (e ExitCode) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

// Exit codes of a completed check.
const (
	ExitWarnings ExitCode = 1
	ExitErrors   ExitCode = 2
)

// loadConfig reads the tool configuration. A missing file at the default
// location is not an error: sitenav then works from its arguments alone.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err == nil {
		c.configureLogging(cfg.Logging)
		return cfg, nil
	}
	if errors.HasCategory(err, errors.CategoryNotFound) && c.Config == config.DefaultPath {
		slog.Debug("No configuration file, using defaults", logfields.File(c.Config))
		return config.Default(), nil
	}
	return nil, err
}

// configureLogging applies the configured level and format. --verbose wins
// over the configured level.
func (c *CLI) configureLogging(lc config.LoggingConfig) {
	level := lc.Level.SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if lc.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func newLinter(cfg *config.Config, rec metrics.Recorder) *lint.Linter {
	return lint.New(
		lint.WithExtraIcons(cfg.Validation.ExtraIcons...),
		lint.WithIgnoreDeadLinks(cfg.Validation.IgnoreDeadLinks...),
		lint.WithWorkers(cfg.Validation.Workers),
		lint.WithConsistency(cfg.Validation.ConsistencyEnabled()),
		lint.WithContentOptions(content.Options{
			PublicDir:   cfg.Content.PublicDir,
			Exclude:     cfg.Content.Exclude,
			TrackedOnly: cfg.Content.TrackedOnly,
		}),
		lint.WithRecorder(rec),
	)
}

func configTargets(cfg *config.Config) []lint.Target {
	targets := make([]lint.Target, 0, len(cfg.Sites))
	for _, s := range cfg.Sites {
		targets = append(targets, lint.Target{Name: s.Name, File: s.File, ContentDir: s.ContentDir})
	}
	return targets
}

// exitCodeFor maps a report to the process status: errors beat warnings,
// and quiet mode never fails on warnings alone.
func exitCodeFor(result *lint.Result, quiet bool) error {
	switch {
	case result.HasErrors():
		return ExitErrors
	case result.HasWarnings() && !quiet:
		return ExitWarnings
	default:
		return nil
	}
}
