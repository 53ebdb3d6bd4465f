package commands

import (
	"fmt"

	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/lint"
	"git.home.luguber.info/inful/sitenav/internal/metrics"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Format     string   `short:"f" help:"Output format (text or json); defaults to output.format"`
	Quiet      bool     `short:"q" help:"Quiet mode: only show errors, suppress warnings"`
	ContentDir string   `short:"d" name:"content-dir" help:"Docs source directory for dead-link checks of FILES"`
	Files      []string `arg:"" optional:"" help:"Site files to check; defaults to the sites listed in the configuration"`
}

// Run executes the check command.
func (c *CheckCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	format := cfg.Output.Format
	if c.Format != "" {
		if format, err = config.ParseOutputFormat(c.Format); err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "invalid --format").UserAction().Build()
		}
	}
	quiet := c.Quiet || cfg.Output.Quiet

	targets := configTargets(cfg)
	if len(c.Files) > 0 {
		targets = targets[:0]
		for _, f := range c.Files {
			targets = append(targets, lint.Target{File: f, ContentDir: c.ContentDir})
		}
	}
	if len(targets) == 0 {
		return errors.ConfigError(fmt.Sprintf("no site files to check: pass FILES or list sites in %s", root.Config)).Build()
	}

	result, err := newLinter(cfg, metrics.NoopRecorder{}).Run(g.context(), targets)
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "check interrupted").Build()
	}
	if quiet {
		result = result.WithoutWarnings()
	}

	if err := lint.NewFormatter(string(format)).Format(g.out(), result); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write report").Build()
	}
	return exitCodeFor(result, quiet)
}
