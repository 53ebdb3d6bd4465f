package commands

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/sitenav/internal/config"
	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/lint"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/metrics"
	"git.home.luguber.info/inful/sitenav/internal/notify"
	"git.home.luguber.info/inful/sitenav/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Format string `short:"f" help:"Output format (text or json); defaults to output.format"`
}

// Run executes the watch command until interrupted.
func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if len(cfg.Sites) == 0 {
		return errors.ConfigError("watch mode needs sites listed in the configuration file").
			WithContext("file", root.Config).
			Build()
	}
	format := cfg.Output.Format
	if w.Format != "" {
		if format, err = config.ParseOutputFormat(w.Format); err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "invalid --format").UserAction().Build()
		}
	}

	ctx := g.context()
	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)

	if cfg.Watch.MetricsAddr != "" {
		stop := serveMetrics(ctx, cfg.Watch.MetricsAddr, reg)
		defer stop()
	}

	var pub notify.Publisher = notify.NoopPublisher{}
	if cfg.Watch.NATSURL != "" {
		natsPub, err := notify.NewNATSPublisher(cfg.Watch.NATSURL, cfg.Watch.NATSSubject)
		if err != nil {
			return err
		}
		pub = natsPub
	}
	defer func() {
		if err := pub.Close(); err != nil {
			slog.Warn("Failed to close publisher", logfields.Error(err))
		}
	}()

	files := []string{}
	if _, err := os.Stat(root.Config); err == nil {
		files = append(files, root.Config)
	}
	for _, s := range cfg.Sites {
		files = append(files, s.File)
	}

	r := &watchRunner{root: root, cfg: cfg, rec: rec, pub: pub, format: format, out: g.out()}
	watcher, err := watch.New(files, r.run,
		watch.WithDebounce(cfg.Watch.Debounce),
		watch.WithRescanInterval(cfg.Watch.RescanInterval))
	if err != nil {
		return err
	}
	return watcher.Watch(ctx)
}

type watchRunner struct {
	root   *CLI
	cfg    *config.Config
	rec    metrics.Recorder
	pub    notify.Publisher
	format config.OutputFormat
	out    io.Writer
}

// run reloads the configuration, checks every site and reports the result.
// A configuration that no longer loads keeps the previous one in effect.
func (r *watchRunner) run(ctx context.Context, run watch.Run) error {
	if cfg, err := config.Load(r.root.Config); err == nil {
		r.cfg = cfg
		r.root.configureLogging(cfg.Logging)
	} else if !errors.HasCategory(err, errors.CategoryNotFound) {
		slog.Warn("Configuration reload failed, keeping previous", logfields.RunID(run.ID), logfields.Error(err))
	}

	result, err := newLinter(r.cfg, r.rec).Run(ctx, configTargets(r.cfg))
	if err != nil {
		return err
	}
	if r.cfg.Output.Quiet {
		result = result.WithoutWarnings()
	}
	if err := lint.NewFormatter(string(r.format)).Format(r.out, result); err != nil {
		return err
	}
	slog.Info("Checks complete",
		logfields.RunID(run.ID),
		logfields.Errors(result.ErrorCount()),
		logfields.Warnings(result.WarningCount()))

	if err := r.pub.Publish(ctx, notify.NewReport(run.ID, run.Trigger, result, time.Now())); err != nil {
		slog.Warn("Failed to publish report", logfields.RunID(run.ID), logfields.Error(err))
	}
	return nil
}

// serveMetrics exposes reg on addr until ctx ends or the returned stop is called.
func serveMetrics(ctx context.Context, addr string, reg *prom.Registry) (stop func()) {
	srv := &http.Server{Addr: addr, Handler: metrics.NewServeMux(reg), ReadHeaderTimeout: 5 * time.Second}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.Info("Serving metrics", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", logfields.Error(err))
		}
	}()

	var once sync.Once
	shutdown := func() {
		once.Do(func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
			wg.Wait()
		})
	}
	go func() {
		<-ctx.Done()
		shutdown()
	}()
	return shutdown
}
