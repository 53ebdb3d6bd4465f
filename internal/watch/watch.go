// Package watch re-runs navigation checks when site files change.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/util/sets"
)

// Triggers recorded with every run.
const (
	TriggerStartup = "startup"
	TriggerChange  = "change"
	TriggerRescan  = "rescan"
)

// Run identifies one execution of the check.
type Run struct {
	ID      string
	Trigger string
}

// RunFunc performs one check. Errors are logged; the watcher keeps going.
type RunFunc func(ctx context.Context, run Run) error

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the watcher waits for a burst of events to settle.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithRescanInterval schedules a full re-run at a fixed interval; zero disables it.
func WithRescanInterval(d time.Duration) Option {
	return func(w *Watcher) { w.rescan = d }
}

// watchedExts are the site document formats whose changes trigger a run
// even when the file is not listed explicitly (extends bases, new variants).
var watchedExts = sets.New(".yaml", ".yml", ".json")

// Watcher monitors the directories of a set of files.
type Watcher struct {
	files    sets.Set[string]
	dirs     []string
	run      RunFunc
	debounce time.Duration
	rescan   time.Duration
}

// New creates a watcher for files. Their parent directories are watched,
// which survives editors that replace files on save.
func New(files []string, run RunFunc, opts ...Option) (*Watcher, error) {
	w := &Watcher{
		files:    sets.New[string](),
		run:      run,
		debounce: 300 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}

	dirs := sets.New[string]()
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve watched path").
				WithContext("file", f).
				Build()
		}
		w.files.Add(abs)
		dirs.Add(filepath.Dir(abs))
	}
	w.dirs = sets.Sorted(dirs)
	return w, nil
}

// Watch runs the check once, then again after every relevant change and
// on every rescan tick, until ctx is canceled. Runs never overlap.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to create file watcher").Build()
	}
	defer func() {
		if err := fw.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	}()
	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to watch directory").
				WithContext("path", dir).
				Build()
		}
	}

	rescan := make(chan struct{}, 1)
	if w.rescan > 0 {
		sched, err := gocron.NewScheduler()
		if err != nil {
			return errors.WrapError(err, errors.CategoryRuntime, "failed to create scheduler").Build()
		}
		defer func() {
			if err := sched.Shutdown(); err != nil {
				slog.Error("Error stopping scheduler", logfields.Error(err))
			}
		}()
		_, err = sched.NewJob(
			gocron.DurationJob(w.rescan),
			gocron.NewTask(func() {
				select {
				case rescan <- struct{}{}:
				default:
				}
			}),
			gocron.WithName("rescan"),
		)
		if err != nil {
			return errors.WrapError(err, errors.CategoryRuntime, "failed to schedule rescan").Build()
		}
		sched.Start()
	}

	slog.Info("Watching for changes",
		slog.Any("dirs", w.dirs),
		slog.Duration("debounce", w.debounce),
		slog.Duration("rescan_interval", w.rescan))

	w.execute(ctx, TriggerStartup)

	var (
		timer  *time.Timer
		settle <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping watcher")
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			slog.Debug("Change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			settle = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", logfields.Error(err))
		case <-settle:
			settle = nil
			w.execute(ctx, TriggerChange)
		case <-rescan:
			w.execute(ctx, TriggerRescan)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if w.files.Has(event.Name) {
		return true
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return watchedExts.Has(strings.ToLower(filepath.Ext(base)))
}

func (w *Watcher) execute(ctx context.Context, trigger string) {
	if ctx.Err() != nil {
		return
	}
	run := Run{ID: uuid.NewString(), Trigger: trigger}
	start := time.Now()
	log := slog.With(logfields.RunID(run.ID), logfields.Trigger(trigger))
	log.Info("Running checks")
	if err := w.run(ctx, run); err != nil {
		log.Error("Check run failed", logfields.Error(err), logfields.Duration(time.Since(start)))
		return
	}
	log.Info("Check run finished", logfields.Duration(time.Since(start)))
}
