package lint

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/sitenav/internal/content"
	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/metrics"
	"git.home.luguber.info/inful/sitenav/internal/navcheck"
	"git.home.luguber.info/inful/sitenav/internal/site"
)

// DefaultWorkers bounds how many site files are checked at once.
const DefaultWorkers = 4

// Option configures a Linter.
type Option func(*Linter)

// WithExtraIcons accepts additional social icon identifiers.
func WithExtraIcons(icons ...string) Option {
	return func(l *Linter) { l.extraIcons = append(l.extraIcons, icons...) }
}

// WithIgnoreDeadLinks skips dead-link checks for links matching the patterns.
func WithIgnoreDeadLinks(patterns ...string) Option {
	return func(l *Linter) { l.ignorePatterns = append(l.ignorePatterns, patterns...) }
}

// WithContentOptions configures content discovery.
func WithContentOptions(opts content.Options) Option {
	return func(l *Linter) { l.content = opts }
}

// WithWorkers sets the number of targets checked concurrently.
func WithWorkers(n int) Option {
	return func(l *Linter) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithConsistency enables the cross-variant inconsistency pass.
func WithConsistency(enabled bool) Option {
	return func(l *Linter) { l.consistency = enabled }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(l *Linter) {
		if r != nil {
			l.recorder = r
		}
	}
}

// Linter checks site files and collects their issues.
type Linter struct {
	extraIcons     []string
	ignorePatterns []string
	content        content.Options
	workers        int
	consistency    bool
	recorder       metrics.Recorder

	mu      sync.Mutex
	indexes map[string]*indexEntry
}

type indexEntry struct {
	once sync.Once
	idx  *content.Index
	err  error
}

// New creates a linter.
func New(opts ...Option) *Linter {
	l := &Linter{
		workers:     DefaultWorkers,
		consistency: true,
		recorder:    metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type report struct {
	issues []Issue
	cfg    *site.Config
}

// Run checks every target and returns their issues in target order.
// Problems with individual targets become issues; an error is returned only
// when ctx is canceled.
func (l *Linter) Run(ctx context.Context, targets []Target) (*Result, error) {
	l.mu.Lock()
	l.indexes = map[string]*indexEntry{}
	l.mu.Unlock()

	targets = normalizeTargets(targets)
	reports := make([]report, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, t := range targets {
		g.Go(func() error {
			r, err := l.check(gctx, t)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Issues: []Issue{}, FilesTotal: len(targets)}
	var variants []navcheck.Variant
	byName := map[string]Target{}
	for i, r := range reports {
		result.Issues = append(result.Issues, r.issues...)
		if r.cfg != nil {
			variants = append(variants, navcheck.Variant{Name: targets[i].Name, Config: r.cfg})
			byName[targets[i].Name] = targets[i]
		}
	}

	if l.consistency {
		for _, v := range navcheck.Inconsistencies(variants...) {
			result.Issues = append(result.Issues, issueFromViolation(byName[v.Variant], v))
			l.recorder.IncViolation(string(v.Kind))
		}
	}
	return result, nil
}

func (l *Linter) check(ctx context.Context, t Target) (report, error) {
	if err := ctx.Err(); err != nil {
		l.recorder.IncValidationOutcome(metrics.OutcomeCanceled)
		return report{}, err
	}
	start := time.Now()
	defer func() { l.recorder.ObserveValidationDuration(time.Since(start)) }()

	log := slog.With(logfields.File(t.File), logfields.Variant(t.Name))

	cfg, err := site.LoadFile(t.File)
	if err != nil {
		log.Debug("Site file failed to load", logfields.Error(err))
		issues := l.loadIssues(t, err)
		l.recorder.IncValidationOutcome(metrics.OutcomeFailed)
		return report{issues: issues}, nil
	}

	var issues []Issue
	if _, err := navcheck.Validate(cfg, navcheck.WithExtraIcons(l.extraIcons...)); err != nil {
		var verr *navcheck.ValidationError
		if !stderrors.As(err, &verr) {
			return report{}, err
		}
		for _, v := range verr.Violations {
			issues = append(issues, issueFromViolation(t, v))
			l.recorder.IncViolation(string(v.Kind))
		}
	}

	if t.ContentDir != "" {
		resolved, err := l.resolve(ctx, t, cfg)
		if err != nil {
			if ctx.Err() != nil {
				l.recorder.IncValidationOutcome(metrics.OutcomeCanceled)
				return report{}, ctx.Err()
			}
			issues = append(issues, Issue{
				File:     t.File,
				Variant:  t.Name,
				Severity: SeverityError,
				Rule:     RuleContent,
				Message:  fmt.Sprintf("content discovery failed: %v", err),
			})
		}
		issues = append(issues, resolved...)
	}

	res := &Result{Issues: issues}
	outcome := metrics.OutcomeValid
	switch {
	case res.HasErrors():
		outcome = metrics.OutcomeInvalid
	case res.HasWarnings():
		outcome = metrics.OutcomeWarning
	}
	l.recorder.IncValidationOutcome(outcome)
	log.Debug("Site file checked",
		logfields.Errors(res.ErrorCount()),
		logfields.Warnings(res.WarningCount()),
		logfields.Duration(time.Since(start)))
	return report{issues: issues, cfg: cfg}, nil
}

func (l *Linter) resolve(ctx context.Context, t Target, cfg *site.Config) ([]Issue, error) {
	if cfg.DeadLinksIgnored() {
		return []Issue{{
			File:     t.File,
			Variant:  t.Name,
			Severity: SeverityInfo,
			Rule:     RuleSkipped,
			Message:  "dead link checks disabled by ignoreDeadLinks",
		}}, nil
	}

	idx, err := l.index(ctx, t.ContentDir)
	if err != nil {
		return nil, err
	}
	l.recorder.SetDiscoveredPaths(t.ContentDir, idx.Paths.Len())

	var issues []Issue
	warnings := navcheck.ResolveLinks(cfg, idx.Paths,
		navcheck.WithAnchors(idx.Anchors),
		navcheck.WithIgnorePatterns(l.ignorePatterns...))
	for _, v := range warnings {
		issues = append(issues, issueFromViolation(t, v))
		l.recorder.IncViolation(string(v.Kind))
	}
	return issues, nil
}

// index discovers each content directory once per run, however many
// targets share it.
func (l *Linter) index(ctx context.Context, dir string) (*content.Index, error) {
	key := filepath.Clean(dir)
	l.mu.Lock()
	e, ok := l.indexes[key]
	if !ok {
		e = &indexEntry{}
		l.indexes[key] = e
	}
	l.mu.Unlock()

	e.once.Do(func() {
		e.idx, e.err = content.Discover(ctx, dir, l.content)
	})
	return e.idx, e.err
}

func (l *Linter) loadIssues(t Target, err error) []Issue {
	var decodeErr *site.DecodeError
	if stderrors.As(err, &decodeErr) {
		issues := make([]Issue, 0, len(decodeErr.Problems))
		for _, p := range decodeErr.Problems {
			issues = append(issues, Issue{
				File:     t.File,
				Variant:  t.Name,
				Severity: SeverityError,
				Rule:     string(navcheck.KindShape),
				Path:     fmt.Sprintf("line %d", p.Line),
				Message:  p.Message,
			})
			l.recorder.IncViolation(string(navcheck.KindShape))
		}
		return issues
	}

	msg := err.Error()
	if ce, ok := errors.AsClassified(err); ok {
		msg = ce.Message()
		if cause := ce.Cause(); cause != nil && ce.Category() != errors.CategoryNotFound {
			msg += ": " + cause.Error()
		}
	}
	return []Issue{{
		File:     t.File,
		Variant:  t.Name,
		Severity: SeverityError,
		Rule:     RuleLoad,
		Message:  msg,
	}}
}

func normalizeTargets(targets []Target) []Target {
	out := make([]Target, len(targets))
	derived := make([]bool, len(targets))
	count := map[string]int{}
	for i, t := range targets {
		if t.Name == "" {
			t.Name = targetName(t.File)
			derived[i] = true
		}
		out[i] = t
		count[t.Name]++
	}
	// Derived names that collide fall back to the file path; anything still
	// repeated gets a "#n" suffix so every variant stays distinct.
	for i := range out {
		if derived[i] && count[out[i].Name] > 1 {
			out[i].Name = filepath.ToSlash(filepath.Clean(out[i].File))
		}
	}
	seen := map[string]int{}
	for i := range out {
		n := seen[out[i].Name] + 1
		seen[out[i].Name] = n
		if n > 1 {
			out[i].Name = fmt.Sprintf("%s#%d", out[i].Name, n)
		}
	}
	return out
}

// targetName derives a variant name from a site file path:
// "site/.vitepress/config.yaml" -> "site", "staging.yaml" -> "staging".
func targetName(file string) string {
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	if base != "config" {
		return base
	}
	dir := filepath.Dir(file)
	if filepath.Base(dir) == ".vitepress" {
		dir = filepath.Dir(dir)
	}
	if name := filepath.Base(dir); name != "." && name != string(filepath.Separator) {
		return name
	}
	return base
}
