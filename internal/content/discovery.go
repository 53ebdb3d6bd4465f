package content

import (
	"context"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/util/sets"
)

// DefaultPublicDir is the directory whose files are served verbatim at the site root.
const DefaultPublicDir = "public"

// Options controls discovery.
type Options struct {
	PublicDir   string   // relative to the content root; DefaultPublicDir when empty
	Exclude     []string // path.Match globs tested against the relative path and the base name
	TrackedOnly bool     // read the git HEAD tree instead of the working directory
}

// Index is the discovered site surface of one content directory.
type Index struct {
	Root    string
	Paths   sets.Set[string]
	Anchors map[string]sets.Set[string] // keyed by every path a page answers to
	Pages   int
	Files   int
}

// file is one candidate file, path relative to the content root with forward slashes.
type file struct {
	rel  string
	read func() ([]byte, error)
}

// Discover walks root and returns its Index.
func Discover(ctx context.Context, root string, opts Options) (*Index, error) {
	if opts.PublicDir == "" {
		opts.PublicDir = DefaultPublicDir
	}
	opts.PublicDir = strings.Trim(filepath.ToSlash(path.Clean(opts.PublicDir)), "/")

	var (
		files []file
		err   error
	)
	if opts.TrackedOnly {
		files, err = trackedFiles(root)
	} else {
		files, err = workdirFiles(root)
	}
	if err != nil {
		return nil, err
	}

	idx := &Index{
		Root:    root,
		Paths:   sets.New[string](),
		Anchors: map[string]sets.Set[string]{},
	}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if skipped(f.rel, opts.Exclude) {
			continue
		}
		if err := idx.add(f, opts.PublicDir); err != nil {
			return nil, err
		}
	}

	slog.Debug("Content discovered",
		logfields.ContentDir(root),
		logfields.Pages(idx.Pages),
		slog.Int("files", idx.Files),
		slog.Int("paths", idx.Paths.Len()),
		slog.Bool("tracked_only", opts.TrackedOnly))
	return idx, nil
}

func (idx *Index) add(f file, publicDir string) error {
	if rest, ok := strings.CutPrefix(f.rel, publicDir+"/"); ok {
		idx.Paths.Add("/" + rest)
		idx.Files++
		return nil
	}
	if !isMarkdown(f.rel) {
		return nil
	}

	aliases := PagePaths(f.rel)
	idx.Paths.Add(aliases...)
	idx.Pages++

	data, err := f.read()
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to read page").
			WithContext("file", f.rel).
			Build()
	}
	ids := HeadingIDs(data)
	for _, alias := range aliases {
		idx.Anchors[alias] = ids
	}
	return nil
}

// PagePaths returns every site path a markdown file is served under, the
// canonical one first.
//
//	guide/setup.md  -> /guide/setup, /guide/setup.html
//	guide/index.md  -> /guide/, /guide, /guide/index, /guide/index.html
//	index.md        -> /, /index, /index.html
func PagePaths(rel string) []string {
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "/")
	stem := strings.TrimSuffix(rel, path.Ext(rel))

	dir, name := path.Split(stem)
	if name != "index" {
		return []string{"/" + stem, "/" + stem + ".html"}
	}
	if dir == "" {
		return []string{"/", "/index", "/index.html"}
	}
	dir = strings.TrimSuffix(dir, "/")
	return []string{"/" + dir + "/", "/" + dir, "/" + stem, "/" + stem + ".html"}
}

func isMarkdown(rel string) bool {
	switch strings.ToLower(path.Ext(rel)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

// skipped reports whether any segment of rel is hidden or node_modules, or
// whether rel matches an exclude glob.
func skipped(rel string, exclude []string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, ".") || seg == "node_modules" {
			return true
		}
	}
	base := path.Base(rel)
	for _, pattern := range exclude {
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := path.Match(pattern, base); ok {
			return true
		}
		if prefix, ok := strings.CutSuffix(pattern, "/**"); ok && strings.HasPrefix(rel, prefix+"/") {
			return true
		}
	}
	return false
}
