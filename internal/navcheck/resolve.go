package navcheck

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"git.home.luguber.info/inful/sitenav/internal/site"
	"git.home.luguber.info/inful/sitenav/internal/util/sets"
)

// ResolveOption configures ResolveLinks.
type ResolveOption func(*resolver)

// WithIgnorePatterns skips links whose path matches one of the patterns.
// Patterns use path.Match syntax; a trailing "/**" matches a whole subtree.
func WithIgnorePatterns(patterns ...string) ResolveOption {
	return func(r *resolver) { r.ignore = append(r.ignore, patterns...) }
}

// WithAnchors enables fragment checks: a link "/page#id" must name one of
// anchors["/page"]. Pages missing from the map are not fragment-checked.
func WithAnchors(anchors map[string]sets.Set[string]) ResolveOption {
	return func(r *resolver) { r.anchors = anchors }
}

type resolver struct {
	known    sets.Set[string]
	ignore   []string
	anchors  map[string]sets.Set[string]
	warnings []Violation
}

// ResolveLinks reports a DanglingLinkWarning for every root-relative link in
// cfg whose path is not in known. Links are visited in document order: head,
// logo, nav, sidebar, social links. When the author set ignoreDeadLinks the
// pass is skipped and nil is returned.
func ResolveLinks(cfg *site.Config, known sets.Set[string], opts ...ResolveOption) []Violation {
	if cfg == nil || cfg.DeadLinksIgnored() {
		return nil
	}
	r := &resolver{known: known}
	for _, opt := range opts {
		opt(r)
	}

	for i, tag := range cfg.Head {
		for _, attr := range headLinkAttrs {
			if link, ok := tag.Attrs[attr]; ok {
				r.check(fmt.Sprintf("head[%d].%s", i, attr), link)
			}
		}
	}
	if cfg.Logo != "" {
		r.check("logo", cfg.Logo)
	}
	cfg.Walk(func(e site.Entry) {
		if e.Link != "" {
			r.check(e.Path+".link", e.Link)
		}
	})
	for i, s := range cfg.SocialLinks {
		r.check(fmt.Sprintf("socialLinks[%d].link", i), s.Link)
	}
	return r.warnings
}

func (r *resolver) check(fieldPath, link string) {
	if !IsRootRelative(link) {
		return
	}
	p, fragment := splitSitePath(link)
	if r.ignored(p) {
		return
	}

	page, ok := r.lookup(p)
	if !ok {
		r.warn(fieldPath, fmt.Sprintf("link %q has no matching page", link))
		return
	}
	if fragment == "" || r.anchors == nil {
		return
	}
	if ids, ok := r.anchors[page]; ok && !ids.Has(fragment) {
		r.warn(fieldPath, fmt.Sprintf("anchor #%s not found on page %s", fragment, page))
	}
}

// lookup finds p among the known paths. Links may name the source file
// ("/guide/setup.md"); those resolve like their clean form.
func (r *resolver) lookup(p string) (string, bool) {
	candidates := []string{p}
	if unescaped, err := url.PathUnescape(p); err == nil && unescaped != p {
		candidates = append(candidates, unescaped)
	}
	for _, c := range candidates {
		if r.known.Has(c) {
			return c, true
		}
		if clean, ok := strings.CutSuffix(c, ".md"); ok && clean != "" && r.known.Has(clean) {
			return clean, true
		}
	}
	return "", false
}

func (r *resolver) ignored(p string) bool {
	for _, pattern := range r.ignore {
		if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
			if p == prefix || strings.HasPrefix(p, prefix+"/") {
				return true
			}
			continue
		}
		if matched, err := path.Match(pattern, p); err == nil && matched {
			return true
		}
	}
	return false
}

func (r *resolver) warn(fieldPath, msg string) {
	r.warnings = append(r.warnings, Violation{Kind: KindDanglingLink, Path: fieldPath, Message: msg})
}
