package navcheck

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/sitenav/internal/site"
	"git.home.luguber.info/inful/sitenav/internal/util/sets"
)

// headElements are the elements the generator may render into <head>.
var headElements = sets.New(atom.Base, atom.Link, atom.Meta, atom.Noscript, atom.Script, atom.Style, atom.Template, atom.Title)

// headLinkAttrs are the head tag attributes that carry a link.
var headLinkAttrs = []string{"href", "src"}

// Option configures Validate.
type Option func(*validator)

// WithExtraIcons accepts additional social icon identifiers on top of DefaultIcons.
func WithExtraIcons(icons ...string) Option {
	return func(v *validator) { v.icons.Add(icons...) }
}

// WithIcons replaces the supported icon set.
func WithIcons(icons ...string) Option {
	return func(v *validator) { v.icons = sets.New(icons...) }
}

type validator struct {
	cfg        *site.Config
	icons      sets.Set[string]
	violations []Violation
}

// Validate checks cfg and returns it unchanged when it is valid. Otherwise it
// returns a *ValidationError holding every violation, grouped by pass: link
// shape, text, sibling duplicates, social icons.
func Validate(cfg *site.Config, opts ...Option) (*site.Config, error) {
	if cfg == nil {
		return nil, &ValidationError{Violations: []Violation{{Kind: KindShape, Message: "site configuration is missing"}}}
	}
	v := &validator{cfg: cfg, icons: defaultIconSet()}
	for _, opt := range opts {
		opt(v)
	}

	v.checkLinks()
	v.checkTexts()
	v.checkDuplicates()
	v.checkIcons()

	if len(v.violations) > 0 {
		return nil, &ValidationError{Violations: v.violations}
	}
	return cfg, nil
}

func (v *validator) add(kind Kind, path, msg string, related ...string) {
	v.violations = append(v.violations, Violation{Kind: kind, Path: path, Message: msg, Related: related})
}

func (v *validator) link(path, link string) {
	if msg := checkLinkShape(link); msg != "" {
		v.add(KindLinkFormat, path, fmt.Sprintf("%s: %q", msg, link))
	}
}

func (v *validator) checkLinks() {
	for i, tag := range v.cfg.Head {
		for _, attr := range headLinkAttrs {
			if link, ok := tag.Attrs[attr]; ok {
				v.link(fmt.Sprintf("head[%d].%s", i, attr), link)
			}
		}
	}
	if v.cfg.Logo != "" {
		v.link("logo", v.cfg.Logo)
	}

	v.cfg.Walk(func(e site.Entry) {
		switch {
		case e.Link != "":
			v.link(e.Path+".link", e.Link)
		case e.Children == 0:
			v.add(KindShape, e.Path+".link", "link is required for entries without children")
		}
		if e.ActiveMatch != "" {
			if _, err := regexp.Compile(e.ActiveMatch); err != nil {
				v.add(KindShape, e.Path+".activeMatch", "activeMatch is not a valid regular expression: "+err.Error())
			}
		}
	})

	for i, s := range v.cfg.SocialLinks {
		v.link(fmt.Sprintf("socialLinks[%d].link", i), s.Link)
	}
}

func (v *validator) checkTexts() {
	for i, tag := range v.cfg.Head {
		path := fmt.Sprintf("head[%d].tag", i)
		name := strings.ToLower(strings.TrimSpace(tag.Name))
		a := atom.Lookup([]byte(name))
		switch {
		case name == "":
			v.add(KindShape, path, "head tag name must not be empty")
		case a == 0:
			v.add(KindShape, path, fmt.Sprintf("unknown HTML element %q", tag.Name))
		case !headElements.Has(a):
			v.add(KindShape, path, fmt.Sprintf("element <%s> is not allowed in the document head", name))
		}
	}

	v.cfg.Walk(func(e site.Entry) {
		if strings.TrimSpace(e.Text) == "" {
			v.add(KindShape, e.Path+".text", "text must not be empty")
		}
	})

	for i, s := range v.cfg.SocialLinks {
		if strings.TrimSpace(s.Icon) == "" {
			v.add(KindShape, fmt.Sprintf("socialLinks[%d].icon", i), "icon must not be empty")
		}
	}
}

func (v *validator) checkDuplicates() {
	v.cfg.SiblingLists(func(_ string, siblings []site.Entry) {
		first := make(map[string]string, len(siblings))
		for _, e := range siblings {
			if e.Link == "" {
				continue
			}
			path := e.Path + ".link"
			if prev, ok := first[e.Link]; ok {
				v.add(KindDuplicateLink, path,
					fmt.Sprintf("duplicate link %q among siblings, first used at %s", e.Link, prev), prev)
				continue
			}
			first[e.Link] = path
		}
	})
}

func (v *validator) checkIcons() {
	for i, s := range v.cfg.SocialLinks {
		if strings.TrimSpace(s.Icon) == "" || v.icons.Has(s.Icon) {
			continue
		}
		msg := fmt.Sprintf("unknown social icon %q (supported: %s)", s.Icon, strings.Join(sets.Sorted(v.icons), ", "))
		if lower := strings.ToLower(s.Icon); lower != s.Icon && v.icons.Has(lower) {
			msg += fmt.Sprintf("; did you mean %q?", lower)
		}
		v.add(KindUnknownIcon, fmt.Sprintf("socialLinks[%d].icon", i), msg)
	}
}

// Supported returns the icon identifiers accepted with the given options.
func Supported(opts ...Option) []string {
	v := &validator{icons: defaultIconSet()}
	for _, opt := range opts {
		opt(v)
	}
	return sets.Sorted(v.icons)
}
