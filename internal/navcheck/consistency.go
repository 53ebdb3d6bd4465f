package navcheck

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"git.home.luguber.info/inful/sitenav/internal/site"
)

// Variant is one named site configuration among several that describe the
// same site (per-deployment branding and the like).
type Variant struct {
	Name   string
	Config *site.Config
}

type occurrence struct {
	variant string
	path    string
	parent  string
	text    string
	folded  string
	link    string
}

// Inconsistencies surfaces authoring slips across variants as warnings. It
// never changes the input; the author decides which spelling is right.
//
//   - InconsistentCasing: the same entry spelled with different casing.
//   - InconsistentTarget: the same entry pointing at different links.
//   - SharedTarget: one link used by differently labelled entries of a section.
//
// "The same entry" means same section, same ancestor texts and same text,
// compared case-insensitively. A single variant is compared against itself.
func Inconsistencies(variants ...Variant) []Violation {
	fold := cases.Fold()
	key := func(s string) string { return fold.String(strings.TrimSpace(s)) }

	firstByEntry := map[string]occurrence{}
	firstByLink := map[string]occurrence{}
	var out []Violation

	for _, vr := range variants {
		vr.Config.Walk(func(e site.Entry) {
			trail := make([]string, len(e.Trail))
			for i, t := range e.Trail {
				trail[i] = key(t)
			}
			o := occurrence{
				variant: vr.Name,
				path:    e.Path,
				parent:  parentList(e.Path),
				text:    strings.TrimSpace(e.Text),
				folded:  key(e.Text),
				link:    e.Link,
			}
			if o.folded == "" {
				return
			}

			entryKey := string(e.Section) + "\x00" + strings.Join(trail, "\x00") + "\x00" + o.folded
			if prev, ok := firstByEntry[entryKey]; !ok {
				firstByEntry[entryKey] = o
			} else if prev.variant != o.variant {
				if prev.text != o.text {
					out = append(out, Violation{
						Kind:    KindInconsistentCasing,
						Variant: o.variant,
						Path:    o.path + ".text",
						Message: fmt.Sprintf("text %q differs in casing from %q %s", o.text, prev.text, prev.where()),
						Related: []string{prev.ref()},
					})
				}
				if prev.link != "" && o.link != "" && prev.link != o.link {
					out = append(out, Violation{
						Kind:    KindInconsistentTarget,
						Variant: o.variant,
						Path:    o.path + ".link",
						Message: fmt.Sprintf("%q links to %q here but to %q %s", o.text, o.link, prev.link, prev.where()),
						Related: []string{prev.ref()},
					})
				}
			}

			if o.link == "" {
				return
			}
			linkKey := string(e.Section) + "\x00" + o.link
			prev, ok := firstByLink[linkKey]
			if !ok {
				firstByLink[linkKey] = o
				return
			}
			sameList := prev.variant == o.variant && prev.parent == o.parent
			if prev.folded != o.folded && !sameList {
				out = append(out, Violation{
					Kind:    KindSharedTarget,
					Variant: o.variant,
					Path:    o.path + ".link",
					Message: fmt.Sprintf("link %q is used by %q here and by %q %s", o.link, o.text, prev.text, prev.where()),
					Related: []string{prev.ref()},
				})
			}
		})
	}
	return out
}

func (o occurrence) where() string {
	if o.variant == "" {
		return "at " + o.path
	}
	return fmt.Sprintf("in %s at %s", o.variant, o.path)
}

func (o occurrence) ref() string {
	if o.variant == "" {
		return o.path
	}
	return o.variant + ":" + o.path
}

// parentList returns the sibling list a node path belongs to:
// "nav[1].items[0]" -> "nav[1].items".
func parentList(p string) string {
	if i := strings.LastIndex(p, "["); i >= 0 {
		return p[:i]
	}
	return p
}
