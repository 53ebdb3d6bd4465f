// Package treeview renders the navigation of a site as a text tree.
package treeview

import (
	"fmt"
	"io"

	"github.com/ddddddO/gtree"

	"git.home.luguber.info/inful/sitenav/internal/site"
)

// Render writes the nav bar and sidebar of cfg as a tree, one node per
// entry labelled with its text and target.
func Render(w io.Writer, cfg *site.Config) error {
	title := "site"
	if cfg != nil && cfg.Title != "" {
		title = cfg.Title
	}
	root := gtree.NewRoot(title)
	if cfg == nil {
		return gtree.OutputFromRoot(w, root)
	}

	if len(cfg.Nav) > 0 {
		addItems(root.Add("nav"), cfg.Nav)
	}
	if len(cfg.Sidebar) > 0 {
		sidebar := root.Add("sidebar")
		labels := newLabeler()
		for _, g := range cfg.Sidebar {
			text := label(g.Text, g.Link)
			if g.Collapsed != nil && *g.Collapsed {
				text += " [collapsed]"
			}
			addItems(sidebar.Add(labels.unique(text)), g.Items)
		}
	}
	if len(cfg.SocialLinks) > 0 {
		social := root.Add("social")
		labels := newLabeler()
		for _, s := range cfg.SocialLinks {
			social.Add(labels.unique(label(s.Icon, s.Link)))
		}
	}
	return gtree.OutputFromRoot(w, root)
}

func addItems(parent *gtree.Node, items []site.LinkItem) {
	labels := newLabeler()
	for _, it := range items {
		addItems(parent.Add(labels.unique(label(it.Text, it.Link))), it.Items)
	}
}

func label(text, link string) string {
	if text == "" {
		text = "(no text)"
	}
	if link == "" {
		return text
	}
	return text + " → " + link
}

// labeler keeps sibling labels distinct; gtree merges siblings with equal text.
type labeler map[string]int

func newLabeler() labeler { return labeler{} }

func (l labeler) unique(text string) string {
	l[text]++
	if n := l[text]; n > 1 {
		return fmt.Sprintf("%s (#%d)", text, n)
	}
	return text
}
