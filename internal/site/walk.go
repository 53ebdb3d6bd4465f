package site

import "fmt"

// Section names the navigation area an entry belongs to.
type Section string

const (
	SectionNav     Section = "nav"
	SectionSidebar Section = "sidebar"
)

// Entry is a read-only view of one navigation node.
type Entry struct {
	Section     Section
	Path        string   // e.g. nav[2].items[0] or sidebar[1]
	Depth       int      // 0 for top-level nav entries and sidebar groups
	Trail       []string // texts of the ancestors, outermost first
	Text        string
	Link        string
	ActiveMatch string
	Children    int
	Group       bool // a SidebarGroup rather than a LinkItem
}

// Walk calls fn for every nav and sidebar node exactly once, in document
// order (pre-order: parent before children).
func (c *Config) Walk(fn func(Entry)) {
	if c == nil {
		return
	}
	walkItems(SectionNav, "nav", c.Nav, 0, nil, fn)
	for i, g := range c.Sidebar {
		path := fmt.Sprintf("sidebar[%d]", i)
		fn(Entry{
			Section:  SectionSidebar,
			Path:     path,
			Text:     g.Text,
			Link:     g.Link,
			Children: len(g.Items),
			Group:    true,
		})
		walkItems(SectionSidebar, path+".items", g.Items, 1, []string{g.Text}, fn)
	}
}

func walkItems(section Section, prefix string, items []LinkItem, depth int, trail []string, fn func(Entry)) {
	for i, it := range items {
		path := fmt.Sprintf("%s[%d]", prefix, i)
		fn(Entry{
			Section:     section,
			Path:        path,
			Depth:       depth,
			Trail:       trail,
			Text:        it.Text,
			Link:        it.Link,
			ActiveMatch: it.ActiveMatch,
			Children:    len(it.Items),
		})
		if len(it.Items) > 0 {
			childTrail := append(append([]string(nil), trail...), it.Text)
			walkItems(section, path+".items", it.Items, depth+1, childTrail, fn)
		}
	}
}

// SiblingLists calls fn once per list of siblings: the nav bar, the sidebar
// group list and every items list below them. listPath names the list itself
// (e.g. "sidebar[0].items").
func (c *Config) SiblingLists(fn func(listPath string, siblings []Entry)) {
	if c == nil {
		return
	}
	siblingItems(SectionNav, "nav", c.Nav, 0, fn)

	groups := make([]Entry, len(c.Sidebar))
	for i, g := range c.Sidebar {
		groups[i] = Entry{Section: SectionSidebar, Path: fmt.Sprintf("sidebar[%d]", i), Text: g.Text, Link: g.Link, Group: true}
	}
	if len(groups) > 0 {
		fn("sidebar", groups)
	}
	for i, g := range c.Sidebar {
		siblingItems(SectionSidebar, fmt.Sprintf("sidebar[%d].items", i), g.Items, 1, fn)
	}
}

func siblingItems(section Section, listPath string, items []LinkItem, depth int, fn func(string, []Entry)) {
	if len(items) == 0 {
		return
	}
	entries := make([]Entry, len(items))
	for i, it := range items {
		entries[i] = Entry{
			Section:  section,
			Path:     fmt.Sprintf("%s[%d]", listPath, i),
			Depth:    depth,
			Text:     it.Text,
			Link:     it.Link,
			Children: len(it.Items),
		}
	}
	fn(listPath, entries)
	for i, it := range items {
		siblingItems(section, fmt.Sprintf("%s[%d].items", listPath, i), it.Items, depth+1, fn)
	}
}
