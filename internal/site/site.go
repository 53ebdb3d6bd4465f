// Package site holds the declarative navigation model of a documentation site:
// head tags, top navigation, sidebar groups, social links and footer.
//
// Values are built once (from a YAML/JSON file or with the option builder),
// validated by navcheck and then handed to the external site generator.
// Nothing in this package mutates a Config after construction; Override and
// Clone always return fresh values.
package site

// HeadTag is one element rendered into the document head, e.g.
// ["link", {rel: icon, href: /favicon.ico}].
type HeadTag struct {
	Name    string
	Attrs   map[string]string
	Content string
}

// LinkItem is one clickable entry of the nav bar or sidebar. Items are its
// children; a LinkItem with children and no link is a dropdown or section.
type LinkItem struct {
	Text        string     `yaml:"text"`
	Link        string     `yaml:"link,omitempty"`
	ActiveMatch string     `yaml:"activeMatch,omitempty"`
	Items       []LinkItem `yaml:"items,omitempty"`
}

// NavEntry is a top-level navigation entry; Items form its dropdown.
type NavEntry = LinkItem

// SidebarGroup is a titled collection of links in the side panel.
type SidebarGroup struct {
	Text      string     `yaml:"text"`
	Link      string     `yaml:"link,omitempty"`
	Collapsed *bool      `yaml:"collapsed,omitempty"`
	Items     []LinkItem `yaml:"items,omitempty"`
}

// SocialLink is an icon link shown in the header.
type SocialLink struct {
	Icon string `yaml:"icon"`
	Link string `yaml:"link"`
}

// Footer is the optional page footer.
type Footer struct {
	Message   string `yaml:"message,omitempty"`
	Copyright string `yaml:"copyright,omitempty"`
}

// Config is the aggregate root describing a site's navigation and metadata.
type Config struct {
	Title           string
	Description     string
	Head            []HeadTag
	Logo            string
	Nav             []NavEntry
	Sidebar         []SidebarGroup
	Footer          *Footer
	SocialLinks     []SocialLink
	IgnoreDeadLinks *bool
}

// DeadLinksIgnored reports whether the author opted out of dead link resolution.
func (c *Config) DeadLinksIgnored() bool {
	return c != nil && c.IgnoreDeadLinks != nil && *c.IgnoreDeadLinks
}
