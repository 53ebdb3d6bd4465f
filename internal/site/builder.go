package site

import (
	"maps"

	"dario.cat/mergo"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
)

// Option configures a Config built with New.
type Option func(*Config)

// New builds a Config from options. Site variants are expressed as one base
// built here plus Override calls, instead of copy-pasted documents.
func New(opts ...Option) *Config {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func WithTitle(title string) Option { return func(c *Config) { c.Title = title } }

func WithDescription(desc string) Option { return func(c *Config) { c.Description = desc } }

func WithLogo(path string) Option { return func(c *Config) { c.Logo = path } }

func WithHead(tags ...HeadTag) Option {
	return func(c *Config) { c.Head = append(c.Head, tags...) }
}

func WithNav(entries ...NavEntry) Option {
	return func(c *Config) { c.Nav = append(c.Nav, entries...) }
}

func WithSidebar(groups ...SidebarGroup) Option {
	return func(c *Config) { c.Sidebar = append(c.Sidebar, groups...) }
}

func WithSocialLinks(links ...SocialLink) Option {
	return func(c *Config) { c.SocialLinks = append(c.SocialLinks, links...) }
}

func WithFooter(message, copyright string) Option {
	return func(c *Config) { c.Footer = &Footer{Message: message, Copyright: copyright} }
}

func WithIgnoreDeadLinks(ignore bool) Option {
	return func(c *Config) { c.IgnoreDeadLinks = &ignore }
}

// Link is shorthand for a leaf entry.
func Link(text, link string) LinkItem {
	return LinkItem{Text: text, Link: link}
}

// Menu is shorthand for an entry with children and no target of its own.
func Menu(text string, items ...LinkItem) LinkItem {
	return LinkItem{Text: text, Items: items}
}

// Group is shorthand for a sidebar group.
func Group(text string, items ...LinkItem) SidebarGroup {
	return SidebarGroup{Text: text, Items: items}
}

// Favicon is shorthand for the head tag declaring the site icon.
func Favicon(href string) HeadTag {
	return HeadTag{Name: "link", Attrs: map[string]string{"rel": "icon", "href": href}}
}

// Override returns a new Config with every non-empty field of o layered over
// c. Lists are replaced, not merged. An explicit IgnoreDeadLinks=false in o
// wins over true in c. Neither input is modified.
func (c *Config) Override(o *Config) (*Config, error) {
	out := c.Clone()
	if o == nil {
		return out, nil
	}
	src := o.Clone()
	ignore := src.IgnoreDeadLinks
	src.IgnoreDeadLinks = nil

	if err := mergo.Merge(out, src, mergo.WithOverride); err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "cannot merge site variant").Build()
	}
	if ignore != nil {
		v := *ignore
		out.IgnoreDeadLinks = &v
	}
	return out, nil
}

// Clone returns a deep copy sharing no slices, maps or pointers with c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	if c.Head != nil {
		out.Head = make([]HeadTag, len(c.Head))
		for i, h := range c.Head {
			h.Attrs = maps.Clone(h.Attrs)
			out.Head[i] = h
		}
	}
	out.Nav = cloneItems(c.Nav)
	if c.Sidebar != nil {
		out.Sidebar = make([]SidebarGroup, len(c.Sidebar))
		for i, g := range c.Sidebar {
			if g.Collapsed != nil {
				v := *g.Collapsed
				g.Collapsed = &v
			}
			g.Items = cloneItems(g.Items)
			out.Sidebar[i] = g
		}
	}
	if c.Footer != nil {
		f := *c.Footer
		out.Footer = &f
	}
	if c.SocialLinks != nil {
		out.SocialLinks = append([]SocialLink(nil), c.SocialLinks...)
	}
	if c.IgnoreDeadLinks != nil {
		v := *c.IgnoreDeadLinks
		out.IgnoreDeadLinks = &v
	}
	return &out
}

func cloneItems(items []LinkItem) []LinkItem {
	if items == nil {
		return nil
	}
	out := make([]LinkItem, len(items))
	for i, it := range items {
		it.Items = cloneItems(it.Items)
		out[i] = it
	}
	return out
}
