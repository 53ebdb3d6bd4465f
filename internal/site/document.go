package site

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// document is the on-disk layout, mirroring the generator's config object.
type document struct {
	Extends         string      `yaml:"extends,omitempty"`
	Title           string      `yaml:"title,omitempty"`
	Description     string      `yaml:"description,omitempty"`
	Head            []HeadTag   `yaml:"head,omitempty"`
	IgnoreDeadLinks *bool       `yaml:"ignoreDeadLinks,omitempty"`
	ThemeConfig     themeConfig `yaml:"themeConfig,omitempty"`
}

type themeConfig struct {
	Logo        string         `yaml:"logo,omitempty"`
	Nav         []NavEntry     `yaml:"nav,omitempty"`
	Sidebar     []SidebarGroup `yaml:"sidebar,omitempty"`
	Footer      *Footer        `yaml:"footer,omitempty"`
	SocialLinks []SocialLink   `yaml:"socialLinks,omitempty"`
}

func (d *document) config() *Config {
	return &Config{
		Title:           d.Title,
		Description:     d.Description,
		Head:            d.Head,
		Logo:            d.ThemeConfig.Logo,
		Nav:             d.ThemeConfig.Nav,
		Sidebar:         d.ThemeConfig.Sidebar,
		Footer:          d.ThemeConfig.Footer,
		SocialLinks:     d.ThemeConfig.SocialLinks,
		IgnoreDeadLinks: d.IgnoreDeadLinks,
	}
}

func documentFor(c *Config) *document {
	return &document{
		Title:           c.Title,
		Description:     c.Description,
		Head:            c.Head,
		IgnoreDeadLinks: c.IgnoreDeadLinks,
		ThemeConfig: themeConfig{
			Logo:        c.Logo,
			Nav:         c.Nav,
			Sidebar:     c.Sidebar,
			Footer:      c.Footer,
			SocialLinks: c.SocialLinks,
		},
	}
}

// MarshalYAML writes the generator layout (themeConfig nesting).
func (c Config) MarshalYAML() (any, error) {
	return documentFor(&c), nil
}

// UnmarshalYAML reads the generator layout. The extends key is ignored here;
// LoadFile resolves it.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var doc document
	if err := value.Decode(&doc); err != nil {
		return err
	}
	*c = *doc.config()
	return nil
}

// UnmarshalYAML accepts [tag, {attrs}] and [tag, {attrs}, content].
// Malformed entries are reported as type errors so decoding continues and
// every problem in the file surfaces at once.
func (h *HeadTag) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode || len(value.Content) < 2 || len(value.Content) > 3 {
		return headTypeError(value, "head entry must be [tag, {attributes}] or [tag, {attributes}, content]")
	}
	nameNode, attrsNode := value.Content[0], value.Content[1]
	if nameNode.Kind != yaml.ScalarNode {
		return headTypeError(nameNode, "head tag name must be a string")
	}
	if attrsNode.Kind != yaml.MappingNode {
		return headTypeError(attrsNode, "head tag attributes must be a mapping")
	}

	tag := HeadTag{Name: nameNode.Value, Attrs: make(map[string]string, len(attrsNode.Content)/2)}
	for i := 0; i+1 < len(attrsNode.Content); i += 2 {
		k, v := attrsNode.Content[i], attrsNode.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return headTypeError(v, fmt.Sprintf("head attribute %q must be a scalar", k.Value))
		}
		tag.Attrs[k.Value] = v.Value
	}
	if len(value.Content) == 3 {
		if value.Content[2].Kind != yaml.ScalarNode {
			return headTypeError(value.Content[2], "head tag content must be a string")
		}
		tag.Content = value.Content[2].Value
	}
	*h = tag
	return nil
}

// MarshalYAML writes the tuple form.
func (h HeadTag) MarshalYAML() (any, error) {
	attrs := h.Attrs
	if attrs == nil {
		attrs = map[string]string{}
	}
	if h.Content != "" {
		return []any{h.Name, attrs, h.Content}, nil
	}
	return []any{h.Name, attrs}, nil
}

func headTypeError(n *yaml.Node, msg string) error {
	return &yaml.TypeError{Errors: []string{fmt.Sprintf("line %d: %s", n.Line, msg)}}
}
