package navcheck

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitenav/internal/site"
)

func requireViolations(t *testing.T, err error) *ValidationError {
	t.Helper()
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
	return verr
}

func TestValidate_MinimalSiteSucceeds(t *testing.T) {
	cfg := site.New(
		site.WithTitle("x"),
		site.WithNav(site.Link("Home", "/")),
		site.WithSocialLinks(site.SocialLink{Icon: "github", Link: "https://github.com/x"}),
	)

	got, err := Validate(cfg)
	require.NoError(t, err)
	assert.Same(t, cfg, got)
}

func TestValidate_EmptyTreesAreValid(t *testing.T) {
	got, err := Validate(site.New())
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestValidate_EmptyText(t *testing.T) {
	cfg := site.New(site.WithNav(site.Link("", "/a")))

	_, err := Validate(cfg)
	verr := requireViolations(t, err)
	require.Len(t, verr.Violations, 1)
	assert.Equal(t, KindShape, verr.Violations[0].Kind)
	assert.Equal(t, "nav[0].text", verr.Violations[0].Path)
}

func TestValidate_WhitespaceTextIsEmpty(t *testing.T) {
	_, err := Validate(site.New(site.WithSidebar(site.Group("  \t", site.Link("A", "/a")))))
	verr := requireViolations(t, err)
	require.Len(t, verr.Violations, 1)
	assert.Equal(t, "sidebar[0].text", verr.Violations[0].Path)
}

func TestValidate_DuplicateSiblings(t *testing.T) {
	cfg := site.New(site.WithSidebar(site.Group("Introduction",
		site.Link("Introduction", "/docs/"),
		site.Link("Overview", "/docs/"),
	)))

	_, err := Validate(cfg)
	verr := requireViolations(t, err)
	require.Len(t, verr.Violations, 1)

	v := verr.Violations[0]
	assert.Equal(t, KindDuplicateLink, v.Kind)
	assert.Equal(t, "sidebar[0].items[1].link", v.Path)
	assert.Equal(t, []string{"sidebar[0].items[0].link"}, v.Related)
	assert.Contains(t, v.Message, "sidebar[0].items[0].link")
}

func TestValidate_DuplicatesAreScopedToSiblings(t *testing.T) {
	cfg := site.New(
		site.WithNav(
			site.LinkItem{Text: "Docs", Link: "/docs/", Items: []site.LinkItem{
				site.Menu("More", site.Link("Docs again", "/docs/")),
			}},
		),
		site.WithSidebar(
			site.Group("One", site.Link("Intro", "/docs/")),
			site.Group("Two", site.Link("Intro", "/docs/")),
		),
	)

	_, err := Validate(cfg)
	require.NoError(t, err)
}

func TestValidate_TripleDuplicateReportsEachRepeat(t *testing.T) {
	cfg := site.New(site.WithNav(site.Link("A", "/a"), site.Link("B", "/a"), site.Link("C", "/a")))

	_, err := Validate(cfg)
	verr := requireViolations(t, err)
	dups := verr.ByKind(KindDuplicateLink)
	require.Len(t, dups, 2)
	assert.Equal(t, []string{"nav[0].link"}, dups[0].Related)
	assert.Equal(t, []string{"nav[0].link"}, dups[1].Related)
}

func TestValidate_UnknownIcon(t *testing.T) {
	cfg := site.New(site.WithSocialLinks(site.SocialLink{Icon: "mastodon-unknown", Link: "https://example.com"}))

	_, err := Validate(cfg)
	verr := requireViolations(t, err)
	require.Len(t, verr.Violations, 1)
	assert.Equal(t, KindUnknownIcon, verr.Violations[0].Kind)
	assert.Equal(t, "socialLinks[0].icon", verr.Violations[0].Path)
}

func TestValidate_IconCaseIsNotFixed(t *testing.T) {
	cfg := site.New(site.WithSocialLinks(site.SocialLink{Icon: "GitHub", Link: "https://github.com/x"}))

	_, err := Validate(cfg)
	verr := requireViolations(t, err)
	require.Len(t, verr.Violations, 1)
	assert.Contains(t, verr.Violations[0].Message, `did you mean "github"`)
	assert.Equal(t, "GitHub", cfg.SocialLinks[0].Icon)
}

func TestValidate_ExtraIcons(t *testing.T) {
	cfg := site.New(site.WithSocialLinks(site.SocialLink{Icon: "bluesky", Link: "https://bsky.app/x"}))

	_, err := Validate(cfg, WithExtraIcons("bluesky"))
	require.NoError(t, err)

	_, err = Validate(site.New(site.WithSocialLinks(site.SocialLink{Icon: "github", Link: "https://github.com/x"})), WithIcons("bluesky"))
	require.Error(t, err)
}

func TestValidate_LinkShapes(t *testing.T) {
	tests := []struct {
		link  string
		valid bool
	}{
		{"/", true},
		{"/docs/getting-started", true},
		{"/docs/#install", true},
		{"https://github.com/edgeforge-labs", true},
		{"mailto:team@example.com", true},
		{"docs/relative", false},
		{"about", false},
		{"//cdn.example.com/x", false},
		{"https://", false},
		{"/with space", false},
		{" /padded", false},
		{"http://[::1", false},
	}
	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			_, err := Validate(site.New(site.WithNav(site.Link("Entry", tt.link))))
			if tt.valid {
				require.NoError(t, err)
				return
			}
			verr := requireViolations(t, err)
			require.Len(t, verr.Violations, 1)
			assert.Equal(t, KindLinkFormat, verr.Violations[0].Kind)
			assert.Equal(t, "nav[0].link", verr.Violations[0].Path)
		})
	}
}

func TestValidate_LeafWithoutLink(t *testing.T) {
	cfg := site.New(
		site.WithNav(site.Menu("Dropdown", site.Link("A", "/a")), site.LinkItem{Text: "Dangling"}),
	)

	_, err := Validate(cfg)
	verr := requireViolations(t, err)
	require.Len(t, verr.Violations, 1)
	assert.Equal(t, KindShape, verr.Violations[0].Kind)
	assert.Equal(t, "nav[1].link", verr.Violations[0].Path)
}

func TestValidate_HeadTags(t *testing.T) {
	cfg := site.New(site.WithHead(
		site.Favicon("/favicon.ico"),
		site.HeadTag{Name: "meta", Attrs: map[string]string{"name": "theme-color", "content": "#fff"}},
		site.HeadTag{Name: "div"},
		site.HeadTag{Name: "blink-tag"},
		site.HeadTag{Name: "link", Attrs: map[string]string{"rel": "stylesheet", "href": "styles.css"}},
	))

	_, err := Validate(cfg)
	verr := requireViolations(t, err)
	require.Len(t, verr.Violations, 3)

	assert.Equal(t, Violation{Kind: KindLinkFormat, Path: "head[4].href",
		Message: `link must be an absolute URL or a path starting with /: "styles.css"`}, verr.Violations[0])
	assert.Equal(t, "head[2].tag", verr.Violations[1].Path)
	assert.Contains(t, verr.Violations[1].Message, "not allowed in the document head")
	assert.Equal(t, "head[3].tag", verr.Violations[2].Path)
	assert.Contains(t, verr.Violations[2].Message, "unknown HTML element")
}

func TestValidate_ActiveMatch(t *testing.T) {
	cfg := site.New(site.WithNav(
		site.LinkItem{Text: "Guide", Link: "/guide/", ActiveMatch: "^/guide/"},
		site.LinkItem{Text: "API", Link: "/api/", ActiveMatch: "^/api/("},
	))

	_, err := Validate(cfg)
	verr := requireViolations(t, err)
	require.Len(t, verr.Violations, 1)
	assert.Equal(t, "nav[1].activeMatch", verr.Violations[0].Path)
}

func TestValidate_AccumulatesAllViolationsInPassOrder(t *testing.T) {
	cfg := site.New(
		site.WithLogo("logo.png"),
		site.WithNav(site.Link("", "/a"), site.Link("B", "/a"), site.Link("C", "relative")),
		site.WithSocialLinks(site.SocialLink{Icon: "myspace", Link: "https://myspace.com/x"}),
	)

	_, err := Validate(cfg)
	verr := requireViolations(t, err)

	var kinds []Kind
	for _, v := range verr.Violations {
		kinds = append(kinds, v.Kind)
	}
	assert.Equal(t, []Kind{KindLinkFormat, KindLinkFormat, KindShape, KindDuplicateLink, KindUnknownIcon}, kinds)
	assert.Equal(t, "logo", verr.Violations[0].Path)
	assert.Equal(t, "nav[2].link", verr.Violations[1].Path)
	assert.Contains(t, err.Error(), "navigation has 5 problem(s)")
}

func TestValidate_NilConfig(t *testing.T) {
	_, err := Validate(nil)
	verr := requireViolations(t, err)
	assert.Equal(t, KindShape, verr.Violations[0].Kind)
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	cfg := site.New(
		site.WithNav(site.Link(" Home ", "/"), site.Link("Dup", "/")),
		site.WithSocialLinks(site.SocialLink{Icon: "GitHub", Link: "https://github.com/x"}),
	)
	snapshot := cfg.Clone()

	_, err := Validate(cfg)
	require.Error(t, err)
	assert.Equal(t, snapshot, cfg)
}

func TestSupported(t *testing.T) {
	icons := Supported(WithExtraIcons("bluesky"))
	assert.Contains(t, icons, "github")
	assert.Contains(t, icons, "bluesky")
	assert.IsIncreasing(t, icons)
}
