package navcheck

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"git.home.luguber.info/inful/sitenav/internal/site"
)

var textGen = rapid.StringMatching(`[A-Za-z][A-Za-z0-9 \-]{0,15}`)

// itemsGen draws a well-formed subtree. Links are derived from the node
// position so siblings never collide.
func itemsGen(prefix string, depth int) *rapid.Generator[[]site.LinkItem] {
	return rapid.Custom(func(t *rapid.T) []site.LinkItem {
		n := rapid.IntRange(0, 4).Draw(t, "n")
		items := make([]site.LinkItem, n)
		for i := range items {
			link := fmt.Sprintf("%s/%d", prefix, i)
			items[i] = site.LinkItem{Text: textGen.Draw(t, "text"), Link: link}
			if depth > 0 && rapid.Bool().Draw(t, "nested") {
				items[i].Items = itemsGen(link, depth-1).Draw(t, "children")
				if len(items[i].Items) > 0 && rapid.Bool().Draw(t, "dropdown") {
					items[i].Link = ""
				}
			}
		}
		return items
	})
}

var validConfigGen = rapid.Custom(func(t *rapid.T) *site.Config {
	groups := make([]site.SidebarGroup, rapid.IntRange(0, 3).Draw(t, "groups"))
	for i := range groups {
		groups[i] = site.SidebarGroup{
			Text:  textGen.Draw(t, "group"),
			Items: itemsGen(fmt.Sprintf("/g%d", i), 2).Draw(t, "items"),
		}
		if len(groups[i].Items) == 0 {
			groups[i].Link = fmt.Sprintf("/g%d/", i)
		}
	}
	social := make([]site.SocialLink, rapid.IntRange(0, 3).Draw(t, "social"))
	for i := range social {
		social[i] = site.SocialLink{
			Icon: rapid.SampledFrom(DefaultIcons).Draw(t, "icon"),
			Link: fmt.Sprintf("https://example.com/%d", i),
		}
	}
	return &site.Config{
		Title:       textGen.Draw(t, "title"),
		Nav:         itemsGen("/nav", 3).Draw(t, "nav"),
		Sidebar:     groups,
		SocialLinks: social,
	}
})

func TestValidate_IdentityOnValidConfigs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := validConfigGen.Draw(t, "cfg")
		snapshot := cfg.Clone()

		got, err := Validate(cfg)
		if err != nil {
			t.Fatalf("valid config rejected: %v", err)
		}
		if got != cfg {
			t.Fatalf("expected the same value back")
		}
		require.Equal(t, snapshot, got)
	})
}

// deepTree builds a 4-level tree (nav -> items -> items -> items) with a
// branching factor of 3 and blanks the text of every node whose ordinal is in bad.
func deepTree(bad map[int]bool) []site.LinkItem {
	ordinal := 0
	var build func(prefix string, level int) []site.LinkItem
	build = func(prefix string, level int) []site.LinkItem {
		items := make([]site.LinkItem, 3)
		for i := range items {
			link := fmt.Sprintf("%s/%d", prefix, i)
			text := "Entry"
			if bad[ordinal] {
				text = ""
			}
			ordinal++
			items[i] = site.LinkItem{Text: text, Link: link}
			if level < 3 {
				items[i].Items = build(link, level+1)
			}
		}
		return items
	}
	return build("", 0)
}

func TestValidate_VisitsEveryNodeExactlyOnce(t *testing.T) {
	const nodes = 3 + 9 + 27 + 81

	rapid.Check(t, func(t *rapid.T) {
		seeded := rapid.SliceOfNDistinct(rapid.IntRange(0, nodes-1), 0, 20, rapid.ID[int]).Draw(t, "bad")
		bad := make(map[int]bool, len(seeded))
		for _, n := range seeded {
			bad[n] = true
		}

		_, err := Validate(&site.Config{Nav: deepTree(bad)})
		if len(bad) == 0 {
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			return
		}
		verr, ok := err.(*ValidationError)
		if !ok {
			t.Fatalf("expected *ValidationError, got %v", err)
		}
		if got := len(verr.ByKind(KindShape)); got != len(bad) {
			t.Fatalf("expected %d shape violations, got %d", len(bad), got)
		}
		if len(verr.Violations) != len(bad) {
			t.Fatalf("expected only the seeded violations, got %v", verr.Violations)
		}
	})
}
