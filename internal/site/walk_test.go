package site

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestWalk_VisitsEveryNodeOnceInOrder(t *testing.T) {
	cfg := New(
		WithNav(
			Link("Home", "/"),
			Menu("Menu", Link("A", "/a"), Menu("Deeper", Link("B", "/b"))),
		),
		WithSidebar(Group("Intro", Link("Start", "/docs/"))),
	)

	var paths []string
	var depths []int
	cfg.Walk(func(e Entry) {
		paths = append(paths, e.Path)
		depths = append(depths, e.Depth)
	})

	assert.Equal(t, []string{
		"nav[0]",
		"nav[1]",
		"nav[1].items[0]",
		"nav[1].items[1]",
		"nav[1].items[1].items[0]",
		"sidebar[0]",
		"sidebar[0].items[0]",
	}, paths)
	assert.Equal(t, []int{0, 0, 1, 1, 2, 0, 1}, depths)
}

func TestWalk_Trail(t *testing.T) {
	cfg := New(WithSidebar(Group("Guide", Menu("Basics", Link("Install", "/install")))))

	var trail []string
	cfg.Walk(func(e Entry) {
		if e.Text == "Install" {
			trail = e.Trail
		}
	})
	assert.Equal(t, []string{"Guide", "Basics"}, trail)
}

func TestSiblingLists(t *testing.T) {
	cfg := New(
		WithNav(Link("Home", "/"), Menu("Menu", Link("A", "/a"))),
		WithSidebar(Group("One", Link("X", "/x")), Group("Two")),
	)

	lists := map[string]int{}
	cfg.SiblingLists(func(listPath string, siblings []Entry) {
		lists[listPath] = len(siblings)
	})

	assert.Equal(t, map[string]int{
		"nav":              2,
		"nav[1].items":     1,
		"sidebar":          2,
		"sidebar[0].items": 1,
	}, lists)
}

func TestWalk_NilConfig(t *testing.T) {
	var cfg *Config
	called := false
	cfg.Walk(func(Entry) { called = true })
	assert.False(t, called)
}
