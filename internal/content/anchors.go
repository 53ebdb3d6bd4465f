package content

import (
	"bytes"
	"strconv"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/unicode/norm"

	"git.home.luguber.info/inful/sitenav/internal/util/sets"
)

var headingParser = goldmark.New(
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
		parser.WithAttribute(),
	),
).Parser()

// HeadingIDs returns the anchor ids of every heading in a markdown page,
// slugged the way the site generator slugs them. Explicit {#id} attributes
// win over generated ids.
func HeadingIDs(page []byte) sets.Set[string] {
	body := stripFrontmatter(page)
	ctx := parser.NewContext(parser.WithIDs(newSlugIDs()))
	root := headingParser.Parse(text.NewReader(body), parser.WithContext(ctx))

	ids := sets.New[string]()
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if _, ok := n.(*gmast.Heading); !ok {
			return gmast.WalkContinue, nil
		}
		if v, ok := n.AttributeString("id"); ok {
			if id, ok := v.([]byte); ok && len(id) > 0 {
				ids.Add(string(id))
			}
		}
		return gmast.WalkSkipChildren, nil
	})
	return ids
}

// stripFrontmatter drops a leading YAML frontmatter block so that it is not
// parsed as a setext heading.
func stripFrontmatter(page []byte) []byte {
	page = bytes.TrimPrefix(page, []byte("\uFEFF"))
	rest, ok := bytes.CutPrefix(page, []byte("---\n"))
	if !ok {
		rest, ok = bytes.CutPrefix(page, []byte("---\r\n"))
	}
	if !ok {
		return page
	}
	for len(rest) > 0 {
		line, after, _ := bytes.Cut(rest, []byte("\n"))
		if string(bytes.TrimRight(line, "\r")) == "---" {
			return after
		}
		rest = after
	}
	return page
}

// slugIDs generates heading ids per page. Repeats get "-1", "-2", ...
type slugIDs struct {
	used sets.Set[string]
}

func newSlugIDs() *slugIDs {
	return &slugIDs{used: sets.New[string]()}
}

func (s *slugIDs) Generate(value []byte, _ gmast.NodeKind) []byte {
	base := Slugify(string(value))
	id := base
	for i := 1; s.used.Has(id); i++ {
		id = base + "-" + strconv.Itoa(i)
	}
	s.used.Add(id)
	return []byte(id)
}

func (s *slugIDs) Put(value []byte) {
	s.used.Add(string(value))
}

// Slugify turns heading text into an anchor id: accents are stripped,
// control characters dropped, runs of whitespace and ASCII punctuation
// become a single "-", leading and trailing dashes are trimmed, a leading
// digit gets a "_" prefix and the result is lowercased.
// "What's new?" -> "what-s-new", "v1.2 Release" -> "v1-2-release".
func Slugify(heading string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range norm.NFKD.String(heading) {
		switch {
		case r >= 0x0300 && r <= 0x036F, r < 0x20:
			// combining diacritics and control characters
		case unicode.IsSpace(r) || strings.ContainsRune(slugSeparators, r):
			pendingDash = true
		default:
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		}
	}
	slug := b.String()
	if slug != "" && slug[0] >= '0' && slug[0] <= '9' {
		slug = "_" + slug
	}
	return strings.ToLower(slug)
}

const slugSeparators = "~`!@#$%^&*()-_+=[]{}|\\;:\"'\u201c\u201d\u2018\u2019<>,.?/"
