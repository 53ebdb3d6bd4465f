package navcheck

import "git.home.luguber.info/inful/sitenav/internal/util/sets"

// DefaultIcons lists the social icon identifiers the generator ships with.
var DefaultIcons = []string{
	"discord",
	"facebook",
	"github",
	"instagram",
	"linkedin",
	"mastodon",
	"npm",
	"slack",
	"twitter",
	"x",
	"youtube",
}

func defaultIconSet() sets.Set[string] {
	return sets.New(DefaultIcons...)
}
