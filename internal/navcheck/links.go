package navcheck

import (
	"net/url"
	"strings"
)

// checkLinkShape returns an empty string when link is an absolute URL or a
// root-relative path, otherwise a description of what is wrong.
func checkLinkShape(link string) string {
	switch {
	case link == "":
		return "link is empty"
	case strings.ContainsAny(link, " \t\r\n"):
		return "link contains whitespace"
	case strings.HasPrefix(link, "//"):
		return "protocol-relative links are not allowed, use an absolute URL or a path starting with /"
	case strings.HasPrefix(link, "/"):
		if _, err := url.Parse(link); err != nil {
			return "link is not a valid path: " + err.Error()
		}
		return ""
	}

	u, err := url.Parse(link)
	if err != nil {
		return "link is not a valid URL: " + err.Error()
	}
	if u.Scheme == "" {
		return "link must be an absolute URL or a path starting with /"
	}
	if (u.Scheme == "http" || u.Scheme == "https") && u.Host == "" {
		return "URL has no host"
	}
	return ""
}

// IsRootRelative reports whether link is a site path rather than a URL.
func IsRootRelative(link string) bool {
	return strings.HasPrefix(link, "/") && !strings.HasPrefix(link, "//")
}

// splitSitePath separates a root-relative link into its path and fragment.
// Query strings are dropped.
func splitSitePath(link string) (p, fragment string) {
	p, fragment, _ = strings.Cut(link, "#")
	p, _, _ = strings.Cut(p, "?")
	return p, fragment
}
